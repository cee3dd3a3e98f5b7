package postgres

import (
	"database/sql"
	"time"
)

type ledgerEntryTableModel struct {
	ID         int64          `db:"id"`
	UserID     string         `db:"user_id"`
	Tournament string         `db:"tournament"`
	Golfer     string         `db:"golfer"`
	Finish     sql.NullString `db:"finish"`
	Earnings   sql.NullInt64  `db:"earnings_cents"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

type ledgerEntryInsertModel struct {
	UserID     string `db:"user_id"`
	Tournament string `db:"tournament"`
	Golfer     string `db:"golfer"`
}
