package postgres

import (
	"database/sql"
	"time"
)

type selectionTableModel struct {
	ID         int64         `db:"id"`
	UserID     string        `db:"user_id"`
	Tournament string        `db:"tournament"`
	Golfer     string        `db:"golfer"`
	PickedAt   int64         `db:"picked_at"`
	IsLocked   bool          `db:"is_locked"`
	LockedAt   sql.NullInt64 `db:"locked_at"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

type selectionInsertModel struct {
	UserID     string `db:"user_id"`
	Tournament string `db:"tournament"`
	Golfer     string `db:"golfer"`
	PickedAt   int64  `db:"picked_at"`
	IsLocked   bool   `db:"is_locked"`
	LockedAt   *int64 `db:"locked_at"`
}

type tournamentOrderInsertModel struct {
	Tournament string `db:"tournament"`
}
