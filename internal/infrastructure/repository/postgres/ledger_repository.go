package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfairway/one-and-done/internal/domain/ledger"
	qb "github.com/openfairway/one-and-done/internal/platform/querybuilder"
)

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) ListByUser(ctx context.Context, userID string) ([]ledger.Entry, error) {
	query, args, err := qb.Select("l.*").
		From("ledger_entries l JOIN tournament_order o ON o.tournament = l.tournament").
		Where(qb.Eq("l.user_id", userID)).
		OrderBy("o.seq").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ledger entries query: %w", err)
	}

	var rows []ledgerEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list ledger entries by user", err)
	}
	return ledgerEntriesToDomain(rows), nil
}

func (r *LedgerRepository) List(ctx context.Context) ([]ledger.Entry, error) {
	query, args, err := qb.Select("*").
		From("ledger_entries").
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ledger entries query: %w", err)
	}

	var rows []ledgerEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list ledger entries", err)
	}
	return ledgerEntriesToDomain(rows), nil
}

func (r *LedgerRepository) ListPendingByTournament(ctx context.Context, tournament string) ([]ledger.Entry, error) {
	query, args, err := qb.Select("*").
		From("ledger_entries").
		Where(
			qb.Expr("LOWER(tournament) = LOWER(?)", tournament),
			qb.IsNull("finish"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending ledger entries query: %w", err)
	}

	var rows []ledgerEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list pending ledger entries", err)
	}
	return ledgerEntriesToDomain(rows), nil
}

func (r *LedgerRepository) ApplyResults(ctx context.Context, updates []ledger.ResultUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return classifyError("begin tx apply results", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, update := range updates {
		query, args, err := qb.Update("ledger_entries").
			Set("finish", update.Finish).
			Set("earnings_cents", update.Earnings).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("user_id", update.UserID),
				qb.Eq("tournament", update.Tournament),
				qb.IsNull("finish"),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build apply result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return classifyError("apply result", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classifyError("commit apply results tx", err)
	}
	return nil
}

func (r *LedgerRepository) ClearSeason(ctx context.Context) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return classifyError("begin tx clear season", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"ledger_entries", "selections", "tournament_order"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return classifyError("clear "+table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return classifyError("commit clear season tx", err)
	}
	return nil
}

func ledgerEntriesToDomain(rows []ledgerEntryTableModel) []ledger.Entry {
	out := make([]ledger.Entry, 0, len(rows))
	for _, row := range rows {
		entry := ledger.Entry{
			UserID:     row.UserID,
			Tournament: row.Tournament,
			Golfer:     row.Golfer,
		}
		if row.Finish.Valid {
			finish := row.Finish.String
			entry.Finish = &finish
		}
		if row.Earnings.Valid {
			earnings := row.Earnings.Int64
			entry.Earnings = &earnings
		}
		out = append(out, entry)
	}
	return out
}
