package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openfairway/one-and-done/internal/domain/selection"
	qb "github.com/openfairway/one-and-done/internal/platform/querybuilder"
)

type SelectionRepository struct {
	db *sqlx.DB
}

func NewSelectionRepository(db *sqlx.DB) *SelectionRepository {
	return &SelectionRepository{db: db}
}

func (r *SelectionRepository) GetByUserAndTournament(ctx context.Context, userID, tournament string) (selection.Selection, bool, error) {
	query, args, err := qb.Select("*").
		From("selections").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("tournament", tournament),
		).
		ToSQL()
	if err != nil {
		return selection.Selection{}, false, fmt.Errorf("build get selection query: %w", err)
	}

	var row selectionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return selection.Selection{}, false, nil
		}
		return selection.Selection{}, false, classifyError("get selection", err)
	}

	return selectionToDomain(row), true, nil
}

func (r *SelectionRepository) ListByUser(ctx context.Context, userID string) ([]selection.Selection, error) {
	return r.listByUser(ctx, userID, false)
}

func (r *SelectionRepository) ListLockedByUser(ctx context.Context, userID string) ([]selection.Selection, error) {
	return r.listByUser(ctx, userID, true)
}

func (r *SelectionRepository) listByUser(ctx context.Context, userID string, lockedOnly bool) ([]selection.Selection, error) {
	conditions := []qb.Condition{qb.Eq("s.user_id", userID)}
	if lockedOnly {
		conditions = append(conditions, qb.Expr("s.is_locked = TRUE"))
	}

	query, args, err := qb.Select("s.*").
		From("selections s JOIN tournament_order o ON o.tournament = s.tournament").
		Where(conditions...).
		OrderBy("o.seq").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list selections query: %w", err)
	}

	var rows []selectionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list selections", err)
	}

	out := make([]selection.Selection, 0, len(rows))
	for _, row := range rows {
		out = append(out, selectionToDomain(row))
	}
	return out, nil
}

func (r *SelectionRepository) Upsert(ctx context.Context, item selection.Selection) error {
	insertModel := selectionInsertModel{
		UserID:     item.UserID,
		Tournament: item.Tournament,
		Golfer:     item.Golfer,
		PickedAt:   timeToUnix(item.PickedAt),
	}
	query, args, err := qb.InsertModel("selections", insertModel, `ON CONFLICT (user_id, tournament)
DO UPDATE SET
    golfer = EXCLUDED.golfer,
    picked_at = EXCLUDED.picked_at,
    updated_at = NOW()
WHERE selections.is_locked = FALSE`)
	if err != nil {
		return fmt.Errorf("build upsert selection query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyError("upsert selection", err)
	}
	return nil
}

func (r *SelectionRepository) EnsureTournamentOrder(ctx context.Context, tournament string) error {
	insertModel := tournamentOrderInsertModel{Tournament: tournament}
	query, args, err := qb.InsertModel("tournament_order", insertModel, "ON CONFLICT (tournament) DO NOTHING")
	if err != nil {
		return fmt.Errorf("build ensure tournament order query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyError("ensure tournament order", err)
	}
	return nil
}

func (r *SelectionRepository) Lock(ctx context.Context, userID, tournament string, lockedAt time.Time) (selection.Selection, bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return selection.Selection{}, false, classifyError("begin tx lock selection", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	updateQuery, updateArgs, err := qb.Update("selections").
		Set("is_locked", true).
		Set("locked_at", timeToUnix(lockedAt)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("tournament", tournament),
			qb.Expr("is_locked = FALSE"),
		).
		ToSQL()
	if err != nil {
		return selection.Selection{}, false, fmt.Errorf("build lock selection query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, updateQuery, updateArgs...); err != nil {
		return selection.Selection{}, false, classifyError("lock selection", err)
	}

	getQuery, getArgs, err := qb.Select("*").
		From("selections").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("tournament", tournament),
		).
		ToSQL()
	if err != nil {
		return selection.Selection{}, false, fmt.Errorf("build get locked selection query: %w", err)
	}
	var row selectionTableModel
	if err := tx.GetContext(ctx, &row, getQuery, getArgs...); err != nil {
		if isNotFound(err) {
			return selection.Selection{}, false, fmt.Errorf("selection vanished during lock user=%s tournament=%s", userID, tournament)
		}
		return selection.Selection{}, false, classifyError("get locked selection", err)
	}

	created, err := insertLedgerEntryIfAbsent(ctx, tx, row)
	if err != nil {
		return selection.Selection{}, false, err
	}

	if err := tx.Commit(); err != nil {
		return selection.Selection{}, false, classifyError("commit lock selection tx", err)
	}
	return selectionToDomain(row), created, nil
}

func (r *SelectionRepository) LockAllByTournament(ctx context.Context, tournament string, lockedAt time.Time) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, classifyError("begin tx lock tournament", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Picks whose golfer is already locked at another tournament are left
	// drafted so the user can replace them.
	updateQuery, updateArgs, err := qb.Update("selections").
		Set("is_locked", true).
		Set("locked_at", timeToUnix(lockedAt)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("tournament", tournament),
			qb.Expr("is_locked = FALSE"),
			qb.Expr(`NOT EXISTS (
				SELECT 1 FROM selections other
				WHERE other.user_id = selections.user_id
				  AND other.is_locked = TRUE
				  AND LOWER(other.tournament) <> LOWER(selections.tournament)
				  AND LOWER(TRIM(other.golfer)) = LOWER(TRIM(selections.golfer))
			)`),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build lock tournament query: %w", err)
	}
	result, err := tx.ExecContext(ctx, updateQuery, updateArgs...)
	if err != nil {
		return 0, classifyError("lock tournament selections", err)
	}
	lockedNow, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count locked selections: %w", err)
	}

	listQuery, listArgs, err := qb.Select("*").
		From("selections").
		Where(
			qb.Eq("tournament", tournament),
			qb.Expr("is_locked = TRUE"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build list locked selections query: %w", err)
	}
	var rows []selectionTableModel
	if err := tx.SelectContext(ctx, &rows, listQuery, listArgs...); err != nil {
		return 0, classifyError("list locked selections", err)
	}
	for _, row := range rows {
		if _, err := insertLedgerEntryIfAbsent(ctx, tx, row); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, classifyError("commit lock tournament tx", err)
	}
	return int(lockedNow), nil
}

func insertLedgerEntryIfAbsent(ctx context.Context, tx *sqlx.Tx, row selectionTableModel) (bool, error) {
	insertModel := ledgerEntryInsertModel{
		UserID:     row.UserID,
		Tournament: row.Tournament,
		Golfer:     row.Golfer,
	}
	query, args, err := qb.InsertModel("ledger_entries", insertModel, "ON CONFLICT (user_id, tournament) DO NOTHING")
	if err != nil {
		return false, fmt.Errorf("build insert ledger entry query: %w", err)
	}
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return false, classifyError("insert ledger entry", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("count inserted ledger entries: %w", err)
	}
	return affected > 0, nil
}

func selectionToDomain(row selectionTableModel) selection.Selection {
	return selection.Selection{
		UserID:     row.UserID,
		Tournament: row.Tournament,
		Golfer:     row.Golfer,
		PickedAt:   unixToTime(row.PickedAt),
		IsLocked:   row.IsLocked,
		LockedAt:   nullUnixToTimePtr(row.LockedAt),
	}
}
