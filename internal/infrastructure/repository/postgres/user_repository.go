package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openfairway/one-and-done/internal/domain/user"
	qb "github.com/openfairway/one-and-done/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	query, args, err := qb.Select("*").
		From("users").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, classifyError("get user", err)
	}

	return userToDomain(row), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("*").
		From("users").
		OrderBy("display_name", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, classifyError("list users", err)
	}

	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userToDomain(row))
	}
	return out, nil
}

func (r *UserRepository) Upsert(ctx context.Context, item user.User) error {
	insertModel := userInsertModel{
		ID:          item.ID,
		Email:       item.Email,
		DisplayName: item.DisplayName,
		Avatar:      item.Avatar,
		IsAdmin:     item.IsAdmin,
	}
	query, args, err := qb.InsertModel("users", insertModel, `ON CONFLICT (id)
DO UPDATE SET
    email = EXCLUDED.email,
    display_name = EXCLUDED.display_name,
    avatar = EXCLUDED.avatar,
    is_admin = EXCLUDED.is_admin,
    updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("build upsert user query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return classifyError("upsert user", err)
	}
	return nil
}

func userToDomain(row userTableModel) user.User {
	return user.User{
		ID:          row.ID,
		Email:       row.Email,
		DisplayName: row.DisplayName,
		Avatar:      row.Avatar,
		IsAdmin:     row.IsAdmin,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
