package user

import "context"

// Repository exposes user persistence operations.
type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	Upsert(ctx context.Context, item User) error
}
