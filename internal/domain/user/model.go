package user

import "time"

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
}

// User stores one registered player of the pool.
type User struct {
	ID          string
	Email       string
	DisplayName string
	Avatar      string
	IsAdmin     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
