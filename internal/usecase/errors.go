package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrLocked                = errors.New("selection is locked")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrRetryable             = errors.New("transient storage failure")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
