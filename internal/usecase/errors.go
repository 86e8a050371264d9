package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrBudgetExceeded        = errors.New("weekly move budget exceeded")
	ErrPermissionDenied      = errors.New("admin privilege required")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
