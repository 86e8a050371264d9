package user

import "context"

// Principal is the authenticated identity attached to a request by the
// account service.
type Principal struct {
	UserID  string
	IsAdmin bool
}

type User struct {
	ID      string
	Name    string
	IsAdmin bool
}

type Repository interface {
	Get(ctx context.Context, id string) (User, bool, error)
}
