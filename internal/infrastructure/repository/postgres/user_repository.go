package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/user"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, id string) (user.User, bool, error) {
	const query = `
SELECT id, name, is_admin
FROM users
WHERE id = $1`

	var row struct {
		ID      string `db:"id"`
		Name    string `db:"name"`
		IsAdmin bool   `db:"is_admin"`
	}
	if err := runner(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	return user.User{ID: row.ID, Name: row.Name, IsAdmin: row.IsAdmin}, true, nil
}
