package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	index map[string]user.User
}

func NewUserRepository(users []user.User) *UserRepository {
	index := make(map[string]user.User, len(users))
	for _, u := range users {
		index[u.ID] = u
	}
	return &UserRepository{index: index}
}

func (r *UserRepository) Get(_ context.Context, id string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.index[id]
	return u, ok, nil
}
