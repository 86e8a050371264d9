package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/moves"
)

type MovesRepository struct {
	mu     sync.RWMutex
	grants []moves.AdminGrant
}

func NewMovesRepository() *MovesRepository {
	return &MovesRepository{}
}

func (r *MovesRepository) ListByTeamAndWeek(_ context.Context, teamID string, weekID int) ([]moves.AdminGrant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]moves.AdminGrant, 0)
	for _, grant := range r.grants {
		if grant.TeamID == teamID && grant.WeekID == weekID {
			out = append(out, grant)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *MovesRepository) Insert(_ context.Context, grant moves.AdminGrant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.grants = append(r.grants, grant)
	return nil
}
