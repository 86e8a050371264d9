package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	index map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	index := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		index[t.ID] = t
	}
	return &TeamRepository{index: index}
}

func (r *TeamRepository) Get(_ context.Context, id string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.index[id]
	return t, ok, nil
}

// GetForUpdate is identical to Get here: the memory TxManager already
// serializes whole units of work, so no extra lock is needed.
func (r *TeamRepository) GetForUpdate(ctx context.Context, id string) (team.Team, bool, error) {
	return r.Get(ctx, id)
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.index))
	for _, t := range r.index {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *TeamRepository) UpdateMovesThisWeek(_ context.Context, id string, moves int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.index[id]
	if !ok {
		return nil
	}
	t.MovesThisWeek = moves
	r.index[id] = t
	return nil
}

func (r *TeamRepository) ResetAllMoves(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, t := range r.index {
		t.MovesThisWeek = 0
		r.index[id] = t
	}
	return nil
}
