package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	index map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	index := make(map[string]player.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return &PlayerRepository{index: index}
}

func (r *PlayerRepository) Get(_ context.Context, id string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[id]
	return p, ok, nil
}

func (r *PlayerRepository) ListByIDs(_ context.Context, ids []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(ids))
	for _, id := range ids {
		p, ok := r.index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
