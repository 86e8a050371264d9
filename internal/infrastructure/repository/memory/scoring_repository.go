package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/scoring"
)

type ScoringRepository struct {
	mu     sync.RWMutex
	byWeek map[int][]scoring.TeamScore
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{byWeek: make(map[int][]scoring.TeamScore)}
}

func (r *ScoringRepository) DeleteByWeek(_ context.Context, weekID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byWeek, weekID)
	return nil
}

func (r *ScoringRepository) Insert(_ context.Context, scores []scoring.TeamScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, score := range scores {
		r.byWeek[score.WeekID] = append(r.byWeek[score.WeekID], score)
	}
	return nil
}

func (r *ScoringRepository) ListByWeek(_ context.Context, weekID int) ([]scoring.TeamScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]scoring.TeamScore(nil), r.byWeek[weekID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out, nil
}
