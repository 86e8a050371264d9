package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/bonus"
)

type BonusRepository struct {
	mu     sync.RWMutex
	byWeek map[int][]bonus.Award
}

func NewBonusRepository() *BonusRepository {
	return &BonusRepository{byWeek: make(map[int][]bonus.Award)}
}

func (r *BonusRepository) DeleteByWeek(_ context.Context, weekID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byWeek, weekID)
	return nil
}

func (r *BonusRepository) Insert(_ context.Context, awards []bonus.Award) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, award := range awards {
		r.byWeek[award.WeekID] = append(r.byWeek[award.WeekID], award)
	}
	return nil
}

func (r *BonusRepository) ListByWeek(_ context.Context, weekID int) ([]bonus.Award, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]bonus.Award(nil), r.byWeek[weekID]...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out, nil
}
