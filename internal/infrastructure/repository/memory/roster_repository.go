package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
)

type RosterRepository struct {
	mu    sync.RWMutex
	slots map[string]roster.Slot
}

func NewRosterRepository(slots []roster.Slot) *RosterRepository {
	index := make(map[string]roster.Slot, len(slots))
	for _, slot := range slots {
		index[slot.ID] = slot
	}
	return &RosterRepository{slots: index}
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID string) ([]roster.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Slot, 0)
	for _, slot := range r.slots {
		if slot.TeamID == teamID {
			out = append(out, slot)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

func (r *RosterRepository) ListAll(_ context.Context) ([]roster.Slot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Slot, 0, len(r.slots))
	for _, slot := range r.slots {
		out = append(out, slot)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *RosterRepository) GetByLeagueAndPlayer(_ context.Context, leagueID, playerID string) (roster.Slot, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, slot := range r.slots {
		if slot.LeagueID == leagueID && slot.PlayerID == playerID {
			return slot, true, nil
		}
	}
	return roster.Slot{}, false, nil
}

func (r *RosterRepository) Insert(_ context.Context, slot roster.Slot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.slots[slot.ID] = slot
	return nil
}

func (r *RosterRepository) SetStarter(_ context.Context, slotID string, isStarter bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	slot, ok := r.slots[slotID]
	if !ok {
		return nil
	}
	slot.IsStarter = isStarter
	r.slots[slotID] = slot
	return nil
}

func (r *RosterRepository) Delete(_ context.Context, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.slots, slotID)
	return nil
}
