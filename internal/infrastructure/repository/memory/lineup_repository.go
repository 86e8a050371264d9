package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/lineuphistory"
)

type LineupRepository struct {
	mu      sync.RWMutex
	lineups map[string]lineuphistory.WeeklyLineup
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{lineups: make(map[string]lineuphistory.WeeklyLineup)}
}

func lineupKey(teamID string, weekID int) string {
	return fmt.Sprintf("%s/%d", teamID, weekID)
}

func (r *LineupRepository) Get(_ context.Context, teamID string, weekID int) (lineuphistory.WeeklyLineup, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lineup, ok := r.lineups[lineupKey(teamID, weekID)]
	return lineup, ok, nil
}

func (r *LineupRepository) Insert(_ context.Context, lineup lineuphistory.WeeklyLineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lineups[lineupKey(lineup.TeamID, lineup.WeekID)] = lineup
	return nil
}

func (r *LineupRepository) Update(_ context.Context, lineup lineuphistory.WeeklyLineup) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lineups[lineupKey(lineup.TeamID, lineup.WeekID)] = lineup
	return nil
}
