package lineuphistory

import (
	"context"
	"time"
)

// WeeklyLineup is a frozen snapshot of a team's starter/bench split for one
// week. Written once per (team, week) by the snapshot job; normal flow never
// overwrites it. Admin tools read it for carry-over and, exceptionally,
// patch it through the override path.
type WeeklyLineup struct {
	ID         string
	TeamID     string
	WeekID     int
	StarterIDs []string
	BenchIDs   []string
	SavedAt    time.Time
}

type Repository interface {
	Get(ctx context.Context, teamID string, weekID int) (WeeklyLineup, bool, error)
	Insert(ctx context.Context, lineup WeeklyLineup) error
	// Update replaces an existing snapshot. Reserved for the admin
	// historical-edit path.
	Update(ctx context.Context, lineup WeeklyLineup) error
}
