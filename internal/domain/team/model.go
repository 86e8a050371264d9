package team

import (
	"context"
	"time"
)

// Team owns a set of roster slots inside one league. MovesThisWeek counts
// consumed starter promotions and is zeroed by the weekly reset job.
type Team struct {
	ID            string
	LeagueID      string
	OwnerUserID   string
	Name          string
	MovesThisWeek int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Repository interface {
	Get(ctx context.Context, id string) (Team, bool, error)
	// GetForUpdate re-reads the team row with a row-level lock inside the
	// current transaction, so concurrent move-consuming operations cannot
	// both pass a stale budget check.
	GetForUpdate(ctx context.Context, id string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	UpdateMovesThisWeek(ctx context.Context, id string, moves int) error
	// ResetAllMoves zeroes every team's counter. Safe to run twice.
	ResetAllMoves(ctx context.Context) error
}
