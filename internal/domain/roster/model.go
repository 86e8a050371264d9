package roster

import (
	"context"
	"time"
)

// Slot is a (team, player) membership. At most one slot exists per player per
// league; the starter flag marks the player as part of the team's active
// five for the current week.
type Slot struct {
	ID        string
	LeagueID  string
	TeamID    string
	PlayerID  string
	Position  string
	IsStarter bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Slot, error)
	ListAll(ctx context.Context) ([]Slot, error)
	GetByLeagueAndPlayer(ctx context.Context, leagueID, playerID string) (Slot, bool, error)
	Insert(ctx context.Context, slot Slot) error
	SetStarter(ctx context.Context, slotID string, isStarter bool) error
	Delete(ctx context.Context, slotID string) error
}
