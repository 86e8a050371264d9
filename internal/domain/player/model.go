package player

import (
	"context"
	"strings"
	"time"
)

// Player is a real-world athlete tracked by the stats feed. Position is the
// provider's raw string ("PG", "SG", "SF", "PF", "C", "G-F", ...); legality
// checks match on the letters it contains rather than an enum.
type Player struct {
	ID        string
	Name      string
	Position  string
	CreatedAt time.Time
}

// IsGuard reports whether the position string names a guard spot.
func (p Player) IsGuard() bool {
	return strings.Contains(strings.ToUpper(p.Position), "G")
}

// IsFrontcourt reports whether the position string names a forward or center.
func (p Player) IsFrontcourt() bool {
	upper := strings.ToUpper(p.Position)
	return strings.Contains(upper, "F") || strings.Contains(upper, "C")
}

type Repository interface {
	Get(ctx context.Context, id string) (Player, bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]Player, error)
}
