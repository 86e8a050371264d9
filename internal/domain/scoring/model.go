package scoring

import (
	"context"
	"time"
)

// TeamScore is the aggregate fantasy points one team earned in one ISO week.
// At most one row exists per (team, week); the aggregation engine maintains
// that by deleting the week's rows before inserting fresh ones.
type TeamScore struct {
	TeamID       string
	WeekID       int
	Points       float64
	CalculatedAt time.Time
}

type Repository interface {
	DeleteByWeek(ctx context.Context, weekID int) error
	Insert(ctx context.Context, scores []TeamScore) error
	ListByWeek(ctx context.Context, weekID int) ([]TeamScore, error)
}
