package bonus

import (
	"context"
	"time"
)

type Category string

const (
	CategoryTopScorer          Category = "top_scorer"
	CategoryTopRebounder       Category = "top_rebounder"
	CategoryTopPlaymaker       Category = "top_playmaker"
	CategoryDefensiveBeast     Category = "defensive_beast"
	CategoryDoubleDoubleStreak Category = "double_double_streak"
	CategoryTripleDouble       Category = "triple_double"
	CategoryEfficiency         Category = "efficiency_award"
)

const (
	PointsTopScorer      = 5.0
	PointsTopRebounder   = 4.0
	PointsTopPlaymaker   = 4.0
	PointsDefensiveBeast = 4.0
	PointsDoubleDouble   = 5.0
	// PointsPerTripleDouble is multiplied by the number of triple-double
	// games the player posted in the week.
	PointsPerTripleDouble = 10.0
	PointsEfficiency      = 4.0

	// DoubleDoubleMinGames is the qualifying streak length: any player with
	// this many double-double games in the week is awarded, not just the max.
	DoubleDoubleMinGames = 2
	// EfficiencyMinGames is the minimum games played to qualify for the
	// field-goal percentage award.
	EfficiencyMinGames = 3
)

// Award is one bonus grant for one player in one week. Instances is 1 except
// for triple_double, where a single row stacks every qualifying game and
// Points = PointsPerTripleDouble * Instances.
type Award struct {
	WeekID       int
	PlayerID     string
	Category     Category
	Points       float64
	Instances    int
	CalculatedAt time.Time
}

type Repository interface {
	DeleteByWeek(ctx context.Context, weekID int) error
	Insert(ctx context.Context, awards []Award) error
	ListByWeek(ctx context.Context, weekID int) ([]Award, error)
}
