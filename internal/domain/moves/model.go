package moves

import (
	"context"
	"time"
)

// BaseWeeklyMoves is every team's default move budget per ISO week. Admin
// grants raise the budget for one specific week; they never touch usage.
const BaseWeeklyMoves = 3

// AdminGrant is an append-only administrative addition to a team's weekly
// move budget.
type AdminGrant struct {
	ID        string
	TeamID    string
	WeekID    int
	Moves     int
	Reason    string
	GrantedBy string
	CreatedAt time.Time
}

// Summary describes a team's move budget state for one week.
type Summary struct {
	TeamID    string
	WeekID    int
	Base      int
	Granted   int
	Total     int
	Used      int
	Remaining int
	Grants    []AdminGrant
}

type Repository interface {
	ListByTeamAndWeek(ctx context.Context, teamID string, weekID int) ([]AdminGrant, error)
	Insert(ctx context.Context, grant AdminGrant) error
}
