package stats

import (
	"context"
	"time"
)

// Record is one player's performance in one game, as ingested from the stats
// provider. Records are facts: corrections arrive by re-ingestion, never by
// in-place edits from this service.
type Record struct {
	PlayerID               string
	GameID                 string
	GameTime               time.Time
	Points                 int
	Rebounds               int
	Assists                int
	Steals                 int
	Blocks                 int
	Turnovers              int
	FieldGoalsMade         int
	FieldGoalsAttempted    int
	ThreePointersMade      int
	ThreePointersAttempted int
	FreeThrowsMade         int
	FreeThrowsAttempted    int
	MinutesPlayed          int
	Started                bool
	DidNotPlay             bool
}

// Repository is the read-only view over ingested game stats.
type Repository interface {
	// ListByGameTimeRange returns records with start <= game_time < end.
	ListByGameTimeRange(ctx context.Context, start, end time.Time) ([]Record, error)
}
