package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/lineuphistory"
)

type lineupTableModel struct {
	ID         string         `db:"id"`
	TeamID     string         `db:"team_id"`
	WeekID     int            `db:"week_id"`
	StarterIDs pq.StringArray `db:"starter_ids"`
	BenchIDs   pq.StringArray `db:"bench_ids"`
	SavedAt    time.Time      `db:"saved_at"`
}

func (m lineupTableModel) toDomain() lineuphistory.WeeklyLineup {
	return lineuphistory.WeeklyLineup{
		ID:         m.ID,
		TeamID:     m.TeamID,
		WeekID:     m.WeekID,
		StarterIDs: []string(m.StarterIDs),
		BenchIDs:   []string(m.BenchIDs),
		SavedAt:    m.SavedAt.UTC(),
	}
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) Get(ctx context.Context, teamID string, weekID int) (lineuphistory.WeeklyLineup, bool, error) {
	const query = `
SELECT id, team_id, week_id, starter_ids, bench_ids, saved_at
FROM lineup_history
WHERE team_id = $1 AND week_id = $2`

	var row lineupTableModel
	if err := runner(ctx, r.db).GetContext(ctx, &row, query, teamID, weekID); err != nil {
		if isNotFound(err) {
			return lineuphistory.WeeklyLineup{}, false, nil
		}
		return lineuphistory.WeeklyLineup{}, false, fmt.Errorf("get lineup snapshot: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *LineupRepository) Insert(ctx context.Context, lineup lineuphistory.WeeklyLineup) error {
	const query = `
INSERT INTO lineup_history (id, team_id, week_id, starter_ids, bench_ids, saved_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := runner(ctx, r.db).ExecContext(ctx, query,
		lineup.ID, lineup.TeamID, lineup.WeekID,
		pq.StringArray(lineup.StarterIDs), pq.StringArray(lineup.BenchIDs), lineup.SavedAt)
	if err != nil {
		return fmt.Errorf("insert lineup snapshot: %w", err)
	}
	return nil
}

func (r *LineupRepository) Update(ctx context.Context, lineup lineuphistory.WeeklyLineup) error {
	const query = `
UPDATE lineup_history
SET starter_ids = $1, bench_ids = $2, saved_at = $3
WHERE team_id = $4 AND week_id = $5`

	_, err := runner(ctx, r.db).ExecContext(ctx, query,
		pq.StringArray(lineup.StarterIDs), pq.StringArray(lineup.BenchIDs), lineup.SavedAt,
		lineup.TeamID, lineup.WeekID)
	if err != nil {
		return fmt.Errorf("update lineup snapshot: %w", err)
	}
	return nil
}
