package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/querybuilder"
)

type teamScoreTableModel struct {
	TeamID       string    `db:"team_id"`
	WeekID       int       `db:"week_id"`
	Points       float64   `db:"points"`
	CalculatedAt time.Time `db:"calculated_at"`
}

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) DeleteByWeek(ctx context.Context, weekID int) error {
	query, args, err := querybuilder.
		DeleteFrom("team_scores").
		Where(querybuilder.Eq("week_id", weekID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build score delete: %w", err)
	}

	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete team scores: %w", err)
	}
	return nil
}

func (r *ScoringRepository) Insert(ctx context.Context, scores []scoring.TeamScore) error {
	if len(scores) == 0 {
		return nil
	}

	builder := querybuilder.
		InsertInto("team_scores").
		Columns("team_id", "week_id", "points", "calculated_at")
	for _, score := range scores {
		builder.Values(score.TeamID, score.WeekID, score.Points, score.CalculatedAt)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build score insert: %w", err)
	}
	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team scores: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListByWeek(ctx context.Context, weekID int) ([]scoring.TeamScore, error) {
	const query = `
SELECT team_id, week_id, points, calculated_at
FROM team_scores
WHERE week_id = $1
ORDER BY team_id`

	var rows []teamScoreTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query, weekID); err != nil {
		return nil, fmt.Errorf("list team scores: %w", err)
	}

	out := make([]scoring.TeamScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.TeamScore{
			TeamID:       row.TeamID,
			WeekID:       row.WeekID,
			Points:       row.Points,
			CalculatedAt: row.CalculatedAt.UTC(),
		})
	}
	return out, nil
}
