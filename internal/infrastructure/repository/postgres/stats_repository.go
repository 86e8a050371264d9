package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/stats"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) ListByGameTimeRange(ctx context.Context, start, end time.Time) ([]stats.Record, error) {
	query, args, err := querybuilder.
		Select("id", "player_id", "game_id", "game_time",
			"points", "rebounds", "assists", "steals", "blocks", "turnovers",
			"fgm", "fga", "tpm", "tpa", "ftm", "fta",
			"minutes_played", "started", "did_not_play").
		From("game_stats").
		Where(
			querybuilder.Gte("game_time", start),
			querybuilder.Lt("game_time", end),
		).
		OrderBy("game_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build stats query: %w", err)
	}

	var rows []statsTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list game stats: %w", err)
	}

	out := make([]stats.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
