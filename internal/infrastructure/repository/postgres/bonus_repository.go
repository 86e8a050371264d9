package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/bonus"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/querybuilder"
)

type bonusTableModel struct {
	WeekID       int       `db:"week_id"`
	PlayerID     string    `db:"player_id"`
	Category     string    `db:"category"`
	Points       float64   `db:"points"`
	Instances    int       `db:"instances"`
	CalculatedAt time.Time `db:"calculated_at"`
}

type BonusRepository struct {
	db *sqlx.DB
}

func NewBonusRepository(db *sqlx.DB) *BonusRepository {
	return &BonusRepository{db: db}
}

func (r *BonusRepository) DeleteByWeek(ctx context.Context, weekID int) error {
	query, args, err := querybuilder.
		DeleteFrom("weekly_bonuses").
		Where(querybuilder.Eq("week_id", weekID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build bonus delete: %w", err)
	}

	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete weekly bonuses: %w", err)
	}
	return nil
}

func (r *BonusRepository) Insert(ctx context.Context, awards []bonus.Award) error {
	if len(awards) == 0 {
		return nil
	}

	builder := querybuilder.
		InsertInto("weekly_bonuses").
		Columns("week_id", "player_id", "category", "points", "instances", "calculated_at")
	for _, award := range awards {
		builder.Values(award.WeekID, award.PlayerID, string(award.Category), award.Points, award.Instances, award.CalculatedAt)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build bonus insert: %w", err)
	}
	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert weekly bonuses: %w", err)
	}
	return nil
}

func (r *BonusRepository) ListByWeek(ctx context.Context, weekID int) ([]bonus.Award, error) {
	const query = `
SELECT week_id, player_id, category, points, instances, calculated_at
FROM weekly_bonuses
WHERE week_id = $1
ORDER BY category, player_id`

	var rows []bonusTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query, weekID); err != nil {
		return nil, fmt.Errorf("list weekly bonuses: %w", err)
	}

	out := make([]bonus.Award, 0, len(rows))
	for _, row := range rows {
		out = append(out, bonus.Award{
			WeekID:       row.WeekID,
			PlayerID:     row.PlayerID,
			Category:     bonus.Category(row.Category),
			Points:       row.Points,
			Instances:    row.Instances,
			CalculatedAt: row.CalculatedAt.UTC(),
		})
	}
	return out, nil
}
