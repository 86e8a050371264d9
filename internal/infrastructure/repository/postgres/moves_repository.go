package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/moves"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/querybuilder"
)

type moveGrantTableModel struct {
	ID        string    `db:"id"`
	TeamID    string    `db:"team_id"`
	WeekID    int       `db:"week_id"`
	Moves     int       `db:"moves"`
	Reason    string    `db:"reason"`
	GrantedBy string    `db:"granted_by"`
	CreatedAt time.Time `db:"created_at"`
}

type moveGrantInsertModel struct {
	ID        string `db:"id"`
	TeamID    string `db:"team_id"`
	WeekID    int    `db:"week_id"`
	Moves     int    `db:"moves"`
	Reason    string `db:"reason"`
	GrantedBy string `db:"granted_by"`
}

type MovesRepository struct {
	db *sqlx.DB
}

func NewMovesRepository(db *sqlx.DB) *MovesRepository {
	return &MovesRepository{db: db}
}

func (r *MovesRepository) ListByTeamAndWeek(ctx context.Context, teamID string, weekID int) ([]moves.AdminGrant, error) {
	const query = `
SELECT id, team_id, week_id, moves, reason, granted_by, created_at
FROM move_grants
WHERE team_id = $1 AND week_id = $2
ORDER BY created_at, id`

	var rows []moveGrantTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query, teamID, weekID); err != nil {
		return nil, fmt.Errorf("list move grants: %w", err)
	}

	out := make([]moves.AdminGrant, 0, len(rows))
	for _, row := range rows {
		out = append(out, moves.AdminGrant{
			ID:        row.ID,
			TeamID:    row.TeamID,
			WeekID:    row.WeekID,
			Moves:     row.Moves,
			Reason:    row.Reason,
			GrantedBy: row.GrantedBy,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (r *MovesRepository) Insert(ctx context.Context, grant moves.AdminGrant) error {
	query, args, err := querybuilder.InsertModel("move_grants", moveGrantInsertModel{
		ID:        grant.ID,
		TeamID:    grant.TeamID,
		WeekID:    grant.WeekID,
		Moves:     grant.Moves,
		Reason:    grant.Reason,
		GrantedBy: grant.GrantedBy,
	}, "")
	if err != nil {
		return fmt.Errorf("build grant insert: %w", err)
	}

	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert move grant: %w", err)
	}
	return nil
}
