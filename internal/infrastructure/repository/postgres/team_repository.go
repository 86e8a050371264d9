package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/team"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/querybuilder"
)

type teamTableModel struct {
	ID            string    `db:"id"`
	LeagueID      string    `db:"league_id"`
	OwnerUserID   string    `db:"owner_user_id"`
	Name          string    `db:"name"`
	MovesThisWeek int       `db:"moves_this_week"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:            m.ID,
		LeagueID:      m.LeagueID,
		OwnerUserID:   m.OwnerUserID,
		Name:          m.Name,
		MovesThisWeek: m.MovesThisWeek,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
	}
}

const teamColumns = "id, league_id, owner_user_id, name, moves_this_week, created_at, updated_at"

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Get(ctx context.Context, id string) (team.Team, bool, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate takes a row-level lock; it only makes sense inside WithinTx.
func (r *TeamRepository) GetForUpdate(ctx context.Context, id string) (team.Team, bool, error) {
	return r.get(ctx, id, true)
}

func (r *TeamRepository) get(ctx context.Context, id string, forUpdate bool) (team.Team, bool, error) {
	query := "SELECT " + teamColumns + " FROM teams WHERE id = $1"
	if forUpdate {
		query += " FOR UPDATE"
	}

	var row teamTableModel
	if err := runner(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query := "SELECT " + teamColumns + " FROM teams ORDER BY id"

	var rows []teamTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *TeamRepository) UpdateMovesThisWeek(ctx context.Context, id string, moves int) error {
	query, args, err := querybuilder.
		Update("teams").
		Set("moves_this_week", moves).
		SetExpr("updated_at", "NOW()").
		Where(querybuilder.Eq("id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build team update: %w", err)
	}

	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update team moves: %w", err)
	}
	return nil
}

func (r *TeamRepository) ResetAllMoves(ctx context.Context) error {
	const query = `
UPDATE teams
SET moves_this_week = 0, updated_at = NOW()
WHERE moves_this_week <> 0`

	if _, err := runner(ctx, r.db).ExecContext(ctx, query); err != nil {
		return fmt.Errorf("reset team moves: %w", err)
	}
	return nil
}
