package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/querybuilder"
)

type rosterTableModel struct {
	ID        string    `db:"id"`
	LeagueID  string    `db:"league_id"`
	TeamID    string    `db:"team_id"`
	PlayerID  string    `db:"player_id"`
	Position  string    `db:"position"`
	IsStarter bool      `db:"is_starter"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (m rosterTableModel) toDomain() roster.Slot {
	return roster.Slot{
		ID:        m.ID,
		LeagueID:  m.LeagueID,
		TeamID:    m.TeamID,
		PlayerID:  m.PlayerID,
		Position:  m.Position,
		IsStarter: m.IsStarter,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}
}

type rosterInsertModel struct {
	ID        string `db:"id"`
	LeagueID  string `db:"league_id"`
	TeamID    string `db:"team_id"`
	PlayerID  string `db:"player_id"`
	Position  string `db:"position"`
	IsStarter bool   `db:"is_starter"`
}

const rosterColumns = "id, league_id, team_id, player_id, position, is_starter, created_at, updated_at"

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Slot, error) {
	query := "SELECT " + rosterColumns + " FROM roster_slots WHERE team_id = $1 ORDER BY player_id"

	var rows []rosterTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("list roster slots: %w", err)
	}
	return rosterRowsToDomain(rows), nil
}

func (r *RosterRepository) ListAll(ctx context.Context) ([]roster.Slot, error) {
	query := "SELECT " + rosterColumns + " FROM roster_slots ORDER BY id"

	var rows []rosterTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list all roster slots: %w", err)
	}
	return rosterRowsToDomain(rows), nil
}

func (r *RosterRepository) GetByLeagueAndPlayer(ctx context.Context, leagueID, playerID string) (roster.Slot, bool, error) {
	query := "SELECT " + rosterColumns + " FROM roster_slots WHERE league_id = $1 AND player_id = $2"

	var row rosterTableModel
	if err := runner(ctx, r.db).GetContext(ctx, &row, query, leagueID, playerID); err != nil {
		if isNotFound(err) {
			return roster.Slot{}, false, nil
		}
		return roster.Slot{}, false, fmt.Errorf("get roster slot: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) Insert(ctx context.Context, slot roster.Slot) error {
	query, args, err := querybuilder.InsertModel("roster_slots", rosterInsertModel{
		ID:        slot.ID,
		LeagueID:  slot.LeagueID,
		TeamID:    slot.TeamID,
		PlayerID:  slot.PlayerID,
		Position:  slot.Position,
		IsStarter: slot.IsStarter,
	}, "")
	if err != nil {
		return fmt.Errorf("build roster insert: %w", err)
	}

	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert roster slot: %w", err)
	}
	return nil
}

func (r *RosterRepository) SetStarter(ctx context.Context, slotID string, isStarter bool) error {
	query, args, err := querybuilder.
		Update("roster_slots").
		Set("is_starter", isStarter).
		SetExpr("updated_at", "NOW()").
		Where(querybuilder.Eq("id", slotID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build starter update: %w", err)
	}

	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set starter flag: %w", err)
	}
	return nil
}

func (r *RosterRepository) Delete(ctx context.Context, slotID string) error {
	query, args, err := querybuilder.
		DeleteFrom("roster_slots").
		Where(querybuilder.Eq("id", slotID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build roster delete: %w", err)
	}

	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete roster slot: %w", err)
	}
	return nil
}

func rosterRowsToDomain(rows []rosterTableModel) []roster.Slot {
	out := make([]roster.Slot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}
