package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/player"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/querybuilder"
)

type playerTableModel struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:        m.ID,
		Name:      m.Name,
		Position:  m.Position,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) Get(ctx context.Context, id string) (player.Player, bool, error) {
	const query = `
SELECT id, name, position, created_at
FROM players
WHERE id = $1`

	var row playerTableModel
	if err := runner(ctx, r.db).GetContext(ctx, &row, query, id); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *PlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]player.Player, error) {
	if len(ids) == 0 {
		return []player.Player{}, nil
	}

	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}
	query, args, err := querybuilder.
		Select("id", "name", "position", "created_at").
		From("players").
		Where(querybuilder.In("id", values)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build players query: %w", err)
	}

	var rows []playerTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
