package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/audit"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/querybuilder"
)

type auditTableModel struct {
	ID        string    `db:"id"`
	ActorID   string    `db:"actor_id"`
	Action    string    `db:"action"`
	TeamID    string    `db:"team_id"`
	PlayerID  string    `db:"player_id"`
	WeekID    int       `db:"week_id"`
	Details   string    `db:"details"`
	CreatedAt time.Time `db:"created_at"`
}

type auditInsertModel struct {
	ID       string `db:"id"`
	ActorID  string `db:"actor_id"`
	Action   string `db:"action"`
	TeamID   string `db:"team_id"`
	PlayerID string `db:"player_id"`
	WeekID   int    `db:"week_id"`
	Details  string `db:"details"`
}

type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Append(ctx context.Context, entry audit.Entry) error {
	query, args, err := querybuilder.InsertModel("audit_log", auditInsertModel{
		ID:       entry.ID,
		ActorID:  entry.ActorID,
		Action:   entry.Action,
		TeamID:   entry.TeamID,
		PlayerID: entry.PlayerID,
		WeekID:   entry.WeekID,
		Details:  entry.Details,
	}, "")
	if err != nil {
		return fmt.Errorf("build audit insert: %w", err)
	}

	if _, err := runner(ctx, r.db).ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter audit.ListFilter) ([]audit.Entry, error) {
	builder := querybuilder.
		Select("id", "actor_id", "action", "team_id", "player_id", "week_id", "details", "created_at").
		From("audit_log").
		OrderBy("created_at DESC", "id DESC")
	if filter.TeamID != "" {
		builder.Where(querybuilder.Eq("team_id", filter.TeamID))
	}
	if filter.Limit > 0 {
		builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	var rows []auditTableModel
	if err := runner(ctx, r.db).SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	out := make([]audit.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, audit.Entry{
			ID:        row.ID,
			ActorID:   row.ActorID,
			Action:    row.Action,
			TeamID:    row.TeamID,
			PlayerID:  row.PlayerID,
			WeekID:    row.WeekID,
			Details:   row.Details,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return out, nil
}
