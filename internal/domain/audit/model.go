package audit

import (
	"context"
	"time"
)

// Entry is one append-only transaction log row. Every mutating action —
// roster change, admin override, score recalculation — writes one inside the
// same transaction as the mutation, so log and state cannot diverge.
type Entry struct {
	ID        string
	ActorID   string
	Action    string
	TeamID    string
	PlayerID  string
	WeekID    int
	// Details is a JSON document with the structured before/after payload.
	Details   string
	CreatedAt time.Time
}

// Payload is the structured body serialized into Entry.Details.
type Payload struct {
	Before any    `json:"before,omitempty"`
	After  any    `json:"after,omitempty"`
	Note   string `json:"note,omitempty"`
}

// Action labels. Starter transitions log one row per changed slot.
const (
	ActionRosterAdd        = "ROSTER_ADD"
	ActionRosterDrop       = "ROSTER_DROP"
	ActionStarterPromote   = "START"
	ActionStarterBench     = "BENCH"
	ActionStarterCarryOver = "STARTER_CARRY_OVER"
	ActionMoveGrant        = "ADMIN_MOVE_GRANT"
	ActionAdminLineupSet   = "ADMIN_LINEUP_OVERRIDE"
	ActionHistoryEdit      = "ADMIN_HISTORY_EDIT"
	ActionScoreRecalculate = "ADMIN_SCORE_RECALCULATE"
)

type ListFilter struct {
	TeamID string
	Limit  int
	Offset int
}

type Repository interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}
