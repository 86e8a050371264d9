package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/audit"
	"github.com/riskibarqy/fantasy-hoops/internal/usecase"
)

func (h *Handler) AdminSetStarters(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminSetStarters")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req adminSetStartersRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err := h.adminService.SetStartersOverride(ctx, principal.UserID, teamID, req.WeekID, req.PlayerIDs, req.BypassMoveLimit)
	if err != nil {
		h.logger.WarnContext(ctx, "admin set starters failed", "actor_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "applied"})
}

func (h *Handler) AdminGrantMoves(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminGrantMoves")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))

	var req grantMovesRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	grant, err := h.adminService.GrantMoves(ctx, principal.UserID, teamID, req.WeekID, req.Moves, req.Reason)
	if err != nil {
		h.logger.WarnContext(ctx, "admin grant moves failed", "actor_id", principal.UserID, "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, moveGrantDTO{
		ID:           grant.ID,
		TeamID:       grant.TeamID,
		WeekID:       grant.WeekID,
		Moves:        grant.Moves,
		Reason:       grant.Reason,
		GrantedBy:    grant.GrantedBy,
		CreatedAtUTC: grant.CreatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) AdminEditLineupHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminEditLineupHistory")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	weekID, err := parseWeekID(r.PathValue("weekID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req editLineupHistoryRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.adminService.EditHistoricalLineup(ctx, principal.UserID, teamID, weekID, req.StarterIDs)
	if err != nil {
		h.logger.WarnContext(ctx, "admin edit lineup history failed", "actor_id", principal.UserID, "team_id", teamID, "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) AdminRecalculate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminRecalculate")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req recalculateRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if req.FromWeekID != 0 || req.ToWeekID != 0 {
		if req.WeekID != 0 {
			writeError(ctx, w, fmt.Errorf("%w: specify week_id or a from/to range, not both", usecase.ErrInvalidInput))
			return
		}
		err := h.adminService.RecalculateWeekRange(ctx, principal.UserID, req.FromWeekID, req.ToWeekID)
		if err != nil {
			h.logger.WarnContext(ctx, "admin recalculate range failed", "actor_id", principal.UserID, "from_week_id", req.FromWeekID, "to_week_id", req.ToWeekID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, map[string]any{
			"status":       "recalculated",
			"from_week_id": req.FromWeekID,
			"to_week_id":   req.ToWeekID,
		})
		return
	}

	scores, err := h.adminService.RecalculateWeekScores(ctx, principal.UserID, req.WeekID)
	if err != nil {
		h.logger.WarnContext(ctx, "admin recalculate failed", "actor_id", principal.UserID, "week_id", req.WeekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamScoreDTO, 0, len(scores))
	for _, s := range scores {
		items = append(items, teamScoreToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AdminGetAuditLog(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AdminGetAuditLog")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	filter := audit.ListFilter{
		TeamID: strings.TrimSpace(r.URL.Query().Get("team_id")),
	}

	var err error
	if filter.Limit, err = parseOptionalInt(r.URL.Query().Get("limit")); err != nil {
		writeError(ctx, w, err)
		return
	}
	if filter.Offset, err = parseOptionalInt(r.URL.Query().Get("offset")); err != nil {
		writeError(ctx, w, err)
		return
	}

	entries, err := h.adminService.GetAuditLog(ctx, principal.UserID, filter)
	if err != nil {
		h.logger.WarnContext(ctx, "admin get audit log failed", "actor_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]auditEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, auditEntryToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func parseOptionalInt(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter must be numeric: %v", usecase.ErrInvalidInput, err)
	}
	return v, nil
}

type adminSetStartersRequest struct {
	PlayerIDs       []string `json:"player_ids" validate:"required,min=1,dive,required"`
	WeekID          int      `json:"week_id" validate:"omitempty,gte=0"`
	BypassMoveLimit bool     `json:"bypass_move_limit"`
}

type grantMovesRequest struct {
	WeekID int    `json:"week_id" validate:"omitempty,gte=0"`
	Moves  int    `json:"moves" validate:"required,gt=0"`
	Reason string `json:"reason" validate:"required,max=500"`
}

type editLineupHistoryRequest struct {
	StarterIDs []string `json:"starter_ids" validate:"required,min=1,dive,required"`
}

type recalculateRequest struct {
	WeekID     int `json:"week_id"`
	FromWeekID int `json:"from_week_id"`
	ToWeekID   int `json:"to_week_id"`
}

type auditEntryDTO struct {
	ID           string          `json:"id"`
	ActorID      string          `json:"actorId"`
	Action       string          `json:"action"`
	TeamID       string          `json:"teamId,omitempty"`
	PlayerID     string          `json:"playerId,omitempty"`
	WeekID       int             `json:"weekId,omitempty"`
	Details      json.RawMessage `json:"details"`
	CreatedAtUTC string          `json:"createdAtUtc"`
}

func auditEntryToDTO(v audit.Entry) auditEntryDTO {
	details := v.Details
	if strings.TrimSpace(details) == "" {
		details = "{}"
	}

	return auditEntryDTO{
		ID:           v.ID,
		ActorID:      v.ActorID,
		Action:       v.Action,
		TeamID:       v.TeamID,
		PlayerID:     v.PlayerID,
		WeekID:       v.WeekID,
		Details:      json.RawMessage(details),
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
	}
}
