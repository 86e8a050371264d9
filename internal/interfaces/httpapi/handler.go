package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/bonus"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/moves"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hoops/internal/usecase"
)

type Handler struct {
	scoringService *usecase.ScoringService
	bonusService   *usecase.BonusService
	rosterService  *usecase.RosterService
	adminService   *usecase.AdminService
	logger         *logging.Logger
	validator      *validator.Validate
}

func NewHandler(
	scoringService *usecase.ScoringService,
	bonusService *usecase.BonusService,
	rosterService *usecase.RosterService,
	adminService *usecase.AdminService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		scoringService: scoringService,
		bonusService:   bonusService,
		rosterService:  rosterService,
		adminService:   adminService,
		logger:         logger,
		validator:      validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetWeekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekScores")
	defer span.End()

	weekID, err := parseWeekID(r.PathValue("weekID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	scores, err := h.scoringService.GetWeekScores(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get week scores failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamScoreDTO, 0, len(scores))
	for _, s := range scores {
		items = append(items, teamScoreToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetWeekBonuses(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekBonuses")
	defer span.End()

	weekID, err := parseWeekID(r.PathValue("weekID"))
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	awards, err := h.bonusService.GetWeekBonuses(ctx, weekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get week bonuses failed", "week_id", weekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]bonusAwardDTO, 0, len(awards))
	for _, a := range awards {
		items = append(items, bonusAwardToDTO(a))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func parseWeekID(raw string) (int, error) {
	weekID, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: week id must be numeric YYYYWW: %v", usecase.ErrInvalidInput, err)
	}
	return weekID, nil
}

type teamScoreDTO struct {
	TeamID          string  `json:"teamId"`
	WeekID          int     `json:"weekId"`
	Points          float64 `json:"points"`
	CalculatedAtUTC string  `json:"calculatedAtUtc"`
}

type bonusAwardDTO struct {
	WeekID          int     `json:"weekId"`
	PlayerID        string  `json:"playerId"`
	Category        string  `json:"category"`
	Points          float64 `json:"points"`
	Instances       int     `json:"instances"`
	CalculatedAtUTC string  `json:"calculatedAtUtc"`
}

type rosterSlotDTO struct {
	ID        string `json:"id"`
	LeagueID  string `json:"leagueId"`
	TeamID    string `json:"teamId"`
	PlayerID  string `json:"playerId"`
	Position  string `json:"position"`
	IsStarter bool   `json:"isStarter"`
}

type moveGrantDTO struct {
	ID           string `json:"id"`
	TeamID       string `json:"teamId"`
	WeekID       int    `json:"weekId"`
	Moves        int    `json:"moves"`
	Reason       string `json:"reason"`
	GrantedBy    string `json:"grantedBy"`
	CreatedAtUTC string `json:"createdAtUtc"`
}

type moveSummaryDTO struct {
	TeamID    string         `json:"teamId"`
	WeekID    int            `json:"weekId"`
	Base      int            `json:"base"`
	Granted   int            `json:"granted"`
	Total     int            `json:"total"`
	Used      int            `json:"used"`
	Remaining int            `json:"remaining"`
	Grants    []moveGrantDTO `json:"grants"`
}

func teamScoreToDTO(v scoring.TeamScore) teamScoreDTO {
	return teamScoreDTO{
		TeamID:          v.TeamID,
		WeekID:          v.WeekID,
		Points:          v.Points,
		CalculatedAtUTC: v.CalculatedAt.UTC().Format(time.RFC3339),
	}
}

func bonusAwardToDTO(v bonus.Award) bonusAwardDTO {
	return bonusAwardDTO{
		WeekID:          v.WeekID,
		PlayerID:        v.PlayerID,
		Category:        string(v.Category),
		Points:          v.Points,
		Instances:       v.Instances,
		CalculatedAtUTC: v.CalculatedAt.UTC().Format(time.RFC3339),
	}
}

func rosterSlotToDTO(v roster.Slot) rosterSlotDTO {
	return rosterSlotDTO{
		ID:        v.ID,
		LeagueID:  v.LeagueID,
		TeamID:    v.TeamID,
		PlayerID:  v.PlayerID,
		Position:  v.Position,
		IsStarter: v.IsStarter,
	}
}

func moveSummaryToDTO(v moves.Summary) moveSummaryDTO {
	grants := make([]moveGrantDTO, 0, len(v.Grants))
	for _, g := range v.Grants {
		grants = append(grants, moveGrantDTO{
			ID:           g.ID,
			TeamID:       g.TeamID,
			WeekID:       g.WeekID,
			Moves:        g.Moves,
			Reason:       g.Reason,
			GrantedBy:    g.GrantedBy,
			CreatedAtUTC: g.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return moveSummaryDTO{
		TeamID:    v.TeamID,
		WeekID:    v.WeekID,
		Base:      v.Base,
		Granted:   v.Granted,
		Total:     v.Total,
		Used:      v.Used,
		Remaining: v.Remaining,
		Grants:    grants,
	}
}
