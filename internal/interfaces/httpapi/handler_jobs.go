package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/week"
	"github.com/riskibarqy/fantasy-hoops/internal/usecase"
)

func (h *Handler) RunWeeklyScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWeeklyScoresJob")
	defer span.End()

	targetDate, err := decodeJobTargetDate(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.scoringService.ComputeWeeklyScores(ctx, targetDate); err != nil {
		h.logger.WarnContext(ctx, "weekly scores job failed", "target_date", targetDate.Format(time.RFC3339), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobResultDTO{
		Job:    "weekly-scores",
		WeekID: week.FromTime(targetDate),
		Status: "completed",
	})
}

func (h *Handler) RunWeeklyBonusesJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWeeklyBonusesJob")
	defer span.End()

	targetDate, err := decodeJobTargetDate(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.bonusService.ComputeWeeklyBonuses(ctx, targetDate); err != nil {
		h.logger.WarnContext(ctx, "weekly bonuses job failed", "target_date", targetDate.Format(time.RFC3339), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobResultDTO{
		Job:    "weekly-bonuses",
		WeekID: week.FromTime(targetDate),
		Status: "completed",
	})
}

// RunWeeklyResetJob flips the league into a new week: move counters go back
// to zero and every team's previous starting five carries over.
func (h *Handler) RunWeeklyResetJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWeeklyResetJob")
	defer span.End()

	targetDate, err := decodeJobTargetDate(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.ResetWeeklyMoves(ctx); err != nil {
		h.logger.WarnContext(ctx, "weekly reset job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.CarryOverStarters(ctx, targetDate); err != nil {
		h.logger.WarnContext(ctx, "starter carry-over failed", "target_date", targetDate.Format(time.RFC3339), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobResultDTO{
		Job:    "weekly-reset",
		WeekID: week.FromTime(targetDate),
		Status: "completed",
	})
}

func (h *Handler) RunLineupSnapshotJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunLineupSnapshotJob")
	defer span.End()

	targetDate, err := decodeJobTargetDate(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.SnapshotLineups(ctx, targetDate); err != nil {
		h.logger.WarnContext(ctx, "lineup snapshot job failed", "target_date", targetDate.Format(time.RFC3339), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, jobResultDTO{
		Job:    "lineup-snapshot",
		WeekID: week.FromTime(targetDate),
		Status: "completed",
	})
}

// decodeJobTargetDate reads the optional {"date": ...} body. An empty body
// means "run for the current week".
func decodeJobTargetDate(r *http.Request) (time.Time, error) {
	var req jobRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return time.Time{}, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	raw := strings.TrimSpace(req.Date)
	if raw == "" {
		return time.Now().UTC(), nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: date must be RFC3339 or YYYY-MM-DD, got %q", usecase.ErrInvalidInput, raw)
}

type jobRequest struct {
	Date string `json:"date"`
}

type jobResultDTO struct {
	Job    string `json:"job"`
	WeekID int    `json:"weekId"`
	Status string `json:"status"`
}
