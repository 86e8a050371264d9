package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/stats"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/week"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/txmanager"
)

// ScoringService is the weekly aggregation engine: it converts the week's
// ingested stat records into one TeamScore row per owning team.
type ScoringService struct {
	statsRepo  stats.Repository
	rosterRepo roster.Repository
	scoreRepo  scoring.Repository
	tx         txmanager.Manager
	logger     *logging.Logger
	now        func() time.Time
}

func NewScoringService(
	statsRepo stats.Repository,
	rosterRepo roster.Repository,
	scoreRepo scoring.Repository,
	tx txmanager.Manager,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ScoringService{
		statsRepo:  statsRepo,
		rosterRepo: rosterRepo,
		scoreRepo:  scoreRepo,
		tx:         tx,
		logger:     logger,
		now:        time.Now,
	}
}

// ComputeWeeklyScores aggregates fantasy points for the ISO week containing
// targetDate and replaces that week's TeamScore rows. Idempotent: re-running
// for the same week yields the same rows with no duplicates. Attribution uses
// the roster ownership at run time, so an admin-triggered recompute reflects
// roster corrections made after the games were played.
func (s *ScoringService) ComputeWeeklyScores(ctx context.Context, targetDate time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ComputeWeeklyScores")
	defer span.End()

	weekID := week.FromTime(targetDate)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		_, err := s.recomputeWeek(ctx, targetDate)
		return err
	})
	if err != nil {
		return fmt.Errorf("compute weekly scores week=%d: %w", weekID, err)
	}

	s.logger.InfoContext(ctx, "weekly scores computed", "week_id", weekID)
	return nil
}

// GetWeekScores returns the stored scores for the ISO week of weekID.
func (s *ScoringService) GetWeekScores(ctx context.Context, weekID int) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetWeekScores")
	defer span.End()

	if _, err := week.MondayOf(weekID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	scores, err := s.scoreRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list team scores week=%d: %w", weekID, err)
	}
	return scores, nil
}

// recomputeWeek runs the aggregation inside the caller's transaction and
// returns the inserted rows. The admin recalculation path wraps it together
// with its audit entry so log and mutation commit atomically.
func (s *ScoringService) recomputeWeek(ctx context.Context, targetDate time.Time) ([]scoring.TeamScore, error) {
	start, end := week.Bounds(targetDate)
	weekID := week.FromTime(targetDate)

	records, err := s.statsRepo.ListByGameTimeRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list stat records: %w", err)
	}

	teamsByPlayer, err := currentOwnership(ctx, s.rosterRepo)
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64)
	for _, record := range records {
		// Free agents score for nobody.
		for _, teamID := range teamsByPlayer[record.PlayerID] {
			totals[teamID] += stats.FantasyPointsForRecord(record)
		}
	}

	if err := s.scoreRepo.DeleteByWeek(ctx, weekID); err != nil {
		return nil, fmt.Errorf("delete team scores: %w", err)
	}

	// A week with no stat records yields no rows at all: absence means
	// "no score computed", not a zero score for every team.
	if len(totals) == 0 {
		return nil, nil
	}

	calculatedAt := s.now().UTC()
	rows := make([]scoring.TeamScore, 0, len(totals))
	for teamID, points := range totals {
		rows = append(rows, scoring.TeamScore{
			TeamID:       teamID,
			WeekID:       weekID,
			Points:       stats.Round2(points),
			CalculatedAt: calculatedAt,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].TeamID < rows[j].TeamID })

	if err := s.scoreRepo.Insert(ctx, rows); err != nil {
		return nil, fmt.Errorf("insert team scores: %w", err)
	}
	return rows, nil
}

// currentOwnership maps each rostered player to the teams owning a slot for
// them. A player may appear on one team per league; the same stat record
// scores independently in each league.
func currentOwnership(ctx context.Context, rosterRepo roster.Repository) (map[string][]string, error) {
	slots, err := rosterRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roster slots: %w", err)
	}

	out := make(map[string][]string, len(slots))
	for _, slot := range slots {
		out[slot.PlayerID] = append(out[slot.PlayerID], slot.TeamID)
	}
	return out, nil
}
