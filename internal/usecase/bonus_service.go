package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/bonus"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/stats"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/week"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/txmanager"
)

// BonusService is the weekly bonus engine: per-category leaderboards over one
// ISO week, tie-aware, idempotently replacing the week's award rows.
type BonusService struct {
	statsRepo  stats.Repository
	rosterRepo roster.Repository
	bonusRepo  bonus.Repository
	tx         txmanager.Manager
	logger     *logging.Logger
	now        func() time.Time
}

func NewBonusService(
	statsRepo stats.Repository,
	rosterRepo roster.Repository,
	bonusRepo bonus.Repository,
	tx txmanager.Manager,
	logger *logging.Logger,
) *BonusService {
	if logger == nil {
		logger = logging.Default()
	}
	return &BonusService{
		statsRepo:  statsRepo,
		rosterRepo: rosterRepo,
		bonusRepo:  bonusRepo,
		tx:         tx,
		logger:     logger,
		now:        time.Now,
	}
}

// playerWeek accumulates one player's totals across the week's games.
type playerWeek struct {
	playerID            string
	points              int
	rebounds            int
	assists             int
	stocks              int // steals + blocks
	gamesPlayed         int
	fieldGoalsMade      int
	fieldGoalsAttempted int
	doubleDoubles       int
	tripleDoubles       int
}

// ComputeWeeklyBonuses recomputes every bonus category for the ISO week
// containing targetDate. Existing award rows for the week are deleted first,
// so re-runs and retroactive recomputes never duplicate. Players without a
// roster slot at award time are skipped silently: no row, no error.
func (s *BonusService) ComputeWeeklyBonuses(ctx context.Context, targetDate time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.BonusService.ComputeWeeklyBonuses")
	defer span.End()

	weekID := week.FromTime(targetDate)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		return s.recomputeWeek(ctx, targetDate)
	})
	if err != nil {
		return fmt.Errorf("compute weekly bonuses week=%d: %w", weekID, err)
	}

	s.logger.InfoContext(ctx, "weekly bonuses computed", "week_id", weekID)
	return nil
}

// GetWeekBonuses returns the stored awards for one week id.
func (s *BonusService) GetWeekBonuses(ctx context.Context, weekID int) ([]bonus.Award, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BonusService.GetWeekBonuses")
	defer span.End()

	if _, err := week.MondayOf(weekID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	awards, err := s.bonusRepo.ListByWeek(ctx, weekID)
	if err != nil {
		return nil, fmt.Errorf("list weekly bonuses week=%d: %w", weekID, err)
	}
	return awards, nil
}

func (s *BonusService) recomputeWeek(ctx context.Context, targetDate time.Time) error {
	start, end := week.Bounds(targetDate)
	weekID := week.FromTime(targetDate)

	records, err := s.statsRepo.ListByGameTimeRange(ctx, start, end)
	if err != nil {
		return fmt.Errorf("list stat records: %w", err)
	}

	teamsByPlayer, err := currentOwnership(ctx, s.rosterRepo)
	if err != nil {
		return err
	}
	rostered := func(playerID string) bool { return len(teamsByPlayer[playerID]) > 0 }

	byPlayer := make(map[string]*playerWeek)
	for _, record := range records {
		pw, ok := byPlayer[record.PlayerID]
		if !ok {
			pw = &playerWeek{playerID: record.PlayerID}
			byPlayer[record.PlayerID] = pw
		}

		pw.points += record.Points
		pw.rebounds += record.Rebounds
		pw.assists += record.Assists
		pw.stocks += record.Steals + record.Blocks
		pw.fieldGoalsMade += record.FieldGoalsMade
		pw.fieldGoalsAttempted += record.FieldGoalsAttempted

		if !record.DidNotPlay {
			pw.gamesPlayed++
		}
		switch categories := record.Line().CategoriesAtThreshold(); {
		case categories >= 3:
			pw.tripleDoubles++
			pw.doubleDoubles++
		case categories >= 2:
			pw.doubleDoubles++
		}
	}

	calculatedAt := s.now().UTC()
	awards := make([]bonus.Award, 0)
	award := func(playerID string, category bonus.Category, points float64, instances int) {
		if !rostered(playerID) {
			return
		}
		awards = append(awards, bonus.Award{
			WeekID:       weekID,
			PlayerID:     playerID,
			Category:     category,
			Points:       points,
			Instances:    instances,
			CalculatedAt: calculatedAt,
		})
	}

	// Leaderboard categories: every player tied at the maximum is awarded,
	// no arbitrary tie-break.
	for _, playerID := range leaders(byPlayer, func(pw *playerWeek) float64 { return float64(pw.points) }) {
		award(playerID, bonus.CategoryTopScorer, bonus.PointsTopScorer, 1)
	}
	for _, playerID := range leaders(byPlayer, func(pw *playerWeek) float64 { return float64(pw.rebounds) }) {
		award(playerID, bonus.CategoryTopRebounder, bonus.PointsTopRebounder, 1)
	}
	for _, playerID := range leaders(byPlayer, func(pw *playerWeek) float64 { return float64(pw.assists) }) {
		award(playerID, bonus.CategoryTopPlaymaker, bonus.PointsTopPlaymaker, 1)
	}
	for _, playerID := range leaders(byPlayer, func(pw *playerWeek) float64 { return float64(pw.stocks) }) {
		award(playerID, bonus.CategoryDefensiveBeast, bonus.PointsDefensiveBeast, 1)
	}

	// Threshold categories: award every qualifying player, not just the max.
	for _, pw := range sortedPlayers(byPlayer) {
		if pw.doubleDoubles >= bonus.DoubleDoubleMinGames {
			award(pw.playerID, bonus.CategoryDoubleDoubleStreak, bonus.PointsDoubleDouble, 1)
		}
		if pw.tripleDoubles > 0 {
			award(pw.playerID, bonus.CategoryTripleDouble,
				bonus.PointsPerTripleDouble*float64(pw.tripleDoubles), pw.tripleDoubles)
		}
	}

	for _, playerID := range efficiencyLeaders(byPlayer) {
		award(playerID, bonus.CategoryEfficiency, bonus.PointsEfficiency, 1)
	}

	if err := s.bonusRepo.DeleteByWeek(ctx, weekID); err != nil {
		return fmt.Errorf("delete weekly bonuses: %w", err)
	}
	if len(awards) == 0 {
		return nil
	}
	if err := s.bonusRepo.Insert(ctx, awards); err != nil {
		return fmt.Errorf("insert weekly bonuses: %w", err)
	}
	return nil
}

// leaders returns every player tied for the maximum of metric, sorted by
// player id for deterministic output. A category with no positive value has
// no leader: nobody is "top scorer" of a week where nobody scored.
func leaders(byPlayer map[string]*playerWeek, metric func(*playerWeek) float64) []string {
	max := 0.0
	for _, pw := range byPlayer {
		if value := metric(pw); value > max {
			max = value
		}
	}
	if max <= 0 {
		return nil
	}

	out := make([]string, 0, 1)
	for playerID, pw := range byPlayer {
		if metric(pw) == max {
			out = append(out, playerID)
		}
	}
	sort.Strings(out)
	return out
}

// efficiencyLeaders ranks by field-goal percentage among players with at
// least EfficiencyMinGames games played and at least one attempt.
func efficiencyLeaders(byPlayer map[string]*playerWeek) []string {
	qualified := make(map[string]*playerWeek)
	for playerID, pw := range byPlayer {
		if pw.gamesPlayed >= bonus.EfficiencyMinGames && pw.fieldGoalsAttempted > 0 {
			qualified[playerID] = pw
		}
	}
	return leaders(qualified, func(pw *playerWeek) float64 {
		return float64(pw.fieldGoalsMade) / float64(pw.fieldGoalsAttempted)
	})
}

func sortedPlayers(byPlayer map[string]*playerWeek) []*playerWeek {
	out := make([]*playerWeek, 0, len(byPlayer))
	for _, pw := range byPlayer {
		out = append(out, pw)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].playerID < out[j].playerID })
	return out
}
