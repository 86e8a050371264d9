package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/audit"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/lineuphistory"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/moves"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/player"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/team"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/user"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/week"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/id"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/txmanager"
)

const (
	auditLogDefaultLimit = 50
	auditLogMaxLimit     = 200

	// recalcWorkers bounds concurrent week recalculations so a wide range
	// cannot exhaust the connection pool.
	recalcWorkers = 4
)

// AdminService is the commissioner surface: lineup overrides, move grants,
// historical lineup edits, retroactive score recalculation, and audit-log
// access. Every operation verifies the actor's admin flag before reading
// anything else, and every override writes its own audit row.
type AdminService struct {
	userRepo   user.Repository
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	movesRepo  moves.Repository
	lineupRepo lineuphistory.Repository
	scoreRepo  scoring.Repository
	auditRepo  audit.Repository
	scoringSvc *ScoringService
	tx         txmanager.Manager
	ids        id.Generator
	rules      roster.Rules
	logger     *logging.Logger
	now        func() time.Time
}

func NewAdminService(
	userRepo user.Repository,
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	movesRepo moves.Repository,
	lineupRepo lineuphistory.Repository,
	scoreRepo scoring.Repository,
	auditRepo audit.Repository,
	scoringSvc *ScoringService,
	tx txmanager.Manager,
	ids id.Generator,
	logger *logging.Logger,
) *AdminService {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminService{
		userRepo:   userRepo,
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		movesRepo:  movesRepo,
		lineupRepo: lineupRepo,
		scoreRepo:  scoreRepo,
		auditRepo:  auditRepo,
		scoringSvc: scoringSvc,
		tx:         tx,
		ids:        ids,
		rules:      roster.DefaultRules(),
		logger:     logger,
		now:        time.Now,
	}
}

// SetStartersOverride replaces a team's starting five on behalf of an admin.
// Positional legality still applies: overrides exist to fix lineups, not to
// break them. With bypassMoveLimit the budget is ignored and the move
// counter untouched; without it the override behaves like an owner move
// against the budget of weekID (0 means the current week).
func (s *AdminService) SetStartersOverride(ctx context.Context, actorID, teamID string, weekID int, playerIDs []string, bypassMoveLimit bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.SetStartersOverride")
	defer span.End()

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	weekID, err := s.resolveWeekID(weekID)
	if err != nil {
		return err
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tm, found, err := s.teamRepo.GetForUpdate(ctx, teamID)
		if err != nil {
			return fmt.Errorf("lock team: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: team %s", ErrNotFound, teamID)
		}

		desired, err := uniqueStarterSet(playerIDs, s.rules)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		slots, err := s.rosterRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list roster: %w", err)
		}
		slotByPlayer := make(map[string]roster.Slot, len(slots))
		for _, slot := range slots {
			slotByPlayer[slot.PlayerID] = slot
		}
		for playerID := range desired {
			if _, ok := slotByPlayer[playerID]; !ok {
				return fmt.Errorf("%w: %w: player %s", ErrInvalidInput, roster.ErrPlayerNotOnTeam, playerID)
			}
		}

		positions, err := s.starterPositions(ctx, playerIDs)
		if err != nil {
			return err
		}
		if err := roster.ValidateStarterPositions(positions, s.rules); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}

		before := make([]string, 0, s.rules.StarterCount)
		promoted := 0
		for _, slot := range slots {
			if slot.IsStarter {
				before = append(before, slot.PlayerID)
			}
			_, wantStarter := desired[slot.PlayerID]
			if wantStarter && !slot.IsStarter {
				promoted++
			}
		}
		sort.Strings(before)

		if !bypassMoveLimit && promoted > 0 {
			grants, err := s.movesRepo.ListByTeamAndWeek(ctx, teamID, weekID)
			if err != nil {
				return fmt.Errorf("list move grants: %w", err)
			}
			total := moves.BaseWeeklyMoves
			for _, grant := range grants {
				total += grant.Moves
			}
			if remaining := total - tm.MovesThisWeek; promoted > remaining {
				return fmt.Errorf("%w: override needs %d moves, %d remaining",
					ErrBudgetExceeded, promoted, remaining)
			}
		}

		for _, slot := range slots {
			_, wantStarter := desired[slot.PlayerID]
			if slot.IsStarter == wantStarter {
				continue
			}
			if err := s.rosterRepo.SetStarter(ctx, slot.ID, wantStarter); err != nil {
				return fmt.Errorf("set starter flag player=%s: %w", slot.PlayerID, err)
			}
		}
		if !bypassMoveLimit && promoted > 0 {
			if err := s.teamRepo.UpdateMovesThisWeek(ctx, teamID, tm.MovesThisWeek+promoted); err != nil {
				return fmt.Errorf("update move counter: %w", err)
			}
		}

		after := append([]string(nil), playerIDs...)
		sort.Strings(after)
		return s.appendAudit(ctx, audit.Entry{
			ActorID: actorID,
			Action:  audit.ActionAdminLineupSet,
			TeamID:  teamID,
			WeekID:  weekID,
			Details: marshalAuditPayload(audit.Payload{
				Before: map[string]any{"starters": before},
				After:  map[string]any{"starters": after, "bypass_move_limit": bypassMoveLimit},
			}),
		})
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "admin lineup override applied",
		"actor_id", actorID, "team_id", teamID, "bypass_move_limit", bypassMoveLimit)
	return nil
}

// GrantMoves raises a team's move budget for weekID (0 means the current
// week), so budget can be pre-granted for an upcoming week or attached to a
// past one. Grants are append-only and require a reason; they never reduce
// usage already counted.
func (s *AdminService) GrantMoves(ctx context.Context, actorID, teamID string, weekID, count int, reason string) (moves.AdminGrant, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.GrantMoves")
	defer span.End()

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return moves.AdminGrant{}, err
	}
	weekID, err := s.resolveWeekID(weekID)
	if err != nil {
		return moves.AdminGrant{}, err
	}
	if count <= 0 {
		return moves.AdminGrant{}, fmt.Errorf("%w: grant count must be positive", ErrInvalidInput)
	}
	if reason == "" {
		return moves.AdminGrant{}, fmt.Errorf("%w: grant reason is required", ErrInvalidInput)
	}

	var grant moves.AdminGrant
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, found, err := s.teamRepo.Get(ctx, teamID); err != nil {
			return fmt.Errorf("get team: %w", err)
		} else if !found {
			return fmt.Errorf("%w: team %s", ErrNotFound, teamID)
		}

		grantID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate grant id: %w", err)
		}
		grant = moves.AdminGrant{
			ID:        grantID,
			TeamID:    teamID,
			WeekID:    weekID,
			Moves:     count,
			Reason:    reason,
			GrantedBy: actorID,
			CreatedAt: s.now().UTC(),
		}
		if err := s.movesRepo.Insert(ctx, grant); err != nil {
			return fmt.Errorf("insert move grant: %w", err)
		}

		return s.appendAudit(ctx, audit.Entry{
			ActorID: actorID,
			Action:  audit.ActionMoveGrant,
			TeamID:  teamID,
			WeekID:  grant.WeekID,
			Details: marshalAuditPayload(audit.Payload{
				After: map[string]any{"moves": count},
				Note:  reason,
			}),
		})
	})
	if err != nil {
		return moves.AdminGrant{}, err
	}

	s.logger.InfoContext(ctx, "move grant issued",
		"actor_id", actorID, "team_id", teamID, "moves", count)
	return grant, nil
}

// EditHistoricalLineup patches a past week's lineup snapshot. The target
// snapshot must already exist, and the new starters must come from the
// players the snapshot recorded: history edits rearrange what was there,
// they cannot introduce players the team never held that week.
func (s *AdminService) EditHistoricalLineup(ctx context.Context, actorID, teamID string, weekID int, starterIDs []string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.EditHistoricalLineup")
	defer span.End()

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}
	if _, err := week.MondayOf(weekID); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	desired, err := uniqueStarterSet(starterIDs, s.rules)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		lineup, found, err := s.lineupRepo.Get(ctx, teamID, weekID)
		if err != nil {
			return fmt.Errorf("get lineup snapshot: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: no lineup snapshot for team %s week %d", ErrNotFound, teamID, weekID)
		}

		recorded := make(map[string]struct{}, len(lineup.StarterIDs)+len(lineup.BenchIDs))
		for _, playerID := range lineup.StarterIDs {
			recorded[playerID] = struct{}{}
		}
		for _, playerID := range lineup.BenchIDs {
			recorded[playerID] = struct{}{}
		}
		for playerID := range desired {
			if _, ok := recorded[playerID]; !ok {
				return fmt.Errorf("%w: player %s was not on the roster that week", ErrInvalidInput, playerID)
			}
		}

		before := lineup.StarterIDs
		starters := make([]string, 0, len(desired))
		bench := make([]string, 0, len(recorded)-len(desired))
		for playerID := range recorded {
			if _, isStarter := desired[playerID]; isStarter {
				starters = append(starters, playerID)
			} else {
				bench = append(bench, playerID)
			}
		}
		sort.Strings(starters)
		sort.Strings(bench)

		lineup.StarterIDs = starters
		lineup.BenchIDs = bench
		lineup.SavedAt = s.now().UTC()
		if err := s.lineupRepo.Update(ctx, lineup); err != nil {
			return fmt.Errorf("update lineup snapshot: %w", err)
		}

		return s.appendAudit(ctx, audit.Entry{
			ActorID: actorID,
			Action:  audit.ActionHistoryEdit,
			TeamID:  teamID,
			WeekID:  weekID,
			Details: marshalAuditPayload(audit.Payload{
				Before: map[string]any{"starters": before},
				After:  map[string]any{"starters": starters},
			}),
		})
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "historical lineup edited",
		"actor_id", actorID, "team_id", teamID, "week_id", weekID)
	return nil
}

// RecalculateWeekScores reruns the weekly aggregation for one past week.
// The recompute and its audit row commit in a single transaction, so a
// failed recompute leaves both the old scores and the log untouched.
func (s *AdminService) RecalculateWeekScores(ctx context.Context, actorID string, weekID int) ([]scoring.TeamScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.RecalculateWeekScores")
	defer span.End()

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	monday, err := week.MondayOf(weekID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var rescored []scoring.TeamScore
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		before, err := s.scoreRepo.ListByWeek(ctx, weekID)
		if err != nil {
			return fmt.Errorf("list previous scores: %w", err)
		}

		rescored, err = s.scoringSvc.recomputeWeek(ctx, monday)
		if err != nil {
			return err
		}

		return s.appendAudit(ctx, audit.Entry{
			ActorID: actorID,
			Action:  audit.ActionScoreRecalculate,
			WeekID:  weekID,
			Details: marshalAuditPayload(audit.Payload{
				Before: scoreTotals(before),
				After:  scoreTotals(rescored),
			}),
		})
	})
	if err != nil {
		return nil, fmt.Errorf("recalculate week %d: %w", weekID, err)
	}

	s.logger.InfoContext(ctx, "week scores recalculated",
		"actor_id", actorID, "week_id", weekID, "teams", len(rescored))
	return rescored, nil
}

// RecalculateWeekRange reruns the aggregation for every week from fromWeekID
// through toWeekID inclusive, fanning the weeks over a small worker pool.
// Each week commits independently; a failing week does not roll back the
// others, and all failures are reported together.
func (s *AdminService) RecalculateWeekRange(ctx context.Context, actorID string, fromWeekID, toWeekID int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.RecalculateWeekRange")
	defer span.End()

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return err
	}

	first, err := week.MondayOf(fromWeekID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	last, err := week.MondayOf(toWeekID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if last.Before(first) {
		return fmt.Errorf("%w: week range %d..%d is inverted", ErrInvalidInput, fromWeekID, toWeekID)
	}

	weekIDs := make([]int, 0)
	for monday := first; !monday.After(last); monday = monday.AddDate(0, 0, 7) {
		weekIDs = append(weekIDs, week.FromTime(monday))
	}

	pool, err := ants.NewPool(recalcWorkers)
	if err != nil {
		return fmt.Errorf("start recalc pool: %w", err)
	}
	defer pool.Release()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, weekID := range weekIDs {
		weekID := weekID
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if _, err := s.RecalculateWeekScores(ctx, actorID, weekID); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			errs = append(errs, fmt.Errorf("submit week %d: %w", weekID, submitErr))
			mu.Unlock()
		}
	}
	wg.Wait()

	if len(errs) > 0 {
		return fmt.Errorf("recalculate weeks %d..%d: %w", fromWeekID, toWeekID, errors.Join(errs...))
	}

	s.logger.InfoContext(ctx, "week range recalculated",
		"actor_id", actorID, "from_week_id", fromWeekID, "to_week_id", toWeekID, "weeks", len(weekIDs))
	return nil
}

// GetAuditLog returns audit entries newest first, optionally filtered by
// team, with the page size clamped to a sane window.
func (s *AdminService) GetAuditLog(ctx context.Context, actorID string, filter audit.ListFilter) ([]audit.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AdminService.GetAuditLog")
	defer span.End()

	if err := s.requireAdmin(ctx, actorID); err != nil {
		return nil, err
	}

	if filter.Limit <= 0 {
		filter.Limit = auditLogDefaultLimit
	}
	if filter.Limit > auditLogMaxLimit {
		filter.Limit = auditLogMaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	entries, err := s.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	return entries, nil
}

// requireAdmin resolves the actor and rejects non-admins before any other
// input is inspected, so probing admin endpoints never leaks validation
// detail to regular users.
// resolveWeekID defaults a zero week id to the current week and rejects
// malformed ids.
func (s *AdminService) resolveWeekID(weekID int) (int, error) {
	if weekID == 0 {
		return week.FromTime(s.now()), nil
	}
	if _, err := week.MondayOf(weekID); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return weekID, nil
}

func (s *AdminService) requireAdmin(ctx context.Context, actorID string) error {
	actor, found, err := s.userRepo.Get(ctx, actorID)
	if err != nil {
		return fmt.Errorf("get actor: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: user %s", ErrNotFound, actorID)
	}
	if !actor.IsAdmin {
		return fmt.Errorf("%w: user %s", ErrPermissionDenied, actorID)
	}
	return nil
}

func (s *AdminService) starterPositions(ctx context.Context, playerIDs []string) ([]string, error) {
	players, err := s.playerRepo.ListByIDs(ctx, playerIDs)
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	if len(players) != len(playerIDs) {
		return nil, fmt.Errorf("%w: unknown player in lineup", ErrNotFound)
	}

	positions := make([]string, 0, len(players))
	for _, pl := range players {
		positions = append(positions, pl.Position)
	}
	return positions, nil
}

func (s *AdminService) appendAudit(ctx context.Context, entry audit.Entry) error {
	entryID, err := s.ids.NewID()
	if err != nil {
		return fmt.Errorf("generate audit id: %w", err)
	}
	entry.ID = entryID
	entry.CreatedAt = s.now().UTC()

	if err := s.auditRepo.Append(ctx, entry); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

func scoreTotals(scores []scoring.TeamScore) map[string]float64 {
	out := make(map[string]float64, len(scores))
	for _, score := range scores {
		out[score.TeamID] = score.Points
	}
	return out
}
