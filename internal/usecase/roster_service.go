package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/audit"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/lineuphistory"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/moves"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/player"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/team"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/user"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/week"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/id"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/logging"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/txmanager"
)

// RosterService owns roster membership, starter lineups, and the weekly move
// budget. Every mutating operation runs in one transaction with a row lock
// on the team, so two concurrent promotions cannot both pass the same budget
// check, and every mutation appends to the audit log in that transaction.
type RosterService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	rosterRepo roster.Repository
	movesRepo  moves.Repository
	lineupRepo lineuphistory.Repository
	auditRepo  audit.Repository
	tx         txmanager.Manager
	ids        id.Generator
	rules      roster.Rules
	logger     *logging.Logger
	now        func() time.Time
}

func NewRosterService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	rosterRepo roster.Repository,
	movesRepo moves.Repository,
	lineupRepo lineuphistory.Repository,
	auditRepo audit.Repository,
	tx txmanager.Manager,
	ids id.Generator,
	logger *logging.Logger,
) *RosterService {
	if ids == nil {
		ids = id.NewRandomGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rosterRepo: rosterRepo,
		movesRepo:  movesRepo,
		lineupRepo: lineupRepo,
		auditRepo:  auditRepo,
		tx:         tx,
		ids:        ids,
		rules:      roster.DefaultRules(),
		logger:     logger,
		now:        time.Now,
	}
}

// AddPlayer puts a free agent on the team's bench, or directly into the
// starting five when asStarter is set. Bench pickups are free; an explicit
// starter pickup consumes one weekly move and fails with ErrBudgetExceeded
// when none remain. Without asStarter the service may still auto-promote the
// pickup into an obvious lineup hole, but only if a move is available —
// otherwise the player quietly stays on the bench.
func (s *RosterService) AddPlayer(ctx context.Context, principal user.Principal, teamID, playerID string, asStarter bool) (roster.Slot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddPlayer")
	defer span.End()

	var slot roster.Slot
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tm, err := s.lockTeam(ctx, principal, teamID)
		if err != nil {
			return err
		}

		pl, found, err := s.playerRepo.Get(ctx, playerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !found {
			return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
		}

		if _, taken, err := s.rosterRepo.GetByLeagueAndPlayer(ctx, tm.LeagueID, playerID); err != nil {
			return fmt.Errorf("check league ownership: %w", err)
		} else if taken {
			return fmt.Errorf("%w: %w", ErrInvalidInput, roster.ErrPlayerAlreadyRostered)
		}

		slots, err := s.rosterRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list roster: %w", err)
		}
		if len(slots) >= s.rules.MaxRosterSize {
			return fmt.Errorf("%w: %w", ErrInvalidInput, roster.ErrRosterFull)
		}

		summary, err := s.moveSummary(ctx, tm)
		if err != nil {
			return err
		}

		promote := false
		if asStarter {
			starterCount := 0
			for _, existing := range slots {
				if existing.IsStarter {
					starterCount++
				}
			}
			if starterCount >= s.rules.StarterCount {
				return fmt.Errorf("%w: %w", ErrInvalidInput, roster.ErrStarterCount)
			}
			if summary.Remaining < 1 {
				return fmt.Errorf("%w: %d of %d moves used", ErrBudgetExceeded, summary.Used, summary.Total)
			}
			promote = true
		} else if summary.Remaining > 0 {
			promote, err = s.fillsLineupHole(ctx, slots, pl)
			if err != nil {
				return err
			}
		}

		slotID, err := s.ids.NewID()
		if err != nil {
			return fmt.Errorf("generate slot id: %w", err)
		}

		now := s.now().UTC()
		slot = roster.Slot{
			ID:        slotID,
			LeagueID:  tm.LeagueID,
			TeamID:    teamID,
			PlayerID:  playerID,
			Position:  pl.Position,
			IsStarter: promote,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.rosterRepo.Insert(ctx, slot); err != nil {
			return fmt.Errorf("insert roster slot: %w", err)
		}
		if promote {
			if err := s.teamRepo.UpdateMovesThisWeek(ctx, teamID, tm.MovesThisWeek+1); err != nil {
				return fmt.Errorf("update move counter: %w", err)
			}
		}

		return s.appendAudit(ctx, audit.Entry{
			ActorID:  principal.UserID,
			Action:   audit.ActionRosterAdd,
			TeamID:   teamID,
			PlayerID: playerID,
			WeekID:   summary.WeekID,
			Details: marshalAuditPayload(audit.Payload{
				After: map[string]any{"position": pl.Position, "is_starter": promote},
			}),
		})
	})
	if err != nil {
		return roster.Slot{}, err
	}

	s.logger.InfoContext(ctx, "player added to roster",
		"team_id", teamID, "player_id", playerID, "starter", slot.IsStarter)
	return slot, nil
}

// DropPlayer removes the player from the team's roster. Drops are always
// free and never touch the move counter, even when the player was a starter.
func (s *RosterService) DropPlayer(ctx context.Context, principal user.Principal, teamID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.DropPlayer")
	defer span.End()

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.lockTeam(ctx, principal, teamID); err != nil {
			return err
		}

		slots, err := s.rosterRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list roster: %w", err)
		}
		target, found := findSlot(slots, playerID)
		if !found {
			return fmt.Errorf("%w: %w", ErrInvalidInput, roster.ErrPlayerNotOnTeam)
		}

		if err := s.rosterRepo.Delete(ctx, target.ID); err != nil {
			return fmt.Errorf("delete roster slot: %w", err)
		}

		return s.appendAudit(ctx, audit.Entry{
			ActorID:  principal.UserID,
			Action:   audit.ActionRosterDrop,
			TeamID:   teamID,
			PlayerID: playerID,
			WeekID:   week.FromTime(s.now()),
			Details: marshalAuditPayload(audit.Payload{
				Before: map[string]any{"position": target.Position, "is_starter": target.IsStarter},
			}),
		})
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "player dropped from roster", "team_id", teamID, "player_id", playerID)
	return nil
}

// SetStarters replaces the team's starting five with exactly the given
// players. Only fresh promotions consume moves: players already starting and
// players moving to the bench are free. The whole lineup is validated before
// anything is written, so a rejected request leaves the roster untouched.
func (s *RosterService) SetStarters(ctx context.Context, principal user.Principal, teamID string, playerIDs []string) (moves.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetStarters")
	defer span.End()

	var summary moves.Summary
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		tm, err := s.lockTeam(ctx, principal, teamID)
		if err != nil {
			return err
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

		promoted := make([]roster.Slot, 0, len(desired))
		benched := make([]roster.Slot, 0)
		for _, slot := range slots {
			_, wantStarter := desired[slot.PlayerID]
			switch {
			case wantStarter && !slot.IsStarter:
				promoted = append(promoted, slot)
			case !wantStarter && slot.IsStarter:
				benched = append(benched, slot)
			}
		}

		summary, err = s.moveSummary(ctx, tm)
		if err != nil {
			return err
		}
		if len(promoted) > summary.Remaining {
			return fmt.Errorf("%w: lineup needs %d moves, %d remaining",
				ErrBudgetExceeded, len(promoted), summary.Remaining)
		}

		for _, slot := range benched {
			if err := s.rosterRepo.SetStarter(ctx, slot.ID, false); err != nil {
				return fmt.Errorf("bench player %s: %w", slot.PlayerID, err)
			}
			if err := s.appendStarterAudit(ctx, principal.UserID, audit.ActionStarterBench, slot, summary.WeekID); err != nil {
				return err
			}
		}
		for _, slot := range promoted {
			if err := s.rosterRepo.SetStarter(ctx, slot.ID, true); err != nil {
				return fmt.Errorf("promote player %s: %w", slot.PlayerID, err)
			}
			if err := s.appendStarterAudit(ctx, principal.UserID, audit.ActionStarterPromote, slot, summary.WeekID); err != nil {
				return err
			}
		}

		if len(promoted) > 0 {
			if err := s.teamRepo.UpdateMovesThisWeek(ctx, teamID, tm.MovesThisWeek+len(promoted)); err != nil {
				return fmt.Errorf("update move counter: %w", err)
			}
		}

		summary.Used += len(promoted)
		summary.Remaining -= len(promoted)
		return nil
	})
	if err != nil {
		return moves.Summary{}, err
	}

	s.logger.InfoContext(ctx, "starting lineup updated",
		"team_id", teamID, "moves_used", summary.Used, "moves_remaining", summary.Remaining)
	return summary, nil
}

// GetMoveSummary reports the team's move budget for the current week:
// base allowance, admin grants, usage, and remainder.
func (s *RosterService) GetMoveSummary(ctx context.Context, teamID string) (moves.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetMoveSummary")
	defer span.End()

	tm, found, err := s.teamRepo.Get(ctx, teamID)
	if err != nil {
		return moves.Summary{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return moves.Summary{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	return s.moveSummary(ctx, tm)
}

// ResetWeeklyMoves zeroes every team's move counter. Runs from the weekly
// reset job at the week boundary; running it twice is harmless.
func (s *RosterService) ResetWeeklyMoves(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ResetWeeklyMoves")
	defer span.End()

	if err := s.teamRepo.ResetAllMoves(ctx); err != nil {
		return fmt.Errorf("reset weekly moves: %w", err)
	}
	s.logger.InfoContext(ctx, "weekly move counters reset")
	return nil
}

// SnapshotLineups freezes every team's current starter/bench split as the
// lineup of the week containing targetDate. Teams that already have a
// snapshot for that week are skipped, never overwritten.
func (s *RosterService) SnapshotLineups(ctx context.Context, targetDate time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SnapshotLineups")
	defer span.End()

	weekID := week.FromTime(targetDate)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		teams, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}

		for _, tm := range teams {
			if _, exists, err := s.lineupRepo.Get(ctx, tm.ID, weekID); err != nil {
				return fmt.Errorf("get lineup snapshot team=%s: %w", tm.ID, err)
			} else if exists {
				continue
			}

			slots, err := s.rosterRepo.ListByTeam(ctx, tm.ID)
			if err != nil {
				return fmt.Errorf("list roster team=%s: %w", tm.ID, err)
			}

			lineupID, err := s.ids.NewID()
			if err != nil {
				return fmt.Errorf("generate lineup id: %w", err)
			}
			starters, bench := splitLineup(slots)
			lineup := lineuphistory.WeeklyLineup{
				ID:         lineupID,
				TeamID:     tm.ID,
				WeekID:     weekID,
				StarterIDs: starters,
				BenchIDs:   bench,
				SavedAt:    s.now().UTC(),
			}
			if err := s.lineupRepo.Insert(ctx, lineup); err != nil {
				return fmt.Errorf("insert lineup snapshot team=%s: %w", tm.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "lineup snapshots saved", "week_id", weekID)
	return nil
}

// CarryOverStarters re-flags the previous week's snapshot starters for any
// team entering the new week with no starters at all. Teams that already
// have at least one starter keep their lineup untouched, and players
// dropped since the snapshot are skipped, so a team can start the week with
// fewer than five starters. Carry-over is free and skips positional
// validation: it restores state, it is not a user move.
func (s *RosterService) CarryOverStarters(ctx context.Context, targetDate time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CarryOverStarters")
	defer span.End()

	previousWeekID := week.FromTime(targetDate.AddDate(0, 0, -7))
	weekID := week.FromTime(targetDate)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		teams, err := s.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}

		for _, tm := range teams {
			lineup, exists, err := s.lineupRepo.Get(ctx, tm.ID, previousWeekID)
			if err != nil {
				return fmt.Errorf("get lineup snapshot team=%s: %w", tm.ID, err)
			}
			if !exists {
				continue
			}

			slots, err := s.rosterRepo.ListByTeam(ctx, tm.ID)
			if err != nil {
				return fmt.Errorf("list roster team=%s: %w", tm.ID, err)
			}
			if hasAnyStarter(slots) {
				continue
			}

			wantStarter := make(map[string]bool, len(lineup.StarterIDs))
			for _, playerID := range lineup.StarterIDs {
				wantStarter[playerID] = true
			}

			for _, slot := range slots {
				if !wantStarter[slot.PlayerID] {
					continue
				}
				if err := s.rosterRepo.SetStarter(ctx, slot.ID, true); err != nil {
					return fmt.Errorf("carry over starter team=%s player=%s: %w", tm.ID, slot.PlayerID, err)
				}
				if err := s.appendAudit(ctx, audit.Entry{
					ActorID:  SystemActorID,
					Action:   audit.ActionStarterCarryOver,
					TeamID:   tm.ID,
					PlayerID: slot.PlayerID,
					WeekID:   weekID,
					Details: marshalAuditPayload(audit.Payload{
						Before: map[string]any{"is_starter": false},
						After:  map[string]any{"is_starter": true},
						Note:   fmt.Sprintf("carried over from week %d", previousWeekID),
					}),
				}); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "starter lineups carried over",
		"week_id", weekID, "from_week_id", previousWeekID)
	return nil
}

// lockTeam loads the team under a row lock and checks the principal may
// mutate it. Admins may act on any team.
func (s *RosterService) lockTeam(ctx context.Context, principal user.Principal, teamID string) (team.Team, error) {
	tm, found, err := s.teamRepo.GetForUpdate(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("lock team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	if !principal.IsAdmin && principal.UserID != tm.OwnerUserID {
		return team.Team{}, fmt.Errorf("%w: team %s belongs to another owner", ErrPermissionDenied, teamID)
	}
	return tm, nil
}

func (s *RosterService) moveSummary(ctx context.Context, tm team.Team) (moves.Summary, error) {
	weekID := week.FromTime(s.now())
	grants, err := s.movesRepo.ListByTeamAndWeek(ctx, tm.ID, weekID)
	if err != nil {
		return moves.Summary{}, fmt.Errorf("list move grants: %w", err)
	}

	granted := 0
	for _, grant := range grants {
		granted += grant.Moves
	}
	total := moves.BaseWeeklyMoves + granted

	return moves.Summary{
		TeamID:    tm.ID,
		WeekID:    weekID,
		Base:      moves.BaseWeeklyMoves,
		Granted:   granted,
		Total:     total,
		Used:      tm.MovesThisWeek,
		Remaining: max(total-tm.MovesThisWeek, 0),
		Grants:    grants,
	}, nil
}

// fillsLineupHole decides whether an unrequested pickup should be promoted
// straight into the starting five. It only fires on clear gaps: an
// incomplete five, or an unmet positional requirement the new player covers.
func (s *RosterService) fillsLineupHole(ctx context.Context, slots []roster.Slot, pl player.Player) (bool, error) {
	starterIDs := make([]string, 0, s.rules.StarterCount)
	for _, slot := range slots {
		if slot.IsStarter {
			starterIDs = append(starterIDs, slot.PlayerID)
		}
	}
	if len(starterIDs) >= s.rules.StarterCount {
		return false, nil
	}
	if len(starterIDs) == 0 {
		return true, nil
	}

	starters, err := s.playerRepo.ListByIDs(ctx, starterIDs)
	if err != nil {
		return false, fmt.Errorf("list starters: %w", err)
	}

	guards := 0
	frontcourt := 0
	for _, starter := range starters {
		if starter.IsGuard() {
			guards++
		}
		if starter.IsFrontcourt() {
			frontcourt++
		}
	}

	if guards < s.rules.MinGuardStarters && pl.IsGuard() {
		return true, nil
	}
	if frontcourt < s.rules.MinFrontcourtStarter && pl.IsFrontcourt() {
		return true, nil
	}
	return len(starterIDs) < s.rules.StarterCount, nil
}

func (s *RosterService) starterPositions(ctx context.Context, playerIDs []string) ([]string, error) {
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

func (s *RosterService) appendStarterAudit(ctx context.Context, actorID, action string, slot roster.Slot, weekID int) error {
	return s.appendAudit(ctx, audit.Entry{
		ActorID:  actorID,
		Action:   action,
		TeamID:   slot.TeamID,
		PlayerID: slot.PlayerID,
		WeekID:   weekID,
		Details: marshalAuditPayload(audit.Payload{
			Before: map[string]any{"is_starter": action == audit.ActionStarterBench},
			After:  map[string]any{"is_starter": action == audit.ActionStarterPromote},
		}),
	})
}

func (s *RosterService) appendAudit(ctx context.Context, entry audit.Entry) error {
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

func uniqueStarterSet(playerIDs []string, rules roster.Rules) (map[string]struct{}, error) {
	if len(playerIDs) != rules.StarterCount {
		return nil, fmt.Errorf("%w: got %d", roster.ErrStarterCount, len(playerIDs))
	}
	set := make(map[string]struct{}, len(playerIDs))
	for _, playerID := range playerIDs {
		if _, dup := set[playerID]; dup {
			return nil, fmt.Errorf("%w: %s", roster.ErrDuplicateStarterPlayer, playerID)
		}
		set[playerID] = struct{}{}
	}
	return set, nil
}

func findSlot(slots []roster.Slot, playerID string) (roster.Slot, bool) {
	for _, slot := range slots {
		if slot.PlayerID == playerID {
			return slot, true
		}
	}
	return roster.Slot{}, false
}

func hasAnyStarter(slots []roster.Slot) bool {
	for _, slot := range slots {
		if slot.IsStarter {
			return true
		}
	}
	return false
}

func splitLineup(slots []roster.Slot) (starters, bench []string) {
	for _, slot := range slots {
		if slot.IsStarter {
			starters = append(starters, slot.PlayerID)
		} else {
			bench = append(bench, slot.PlayerID)
		}
	}
	sort.Strings(starters)
	sort.Strings(bench)
	return starters, bench
}
