package usecase

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/audit"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/week"
)

func TestRosterService_AddPlayer_BenchPickupIsFree(t *testing.T) {
	f := newFixture(t)
	f.seedStartingFive(t)

	slot, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-alpha", "p-sf-01", false)
	if err != nil {
		t.Fatalf("add player failed: %v", err)
	}
	if slot.IsStarter {
		t.Fatal("expected bench pickup with a full starting five")
	}
	if used := f.movesUsed(t, "team-alpha"); used != 0 {
		t.Fatalf("expected 0 moves used for a bench pickup, got %d", used)
	}

	entries := f.audits.All()
	if len(entries) != 1 || entries[0].Action != audit.ActionRosterAdd {
		t.Fatalf("expected one ROSTER_ADD audit entry, got %+v", entries)
	}
}

func TestRosterService_AddPlayer_StarterPickupConsumesMove(t *testing.T) {
	f := newFixture(t)
	for _, playerID := range []string{"p-pg-01", "p-sg-01", "p-pf-01", "p-c-01"} {
		f.addSlot(t, "team-alpha", playerID, true)
	}

	slot, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-alpha", "p-sg-02", true)
	if err != nil {
		t.Fatalf("add player failed: %v", err)
	}
	if !slot.IsStarter {
		t.Fatal("expected player added straight into the starting five")
	}
	if used := f.movesUsed(t, "team-alpha"); used != 1 {
		t.Fatalf("expected 1 move used, got %d", used)
	}
}

func TestRosterService_AddPlayer_StarterPickupRejectedOnFullFive(t *testing.T) {
	f := newFixture(t)
	f.seedStartingFive(t)

	_, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-alpha", "p-sf-01", true)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, roster.ErrStarterCount) {
		t.Fatalf("expected starter count violation, got %v", err)
	}
}

func TestRosterService_AddPlayer_BudgetExhausted(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)
	if err := f.teams.UpdateMovesThisWeek(t.Context(), "team-alpha", 3); err != nil {
		t.Fatalf("seed move counter: %v", err)
	}

	// Explicit starter request fails loudly.
	_, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-alpha", "p-sg-01", true)
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}

	// Plain pickup succeeds but skips the auto-promotion it would otherwise
	// make into the short lineup.
	slot, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-alpha", "p-sg-01", false)
	if err != nil {
		t.Fatalf("bench pickup failed: %v", err)
	}
	if slot.IsStarter {
		t.Fatal("expected auto-promotion skipped with no budget left")
	}
	if used := f.movesUsed(t, "team-alpha"); used != 3 {
		t.Fatalf("expected counter unchanged, got %d", used)
	}
}

func TestRosterService_AddPlayer_GrantRaisesBudget(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)
	if err := f.teams.UpdateMovesThisWeek(t.Context(), "team-alpha", 3); err != nil {
		t.Fatalf("seed move counter: %v", err)
	}

	if _, err := f.admin.GrantMoves(t.Context(), "user-admin", "team-alpha", 0, 1, "injury replacement"); err != nil {
		t.Fatalf("grant moves failed: %v", err)
	}

	slot, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-alpha", "p-sg-01", true)
	if err != nil {
		t.Fatalf("add player after grant failed: %v", err)
	}
	if !slot.IsStarter {
		t.Fatal("expected starter pickup after grant")
	}
	if used := f.movesUsed(t, "team-alpha"); used != 4 {
		t.Fatalf("expected 4 moves used, got %d", used)
	}
}

func TestRosterService_AddPlayer_AutoPromoteFillsShortLineup(t *testing.T) {
	f := newFixture(t)
	for _, playerID := range []string{"p-pg-01", "p-pf-01", "p-c-01", "p-sf-01"} {
		f.addSlot(t, "team-alpha", playerID, true)
	}

	slot, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-alpha", "p-sg-01", false)
	if err != nil {
		t.Fatalf("add player failed: %v", err)
	}
	if !slot.IsStarter {
		t.Fatal("expected auto-promotion into the incomplete five")
	}
	if used := f.movesUsed(t, "team-alpha"); used != 1 {
		t.Fatalf("expected auto-promotion to consume 1 move, got %d", used)
	}
}

func TestRosterService_AddPlayer_LeagueExclusivity(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", false)

	_, err := f.roster.AddPlayer(t.Context(), principalBob, "team-bravo", "p-pg-01", false)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, roster.ErrPlayerAlreadyRostered) {
		t.Fatalf("expected already-rostered violation, got %v", err)
	}
}

func TestRosterService_AddPlayer_RosterFull(t *testing.T) {
	f := newFixture(t)
	ten := []string{
		"p-pg-01", "p-sg-01", "p-sg-02", "p-sf-01", "p-pf-01",
		"p-pf-02", "p-c-01", "p-c-02", "p-gf-01", "p-pg-02",
	}
	for i, playerID := range ten {
		f.addSlot(t, "team-alpha", playerID, i < 5)
	}

	_, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-alpha", "p-sf-02", false)
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, roster.ErrRosterFull) {
		t.Fatalf("expected roster-full violation, got %v", err)
	}
}

func TestRosterService_AddPlayer_OwnershipEnforced(t *testing.T) {
	f := newFixture(t)

	if _, err := f.roster.AddPlayer(t.Context(), principalBob, "team-alpha", "p-pg-01", false); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied for foreign team, got %v", err)
	}
	if _, err := f.roster.AddPlayer(t.Context(), principalAdmin, "team-alpha", "p-pg-01", false); err != nil {
		t.Fatalf("expected admin principal allowed, got %v", err)
	}
	if _, err := f.roster.AddPlayer(t.Context(), principalAlice, "team-missing", "p-sg-01", false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown team, got %v", err)
	}
}

func TestRosterService_DropPlayer_AlwaysFree(t *testing.T) {
	f := newFixture(t)
	f.seedStartingFive(t)

	if err := f.roster.DropPlayer(t.Context(), principalAlice, "team-alpha", "p-pg-01"); err != nil {
		t.Fatalf("drop player failed: %v", err)
	}
	if used := f.movesUsed(t, "team-alpha"); used != 0 {
		t.Fatalf("expected dropping a starter to cost nothing, got %d moves", used)
	}
	if _, starter := f.starters(t, "team-alpha")["p-pg-01"]; starter {
		t.Fatal("expected slot removed")
	}

	err := f.roster.DropPlayer(t.Context(), principalAlice, "team-alpha", "p-pg-01")
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, roster.ErrPlayerNotOnTeam) {
		t.Fatalf("expected not-on-team violation on re-drop, got %v", err)
	}
}

func TestRosterService_SetStarters_PositionalLegality(t *testing.T) {
	f := newFixture(t)
	all := []string{"p-pg-01", "p-pg-02", "p-pg-03", "p-sg-01", "p-sg-02", "p-sf-01", "p-pf-01", "p-c-01", "p-pf-02"}
	for i, playerID := range all {
		f.addSlot(t, "team-alpha", playerID, i < 5)
	}

	// Five guards: no frontcourt presence.
	_, err := f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-pg-02", "p-pg-03", "p-sg-01", "p-sg-02"})
	if !errors.Is(err, roster.ErrFrontcourtRequirement) {
		t.Fatalf("expected frontcourt violation, got %v", err)
	}

	// One guard is not enough.
	_, err = f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sf-01", "p-pf-01", "p-c-01", "p-pf-02"})
	if !errors.Is(err, roster.ErrGuardRequirement) {
		t.Fatalf("expected guard violation, got %v", err)
	}

	// p-sf-02 exists in the player pool but is not on this roster.
	_, err = f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sg-01", "p-sf-01", "p-pf-01", "p-sf-02"})
	if !errors.Is(err, roster.ErrPlayerNotOnTeam) {
		t.Fatalf("expected not-on-team rejection, got %v", err)
	}
	_, err = f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sf-01", "p-pf-01", "p-c-01", "p-sf-01"})
	if !errors.Is(err, roster.ErrDuplicateStarterPlayer) {
		t.Fatalf("expected duplicate rejection, got %v", err)
	}

	_, err = f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sf-01", "p-pf-01", "p-c-01"})
	if !errors.Is(err, roster.ErrStarterCount) {
		t.Fatalf("expected starter count rejection, got %v", err)
	}

	// A rejected lineup leaves state untouched.
	if used := f.movesUsed(t, "team-alpha"); used != 0 {
		t.Fatalf("expected no moves consumed by rejected lineups, got %d", used)
	}
}

func TestRosterService_SetStarters_OnlyPromotionsConsumeMoves(t *testing.T) {
	f := newFixture(t)
	f.seedStartingFive(t)
	f.addSlot(t, "team-alpha", "p-sf-01", false)
	f.addSlot(t, "team-alpha", "p-pf-02", false)

	// Re-saving the current five is free.
	summary, err := f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sg-01", "p-sg-02", "p-pf-01", "p-c-01"})
	if err != nil {
		t.Fatalf("identity lineup save failed: %v", err)
	}
	if summary.Used != 0 || summary.Remaining != 3 {
		t.Fatalf("expected 0 used / 3 remaining, got %d / %d", summary.Used, summary.Remaining)
	}

	// Swapping two bench players in costs exactly two moves.
	summary, err = f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sg-01", "p-sg-02", "p-sf-01", "p-pf-02"})
	if err != nil {
		t.Fatalf("lineup swap failed: %v", err)
	}
	if summary.Used != 2 || summary.Remaining != 1 {
		t.Fatalf("expected 2 used / 1 remaining, got %d / %d", summary.Used, summary.Remaining)
	}

	// Swapping the same two back out needs two more moves; only one remains.
	_, err = f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sg-01", "p-sg-02", "p-pf-01", "p-c-01"})
	if !errors.Is(err, ErrBudgetExceeded) {
		t.Fatalf("expected ErrBudgetExceeded, got %v", err)
	}

	starters := f.starters(t, "team-alpha")
	if !starters["p-sf-01"] || !starters["p-pf-02"] || starters["p-pf-01"] {
		t.Fatalf("expected rejected lineup to change nothing, got %+v", starters)
	}
}

func TestRosterService_SetStarters_AuditsEachTransition(t *testing.T) {
	f := newFixture(t)
	f.seedStartingFive(t)
	f.addSlot(t, "team-alpha", "p-sf-01", false)

	_, err := f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sg-01", "p-sg-02", "p-pf-01", "p-sf-01"})
	if err != nil {
		t.Fatalf("lineup swap failed: %v", err)
	}

	actions := make(map[string]int)
	for _, entry := range f.audits.All() {
		actions[entry.Action]++
	}
	if actions[audit.ActionStarterBench] != 1 || actions[audit.ActionStarterPromote] != 1 {
		t.Fatalf("expected one BENCH and one START entry, got %+v", actions)
	}
}

func TestRosterService_GetMoveSummary(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)
	if err := f.teams.UpdateMovesThisWeek(t.Context(), "team-alpha", 2); err != nil {
		t.Fatalf("seed move counter: %v", err)
	}
	if _, err := f.admin.GrantMoves(t.Context(), "user-admin", "team-alpha", 0, 2, "make-up games"); err != nil {
		t.Fatalf("grant moves failed: %v", err)
	}

	summary, err := f.roster.GetMoveSummary(t.Context(), "team-alpha")
	if err != nil {
		t.Fatalf("get move summary failed: %v", err)
	}
	if summary.Base != 3 || summary.Granted != 2 || summary.Total != 5 {
		t.Fatalf("expected base 3 granted 2 total 5, got %+v", summary)
	}
	if summary.Used != 2 || summary.Remaining != 3 {
		t.Fatalf("expected used 2 remaining 3, got %+v", summary)
	}
	if summary.WeekID != week.FromTime(baseTime) {
		t.Fatalf("expected current week id, got %d", summary.WeekID)
	}
}

func TestRosterService_ResetWeeklyMoves(t *testing.T) {
	f := newFixture(t)
	for _, teamID := range []string{"team-alpha", "team-bravo"} {
		if err := f.teams.UpdateMovesThisWeek(t.Context(), teamID, 3); err != nil {
			t.Fatalf("seed move counter: %v", err)
		}
	}

	if err := f.roster.ResetWeeklyMoves(t.Context()); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if err := f.roster.ResetWeeklyMoves(t.Context()); err != nil {
		t.Fatalf("second reset failed: %v", err)
	}

	if f.movesUsed(t, "team-alpha") != 0 || f.movesUsed(t, "team-bravo") != 0 {
		t.Fatal("expected every counter zeroed")
	}
}

func TestRosterService_SnapshotLineups_NeverOverwrites(t *testing.T) {
	f := newFixture(t)
	f.seedStartingFive(t)
	f.addSlot(t, "team-alpha", "p-sf-01", false)

	if err := f.roster.SnapshotLineups(t.Context(), baseTime); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}

	lineup, found, err := f.lineups.Get(t.Context(), "team-alpha", week.FromTime(baseTime))
	if err != nil || !found {
		t.Fatalf("expected snapshot stored, found=%v err=%v", found, err)
	}
	if len(lineup.StarterIDs) != 5 || len(lineup.BenchIDs) != 1 {
		t.Fatalf("expected 5 starters and 1 bench, got %+v", lineup)
	}

	// A lineup change after the snapshot does not leak into it.
	if _, err := f.roster.SetStarters(t.Context(), principalAlice, "team-alpha",
		[]string{"p-pg-01", "p-sg-01", "p-sg-02", "p-pf-01", "p-sf-01"}); err != nil {
		t.Fatalf("lineup swap failed: %v", err)
	}
	if err := f.roster.SnapshotLineups(t.Context(), baseTime); err != nil {
		t.Fatalf("second snapshot failed: %v", err)
	}

	lineup, _, err = f.lineups.Get(t.Context(), "team-alpha", week.FromTime(baseTime))
	if err != nil {
		t.Fatalf("get snapshot failed: %v", err)
	}
	for _, playerID := range lineup.StarterIDs {
		if playerID == "p-sf-01" {
			t.Fatal("expected first snapshot preserved")
		}
	}
}

func TestRosterService_CarryOverStarters(t *testing.T) {
	f := newFixture(t)
	f.seedStartingFive(t)
	f.addSlot(t, "team-alpha", "p-sf-01", false)

	// Freeze this week's lineup, then enter the next week with an empty
	// starter set.
	if err := f.roster.SnapshotLineups(t.Context(), baseTime); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	for _, playerID := range []string{"p-pg-01", "p-sg-01", "p-sg-02", "p-pf-01", "p-c-01"} {
		if err := f.rosters.SetStarter(t.Context(), "seed-team-alpha-"+playerID, false); err != nil {
			t.Fatalf("bench lineup: %v", err)
		}
	}
	// Drop a snapshot starter entirely: carry-over skips them.
	if err := f.rosters.Delete(t.Context(), "seed-team-alpha-p-c-01"); err != nil {
		t.Fatalf("drop player: %v", err)
	}

	nextWeek := baseTime.AddDate(0, 0, 7)
	f.setNow(nextWeek)
	if err := f.roster.CarryOverStarters(t.Context(), nextWeek); err != nil {
		t.Fatalf("carry over failed: %v", err)
	}

	starters := f.starters(t, "team-alpha")
	for _, playerID := range []string{"p-pg-01", "p-sg-01", "p-sg-02", "p-pf-01"} {
		if !starters[playerID] {
			t.Fatalf("expected %s re-flagged as starter, got %+v", playerID, starters)
		}
	}
	if starters["p-sf-01"] {
		t.Fatalf("expected bench player untouched, got %+v", starters)
	}
	if used := f.movesUsed(t, "team-alpha"); used != 0 {
		t.Fatalf("expected carry-over to be free, got %d moves", used)
	}

	carryOvers := 0
	for _, entry := range f.audits.All() {
		if entry.Action == audit.ActionStarterCarryOver {
			carryOvers++
			if entry.ActorID != SystemActorID {
				t.Fatalf("expected system actor, got %s", entry.ActorID)
			}
		}
	}
	if carryOvers != 4 {
		t.Fatalf("expected 4 STARTER_CARRY_OVER audit entries, got %d", carryOvers)
	}
}

func TestRosterService_CarryOverStartersSkipsTeamsWithStarters(t *testing.T) {
	f := newFixture(t)
	f.seedStartingFive(t)
	f.addSlot(t, "team-alpha", "p-sf-01", false)

	if err := f.roster.SnapshotLineups(t.Context(), baseTime); err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	// The owner changes the lineup after the snapshot: one snapshot starter
	// benched, the bench player promoted. Carry-over must not revert this.
	if err := f.rosters.SetStarter(t.Context(), "seed-team-alpha-p-pg-01", false); err != nil {
		t.Fatalf("swap lineup: %v", err)
	}
	if err := f.rosters.SetStarter(t.Context(), "seed-team-alpha-p-sf-01", true); err != nil {
		t.Fatalf("swap lineup: %v", err)
	}

	nextWeek := baseTime.AddDate(0, 0, 7)
	f.setNow(nextWeek)
	if err := f.roster.CarryOverStarters(t.Context(), nextWeek); err != nil {
		t.Fatalf("carry over failed: %v", err)
	}

	starters := f.starters(t, "team-alpha")
	if starters["p-pg-01"] || !starters["p-sf-01"] {
		t.Fatalf("expected swapped lineup kept, got %+v", starters)
	}
	for _, entry := range f.audits.All() {
		if entry.Action == audit.ActionStarterCarryOver {
			t.Fatal("expected no STARTER_CARRY_OVER audit entries")
		}
	}
}
