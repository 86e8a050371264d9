package usecase

import (
	"fmt"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/roster"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/user"
	"github.com/riskibarqy/fantasy-hoops/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fantasy-hoops/internal/platform/logging"
)

// baseTime is a Wednesday; its ISO week runs 2026-03-02 .. 2026-03-08.
var baseTime = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

var (
	principalAlice = user.Principal{UserID: "user-alice"}
	principalBob   = user.Principal{UserID: "user-bob"}
	principalAdmin = user.Principal{UserID: "user-admin", IsAdmin: true}
)

type seqIDGenerator struct {
	prefix string
	n      int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n), nil
}

type fixture struct {
	users   *memory.UserRepository
	teams   *memory.TeamRepository
	players *memory.PlayerRepository
	rosters *memory.RosterRepository
	stats   *memory.StatsRepository
	scores  *memory.ScoringRepository
	bonuses *memory.BonusRepository
	grants  *memory.MovesRepository
	lineups *memory.LineupRepository
	audits  *memory.AuditRepository

	scoring *ScoringService
	bonus   *BonusService
	roster  *RosterService
	admin   *AdminService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		users:   memory.NewUserRepository(memory.SeedUsers()),
		teams:   memory.NewTeamRepository(memory.SeedTeams()),
		players: memory.NewPlayerRepository(memory.SeedPlayers()),
		rosters: memory.NewRosterRepository(nil),
		stats:   memory.NewStatsRepository(nil),
		scores:  memory.NewScoringRepository(),
		bonuses: memory.NewBonusRepository(),
		grants:  memory.NewMovesRepository(),
		lineups: memory.NewLineupRepository(),
		audits:  memory.NewAuditRepository(),
	}

	tx := memory.NewTxManager()
	logger := logging.NewNop()

	f.scoring = NewScoringService(f.stats, f.rosters, f.scores, tx, logger)
	f.bonus = NewBonusService(f.stats, f.rosters, f.bonuses, tx, logger)
	f.roster = NewRosterService(
		f.teams, f.players, f.rosters, f.grants, f.lineups, f.audits,
		tx, &seqIDGenerator{prefix: "id"}, logger,
	)
	f.admin = NewAdminService(
		f.users, f.teams, f.players, f.rosters, f.grants, f.lineups,
		f.scores, f.audits, f.scoring,
		tx, &seqIDGenerator{prefix: "adm"}, logger,
	)

	f.setNow(baseTime)
	return f
}

func (f *fixture) setNow(now time.Time) {
	clock := func() time.Time { return now }
	f.scoring.now = clock
	f.bonus.now = clock
	f.roster.now = clock
	f.admin.now = clock
}

func (f *fixture) addSlot(t *testing.T, teamID, playerID string, isStarter bool) {
	t.Helper()

	pl, found, err := f.players.Get(t.Context(), playerID)
	if err != nil || !found {
		t.Fatalf("seed slot: unknown player %s", playerID)
	}
	err = f.rosters.Insert(t.Context(), roster.Slot{
		ID:        "seed-" + teamID + "-" + playerID,
		LeagueID:  memory.LeagueIDDemo,
		TeamID:    teamID,
		PlayerID:  playerID,
		Position:  pl.Position,
		IsStarter: isStarter,
		CreatedAt: baseTime,
		UpdatedAt: baseTime,
	})
	if err != nil {
		t.Fatalf("seed slot: %v", err)
	}
}

// seedStartingFive gives team-alpha a legal lineup (3 guards, 2 frontcourt).
func (f *fixture) seedStartingFive(t *testing.T) {
	t.Helper()
	for _, playerID := range []string{"p-pg-01", "p-sg-01", "p-sg-02", "p-pf-01", "p-c-01"} {
		f.addSlot(t, "team-alpha", playerID, true)
	}
}

func (f *fixture) starters(t *testing.T, teamID string) map[string]bool {
	t.Helper()

	slots, err := f.rosters.ListByTeam(t.Context(), teamID)
	if err != nil {
		t.Fatalf("list roster: %v", err)
	}
	out := make(map[string]bool, len(slots))
	for _, slot := range slots {
		out[slot.PlayerID] = slot.IsStarter
	}
	return out
}

func (f *fixture) movesUsed(t *testing.T, teamID string) int {
	t.Helper()

	tm, found, err := f.teams.Get(t.Context(), teamID)
	if err != nil || !found {
		t.Fatalf("get team %s: found=%v err=%v", teamID, found, err)
	}
	return tm.MovesThisWeek
}
