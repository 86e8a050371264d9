package memory

import (
	"github.com/riskibarqy/fantasy-hoops/internal/domain/player"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/team"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/user"
)

const LeagueIDDemo = "demo-league-2026"

func SeedUsers() []user.User {
	return []user.User{
		{ID: "user-admin", Name: "Commissioner", IsAdmin: true},
		{ID: "user-alice", Name: "Alice"},
		{ID: "user-bob", Name: "Bob"},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-alpha", LeagueID: LeagueIDDemo, OwnerUserID: "user-alice", Name: "Alpha Dunkers"},
		{ID: "team-bravo", LeagueID: LeagueIDDemo, OwnerUserID: "user-bob", Name: "Bravo Ballers"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "p-pg-01", Name: "Dex Carter", Position: "PG"},
		{ID: "p-sg-01", Name: "Milo Trent", Position: "SG"},
		{ID: "p-sg-02", Name: "Ray Okafor", Position: "SG"},
		{ID: "p-sf-01", Name: "Jon Vasic", Position: "SF"},
		{ID: "p-pf-01", Name: "Tre Aldana", Position: "PF"},
		{ID: "p-pf-02", Name: "Omar Diallo", Position: "PF"},
		{ID: "p-c-01", Name: "Big Lou Hale", Position: "C"},
		{ID: "p-c-02", Name: "Stan Petrov", Position: "C"},
		{ID: "p-gf-01", Name: "Ty Monroe", Position: "G-F"},
		{ID: "p-pg-02", Name: "Ash Nakano", Position: "PG"},
		{ID: "p-sf-02", Name: "Leo Brandt", Position: "SF"},
		{ID: "p-pg-03", Name: "Vic Moreau", Position: "PG"},
	}
}
