package roster

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRosterFull             = errors.New("roster is full")
	ErrPlayerAlreadyRostered  = errors.New("player already rostered in this league")
	ErrStarterCount           = errors.New("starting lineup must contain exactly 5 players")
	ErrGuardRequirement       = errors.New("starting lineup requires at least 2 guards")
	ErrFrontcourtRequirement  = errors.New("starting lineup requires at least 1 forward or center")
	ErrPlayerNotOnTeam        = errors.New("player is not on this team's roster")
	ErrDuplicateStarterPlayer = errors.New("duplicate player in starting lineup")
)

// Rules stores roster validation parameters.
type Rules struct {
	MaxRosterSize        int
	StarterCount         int
	MinGuardStarters     int
	MinFrontcourtStarter int
}

func DefaultRules() Rules {
	return Rules{
		MaxRosterSize:        10,
		StarterCount:         5,
		MinGuardStarters:     2,
		MinFrontcourtStarter: 1,
	}
}

// ValidateStarterPositions checks the positional composition of a candidate
// starting five. Positions are matched on the letters the provider string
// contains: anything with a "G" counts as a guard, anything with an "F" or
// "C" counts as frontcourt.
func ValidateStarterPositions(positions []string, rules Rules) error {
	if len(positions) != rules.StarterCount {
		return fmt.Errorf("%w: got %d", ErrStarterCount, len(positions))
	}

	guards := 0
	frontcourt := 0
	for _, pos := range positions {
		upper := strings.ToUpper(pos)
		if strings.Contains(upper, "G") {
			guards++
		}
		if strings.Contains(upper, "F") || strings.Contains(upper, "C") {
			frontcourt++
		}
	}

	if guards < rules.MinGuardStarters {
		return fmt.Errorf("%w: got %d", ErrGuardRequirement, guards)
	}
	if frontcourt < rules.MinFrontcourtStarter {
		return fmt.Errorf("%w: got %d", ErrFrontcourtRequirement, frontcourt)
	}

	return nil
}
