package usecase

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-hoops/internal/domain/bonus"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/stats"
	"github.com/riskibarqy/fantasy-hoops/internal/domain/week"
)

func awardsFor(awards []bonus.Award, category bonus.Category) []bonus.Award {
	out := make([]bonus.Award, 0)
	for _, award := range awards {
		if award.Category == category {
			out = append(out, award)
		}
	}
	return out
}

func TestBonusService_ComputeWeeklyBonuses_TiesAwardEveryLeader(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)
	f.addSlot(t, "team-bravo", "p-c-01", true)

	f.stats.Add(
		stats.Record{PlayerID: "p-pg-01", GameID: "g1", GameTime: baseTime, Points: 30, Assists: 12},
		stats.Record{PlayerID: "p-c-01", GameID: "g1", GameTime: baseTime, Points: 30, Rebounds: 15},
	)

	if err := f.bonus.ComputeWeeklyBonuses(t.Context(), baseTime); err != nil {
		t.Fatalf("compute weekly bonuses failed: %v", err)
	}

	awards, err := f.bonus.GetWeekBonuses(t.Context(), week.FromTime(baseTime))
	if err != nil {
		t.Fatalf("get week bonuses failed: %v", err)
	}

	topScorers := awardsFor(awards, bonus.CategoryTopScorer)
	if len(topScorers) != 2 {
		t.Fatalf("expected both tied players awarded top_scorer, got %d", len(topScorers))
	}
	for _, award := range topScorers {
		if award.Points != bonus.PointsTopScorer {
			t.Fatalf("expected %.1f top_scorer points, got %.1f", bonus.PointsTopScorer, award.Points)
		}
	}

	rebounders := awardsFor(awards, bonus.CategoryTopRebounder)
	if len(rebounders) != 1 || rebounders[0].PlayerID != "p-c-01" {
		t.Fatalf("expected p-c-01 as sole top_rebounder, got %+v", rebounders)
	}
	playmakers := awardsFor(awards, bonus.CategoryTopPlaymaker)
	if len(playmakers) != 1 || playmakers[0].PlayerID != "p-pg-01" {
		t.Fatalf("expected p-pg-01 as sole top_playmaker, got %+v", playmakers)
	}
}

func TestBonusService_ComputeWeeklyBonuses_TripleDoubleStacks(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)

	f.stats.Add(
		stats.Record{PlayerID: "p-pg-01", GameID: "g1", GameTime: baseTime, Points: 12, Rebounds: 11, Assists: 10},
		stats.Record{PlayerID: "p-pg-01", GameID: "g2", GameTime: baseTime.Add(48 * time.Hour), Points: 15, Rebounds: 10, Assists: 12},
	)

	if err := f.bonus.ComputeWeeklyBonuses(t.Context(), baseTime); err != nil {
		t.Fatalf("compute weekly bonuses failed: %v", err)
	}
	awards, err := f.bonus.GetWeekBonuses(t.Context(), week.FromTime(baseTime))
	if err != nil {
		t.Fatalf("get week bonuses failed: %v", err)
	}

	tripleDoubles := awardsFor(awards, bonus.CategoryTripleDouble)
	if len(tripleDoubles) != 1 {
		t.Fatalf("expected one stacked triple_double row, got %d", len(tripleDoubles))
	}
	if tripleDoubles[0].Instances != 2 || tripleDoubles[0].Points != 20.0 {
		t.Fatalf("expected 2 instances at 20.0 points, got %d at %.1f",
			tripleDoubles[0].Instances, tripleDoubles[0].Points)
	}

	// Two triple-doubles are also two double-doubles, so the streak fires.
	streaks := awardsFor(awards, bonus.CategoryDoubleDoubleStreak)
	if len(streaks) != 1 || streaks[0].Points != bonus.PointsDoubleDouble {
		t.Fatalf("expected double_double_streak alongside triple_doubles, got %+v", streaks)
	}
}

func TestBonusService_ComputeWeeklyBonuses_DoubleDoubleStreakNeedsTwoGames(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)
	f.addSlot(t, "team-bravo", "p-c-01", true)

	f.stats.Add(
		stats.Record{PlayerID: "p-pg-01", GameID: "g1", GameTime: baseTime, Points: 20, Rebounds: 10},
		stats.Record{PlayerID: "p-pg-01", GameID: "g2", GameTime: baseTime.Add(24 * time.Hour), Points: 11, Assists: 10},
		stats.Record{PlayerID: "p-c-01", GameID: "g1", GameTime: baseTime, Points: 18, Rebounds: 14},
	)

	if err := f.bonus.ComputeWeeklyBonuses(t.Context(), baseTime); err != nil {
		t.Fatalf("compute weekly bonuses failed: %v", err)
	}
	awards, err := f.bonus.GetWeekBonuses(t.Context(), week.FromTime(baseTime))
	if err != nil {
		t.Fatalf("get week bonuses failed: %v", err)
	}

	streaks := awardsFor(awards, bonus.CategoryDoubleDoubleStreak)
	if len(streaks) != 1 || streaks[0].PlayerID != "p-pg-01" {
		t.Fatalf("expected only the two-game double-double player awarded, got %+v", streaks)
	}
}

func TestBonusService_ComputeWeeklyBonuses_EfficiencyRequiresThreeGames(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)
	f.addSlot(t, "team-bravo", "p-c-01", true)

	// p-c-01 shoots a perfect 100% but only plays twice; p-pg-01 qualifies
	// with three games at 50%.
	f.stats.Add(
		stats.Record{PlayerID: "p-c-01", GameID: "g1", GameTime: baseTime, FieldGoalsMade: 5, FieldGoalsAttempted: 5},
		stats.Record{PlayerID: "p-c-01", GameID: "g2", GameTime: baseTime.Add(24 * time.Hour), FieldGoalsMade: 4, FieldGoalsAttempted: 4},
		stats.Record{PlayerID: "p-pg-01", GameID: "g1", GameTime: baseTime, FieldGoalsMade: 5, FieldGoalsAttempted: 10},
		stats.Record{PlayerID: "p-pg-01", GameID: "g2", GameTime: baseTime.Add(24 * time.Hour), FieldGoalsMade: 4, FieldGoalsAttempted: 8},
		stats.Record{PlayerID: "p-pg-01", GameID: "g3", GameTime: baseTime.Add(48 * time.Hour), FieldGoalsMade: 3, FieldGoalsAttempted: 6},
	)

	if err := f.bonus.ComputeWeeklyBonuses(t.Context(), baseTime); err != nil {
		t.Fatalf("compute weekly bonuses failed: %v", err)
	}
	awards, err := f.bonus.GetWeekBonuses(t.Context(), week.FromTime(baseTime))
	if err != nil {
		t.Fatalf("get week bonuses failed: %v", err)
	}

	efficiency := awardsFor(awards, bonus.CategoryEfficiency)
	if len(efficiency) != 1 || efficiency[0].PlayerID != "p-pg-01" {
		t.Fatalf("expected p-pg-01 as sole efficiency leader, got %+v", efficiency)
	}
	if efficiency[0].Points != bonus.PointsEfficiency {
		t.Fatalf("expected %.1f efficiency points, got %.1f", bonus.PointsEfficiency, efficiency[0].Points)
	}
}

func TestBonusService_ComputeWeeklyBonuses_FreeAgentSkippedSilently(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)

	// The unrostered p-c-02 leads every category; the rostered runner-up
	// does not inherit the award.
	f.stats.Add(
		stats.Record{PlayerID: "p-c-02", GameID: "g1", GameTime: baseTime, Points: 40, Rebounds: 20, Assists: 15, Steals: 5, Blocks: 5},
		stats.Record{PlayerID: "p-pg-01", GameID: "g1", GameTime: baseTime, Points: 20, Rebounds: 5, Assists: 8, Steals: 2},
	)

	if err := f.bonus.ComputeWeeklyBonuses(t.Context(), baseTime); err != nil {
		t.Fatalf("compute weekly bonuses failed: %v", err)
	}
	awards, err := f.bonus.GetWeekBonuses(t.Context(), week.FromTime(baseTime))
	if err != nil {
		t.Fatalf("get week bonuses failed: %v", err)
	}

	if len(awards) != 0 {
		t.Fatalf("expected no awards when the leader is a free agent, got %+v", awards)
	}
}

func TestBonusService_ComputeWeeklyBonuses_Idempotent(t *testing.T) {
	f := newFixture(t)
	f.addSlot(t, "team-alpha", "p-pg-01", true)
	f.stats.Add(stats.Record{PlayerID: "p-pg-01", GameID: "g1", GameTime: baseTime, Points: 25})

	for i := 0; i < 3; i++ {
		if err := f.bonus.ComputeWeeklyBonuses(t.Context(), baseTime); err != nil {
			t.Fatalf("run %d failed: %v", i+1, err)
		}
	}

	awards, err := f.bonus.GetWeekBonuses(t.Context(), week.FromTime(baseTime))
	if err != nil {
		t.Fatalf("get week bonuses failed: %v", err)
	}
	if got := len(awardsFor(awards, bonus.CategoryTopScorer)); got != 1 {
		t.Fatalf("expected 1 top_scorer row after reruns, got %d", got)
	}
}
