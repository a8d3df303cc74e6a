package analytics

import (
	"testing"
	"time"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
)

// matchupRun builds games records against one opponent, the first wins of
// them winning, spaced one minute apart from start.
func matchupRun(t *testing.T, start string, opponent string, games, wins int) []model.MatchRecord {
	t.Helper()
	base := at(t, start)
	out := make([]model.MatchRecord, 0, games)
	for i := 0; i < games; i++ {
		rec := match(t, base.Add(time.Duration(i)*time.Minute).Format(time.RFC3339), opponent, i < wins)
		out = append(out, rec)
	}
	return out
}

func TestMatchups_Empty(t *testing.T) {
	stats := Matchups(nil, 5, 10)
	if stats.Table != nil || stats.Curves != nil || stats.MostPlayed != nil ||
		stats.Best != nil || stats.Worst != nil || stats.FixOne != nil {
		t.Errorf("expected zero-value stats for empty input, got %+v", stats)
	}
}

func TestMatchups_CounterfactualExactNumbers(t *testing.T) {
	// Ken: 20 games 5 wins; Ryu: 80 games 45 wins. Total 100 games 50 wins.
	// Fixing Ken at 50%: new wins = 50 − 5 + 10 = 55 → 55.0%, lift 5.0 points.
	records := append(
		matchupRun(t, "2025-03-01T10:00:00Z", "ken", 20, 5),
		matchupRun(t, "2025-03-02T10:00:00Z", "ryu", 80, 45)...,
	)

	stats := Matchups(records, 5, 10)

	fix := stats.FixOne
	if fix == nil {
		t.Fatal("expected a fix-one recommendation")
	}
	if fix.Opponent != "Ken" {
		t.Errorf("fix opponent = %s, want Ken", fix.Opponent)
	}
	if fix.OverallWinRatePct != 50.0 {
		t.Errorf("base overall = %v, want 50.0", fix.OverallWinRatePct)
	}
	if fix.NewOverallWinRatePct != 55.0 {
		t.Errorf("simulated overall = %v, want 55.0", fix.NewOverallWinRatePct)
	}
	if fix.LiftPctPoints != 5.0 {
		t.Errorf("lift = %v, want 5.0", fix.LiftPctPoints)
	}
	if fix.Games != 20 || fix.CurrentWinRatePct != 25.0 || fix.SimulatedWinRatePct != 50.0 {
		t.Errorf("fix detail wrong: %+v", fix)
	}
}

func TestMatchups_NoRecommendationWhenNoGain(t *testing.T) {
	// 10-0 against everyone: simulating 50% can only hurt.
	records := matchupRun(t, "2025-03-01T10:00:00Z", "ryu", 10, 10)
	stats := Matchups(records, 5, 10)
	if stats.FixOne != nil {
		t.Errorf("expected no recommendation for a perfect record, got %+v", stats.FixOne)
	}
}

func TestMatchups_CurveStartsAtBaseline(t *testing.T) {
	records := matchupRun(t, "2025-03-01T10:00:00Z", "ryu", 8, 4)
	stats := Matchups(records, 5, 10)

	if len(stats.Curves) != 1 {
		t.Fatalf("expected one curve, got %d", len(stats.Curves))
	}
	c := stats.Curves[0]
	if len(c.Games) != 4 {
		t.Fatalf("curve length = %d, want 4 (games 5..8)", len(c.Games))
	}
	for i, g := range c.Games {
		if g != 5+i {
			t.Errorf("curve index %d = game %d, want %d", i, g, 5+i)
		}
	}
	// First 4 games were wins: cumulative rate at game 5 is 4/5.
	if c.CumWinRate[0] != 0.8 {
		t.Errorf("cum winrate at baseline = %v, want 0.8", c.CumWinRate[0])
	}
}

func TestMatchups_SubBaselineOpponentKeptInTableOnly(t *testing.T) {
	records := append(
		matchupRun(t, "2025-03-01T10:00:00Z", "ryu", 8, 4),
		matchupRun(t, "2025-03-02T10:00:00Z", "zangief", 3, 1)...,
	)
	stats := Matchups(records, 5, 10)

	if len(stats.Curves) != 1 || stats.Curves[0].Opponent != "Ryu" {
		t.Errorf("zangief (3 games) must not produce a curve: %+v", stats.Curves)
	}
	if len(stats.Table) != 2 {
		t.Errorf("summary table should still carry both opponents, got %d rows", len(stats.Table))
	}
}

func TestMatchups_BestWorstRequireStability(t *testing.T) {
	records := append(
		matchupRun(t, "2025-03-01T10:00:00Z", "ryu", 12, 9),    // 75%, stable
		matchupRun(t, "2025-03-02T10:00:00Z", "ken", 10, 3)..., // 30%, stable
	)
	records = append(records, matchupRun(t, "2025-03-03T10:00:00Z", "akuma", 5, 5)...) // 100% but unstable

	stats := Matchups(records, 5, 10)

	if stats.Best == nil || stats.Best.Opponent != "Ryu" {
		t.Errorf("best = %+v, want Ryu (Akuma is under the stability threshold)", stats.Best)
	}
	if stats.Worst == nil || stats.Worst.Opponent != "Ken" {
		t.Errorf("worst = %+v, want Ken", stats.Worst)
	}

	// Nobody stable → both null.
	small := matchupRun(t, "2025-03-04T10:00:00Z", "ryu", 4, 2)
	s2 := Matchups(small, 5, 10)
	if s2.Best != nil || s2.Worst != nil {
		t.Errorf("expected null best/worst below stability threshold, got %+v / %+v", s2.Best, s2.Worst)
	}
}

func TestMatchups_MostPlayedTieBreaksAlphabetically(t *testing.T) {
	records := append(
		matchupRun(t, "2025-03-01T10:00:00Z", "zangief", 6, 3),
		matchupRun(t, "2025-03-02T10:00:00Z", "blanka", 6, 2)...,
	)
	stats := Matchups(records, 5, 10)

	if stats.MostPlayed == nil || stats.MostPlayed.Opponent != "Blanka" {
		t.Errorf("most played = %+v, want Blanka on alphabetical tie-break", stats.MostPlayed)
	}
}

func TestMatchups_TableOrderedByOpponent(t *testing.T) {
	records := append(
		matchupRun(t, "2025-03-01T10:00:00Z", "zangief", 2, 1),
		matchupRun(t, "2025-03-02T10:00:00Z", "blanka", 2, 1)...,
	)
	stats := Matchups(records, 5, 10)
	if stats.Table[0].Opponent != "Blanka" || stats.Table[1].Opponent != "Zangief" {
		t.Errorf("table not ordered by opponent tag: %+v", stats.Table)
	}
}
