package analytics

import (
	"testing"
	"time"
)

func TestBucketLabel(t *testing.T) {
	cases := []struct {
		size int
		want string
	}{
		{1, "1-5"}, {5, "1-5"}, {6, "6-10"}, {10, "6-10"},
		{11, "11-15"}, {15, "11-15"}, {16, "16+"}, {40, "16+"},
	}
	for _, c := range cases {
		if got := bucketLabel(c.size); got != c.want {
			t.Errorf("bucketLabel(%d) = %s, want %s", c.size, got, c.want)
		}
	}
}

func TestInsights_StreakExample(t *testing.T) {
	// Outcome sequence [1,1,0,1,1,1,0] → max win streak 3, max loss streak 1.
	records := outcomeRun(t, "2025-03-01T19:00:00Z", "ryu", []int{1, 1, 0, 1, 1, 1, 0})
	insights := Insights(records, 30*time.Minute)

	if len(insights.Momentum) != 1 {
		t.Fatalf("expected one momentum entry, got %d", len(insights.Momentum))
	}
	m := insights.Momentum[0]
	if m.MaxWinStreak != 3 {
		t.Errorf("max win streak = %d, want 3", m.MaxWinStreak)
	}
	if m.MaxLossStreak != 1 {
		t.Errorf("max loss streak = %d, want 1", m.MaxLossStreak)
	}
	if m.Size != 7 {
		t.Errorf("session size = %d, want 7", m.Size)
	}
}

func TestInsights_WarmupCooldown(t *testing.T) {
	// Two sessions: [W L W W L] and [L W].
	records := append(
		outcomeRun(t, "2025-03-01T19:00:00Z", "ryu", []int{1, 0, 1, 1, 0}),
		outcomeRun(t, "2025-03-02T19:00:00Z", "ken", []int{0, 1})...,
	)
	insights := Insights(records, 30*time.Minute)

	// Game 1 samples: 1, 0 → 0.5. Game 2 samples: 0, 1 → 0.5.
	if got := insights.Warmup["1"]; got != 0.5 {
		t.Errorf("warmup game 1 = %v, want 0.5", got)
	}
	if got := insights.Warmup["2"]; got != 0.5 {
		t.Errorf("warmup game 2 = %v, want 0.5", got)
	}
	// Games 3-5 samples come only from the first session: 1, 1, 0 → 0.6667.
	if got := insights.Warmup["3-5"]; got != 0.6667 {
		t.Errorf("warmup games 3-5 = %v, want 0.6667", got)
	}
	// Cooldown: last 3 of session one (1,1,0) plus both of session two (0,1) → 3/5.
	if got := insights.Cooldown["last3"]; got != 0.6 {
		t.Errorf("cooldown = %v, want 0.6", got)
	}
}

func TestInsights_WarmupBucketOmittedWithoutSamples(t *testing.T) {
	records := outcomeRun(t, "2025-03-01T19:00:00Z", "ryu", []int{1})
	insights := Insights(records, 30*time.Minute)

	if _, ok := insights.Warmup["2"]; ok {
		t.Error("game-2 bucket should be omitted for single-match sessions")
	}
	if _, ok := insights.Warmup["3-5"]; ok {
		t.Error("games-3-5 bucket should be omitted for single-match sessions")
	}
	if got := insights.Warmup["1"]; got != 1 {
		t.Errorf("warmup game 1 = %v, want 1", got)
	}
}

func TestInsights_LengthBuckets(t *testing.T) {
	// One 3-match session (bucket 1-5) and one 7-match session (bucket 6-10).
	records := append(
		outcomeRun(t, "2025-03-01T19:00:00Z", "ryu", []int{1, 1, 0}),
		outcomeRun(t, "2025-03-02T19:00:00Z", "ken", []int{1, 0, 0, 0, 1, 1, 1})...,
	)
	insights := Insights(records, 30*time.Minute)

	if len(insights.ByLength) != 2 {
		t.Fatalf("expected 2 length buckets, got %d", len(insights.ByLength))
	}
	if insights.ByLength[0].Range != "1-5" || insights.ByLength[1].Range != "6-10" {
		t.Errorf("buckets out of order: %+v", insights.ByLength)
	}
	if insights.ByLength[0].Count != 1 || insights.ByLength[0].AvgWinRate != 0.6667 {
		t.Errorf("1-5 bucket = %+v, want count 1 avg 0.6667", insights.ByLength[0])
	}
}

func TestInsights_WeeklyByLengthUsesMondayAnchor(t *testing.T) {
	// 2025-03-02 is a Sunday: its Monday week start is 2025-02-24.
	// 2025-03-03 is a Monday: its own week start.
	records := append(
		outcomeRun(t, "2025-03-02T19:00:00Z", "ryu", []int{1, 0}),
		outcomeRun(t, "2025-03-03T19:00:00Z", "ken", []int{1, 1})...,
	)
	insights := Insights(records, 30*time.Minute)

	if len(insights.WeeklyByLength) != 2 {
		t.Fatalf("expected 2 weekly rows, got %+v", insights.WeeklyByLength)
	}
	if insights.WeeklyByLength[0].WeekStart != "2025-02-24" {
		t.Errorf("first weekly row week start = %s, want 2025-02-24", insights.WeeklyByLength[0].WeekStart)
	}
	if insights.WeeklyByLength[1].WeekStart != "2025-03-03" {
		t.Errorf("second weekly row week start = %s, want 2025-03-03", insights.WeeklyByLength[1].WeekStart)
	}
	row := insights.WeeklyByLength[1]
	if row.Count != 1 || row.AvgWinRate == nil || *row.AvgWinRate != 1 {
		t.Errorf("monday row = %+v, want count 1 avg winrate 1", row)
	}
}

func TestInsights_TimeOfDayHeatmap(t *testing.T) {
	// Saturday 2025-03-01: 19:00 and 19:05 land in the 18h block; 21:00 in the 20h block.
	records := outcomeRun(t, "2025-03-01T19:00:00Z", "ryu", []int{1, 0})
	late := match(t, "2025-03-01T21:00:00Z", "ken", true)
	records = append(records, late)

	insights := Insights(records, 30*time.Minute)

	if len(insights.TimeOfDay) != 2 {
		t.Fatalf("expected 2 heatmap cells, got %+v", insights.TimeOfDay)
	}
	first := insights.TimeOfDay[0]
	if first.Day != "Saturday" || first.HourBucket != 18 {
		t.Errorf("first cell = %+v, want Saturday/18", first)
	}
	if first.Games != 2 || first.WinRate != 0.5 {
		t.Errorf("18h block = %+v, want 2 games at 0.5", first)
	}
	second := insights.TimeOfDay[1]
	if second.HourBucket != 20 || second.Games != 1 || second.WinRate != 1 {
		t.Errorf("20h block = %+v, want 1 game at 1.0", second)
	}
}

func TestInsights_Empty(t *testing.T) {
	insights := Insights(nil, 30*time.Minute)
	if len(insights.SessionsRaw) != 0 || len(insights.ByLength) != 0 ||
		len(insights.Warmup) != 0 || len(insights.Cooldown) != 0 ||
		len(insights.TimeOfDay) != 0 || len(insights.Momentum) != 0 {
		t.Errorf("expected empty insights, got %+v", insights)
	}
}
