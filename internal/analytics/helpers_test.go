package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
)

// at parses an RFC3339 timestamp or fails the test.
func at(t *testing.T, ts string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", ts, err)
	}
	return parsed
}

func mr(v float64) *float64 { return &v }

// match builds a ranked, MR-valid record against the given opponent.
func match(t *testing.T, ts string, opponent string, win bool) model.MatchRecord {
	t.Helper()
	return model.MatchRecord{
		MatchHash:         fmt.Sprintf("h-%s-%s", opponent, ts),
		PlayerCFN:         "testplayer",
		PlayerCharacter:   "juri",
		OpponentCharacter: opponent,
		PlayerMR:          mr(1500),
		OpponentMR:        mr(1480),
		Timestamp:         at(t, ts),
		Win:               win,
		Mode:              model.RankedMode,
	}
}

// outcomeRun builds n ranked matches spaced 5 minutes apart starting at start,
// with outcomes taken from wins (1 = win).
func outcomeRun(t *testing.T, start string, opponent string, wins []int) []model.MatchRecord {
	t.Helper()
	base := at(t, start)
	out := make([]model.MatchRecord, 0, len(wins))
	for i, w := range wins {
		rec := match(t, base.Add(time.Duration(i)*5*time.Minute).Format(time.RFC3339), opponent, w == 1)
		rec.MatchHash = fmt.Sprintf("h-%s-%d", opponent, i)
		out = append(out, rec)
	}
	return out
}
