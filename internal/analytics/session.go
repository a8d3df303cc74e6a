package analytics

import (
	"time"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
)

// Sessions partitions the records into play sessions: sort ascending by
// timestamp, then start a new session whenever the gap to the previous match
// reaches the inactivity threshold. Every record lands in exactly one session,
// sessions are ordered by start time, and each holds at least one match.
func Sessions(records []model.MatchRecord, gap time.Duration) []model.Session {
	if len(records) == 0 {
		return nil
	}

	sorted := sortByTime(records)

	var sessions []model.Session
	current := []model.MatchRecord{sorted[0]}
	prev := sorted[0].Timestamp

	for _, rec := range sorted[1:] {
		if rec.Timestamp.Sub(prev) >= gap {
			sessions = append(sessions, model.Session{Matches: current})
			current = []model.MatchRecord{rec}
		} else {
			current = append(current, rec)
		}
		prev = rec.Timestamp
	}
	sessions = append(sessions, model.Session{Matches: current})

	return sessions
}
