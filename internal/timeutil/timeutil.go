// Package timeutil canonicalizes match timestamps into the reporting timezone
// and derives calendar buckets from them.
package timeutil

import (
	"time"
)

// Accepted timestamp layouts, tried in order. Layouts without a zone are
// interpreted as UTC before conversion to the reporting timezone.
var (
	zonedLayouts = []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05Z07:00",
	}
	naiveLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
)

// Parse converts a raw timestamp string into an instant in loc.
// Returns false for unparseable input; callers skip such records rather
// than abort the run.
func Parse(raw string, loc *time.Location) (time.Time, bool) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// DateOf floors t to local midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns local midnight of the most recent day with the given
// weekday, at or before t. Sunday anchors the activity grids; Monday anchors
// the rating-delta and session-length rollups.
func WeekStart(t time.Time, anchor time.Weekday) time.Time {
	days := (int(t.Weekday()) - int(anchor) + 7) % 7
	y, m, d := t.AddDate(0, 0, -days).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ISODate formats t as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}
