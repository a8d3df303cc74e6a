package analytics

import (
	"sort"
	"time"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
	"github.com/zach-king-analytics/sf6-metrics/internal/timeutil"
)

// MRTimeseries returns the ordered per-match rating series for the MR-valid
// ranked subset.
func MRTimeseries(records []model.MatchRecord) []model.RatingPoint {
	if len(records) == 0 {
		return nil
	}
	sorted := sortByTime(records)

	out := make([]model.RatingPoint, 0, len(sorted))
	for i := range sorted {
		rec := &sorted[i]
		out = append(out, model.RatingPoint{
			TS:       rec.Timestamp.Format(time.RFC3339),
			MR:       rec.PlayerMR,
			OppMR:    rec.OpponentMR,
			Win:      rec.WinInt(),
			Opponent: displayTag(rec.OpponentCharacter),
		})
	}
	return out
}

// MRWeeklyDelta returns the Monday-anchored weekly rating movement: for each
// week with at least one rated match, last rating minus first rating in
// timestamp order, alongside the week's start and end values. Weeks without
// rated matches are skipped, not zero-filled.
func MRWeeklyDelta(records []model.MatchRecord) []model.WeeklyMRDelta {
	if len(records) == 0 {
		return nil
	}
	sorted := sortByTime(records)

	type weekRange struct {
		first *float64
		last  *float64
	}
	byWeek := make(map[string]*weekRange)
	for i := range sorted {
		mr := sorted[i].PlayerMR
		if mr == nil {
			continue
		}
		wk := timeutil.ISODate(timeutil.WeekStart(sorted[i].Timestamp, time.Monday))
		r := byWeek[wk]
		if r == nil {
			r = &weekRange{first: mr}
			byWeek[wk] = r
		}
		r.last = mr
	}

	weeks := make([]string, 0, len(byWeek))
	for wk := range byWeek {
		weeks = append(weeks, wk)
	}
	sort.Strings(weeks)

	out := make([]model.WeeklyMRDelta, 0, len(weeks))
	for _, wk := range weeks {
		r := byWeek[wk]
		out = append(out, model.WeeklyMRDelta{
			WeekStart: wk,
			MRDelta:   ptr(round1(*r.last - *r.first)),
			MRStart:   ptr(round1(*r.first)),
			MREnd:     ptr(round1(*r.last)),
		})
	}
	return out
}
