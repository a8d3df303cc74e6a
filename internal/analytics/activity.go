package analytics

import (
	"sort"
	"time"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
	"github.com/zach-king-analytics/sf6-metrics/internal/timeutil"
)

// dayCount accumulates matches and wins for one local calendar date.
type dayCount struct {
	matches int
	wins    int
}

// countByDay groups records by local calendar date.
func countByDay(records []model.MatchRecord) map[string]dayCount {
	byDate := make(map[string]dayCount)
	for i := range records {
		key := timeutil.ISODate(timeutil.DateOf(records[i].Timestamp))
		c := byDate[key]
		c.matches++
		c.wins += records[i].WinInt()
		byDate[key] = c
	}
	return byDate
}

// ActivityByDay builds the daily series: one entry per local calendar date
// with at least one match, ordered by date.
func ActivityByDay(records []model.MatchRecord) []model.DayActivity {
	if len(records) == 0 {
		return nil
	}

	byDate := countByDay(records)
	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]model.DayActivity, 0, len(dates))
	for _, d := range dates {
		c := byDate[d]
		out = append(out, model.DayActivity{
			Date:    d,
			Matches: c.matches,
			Wins:    c.wins,
			WinRate: rate(c.wins, c.matches),
		})
	}
	return out
}

// ActivityByWeek builds the Sunday-anchored weekly grid. Each active week
// carries exactly seven day slots (Sunday..Saturday), zero-filled for days
// without matches, plus week totals. The grid keeps only the most recent
// maxWeeks weeks, oldest dropped first.
func ActivityByWeek(records []model.MatchRecord, maxWeeks int) []model.WeekActivity {
	if len(records) == 0 {
		return nil
	}

	byDate := countByDay(records)

	// Active weeks, keyed by Sunday-start local midnight.
	weeks := make(map[string]time.Time)
	for i := range records {
		ws := timeutil.WeekStart(records[i].Timestamp, time.Sunday)
		weeks[timeutil.ISODate(ws)] = ws
	}

	starts := make([]string, 0, len(weeks))
	for k := range weeks {
		starts = append(starts, k)
	}
	sort.Strings(starts)

	out := make([]model.WeekActivity, 0, len(starts))
	for _, wk := range starts {
		ws := weeks[wk]
		week := model.WeekActivity{
			WeekStart: wk,
			WeekEnd:   timeutil.ISODate(ws.AddDate(0, 0, 6)),
			Days:      make([]model.DayActivity, 0, 7),
		}
		for i := 0; i < 7; i++ {
			day := ws.AddDate(0, 0, i)
			iso := timeutil.ISODate(day)
			c := byDate[iso]
			week.Matches += c.matches
			week.Wins += c.wins
			week.Days = append(week.Days, model.DayActivity{
				Date:    iso,
				Matches: c.matches,
				Wins:    c.wins,
				WinRate: rate(c.wins, c.matches),
			})
		}
		if week.Matches == 0 {
			continue
		}
		week.WinRate = rate(week.Wins, week.Matches)
		out = append(out, week)
	}

	if maxWeeks > 0 && len(out) > maxWeeks {
		out = out[len(out)-maxWeeks:]
	}
	return out
}

// ActivityByWeekModes builds the combined weekly grid plus one grid per match
// mode. Modes whose grid comes out empty are dropped.
func ActivityByWeekModes(records []model.MatchRecord, maxWeeks int) model.ModeActivity {
	out := model.ModeActivity{
		All:   []model.WeekActivity{},
		Modes: map[string][]model.WeekActivity{},
	}
	if len(records) == 0 {
		return out
	}

	if grid := ActivityByWeek(records, maxWeeks); len(grid) > 0 {
		out.All = grid
	}

	byMode := make(map[string][]model.MatchRecord)
	for i := range records {
		byMode[records[i].Mode] = append(byMode[records[i].Mode], records[i])
	}
	for mode, recs := range byMode {
		grid := ActivityByWeek(recs, maxWeeks)
		if len(grid) > 0 {
			out.Modes[mode] = grid
		}
	}
	return out
}
