// Package analytics turns a player's match log into the derived aggregates of
// the report: sessions, activity calendars, matchup statistics, session
// insights, and MR trend series. Every function is a pure transform over an
// immutable record slice plus an explicit configuration value; empty input
// degrades to an empty result, never an error.
package analytics

import (
	"math"
	"sort"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
)

// rate returns wins/games, or nil when games is zero. Win rates are never
// coerced to 0 on an empty denominator.
func rate(wins, games int) *float64 {
	if games == 0 {
		return nil
	}
	r := round4(float64(wins) / float64(games))
	return &r
}

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }
func round1(x float64) float64 { return math.Round(x*10) / 10 }

func ptr(x float64) *float64 { return &x }

// displayTag title-cases a normalized character tag for output.
func displayTag(tag string) string {
	return cases.Title(language.English).String(tag)
}

// sortByTime orders records ascending by timestamp without mutating the input.
func sortByTime(records []model.MatchRecord) []model.MatchRecord {
	out := make([]model.MatchRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out
}

// longestRun returns the longest consecutive run of the given outcome.
func longestRun(outcomes []int, value int) int {
	maxRun, cur := 0, 0
	for _, v := range outcomes {
		if v == value {
			cur++
			if cur > maxRun {
				maxRun = cur
			}
		} else {
			cur = 0
		}
	}
	return maxRun
}
