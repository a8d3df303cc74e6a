package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zach-king-analytics/sf6-metrics/internal/config"
	"github.com/zach-king-analytics/sf6-metrics/internal/model"
)

// BuildReport runs the whole pipeline for one player and assembles the final
// report. A player with no records still gets a valid, empty report; a player
// with no MR-valid ranked records gets an overall summary and activity grids
// but a null ranked section.
func BuildReport(cfn string, records []model.MatchRecord, cfg config.Report) *model.Report {
	rep := &model.Report{
		PlayerCFN:   cfn,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ReportID:    uuid.NewString(),
		BaselineN:   cfg.BaselineN,
		Matchups:    []model.MatchupCurve{},
	}

	var rankedMR []model.MatchRecord
	for i := range records {
		if records[i].Mode == model.RankedMode && records[i].MRValid(cfg.MRMax) {
			rankedMR = append(rankedMR, records[i])
		}
	}

	rep.Summary.Overall = overallSummary(records)
	rep.Summary.ActivityByWeekModes = ActivityByWeekModes(records, cfg.MaxWeeks)

	if len(rankedMR) > 0 {
		stats := Matchups(rankedMR, cfg.BaselineN, cfg.MinGamesStable)
		if len(stats.Curves) > 0 {
			rep.Matchups = stats.Curves
		}
		rep.Summary.Ranked = rankedSummary(rankedMR, records, stats, cfg)
	}

	return rep
}

// overallSummary covers all modes with no rating assumptions.
func overallSummary(records []model.MatchRecord) model.OverallSummary {
	out := model.OverallSummary{
		MatchesAnalyzed:    len(records),
		ModeBreakdown:      []model.ModeShare{},
		CharacterBreakdown: []model.CharacterShare{},
	}
	if len(records) == 0 {
		return out
	}

	start, end := timeRange(records)
	out.DatasetStart = &start
	out.DatasetEnd = &end
	out.ModeBreakdown = modeBreakdown(records)
	out.CharacterBreakdown = characterBreakdown(records)
	return out
}

// rankedSummary is computed over the MR-valid ranked subset. Character usage
// and the main character come from the full record set, since character data
// is mode-independent.
func rankedSummary(rankedMR, all []model.MatchRecord, stats MatchupStats, cfg config.Report) *model.RankedSummary {
	wins := 0
	var mrSum, oppMRSum float64
	var mrN, oppMRN int
	for i := range rankedMR {
		wins += rankedMR[i].WinInt()
		if rankedMR[i].PlayerMR != nil {
			mrSum += *rankedMR[i].PlayerMR
			mrN++
		}
		if rankedMR[i].OpponentMR != nil {
			oppMRSum += *rankedMR[i].OpponentMR
			oppMRN++
		}
	}
	winRate := float64(wins) / float64(len(rankedMR))
	start, end := timeRange(rankedMR)

	out := &model.RankedSummary{
		MainCharacter:      mainCharacter(all),
		MatchesAnalyzed:    len(rankedMR),
		DatasetStart:       &start,
		DatasetEnd:         &end,
		OverallWinRate:     round4(winRate),
		OverallWinRatePct:  round1(winRate * 100),
		MostPlayedMatchup:  stats.MostPlayed,
		BestMatchup:        stats.Best,
		WorstMatchup:       stats.Worst,
		MinGamesForStable:  cfg.MinGamesStable,
		MatchupTable:       stats.Table,
		FixOneMatchup:      stats.FixOne,
		CharacterBreakdown: characterBreakdown(all),
		SessionStats:       Insights(rankedMR, cfg.SessionGap),
		ActivityByDay:      ActivityByDay(rankedMR),
		ActivityByWeek:     ActivityByWeek(rankedMR, cfg.MaxWeeks),
		MRTimeseries:       MRTimeseries(rankedMR),
		MRWeeklyDelta:      MRWeeklyDelta(rankedMR),
	}
	if mrN > 0 {
		out.AvgMR = ptr(mrSum / float64(mrN))
	}
	if oppMRN > 0 {
		out.AvgOpponentMR = ptr(oppMRSum / float64(oppMRN))
	}
	return out
}

// timeRange returns the ISO dates of the earliest and latest records.
func timeRange(records []model.MatchRecord) (start, end string) {
	minT, maxT := records[0].Timestamp, records[0].Timestamp
	for i := range records {
		t := records[i].Timestamp
		if t.Before(minT) {
			minT = t
		}
		if t.After(maxT) {
			maxT = t
		}
	}
	return minT.Format("2006-01-02"), maxT.Format("2006-01-02")
}

// modeBreakdown lists each mode's match count and share, largest first.
func modeBreakdown(records []model.MatchRecord) []model.ModeShare {
	counts := make(map[string]int)
	for i := range records {
		counts[records[i].Mode]++
	}
	out := make([]model.ModeShare, 0, len(counts))
	for mode, n := range counts {
		out = append(out, model.ModeShare{
			Mode:     mode,
			Matches:  n,
			SharePct: round1(100 * float64(n) / float64(len(records))),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Matches != out[j].Matches {
			return out[i].Matches > out[j].Matches
		}
		return out[i].Mode < out[j].Mode
	})
	return out
}

// characterBreakdown lists the player's character usage across all matches,
// largest share first, with an Unknown bucket for records missing the tag.
func characterBreakdown(records []model.MatchRecord) []model.CharacterShare {
	total := len(records)
	if total == 0 {
		return []model.CharacterShare{}
	}

	counts := make(map[string]int)
	unknown := 0
	for i := range records {
		name := strings.TrimSpace(records[i].PlayerCharacter)
		if name == "" {
			unknown++
			continue
		}
		counts[displayTag(model.NormalizeTag(name))]++
	}

	out := make([]model.CharacterShare, 0, len(counts)+1)
	for name, games := range counts {
		out = append(out, model.CharacterShare{
			Character: name,
			Games:     games,
			SharePct:  round1(100 * float64(games) / float64(total)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Games != out[j].Games {
			return out[i].Games > out[j].Games
		}
		return out[i].Character < out[j].Character
	})
	if unknown > 0 {
		out = append(out, model.CharacterShare{
			Character: "Unknown",
			Games:     unknown,
			SharePct:  round1(100 * float64(unknown) / float64(total)),
		})
	}
	return out
}

// mainCharacter is the modal character tag across all matches; ties resolve
// alphabetically. Nil when no record carries a character tag.
func mainCharacter(records []model.MatchRecord) *string {
	counts := make(map[string]int)
	for i := range records {
		name := model.NormalizeTag(records[i].PlayerCharacter)
		if name == "" {
			continue
		}
		counts[name]++
	}
	var best string
	bestN := 0
	for name, n := range counts {
		if n > bestN || (n == bestN && name < best) {
			best, bestN = name, n
		}
	}
	if bestN == 0 {
		return nil
	}
	s := displayTag(best)
	return &s
}
