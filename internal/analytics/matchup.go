package analytics

import (
	"sort"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
)

// MatchupStats is the output of the matchup engine over the MR-valid ranked
// subset: the per-opponent summary table, the cumulative win-rate curves, the
// most-played/best/worst callouts, and the counterfactual recommendation.
type MatchupStats struct {
	Table      []model.MatchupRow
	Curves     []model.MatchupCurve
	MostPlayed *model.MatchupRef
	Best       *model.MatchupRef
	Worst      *model.MatchupRef
	FixOne     *model.FixOneMatchup
}

// matchupGroup is the per-opponent aggregate built in the grouping pass.
type matchupGroup struct {
	tag     string
	games   int
	wins    int
	mrSum   float64
	mrCount int
}

func (g *matchupGroup) winRate() float64 {
	return float64(g.wins) / float64(g.games)
}

// Matchups computes all per-opponent statistics. Records must already be
// restricted to ranked, rating-valid matches; callers pass the baseline game
// count for curves and the stability threshold for best/worst designation.
func Matchups(records []model.MatchRecord, baselineN, minGamesStable int) MatchupStats {
	if len(records) == 0 {
		return MatchupStats{}
	}

	sorted := sortByTime(records)

	// Group by normalized opponent tag, keeping each group time-ordered.
	byOpponent := make(map[string][]model.MatchRecord)
	for i := range sorted {
		tag := sorted[i].OpponentCharacter
		byOpponent[tag] = append(byOpponent[tag], sorted[i])
	}

	tags := make([]string, 0, len(byOpponent))
	for tag := range byOpponent {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	groups := make([]*matchupGroup, 0, len(tags))
	var curves []model.MatchupCurve
	for _, tag := range tags {
		recs := byOpponent[tag]
		g := &matchupGroup{tag: tag, games: len(recs)}

		curve := model.MatchupCurve{Opponent: displayTag(tag)}
		for i := range recs {
			g.wins += recs[i].WinInt()
			if recs[i].OpponentMR != nil {
				g.mrSum += *recs[i].OpponentMR
				g.mrCount++
			}
			// Cumulative curve, reported from the baseline game onward.
			gamesSoFar := i + 1
			if gamesSoFar >= baselineN {
				curve.Games = append(curve.Games, gamesSoFar)
				curve.CumWinRate = append(curve.CumWinRate, round4(float64(g.wins)/float64(gamesSoFar)))
			}
		}
		groups = append(groups, g)

		if len(curve.Games) > 0 {
			curves = append(curves, curve)
		}
	}

	stats := MatchupStats{Curves: curves}

	table := make([]model.MatchupRow, 0, len(groups))
	for _, g := range groups {
		row := model.MatchupRow{
			Opponent:   displayTag(g.tag),
			Games:      g.games,
			Wins:       g.wins,
			WinRatePct: round1(g.winRate() * 100),
		}
		if g.mrCount > 0 {
			row.AvgOpponentMR = ptr(round1(g.mrSum / float64(g.mrCount)))
		}
		table = append(table, row)
	}
	stats.Table = table

	// Most played: largest game count; ties resolved by opponent tag ascending
	// (groups are already alphabetical).
	var mostPlayed *matchupGroup
	for _, g := range groups {
		if mostPlayed == nil || g.games > mostPlayed.games {
			mostPlayed = g
		}
	}
	stats.MostPlayed = matchupRef(mostPlayed)

	// Best/worst are only meaningful past the stability threshold.
	var best, worst *matchupGroup
	for _, g := range groups {
		if g.games < minGamesStable {
			continue
		}
		if best == nil || g.winRate() > best.winRate() {
			best = g
		}
		if worst == nil || g.winRate() < worst.winRate() {
			worst = g
		}
	}
	stats.Best = matchupRef(best)
	stats.Worst = matchupRef(worst)

	stats.FixOne = fixOneMatchup(groups)

	return stats
}

func matchupRef(g *matchupGroup) *model.MatchupRef {
	if g == nil {
		return nil
	}
	return &model.MatchupRef{
		Opponent:   displayTag(g.tag),
		Games:      g.games,
		WinRatePct: round1(g.winRate() * 100),
	}
}

// fixOneMatchup simulates replacing each opponent's win contribution with an
// assumed 50% rate while holding total games fixed, and reports the opponent
// with the largest overall win-rate gain. Gains within the epsilon noise floor
// yield no recommendation.
func fixOneMatchup(groups []*matchupGroup) *model.FixOneMatchup {
	totalGames, totalWins := 0, 0
	for _, g := range groups {
		totalGames += g.games
		totalWins += g.wins
	}
	if totalGames == 0 {
		return nil
	}
	baseRate := float64(totalWins) / float64(totalGames)

	const epsilon = 1e-9

	var bestGroup *matchupGroup
	bestGain := 0.0
	bestNewRate := 0.0
	for _, g := range groups {
		newWins := float64(totalWins) - float64(g.wins) + 0.5*float64(g.games)
		newRate := newWins / float64(totalGames)
		gain := newRate - baseRate
		if gain > bestGain+epsilon {
			bestGain = gain
			bestNewRate = newRate
			bestGroup = g
		}
	}
	if bestGroup == nil {
		return nil
	}

	return &model.FixOneMatchup{
		Opponent:             displayTag(bestGroup.tag),
		Games:                bestGroup.games,
		CurrentWinRatePct:    round1(bestGroup.winRate() * 100),
		SimulatedWinRatePct:  50.0,
		OverallWinRatePct:    round1(baseRate * 100),
		NewOverallWinRatePct: round1(bestNewRate * 100),
		LiftPctPoints:        round1(bestGain * 100),
	}
}
