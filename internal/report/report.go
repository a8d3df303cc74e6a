// Package report renders assembled reports: terminal tables for the show
// command and per-player JSON files for the chart layer.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
)

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignRight},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignCenter},
		},
	}))
}

// PrintOverview prints the one-line header plus the headline ranked numbers.
func PrintOverview(w io.Writer, rep *model.Report) {
	o := rep.Summary.Overall
	start, end := "—", "—"
	if o.DatasetStart != nil {
		start = *o.DatasetStart
	}
	if o.DatasetEnd != nil {
		end = *o.DatasetEnd
	}
	fmt.Fprintf(w, "\nPlayer: %s  |  Matches: %d  |  Range: %s → %s\n",
		rep.PlayerCFN, o.MatchesAnalyzed, start, end)

	r := rep.Summary.Ranked
	if r == nil {
		fmt.Fprintln(w, "No MR-valid ranked matches.")
		return
	}
	main := "—"
	if r.MainCharacter != nil {
		main = *r.MainCharacter
	}
	fmt.Fprintf(w, "Ranked: %d matches  |  Win rate: %.1f%%  |  Main: %s\n\n",
		r.MatchesAnalyzed, r.OverallWinRatePct, main)
}

// PrintMatchupTable prints the per-opponent summary table.
func PrintMatchupTable(w io.Writer, rows []model.MatchupRow) {
	if len(rows) == 0 {
		return
	}
	table := newTable(w)
	table.Header("OPPONENT", "GAMES", "WINS", "WIN%", "AVG_OPP_MR")
	for _, r := range rows {
		mr := "—"
		if r.AvgOpponentMR != nil {
			mr = fmt.Sprintf("%.1f", *r.AvgOpponentMR)
		}
		table.Append(
			r.Opponent,
			strconv.Itoa(r.Games),
			strconv.Itoa(r.Wins),
			fmt.Sprintf("%.1f%%", r.WinRatePct),
			mr,
		)
	}
	table.Render()
}

// PrintSessionBuckets prints the session-length bucket table.
func PrintSessionBuckets(w io.Writer, buckets []model.LengthBucket) {
	if len(buckets) == 0 {
		return
	}
	table := newTable(w)
	table.Header("SESSION_LEN", "SESSIONS", "AVG_WIN%", "AVG_MR_DELTA")
	for _, b := range buckets {
		table.Append(
			b.Range,
			strconv.Itoa(b.Count),
			fmt.Sprintf("%.1f%%", b.AvgWinRate*100),
			fmt.Sprintf("%+.1f", b.AvgMRDelta),
		)
	}
	table.Render()
}

// PrintCharacterBreakdown prints character usage shares.
func PrintCharacterBreakdown(w io.Writer, shares []model.CharacterShare) {
	if len(shares) == 0 {
		return
	}
	table := newTable(w)
	table.Header("CHARACTER", "GAMES", "SHARE")
	for _, c := range shares {
		table.Append(c.Character, strconv.Itoa(c.Games), fmt.Sprintf("%.1f%%", c.SharePct))
	}
	table.Render()
}

// PrintFixOne prints the counterfactual recommendation, if any.
func PrintFixOne(w io.Writer, fix *model.FixOneMatchup) {
	if fix == nil {
		fmt.Fprintln(w, "\nNo matchup fix worth recommending.")
		return
	}
	fmt.Fprintf(w, "\nFix one matchup: going 50/50 vs %s (%d games, currently %.1f%%) lifts overall win rate %.1f%% → %.1f%% (+%.1f pts)\n",
		fix.Opponent, fix.Games, fix.CurrentWinRatePct,
		fix.OverallWinRatePct, fix.NewOverallWinRatePct, fix.LiftPctPoints)
}
