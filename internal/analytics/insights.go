package analytics

import (
	"sort"
	"time"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
	"github.com/zach-king-analytics/sf6-metrics/internal/timeutil"
)

// lengthBuckets is the reporting order of the session-size classes.
var lengthBuckets = []string{"1-5", "6-10", "11-15", "16+"}

func bucketLabel(size int) string {
	switch {
	case size <= 5:
		return "1-5"
	case size <= 10:
		return "6-10"
	case size <= 15:
		return "11-15"
	default:
		return "16+"
	}
}

// Insights derives the session-scoped views: per-session stats with length
// buckets and their weekly rollup, warm-up/cool-down positional win rates, the
// time-of-day heatmap, and per-session streak extremes. Records should be the
// MR-valid ranked subset so rating deltas are meaningful.
func Insights(records []model.MatchRecord, gap time.Duration) model.SessionInsights {
	sessions := Sessions(records, gap)

	out := model.SessionInsights{
		SessionsRaw:    []model.SessionStat{},
		ByLength:       []model.LengthBucket{},
		WeeklyByLength: []model.WeeklyLengthBucket{},
		Warmup:         map[string]float64{},
		Cooldown:       map[string]float64{},
		TimeOfDay:      []model.HeatmapCell{},
		Momentum:       []model.MomentumStat{},
	}

	// Per-session stats, and the bucket / weekly-bucket rollups over them.
	type bucketAccum struct {
		winRates []float64
		mrDeltas []float64
	}
	byBucket := make(map[string]*bucketAccum)

	type weeklyKey struct {
		weekStart string
		bucket    string
	}
	type weeklyAccum struct {
		count      int
		sumGames   float64
		sumWins    float64
		sumMRDelta float64
	}
	weekly := make(map[weeklyKey]*weeklyAccum)

	for i := range sessions {
		s := &sessions[i]
		stat := model.SessionStat{
			Size:    s.Size(),
			Bucket:  bucketLabel(s.Size()),
			WinRate: round4(s.WinRate()),
			MRDelta: round1(s.MRDelta()),
			StartTS: s.Start().Format(time.RFC3339),
		}
		out.SessionsRaw = append(out.SessionsRaw, stat)

		acc := byBucket[stat.Bucket]
		if acc == nil {
			acc = &bucketAccum{}
			byBucket[stat.Bucket] = acc
		}
		acc.winRates = append(acc.winRates, stat.WinRate)
		acc.mrDeltas = append(acc.mrDeltas, stat.MRDelta)

		wk := weeklyKey{
			weekStart: timeutil.ISODate(timeutil.WeekStart(s.Start(), time.Monday)),
			bucket:    stat.Bucket,
		}
		wacc := weekly[wk]
		if wacc == nil {
			wacc = &weeklyAccum{}
			weekly[wk] = wacc
		}
		wacc.count++
		wacc.sumGames += float64(stat.Size)
		wacc.sumWins += stat.WinRate * float64(stat.Size)
		wacc.sumMRDelta += stat.MRDelta
	}

	for _, b := range lengthBuckets {
		acc := byBucket[b]
		if acc == nil {
			continue
		}
		var wrSum, mrSum float64
		for _, wr := range acc.winRates {
			wrSum += wr
		}
		for _, mr := range acc.mrDeltas {
			mrSum += mr
		}
		n := float64(len(acc.winRates))
		out.ByLength = append(out.ByLength, model.LengthBucket{
			Range:      b,
			AvgWinRate: round4(wrSum / n),
			AvgMRDelta: round1(mrSum / n),
			Count:      len(acc.winRates),
		})
	}

	for key, acc := range weekly {
		row := model.WeeklyLengthBucket{
			WeekStart: key.weekStart,
			Bucket:    key.bucket,
			Count:     acc.count,
		}
		if acc.sumGames > 0 {
			row.AvgWinRate = ptr(round4(acc.sumWins / acc.sumGames))
		}
		if acc.count > 0 {
			row.AvgMRDelta = ptr(round2(acc.sumMRDelta / float64(acc.count)))
		}
		out.WeeklyByLength = append(out.WeeklyByLength, row)
	}
	sort.Slice(out.WeeklyByLength, func(i, j int) bool {
		a, b := out.WeeklyByLength[i], out.WeeklyByLength[j]
		if a.WeekStart != b.WeekStart {
			return a.WeekStart < b.WeekStart
		}
		return a.Bucket < b.Bucket
	})

	// Warm-up / cool-down: positional outcome samples across sessions.
	warmSamples := map[string][]int{"1": nil, "2": nil, "3-5": nil}
	var last3Samples []int
	for i := range sessions {
		matches := sessions[i].Matches
		n := len(matches)
		if n >= 1 {
			warmSamples["1"] = append(warmSamples["1"], matches[0].WinInt())
		}
		if n >= 2 {
			warmSamples["2"] = append(warmSamples["2"], matches[1].WinInt())
		}
		for g := 3; g <= 5 && g <= n; g++ {
			warmSamples["3-5"] = append(warmSamples["3-5"], matches[g-1].WinInt())
		}
		lastN := n
		if lastN > 3 {
			lastN = 3
		}
		for _, m := range matches[n-lastN:] {
			last3Samples = append(last3Samples, m.WinInt())
		}
	}
	for k, samples := range warmSamples {
		if len(samples) == 0 {
			continue
		}
		out.Warmup[k] = round4(meanInt(samples))
	}
	if len(last3Samples) > 0 {
		out.Cooldown["last3"] = round4(meanInt(last3Samples))
	}

	// Time-of-day heatmap: local day-of-week x 2-hour block.
	type cellKey struct {
		day  time.Weekday
		hour int
	}
	cells := make(map[cellKey]*dayCount)
	for i := range records {
		ts := records[i].Timestamp
		key := cellKey{day: ts.Weekday(), hour: (ts.Hour() / 2) * 2}
		c := cells[key]
		if c == nil {
			c = &dayCount{}
			cells[key] = c
		}
		c.matches++
		c.wins += records[i].WinInt()
	}
	keys := make([]cellKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	// Sunday..Saturday, then hour block ascending.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].day != keys[j].day {
			return keys[i].day < keys[j].day
		}
		return keys[i].hour < keys[j].hour
	})
	for _, k := range keys {
		c := cells[k]
		out.TimeOfDay = append(out.TimeOfDay, model.HeatmapCell{
			Day:        k.day.String(),
			HourBucket: k.hour,
			WinRate:    round4(float64(c.wins) / float64(c.matches)),
			Games:      c.matches,
		})
	}

	// Momentum: longest win/loss runs per session, single forward scan.
	for i := range sessions {
		s := &sessions[i]
		outcomes := make([]int, 0, s.Size())
		for j := range s.Matches {
			outcomes = append(outcomes, s.Matches[j].WinInt())
		}
		out.Momentum = append(out.Momentum, model.MomentumStat{
			Size:          s.Size(),
			MaxWinStreak:  longestRun(outcomes, 1),
			MaxLossStreak: longestRun(outcomes, 0),
			MRDelta:       round1(s.MRDelta()),
		})
	}

	return out
}

func meanInt(values []int) float64 {
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}
