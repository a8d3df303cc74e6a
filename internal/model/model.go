package model

import (
	"strings"
	"time"
)

// RankedMode is the normalized mode tag for ranked matches. The match store
// lower-cases mode tags on ingest; ranked rows carry "rank".
const RankedMode = "rank"

// MatchRecord is one completed match from the tracked player's perspective.
// Records are immutable once read; the pipeline only derives aggregates.
type MatchRecord struct {
	MatchHash         string
	PlayerCFN         string
	PlayerCharacter   string
	OpponentCharacter string // normalized: trimmed, lower-cased
	PlayerMR          *float64
	OpponentMR        *float64
	Timestamp         time.Time // in the reporting timezone
	Win               bool
	Mode              string // normalized: trimmed, lower-cased
}

// WinInt returns 1 for a win, 0 for a loss.
func (m *MatchRecord) WinInt() int {
	if m.Win {
		return 1
	}
	return 0
}

// MRValid reports whether both ratings are present and within the current
// rating era. Values above the ceiling belong to the legacy scale and are
// excluded from rating-sensitive aggregates.
func (m *MatchRecord) MRValid(ceiling float64) bool {
	return m.PlayerMR != nil && m.OpponentMR != nil &&
		*m.PlayerMR <= ceiling && *m.OpponentMR <= ceiling
}

// NormalizeTag trims and lower-cases a character or mode tag.
func NormalizeTag(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Session is a maximal run of matches where consecutive timestamps are
// separated by less than the inactivity gap. Matches are time-sorted.
type Session struct {
	Matches []MatchRecord
}

func (s *Session) Size() int { return len(s.Matches) }

func (s *Session) Start() time.Time { return s.Matches[0].Timestamp }

func (s *Session) End() time.Time { return s.Matches[len(s.Matches)-1].Timestamp }

func (s *Session) Wins() int {
	wins := 0
	for i := range s.Matches {
		wins += s.Matches[i].WinInt()
	}
	return wins
}

func (s *Session) WinRate() float64 {
	if len(s.Matches) == 0 {
		return 0
	}
	return float64(s.Wins()) / float64(len(s.Matches))
}

// MRDelta is the last rating minus the first rating within the session.
// Zero for single-match sessions or when either rating is unavailable.
func (s *Session) MRDelta() float64 {
	if len(s.Matches) < 2 {
		return 0
	}
	first := s.Matches[0].PlayerMR
	last := s.Matches[len(s.Matches)-1].PlayerMR
	if first == nil || last == nil {
		return 0
	}
	return *last - *first
}

// PlayerSummary is a lightweight per-player record for the list command.
type PlayerSummary struct {
	CFN        string
	Matches    int
	FirstMatch string
	LastMatch  string
}

// ---- Report contract ----
//
// Field names follow the JSON consumed by the existing chart layer; changing
// them breaks downstream pages.

// Report is the final per-player output of one pipeline run.
type Report struct {
	PlayerCFN   string         `json:"player_cfn"`
	GeneratedAt string         `json:"generated_at"`
	ReportID    string         `json:"report_id"`
	BaselineN   int            `json:"baseline_n"`
	Summary     Summary        `json:"summary"`
	Matchups    []MatchupCurve `json:"matchups"`
}

type Summary struct {
	Overall             OverallSummary `json:"overall"`
	Ranked              *RankedSummary `json:"ranked"`
	ActivityByWeekModes ModeActivity   `json:"activity_by_week_modes"`
}

// OverallSummary covers all modes with no rating assumptions.
type OverallSummary struct {
	MatchesAnalyzed    int              `json:"matches_analyzed"`
	DatasetStart       *string          `json:"dataset_start"`
	DatasetEnd         *string          `json:"dataset_end"`
	ModeBreakdown      []ModeShare      `json:"mode_breakdown"`
	CharacterBreakdown []CharacterShare `json:"character_breakdown"`
}

type ModeShare struct {
	Mode     string  `json:"mode"`
	Matches  int     `json:"matches"`
	SharePct float64 `json:"share_pct"`
}

type CharacterShare struct {
	Character string  `json:"character"`
	Games     int     `json:"games"`
	SharePct  float64 `json:"share_pct"`
}

// RankedSummary is computed over the MR-valid ranked subset, except for the
// character breakdown and main character, which cover all matches.
type RankedSummary struct {
	MainCharacter      *string          `json:"main_character"`
	MatchesAnalyzed    int              `json:"matches_analyzed"`
	DatasetStart       *string          `json:"dataset_start"`
	DatasetEnd         *string          `json:"dataset_end"`
	OverallWinRate     float64          `json:"overall_winrate"`
	OverallWinRatePct  float64          `json:"overall_winrate_pct"`
	AvgMR              *float64         `json:"avg_mr"`
	AvgOpponentMR      *float64         `json:"avg_opponent_mr"`
	MostPlayedMatchup  *MatchupRef      `json:"most_played_matchup"`
	BestMatchup        *MatchupRef      `json:"best_matchup"`
	WorstMatchup       *MatchupRef      `json:"worst_matchup"`
	MinGamesForStable  int              `json:"min_games_for_stable"`
	MatchupTable       []MatchupRow     `json:"matchup_table"`
	FixOneMatchup      *FixOneMatchup   `json:"fix_one_matchup"`
	CharacterBreakdown []CharacterShare `json:"character_breakdown"`
	SessionStats       SessionInsights  `json:"session_stats"`
	ActivityByDay      []DayActivity    `json:"activity_by_day"`
	ActivityByWeek     []WeekActivity   `json:"activity_by_week"`
	MRTimeseries       []RatingPoint    `json:"mr_timeseries"`
	MRWeeklyDelta      []WeeklyMRDelta  `json:"mr_weekly_delta"`
}

// MatchupRef names one opponent for most-played/best/worst callouts.
type MatchupRef struct {
	Opponent   string  `json:"opponent"`
	Games      int     `json:"games"`
	WinRatePct float64 `json:"winrate_pct"`
}

// MatchupRow is one row of the per-opponent summary table.
type MatchupRow struct {
	Opponent      string   `json:"opponent"`
	Games         int      `json:"games"`
	Wins          int      `json:"wins"`
	WinRatePct    float64  `json:"winrate_pct"`
	AvgOpponentMR *float64 `json:"avg_opponent_mr"`
}

// FixOneMatchup is the counterfactual result: the opponent whose replacement
// by a 50% outcome rate lifts the overall win rate the most.
type FixOneMatchup struct {
	Opponent             string  `json:"opponent"`
	Games                int     `json:"games"`
	CurrentWinRatePct    float64 `json:"current_winrate_pct"`
	SimulatedWinRatePct  float64 `json:"simulated_winrate_pct"`
	OverallWinRatePct    float64 `json:"overall_winrate_pct"`
	NewOverallWinRatePct float64 `json:"new_overall_winrate_pct"`
	LiftPctPoints        float64 `json:"lift_pct_points"`
}

// MatchupCurve is the cumulative win-rate curve against one opponent,
// starting at the baseline game index.
type MatchupCurve struct {
	Opponent   string    `json:"opponent"`
	Games      []int     `json:"games"`
	CumWinRate []float64 `json:"cum_winrate"`
}

// DayActivity is one calendar-day bucket. WinRate is nil when Matches is zero.
type DayActivity struct {
	Date    string   `json:"date"`
	Matches int      `json:"matches"`
	Wins    int      `json:"wins"`
	WinRate *float64 `json:"winrate"`
}

// WeekActivity is one Sunday-anchored week with exactly seven day slots.
type WeekActivity struct {
	WeekStart string        `json:"week_start"`
	WeekEnd   string        `json:"week_end"`
	Matches   int           `json:"matches"`
	Wins      int           `json:"wins"`
	WinRate   *float64      `json:"winrate"`
	Days      []DayActivity `json:"days"`
}

// ModeActivity holds the all-modes weekly grid plus one grid per mode tag.
type ModeActivity struct {
	All   []WeekActivity            `json:"all"`
	Modes map[string][]WeekActivity `json:"modes"`
}

// SessionInsights bundles the session-scoped derived views.
type SessionInsights struct {
	SessionsRaw    []SessionStat        `json:"sessions_raw"`
	ByLength       []LengthBucket       `json:"by_length"`
	WeeklyByLength []WeeklyLengthBucket `json:"weekly_by_length"`
	Warmup         map[string]float64   `json:"warmup"`
	Cooldown       map[string]float64   `json:"cooldown"`
	TimeOfDay      []HeatmapCell        `json:"time_of_day"`
	Momentum       []MomentumStat       `json:"momentum"`
}

type SessionStat struct {
	Size    int     `json:"size"`
	Bucket  string  `json:"bucket"`
	WinRate float64 `json:"winrate"`
	MRDelta float64 `json:"mr_delta"`
	StartTS string  `json:"start_ts"`
}

type LengthBucket struct {
	Range      string  `json:"range"`
	AvgWinRate float64 `json:"avg_winrate"`
	AvgMRDelta float64 `json:"avg_mr_delta"`
	Count      int     `json:"count"`
}

type WeeklyLengthBucket struct {
	WeekStart  string   `json:"week_start"`
	Bucket     string   `json:"bucket"`
	Count      int      `json:"count"`
	AvgWinRate *float64 `json:"avg_winrate"`
	AvgMRDelta *float64 `json:"avg_mr_delta"`
}

type HeatmapCell struct {
	Day        string  `json:"day"`
	HourBucket int     `json:"hour_bucket"`
	WinRate    float64 `json:"winrate"`
	Games      int     `json:"games"`
}

type MomentumStat struct {
	Size          int     `json:"size"`
	MaxWinStreak  int     `json:"max_win_streak"`
	MaxLossStreak int     `json:"max_loss_streak"`
	MRDelta       float64 `json:"mr_delta"`
}

// RatingPoint is one match in the per-match MR series.
type RatingPoint struct {
	TS       string   `json:"ts"`
	MR       *float64 `json:"mr"`
	OppMR    *float64 `json:"opp_mr"`
	Win      int      `json:"win"`
	Opponent string   `json:"opponent"`
}

// WeeklyMRDelta is one Monday-anchored week of rating movement.
type WeeklyMRDelta struct {
	WeekStart string   `json:"week_start"`
	MRDelta   *float64 `json:"mr_delta"`
	MRStart   *float64 `json:"mr_start"`
	MREnd     *float64 `json:"mr_end"`
}
