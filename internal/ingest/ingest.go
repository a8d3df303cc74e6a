// Package ingest decodes match-log exports into MatchRecords. The export is a
// JSON array of rows using the match store's column names; values arrive with
// inconsistent types (ratings as numbers or strings, booleans as strings), so
// decoding is tolerant and normalization happens here, once, on the way in.
package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
	"github.com/zach-king-analytics/sf6-metrics/internal/timeutil"
)

// row mirrors one exported match row.
type row struct {
	MatchHash         string    `json:"match_hash"`
	PlayerCFN         string    `json:"player_cfn"`
	PlayerCharacter   string    `json:"player_character"`
	PlayerMR          flexFloat `json:"player_mr"`
	OpponentCharacter string    `json:"opponent_character"`
	OpponentMR        flexFloat `json:"opponent_mr"`
	MatchTimestamp    string    `json:"match_timestamp"`
	IsWinner          flexBool  `json:"is_winner"`
	MatchMode         string    `json:"match_mode"`
}

// flexFloat accepts a JSON number, a numeric string, or null.
type flexFloat struct {
	value *float64
}

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		f.value = nil
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" {
		f.value = nil
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Non-numeric rating: the record stays, the rating is absent.
		f.value = nil
		return nil
	}
	f.value = &v
	return nil
}

// flexBool accepts true/false, "true"/"false" in any case, and 0/1.
type flexBool struct {
	value bool
}

func (b *flexBool) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.TrimSpace(strings.Trim(string(bytes.TrimSpace(data)), `"`)))
	switch s {
	case "true", "1":
		b.value = true
	default:
		b.value = false
	}
	return nil
}

// ReadFile decodes a match-log export file. Rows with no usable timestamp or
// no player identifier are skipped with a warning; everything else is kept.
func ReadFile(path string) ([]model.MatchRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open match log: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read decodes a match-log export from r. Timestamps are stored in UTC; the
// reporting timezone is applied when records are read back for analysis.
func Read(r io.Reader) ([]model.MatchRecord, int, error) {
	var rows []row
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rows); err != nil {
		return nil, 0, fmt.Errorf("decode match log: %w", err)
	}

	records := make([]model.MatchRecord, 0, len(rows))
	skipped := 0
	for i, rw := range rows {
		cfn := model.NormalizeTag(rw.PlayerCFN)
		if cfn == "" || rw.MatchHash == "" {
			skipped++
			log.Warn().Int("row", i).Msg("Skipping row without match hash or player cfn")
			continue
		}
		ts, ok := timeutil.Parse(rw.MatchTimestamp, time.UTC)
		if !ok {
			skipped++
			log.Warn().
				Int("row", i).
				Str("match_hash", rw.MatchHash).
				Str("timestamp", rw.MatchTimestamp).
				Msg("Skipping row with unparseable timestamp")
			continue
		}
		records = append(records, model.MatchRecord{
			MatchHash:         rw.MatchHash,
			PlayerCFN:         cfn,
			PlayerCharacter:   strings.TrimSpace(rw.PlayerCharacter),
			OpponentCharacter: model.NormalizeTag(rw.OpponentCharacter),
			PlayerMR:          rw.PlayerMR.value,
			OpponentMR:        rw.OpponentMR.value,
			Timestamp:         ts,
			Win:               rw.IsWinner.value,
			Mode:              model.NormalizeTag(rw.MatchMode),
		})
	}
	return records, skipped, nil
}
