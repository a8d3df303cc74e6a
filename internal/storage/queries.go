package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
	"github.com/zach-king-analytics/sf6-metrics/internal/timeutil"
)

// InsertMatches bulk-upserts match records in a transaction. Re-importing the
// same export is idempotent: rows replace on (match_hash, player_cfn).
func (db *DB) InsertMatches(records []model.MatchRecord) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO matches(
			match_hash, player_cfn, player_character, player_mr,
			opponent_character, opponent_mr, match_timestamp, is_winner, match_mode
		) VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range records {
		r := &records[i]
		_, err = stmt.Exec(
			r.MatchHash, r.PlayerCFN, r.PlayerCharacter, nullFloat(r.PlayerMR),
			r.OpponentCharacter, nullFloat(r.OpponentMR),
			r.Timestamp.UTC().Format(time.RFC3339), boolInt(r.Win), r.Mode,
		)
		if err != nil {
			return fmt.Errorf("insert match %s: %w", r.MatchHash, err)
		}
	}
	return tx.Commit()
}

// ListPlayers returns every player in the store with match counts and date
// range, most matches first.
func (db *DB) ListPlayers() ([]model.PlayerSummary, error) {
	rows, err := db.conn.Query(`
		SELECT player_cfn, COUNT(1), MIN(match_timestamp), MAX(match_timestamp)
		FROM matches
		GROUP BY player_cfn
		ORDER BY COUNT(1) DESC, player_cfn ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.PlayerSummary
	for rows.Next() {
		var s model.PlayerSummary
		if err := rows.Scan(&s.CFN, &s.Matches, &s.FirstMatch, &s.LastMatch); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// GetPlayerMatches returns one player's records, timestamps converted to the
// reporting timezone. Rows whose stored timestamp fails to parse are skipped
// with a warning rather than failing the query.
func (db *DB) GetPlayerMatches(cfn string, loc *time.Location) ([]model.MatchRecord, error) {
	rows, err := db.conn.Query(`
		SELECT match_hash, player_cfn, player_character, player_mr,
		       opponent_character, opponent_mr, match_timestamp, is_winner, match_mode
		FROM matches
		WHERE player_cfn = ?
		ORDER BY match_timestamp`, model.NormalizeTag(cfn))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.MatchRecord
	for rows.Next() {
		var (
			r          model.MatchRecord
			playerMR   sql.NullFloat64
			opponentMR sql.NullFloat64
			rawTS      string
			winInt     int
		)
		if err := rows.Scan(&r.MatchHash, &r.PlayerCFN, &r.PlayerCharacter, &playerMR,
			&r.OpponentCharacter, &opponentMR, &rawTS, &winInt, &r.Mode); err != nil {
			return nil, err
		}
		ts, ok := timeutil.Parse(rawTS, loc)
		if !ok {
			log.Warn().
				Str("match_hash", r.MatchHash).
				Str("timestamp", rawTS).
				Msg("Skipping stored row with unparseable timestamp")
			continue
		}
		r.Timestamp = ts
		r.Win = winInt != 0
		if playerMR.Valid {
			r.PlayerMR = &playerMR.Float64
		}
		if opponentMR.Valid {
			r.OpponentMR = &opponentMR.Float64
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}
