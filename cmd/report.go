package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zach-king-analytics/sf6-metrics/internal/analytics"
	"github.com/zach-king-analytics/sf6-metrics/internal/config"
	"github.com/zach-king-analytics/sf6-metrics/internal/report"
	"github.com/zach-king-analytics/sf6-metrics/internal/storage"
)

var (
	reportOut         string
	reportConcurrency int
)

var reportCmd = &cobra.Command{
	Use:   "report [player_cfn...]",
	Short: "Generate per-player JSON reports",
	Long: `Runs the analytics pipeline for the named players (default: every player
in the store) and writes one JSON report per player to the output directory.
Players are processed in parallel; a failure for one player does not stop the rest.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOut, "out", "sf6-reports", "output directory for report JSON files")
	reportCmd.Flags().IntVar(&reportConcurrency, "concurrency", 4, "players processed in parallel")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	players := args
	if len(players) == 0 {
		summaries, err := db.ListPlayers()
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		for _, s := range summaries {
			players = append(players, s.CFN)
		}
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No players in the store.")
		return nil
	}

	// Players are fully independent: fan out, collect nothing but log output.
	// Per-player failures are absorbed so one bad player cannot sink the run.
	var g errgroup.Group
	g.SetLimit(reportConcurrency)
	for _, cfn := range players {
		cfn := cfn
		g.Go(func() error {
			records, err := db.GetPlayerMatches(cfn, cfg.Location)
			if err != nil {
				log.Error().Err(err).Str("player", cfn).Msg("Failed to load matches")
				return nil
			}
			rep := analytics.BuildReport(cfn, records, cfg)
			path, err := report.WriteJSON(reportOut, rep)
			if err != nil {
				log.Error().Err(err).Str("player", cfn).Msg("Failed to write report")
				return nil
			}
			log.Info().
				Str("player", cfn).
				Int("matches", len(records)).
				Str("path", path).
				Msg("Wrote report")
			return nil
		})
	}
	return g.Wait()
}
