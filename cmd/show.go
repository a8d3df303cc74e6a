package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zach-king-analytics/sf6-metrics/internal/analytics"
	"github.com/zach-king-analytics/sf6-metrics/internal/config"
	"github.com/zach-king-analytics/sf6-metrics/internal/report"
	"github.com/zach-king-analytics/sf6-metrics/internal/storage"
)

var showCmd = &cobra.Command{
	Use:   "show <player_cfn>",
	Short: "Run the pipeline for one player and print summary tables",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	records, err := db.GetPlayerMatches(args[0], cfg.Location)
	if err != nil {
		return fmt.Errorf("query matches for %s: %w", args[0], err)
	}

	rep := analytics.BuildReport(args[0], records, cfg)

	report.PrintOverview(os.Stdout, rep)
	if rep.Summary.Ranked != nil {
		report.PrintCharacterBreakdown(os.Stdout, rep.Summary.Ranked.CharacterBreakdown)
		report.PrintMatchupTable(os.Stdout, rep.Summary.Ranked.MatchupTable)
		report.PrintSessionBuckets(os.Stdout, rep.Summary.Ranked.SessionStats.ByLength)
		report.PrintFixOne(os.Stdout, rep.Summary.Ranked.FixOneMatchup)
	}
	return nil
}
