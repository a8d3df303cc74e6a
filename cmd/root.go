package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zach-king-analytics/sf6-metrics/internal/config"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "sf6metrics",
	Short: "SF6 match analytics tool",
	Long:  "Turn an SF6 match log into per-player analytics reports: sessions, matchups, activity grids, and MR trends.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.SetupEnvironment()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".sf6metrics", "matches.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite match store")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(reportCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
