package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zach-king-analytics/sf6-metrics/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List players in the match store",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	players, err := db.ListPlayers()
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	if len(players) == 0 {
		fmt.Fprintln(os.Stdout, "No matches stored yet. Run 'sf6metrics import <matches.json>' to add some.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-24s  %7s  %-20s  %s\n", "PLAYER", "MATCHES", "FIRST", "LAST")
	fmt.Fprintf(os.Stdout, "%-24s  %7s  %-20s  %s\n", "────────────────────────", "───────", "────────────────────", "────")
	for _, p := range players {
		fmt.Fprintf(os.Stdout, "%-24s  %7d  %-20s  %s\n", p.CFN, p.Matches, p.FirstMatch, p.LastMatch)
	}
	return nil
}
