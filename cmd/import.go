package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/zach-king-analytics/sf6-metrics/internal/ingest"
	"github.com/zach-king-analytics/sf6-metrics/internal/storage"
)

var importCmd = &cobra.Command{
	Use:   "import <matches.json>",
	Short: "Import a match-log export into the store",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	db, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer db.Close()

	records, skipped, err := ingest.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read match log: %w", err)
	}
	if err := db.InsertMatches(records); err != nil {
		return fmt.Errorf("store matches: %w", err)
	}

	log.Info().
		Int("imported", len(records)).
		Int("skipped", skipped).
		Str("file", args[0]).
		Msg("Imported match log")
	fmt.Fprintf(os.Stdout, "Imported %d matches (%d rows skipped)\n", len(records), skipped)
	return nil
}
