package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zach-king-analytics/sf6-metrics/internal/model"
)

// WriteJSON writes the report to <dir>/<player_cfn>.json and returns the path.
func WriteJSON(dir string, rep *model.Report) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal report for %s: %w", rep.PlayerCFN, err)
	}
	path := filepath.Join(dir, rep.PlayerCFN+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report %s: %w", path, err)
	}
	return path, nil
}
