package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"store-route-planner/internal/services"
	"strconv"
)

// WriteDistributions writes one trial,cost,trucks,adjusted row per simulated trial.
func WriteDistributions(w io.Writer, res *services.SimulationResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trial", "cost", "trucks", "adjusted"}); err != nil {
		return fmt.Errorf("write distributions: %w", err)
	}
	for i, c := range res.Costs {
		rec := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(c, 'f', 2, 64),
			strconv.Itoa(res.Trucks[i]),
			strconv.Itoa(res.AdjustedRoutes[i]),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write distributions: trial %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write distributions: %w", err)
	}
	return nil
}

// SaveDistributions writes <dir>/<scenario>.csv and returns its path.
func SaveDistributions(dir, scenario string, res *services.SimulationResult) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save distributions: %w", err)
	}
	path := filepath.Join(dir, scenario+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save distributions: %w", err)
	}
	if err := WriteDistributions(f, res); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save distributions: %w", err)
	}
	return path, nil
}
