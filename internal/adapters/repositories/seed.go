package repositories

import (
	"context"
	"fmt"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/ports"
)

// SeedDurations writes every present entry of m into store, one origin row at a time.
func SeedDurations(ctx context.Context, store ports.DistanceStore, m domain.DurationMatrix) (int, error) {
	names := m.Names()
	written := 0
	for _, origin := range names {
		row := make(map[string]ports.DistanceResult, len(names)-1)
		for _, dest := range names {
			if dest == origin {
				continue
			}
			if secs, ok := m.Get(origin, dest); ok {
				row[dest] = ports.DistanceResult{DurationSeconds: secs}
			}
		}
		if err := store.PutMany(ctx, origin, row); err != nil {
			return written, fmt.Errorf("seed durations: origin %q: %w", origin, err)
		}
		written += len(row)
	}
	return written, nil
}
