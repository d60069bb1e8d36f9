package services

import (
	"context"
	"fmt"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/ports"

	"golang.org/x/sync/errgroup"
)

// Concurrent origins fetched from the provider.
const matrixFetchLimit = 5

// LoadDurationMatrix fetches every ordered pair among names, one origin row at a time.
func LoadDurationMatrix(
	ctx context.Context,
	names []string,
	provider ports.DistanceProvider,
) (domain.DurationMatrix, error) {
	m, err := domain.NewDurationMatrix(names)
	if err != nil {
		return domain.DurationMatrix{}, fmt.Errorf("load duration matrix: %w", err)
	}

	rows := make([]map[string]ports.DistanceResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(matrixFetchLimit)
	for i, origin := range names {
		targets := make([]string, 0, len(names)-1)
		for _, t := range names {
			if t != origin {
				targets = append(targets, t)
			}
		}
		if len(targets) == 0 {
			continue
		}

		g.Go(func() error {
			res, err := provider.GetDistances(gctx, origin, targets)
			if err != nil {
				return fmt.Errorf("get distances from %q: %w", origin, err)
			}
			rows[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return domain.DurationMatrix{}, fmt.Errorf("load duration matrix: %w", err)
	}

	for i, origin := range names {
		for _, t := range names {
			if t == origin {
				continue
			}
			r, ok := rows[i][t]
			if !ok {
				return domain.DurationMatrix{}, fmt.Errorf("load duration matrix: %w", &domain.LookupError{Origin: origin, Destination: t})
			}
			if err := m.Set(origin, t, r.DurationSeconds); err != nil {
				return domain.DurationMatrix{}, fmt.Errorf("load duration matrix: %w", err)
			}
		}
	}

	return m, nil
}
