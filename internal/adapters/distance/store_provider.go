package distance

import (
	"context"
	"fmt"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/ports"
)

// StoreProvider serves durations that were previously seeded into a DistanceStore.
// It never fetches; a pair missing from the store is an error.
type StoreProvider struct {
	store ports.DistanceStore
}

func NewStoreProvider(store ports.DistanceStore) *StoreProvider {
	return &StoreProvider{store: store}
}

func (p *StoreProvider) GetDistances(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	hits, err := p.store.GetMany(ctx, origin, destinations)
	if err != nil {
		return nil, fmt.Errorf("stored distances from %q: %w", origin, err)
	}
	for _, d := range destinations {
		if d == origin {
			continue
		}
		if _, ok := hits[d]; !ok {
			return nil, fmt.Errorf("stored distances: %w", &domain.LookupError{Origin: origin, Destination: d})
		}
	}
	return hits, nil
}
