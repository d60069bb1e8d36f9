package services

import (
	"cmp"
	"fmt"
	"math/rand"
	"slices"
	"store-route-planner/internal/domain"
)

// DemandSampler bootstraps per-store trial demand from the pooled brand history of one period.
type DemandSampler struct {
	period domain.Period
	stores []domain.Location
	brandA []float64
	brandB []float64
}

// NewDemandSampler fails with domain.ErrEmptyDemandPool when a store's category needs a
// brand pool that has no observations for the period.
func NewDemandSampler(history domain.DemandHistory, stores []domain.Location, period domain.Period) (*DemandSampler, error) {
	s := &DemandSampler{
		period: period,
		brandA: slices.Clone(history.Pool(domain.CategoryBrandA, period)),
		brandB: slices.Clone(history.Pool(domain.CategoryBrandB, period)),
	}

	for _, l := range stores {
		switch l.Category {
		case domain.CategoryBrandA:
			if len(s.brandA) == 0 {
				return nil, fmt.Errorf("new demand sampler: store %q needs %s %s history: %w", l.Name, domain.CategoryBrandA, period, domain.ErrEmptyDemandPool)
			}
		case domain.CategoryBrandB:
			if len(s.brandB) == 0 {
				return nil, fmt.Errorf("new demand sampler: store %q needs %s %s history: %w", l.Name, domain.CategoryBrandB, period, domain.ErrEmptyDemandPool)
			}
		case domain.CategoryCombined:
			if len(s.brandA) == 0 || len(s.brandB) == 0 {
				return nil, fmt.Errorf("new demand sampler: combined store %q needs both brand %s histories: %w", l.Name, period, domain.ErrEmptyDemandPool)
			}
		default:
			continue
		}
		s.stores = append(s.stores, l)
	}
	if len(s.stores) == 0 {
		return nil, fmt.Errorf("new demand sampler: %w", domain.ErrNoStores)
	}

	slices.SortFunc(s.stores, func(a, b domain.Location) int { return cmp.Compare(a.Name, b.Name) })

	return s, nil
}

func (s *DemandSampler) Period() domain.Period { return s.period }

// Sample draws n trial demands for every store, with replacement and uniformly over the pool.
// Stores are visited in name order so a seeded rng reproduces the table.
func (s *DemandSampler) Sample(rng *rand.Rand, n int) (*DemandTable, error) {
	if n <= 0 {
		return nil, fmt.Errorf("sample demand: trials must be positive, got %d", n)
	}

	t := &DemandTable{
		index:  make(map[string]int, len(s.stores)),
		values: make([][]float64, len(s.stores)),
	}
	for i, l := range s.stores {
		t.stores = append(t.stores, l.Name)
		t.index[l.Name] = i

		switch l.Category {
		case domain.CategoryBrandA:
			t.values[i] = bootstrap(rng, s.brandA, n)
		case domain.CategoryBrandB:
			t.values[i] = bootstrap(rng, s.brandB, n)
		case domain.CategoryCombined:
			a := bootstrap(rng, s.brandA, n)
			b := bootstrap(rng, s.brandB, n)
			for k := range a {
				a[k] += b[k]
			}
			t.values[i] = a
		}
	}
	return t, nil
}

func bootstrap(rng *rand.Rand, pool []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = pool[rng.Intn(len(pool))]
	}
	return out
}

// DemandTable holds sampled pallets, one row per store and one column per trial.
type DemandTable struct {
	stores []string
	index  map[string]int
	values [][]float64
}

// At returns the sampled demand of store in trial; unknown stores have zero demand.
func (t *DemandTable) At(store string, trial int) float64 {
	i, ok := t.index[store]
	if !ok {
		return 0
	}
	return t.values[i][trial]
}

// Trial returns the per-store demand column of one trial.
func (t *DemandTable) Trial(trial int) map[string]float64 {
	out := make(map[string]float64, len(t.stores))
	for i, s := range t.stores {
		out[s] = t.values[i][trial]
	}
	return out
}
