package services

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"store-route-planner/internal/domain"
)

// ConstructedRoute is one feasible round trip produced by RouteConstructor.
type ConstructedRoute struct {
	Itinerary       domain.Itinerary
	Pallets         float64
	DurationSeconds float64
}

// RouteConstructor builds single routes with a constrained random greedy
// nearest-neighbor walk from one distribution center.
type RouteConstructor struct {
	center string
	stores []string
	demand map[string]float64
	table  *TravelTimeTable
	params domain.FleetParams
}

// NewRouteConstructor validates that the center and every store with demand are in table.
func NewRouteConstructor(
	center string,
	demand map[string]float64,
	table *TravelTimeTable,
	params domain.FleetParams,
) (*RouteConstructor, error) {
	if center == "" {
		return nil, errors.New("new route constructor: center must be non-empty")
	}
	if table == nil {
		return nil, errors.New("new route constructor: travel time table is nil")
	}
	if !table.Has(center) {
		return nil, fmt.Errorf("new route constructor: %w", &domain.LookupError{Origin: center, Destination: center})
	}
	if params.NearestCandidates < 1 || params.MinTargetStops < 1 || params.MaxTargetStops < params.MinTargetStops {
		return nil, fmt.Errorf("new route constructor: invalid stop parameters %+v", params)
	}

	stores := make([]string, 0, len(demand))
	for s := range demand {
		if s == center {
			continue
		}
		if !table.Has(s) {
			return nil, fmt.Errorf("new route constructor: %w", &domain.LookupError{Origin: center, Destination: s})
		}
		stores = append(stores, s)
	}
	if len(stores) == 0 {
		return nil, fmt.Errorf("new route constructor: center %q: %w", center, domain.ErrNoStores)
	}
	// Sorted so a fixed seed reproduces the same routes regardless of map order.
	slices.Sort(stores)

	return &RouteConstructor{
		center: center,
		stores: stores,
		demand: demand,
		table:  table,
		params: params,
	}, nil
}

func (c *RouteConstructor) Center() string { return c.center }

func (c *RouteConstructor) Stores() []string { return slices.Clone(c.stores) }

// Construct draws one route. It returns domain.ErrInfeasibleSeed when the randomly
// chosen first store cannot be served on its own within the limits.
func (c *RouteConstructor) Construct(rng *rand.Rand) (ConstructedRoute, error) {
	p := c.params

	seed := c.stores[rng.Intn(len(c.stores))]
	it := domain.NewItinerary(c.center, seed)
	pallets := c.demand[seed]
	target := p.MinTargetStops + rng.Intn(p.MaxTargetStops-p.MinTargetStops+1)

	dur, err := c.routeSeconds(it, pallets)
	if err != nil {
		return ConstructedRoute{}, fmt.Errorf("construct route: %w", err)
	}
	if pallets > p.PalletCapacity || dur > p.MaxRouteSeconds {
		return ConstructedRoute{}, fmt.Errorf("construct route from %q: %w", seed, domain.ErrInfeasibleSeed)
	}

	for it.Len() < target && dur <= p.MaxRouteSeconds {
		ranked, err := c.rankFrom(it)
		if err != nil {
			return ConstructedRoute{}, fmt.Errorf("construct route: %w", err)
		}
		if len(ranked) == 0 {
			break
		}

		next := ranked[rng.Intn(min(p.NearestCandidates, len(ranked)))]
		if it.Contains(next) {
			break
		}

		// The candidate's own handling time counts so the finished route stays within limits.
		nextPallets := pallets + c.demand[next]
		tentative := it.With(next)
		nextDur, err := c.routeSeconds(tentative, nextPallets)
		if err != nil {
			return ConstructedRoute{}, fmt.Errorf("construct route: %w", err)
		}
		if nextDur > p.MaxRouteSeconds || nextPallets > p.PalletCapacity {
			break
		}

		it = tentative
		pallets = nextPallets
		dur = nextDur
	}

	return ConstructedRoute{Itinerary: it, Pallets: pallets, DurationSeconds: dur}, nil
}

// routeSeconds is travel time over the full sequence plus pallet handling.
func (c *RouteConstructor) routeSeconds(it domain.Itinerary, pallets float64) (float64, error) {
	legs, err := c.table.LegSeconds(it.Sequence())
	if err != nil {
		return 0, err
	}
	return legs + c.params.HandlingSeconds(pallets), nil
}

// rankFrom orders the stores not yet visited by travel time from the last added stop.
func (c *RouteConstructor) rankFrom(it domain.Itinerary) ([]string, error) {
	from := it.Last()

	type ranked struct {
		store string
		secs  float64
	}
	cands := make([]ranked, 0, len(c.stores))
	for _, s := range c.stores {
		if it.Contains(s) {
			continue
		}
		secs, err := c.table.Duration(from, s)
		if err != nil {
			return nil, err
		}
		cands = append(cands, ranked{store: s, secs: secs})
	}

	slices.SortFunc(cands, func(a, b ranked) int {
		if n := cmp.Compare(a.secs, b.secs); n != 0 {
			return n
		}
		return cmp.Compare(a.store, b.store)
	})

	out := make([]string, len(cands))
	for i, r := range cands {
		out[i] = r.store
	}
	return out, nil
}
