package services

import (
	"context"
	"fmt"
	"slices"
	"store-route-planner/internal/domain"
)

// PeriodStores returns the non-depot locations with estimated demand in the period,
// with that demand.
func PeriodStores(locations []domain.Location, p domain.Period) ([]domain.Location, map[string]float64) {
	demand := domain.DemandEstimates(locations, p)
	stores := make([]domain.Location, 0, len(demand))
	for _, l := range locations {
		if _, ok := demand[l.Name]; ok {
			stores = append(stores, l)
		}
	}
	return stores, demand
}

// BuildDepotPool builds the candidate pool of depot for the period. With several open
// depots, the depot only receives the stores assigned to it.
func BuildDepotPool(
	ctx context.Context,
	in PlanInputs,
	depot string,
	openDepots []string,
	period domain.Period,
	cfg PoolConfig,
) (*RoutePool, error) {
	if !slices.Contains(openDepots, depot) {
		openDepots = append(slices.Clone(openDepots), depot)
	}
	if err := CheckDepots(in.Locations, openDepots); err != nil {
		return nil, fmt.Errorf("build depot pool %q: %w", depot, err)
	}

	stores, demand := PeriodStores(in.Locations, period)
	assignment, err := AssignStoresToDepots(in.Matrix, openDepots, stores)
	if err != nil {
		return nil, fmt.Errorf("build depot pool %q: %w", depot, err)
	}

	ctor, err := newDepotConstructor(in.Matrix, depot, assignment[depot], demand, cfg.Params)
	if err != nil {
		return nil, fmt.Errorf("build depot pool %q: %w", depot, err)
	}
	return BuildCachedRoutePool(ctx, in.Cache, ctor, cfg)
}

func newDepotConstructor(
	matrix domain.DurationMatrix,
	depot string,
	assigned []domain.Location,
	demand map[string]float64,
	params domain.FleetParams,
) (*RouteConstructor, error) {
	names := make([]string, 0, len(assigned)+1)
	names = append(names, depot)
	depotDemand := make(map[string]float64, len(assigned))
	for _, s := range assigned {
		names = append(names, s.Name)
		depotDemand[s.Name] = demand[s.Name]
	}

	table, err := NewTravelTimeTable(matrix, names)
	if err != nil {
		return nil, err
	}
	return NewRouteConstructor(depot, depotDemand, table, params)
}
