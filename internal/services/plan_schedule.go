package services

import (
	"context"
	"errors"
	"fmt"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/platform/obs"
	"store-route-planner/internal/ports"

	"github.com/rs/zerolog/log"
)

// PlanScheduleRequest describes one planning scenario, e.g. weekday with both depots open.
type PlanScheduleRequest struct {
	Name          string
	Depots        []string
	Period        domain.Period
	Pool          PoolConfig
	FleetCapacity int
	Simulation    SimulationConfig
}

// PlanInputs is the reference data shared by every scenario.
type PlanInputs struct {
	Locations []domain.Location
	Matrix    domain.DurationMatrix
	History   domain.DemandHistory
	Selector  ports.Selector
	// Optional.
	Cache ports.PoolCache
}

// SchedulePlan is the outcome of one scenario.
type SchedulePlan struct {
	Name       string
	Period     domain.Period
	Assignment map[string][]string
	Pools      []*RoutePool
	Schedule   []domain.ScheduledRoute
	// Sum of the selected routes' candidate costs.
	PlannedCost float64
	Result      *SimulationResult
}

// PlanSchedule assigns stores to depots, builds one pool per depot from estimated demand,
// selects a schedule from the merged candidates and simulates it.
// Stores without estimated demand in the period are not planned.
func PlanSchedule(ctx context.Context, req PlanScheduleRequest, in PlanInputs) (_ *SchedulePlan, err error) {
	defer obs.Time(ctx, "plan.schedule")(&err)

	if in.Selector == nil {
		return nil, errors.New("plan schedule: selector is nil")
	}

	if err := CheckDepots(in.Locations, req.Depots); err != nil {
		return nil, fmt.Errorf("plan schedule %q: %w", req.Name, err)
	}
	stores, demand := PeriodStores(in.Locations, req.Period)

	assignment, err := AssignStoresToDepots(in.Matrix, req.Depots, stores)
	if err != nil {
		return nil, fmt.Errorf("plan schedule %q: %w", req.Name, err)
	}

	plan := &SchedulePlan{
		Name:       req.Name,
		Period:     req.Period,
		Assignment: make(map[string][]string, len(assignment)),
	}

	for k, depot := range req.Depots {
		assigned := assignment[depot]
		if len(assigned) == 0 {
			log.Warn().Str("scenario", req.Name).Str("center", depot).Msg("no stores assigned to depot")
			continue
		}

		for _, s := range assigned {
			plan.Assignment[depot] = append(plan.Assignment[depot], s.Name)
		}

		ctor, err := newDepotConstructor(in.Matrix, depot, assigned, demand, req.Pool.Params)
		if err != nil {
			return nil, fmt.Errorf("plan schedule %q: %w", req.Name, err)
		}

		cfg := req.Pool
		cfg.Seed += int64(k)
		if len(req.Depots) > 1 {
			cfg.Prefix = fmt.Sprintf("%s%d_", cfg.withDefaults().Prefix, k)
		}
		pool, err := BuildCachedRoutePool(ctx, in.Cache, ctor, cfg)
		if err != nil {
			return nil, fmt.Errorf("plan schedule %q: %w", req.Name, err)
		}
		plan.Pools = append(plan.Pools, pool)
	}

	candidates, err := MergeCandidates(plan.Pools...)
	if err != nil {
		return nil, fmt.Errorf("plan schedule %q: %w", req.Name, err)
	}
	sel, err := in.Selector.Select(ctx, candidates.Problem(req.FleetCapacity))
	if err != nil {
		return nil, fmt.Errorf("plan schedule %q: select routes: %w", req.Name, err)
	}
	plan.Schedule, err = ScheduleFromSelection(candidates, sel)
	if err != nil {
		return nil, fmt.Errorf("plan schedule %q: %w", req.Name, err)
	}
	for _, r := range candidates.Routes {
		if sel[r.Name] {
			plan.PlannedCost += r.Cost
		}
	}

	simCfg := req.Simulation
	simCfg.Period = req.Period
	simCfg.Params = req.Pool.Params
	plan.Result, err = SimulateSchedule(ctx, in, plan.Schedule, simCfg)
	if err != nil {
		return nil, fmt.Errorf("plan schedule %q: %w", req.Name, err)
	}

	log.Info().
		Str("run_id", obs.RunID(ctx)).
		Str("scenario", req.Name).
		Int("routes", len(plan.Schedule)).
		Float64("planned_cost", plan.PlannedCost).
		Msg("schedule planned")

	return plan, nil
}

// SimulateSchedule runs the robustness simulation of an explicit schedule against the
// demand history of its stores.
func SimulateSchedule(
	ctx context.Context,
	in PlanInputs,
	schedule []domain.ScheduledRoute,
	cfg SimulationConfig,
) (*SimulationResult, error) {
	byName := make(map[string]domain.Location, len(in.Locations))
	for _, l := range in.Locations {
		byName[l.Name] = l
	}

	var keep []string
	var stores []domain.Location
	seen := make(map[string]bool)
	for _, r := range schedule {
		center := r.Itinerary.Center()
		if err := CheckDepots(in.Locations, []string{center}); err != nil {
			return nil, fmt.Errorf("simulate schedule: route %q: %w", r.Name, err)
		}
		if !seen[center] {
			seen[center] = true
			keep = append(keep, center)
		}

		for _, name := range r.Itinerary.Stops() {
			l, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("simulate schedule: route %q: %w", r.Name, &domain.LookupError{Origin: center, Destination: name})
			}
			if l.IsDepot() {
				return nil, fmt.Errorf("simulate schedule: route %q stops at depot %q: %w", r.Name, name, domain.ErrInvalidSchedule)
			}
			if seen[name] {
				continue
			}
			seen[name] = true
			keep = append(keep, name)
			stores = append(stores, l)
		}
	}

	table, err := NewTravelTimeTable(in.Matrix, keep)
	if err != nil {
		return nil, fmt.Errorf("simulate schedule: %w", err)
	}
	sampler, err := NewDemandSampler(in.History, stores, cfg.Period)
	if err != nil {
		return nil, fmt.Errorf("simulate schedule: %w", err)
	}
	sim, err := NewSimulation(schedule, table, sampler, cfg)
	if err != nil {
		return nil, fmt.Errorf("simulate schedule: %w", err)
	}
	return sim.Run(ctx)
}
