package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"slices"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/platform/obs"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

const DefaultTrials = 10000

type SimulationConfig struct {
	Trials  int
	Period  domain.Period
	Seed    int64
	Workers int
	Params  domain.FleetParams
	Traffic TrafficModel
}

func (c SimulationConfig) withDefaults() SimulationConfig {
	if c.Trials <= 0 {
		c.Trials = DefaultTrials
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Traffic == (TrafficModel{}) {
		c.Traffic = DefaultTrafficModel()
	}
	return c
}

// Simulation evaluates a fixed schedule under sampled demand and traffic.
type Simulation struct {
	schedule []domain.ScheduledRoute
	sampler  *DemandSampler
	repair   *RouteRepairEngine
	costs    *FleetCostCalculator
	cfg      SimulationConfig
}

// NewSimulation checks every leg a trial may need: the scheduled routes themselves and the
// center -> store -> center trip of every scheduled store, since any of them can be left out.
// After this, trials cannot fail.
func NewSimulation(
	schedule []domain.ScheduledRoute,
	table *TravelTimeTable,
	sampler *DemandSampler,
	cfg SimulationConfig,
) (*Simulation, error) {
	if table == nil || sampler == nil {
		return nil, errors.New("new simulation: table and sampler are required")
	}
	if len(schedule) == 0 {
		return nil, fmt.Errorf("new simulation: schedule is empty: %w", domain.ErrInvalidSchedule)
	}
	cfg = cfg.withDefaults()
	if sampler.Period() != cfg.Period {
		return nil, fmt.Errorf("new simulation: sampler period %s does not match %s", sampler.Period(), cfg.Period)
	}

	sampled := make(map[string]bool, len(sampler.stores))
	for _, l := range sampler.stores {
		sampled[l.Name] = true
	}

	for _, r := range schedule {
		if _, err := table.LegSeconds(r.Itinerary.Sequence()); err != nil {
			return nil, fmt.Errorf("new simulation: route %q: %w", r.Name, err)
		}
		for _, s := range r.Itinerary.Stops() {
			if !sampled[s] {
				return nil, fmt.Errorf("new simulation: route %q visits %q which has no demand history: %w", r.Name, s, domain.ErrInvalidSchedule)
			}
			if _, err := table.LegSeconds([]string{r.Itinerary.Center(), s, r.Itinerary.Center()}); err != nil {
				return nil, fmt.Errorf("new simulation: route %q: %w", r.Name, err)
			}
		}
	}

	return &Simulation{
		schedule: slices.Clone(schedule),
		sampler:  sampler,
		repair:   NewRouteRepairEngine(cfg.Params),
		costs:    NewFleetCostCalculator(table, cfg.Params),
		cfg:      cfg,
	}, nil
}

// SimulationResult holds one entry per trial, in trial order.
type SimulationResult struct {
	Period         domain.Period
	Costs          []float64
	Trucks         []int
	AdjustedRoutes []int
}

// Run samples all demand and traffic up front from the run seed, then evaluates trials in
// parallel. Each trial writes only its own slot, so results do not depend on scheduling.
func (s *Simulation) Run(ctx context.Context) (_ *SimulationResult, err error) {
	defer obs.Time(ctx, "simulation.run")(&err)

	n := s.cfg.Trials
	rng := rand.New(rand.NewSource(s.cfg.Seed))
	demand, err := s.sampler.Sample(rng, n)
	if err != nil {
		return nil, fmt.Errorf("run simulation: %w", err)
	}
	extra := make([]float64, n)
	for i := range extra {
		extra[i] = s.cfg.Traffic.ExtraMinutes(rng, s.cfg.Period)
	}

	res := &SimulationResult{
		Period:         s.cfg.Period,
		Costs:          make([]float64, n),
		Trucks:         make([]int, n),
		AdjustedRoutes: make([]int, n),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for t := 0; t < n; t++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			storeDemand := demand.Trial(t)
			rep := s.repair.Repair(s.schedule, RouteDemand(s.schedule, storeDemand), storeDemand)
			c, err := s.costs.Trial(rep, extra[t])
			if err != nil {
				return fmt.Errorf("trial %d: %w", t, err)
			}
			res.Costs[t] = c.Cost
			res.Trucks[t] = c.Trucks
			res.AdjustedRoutes[t] = rep.Adjusted
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run simulation: %w", err)
	}

	sum := res.Summary()
	log.Info().
		Str("run_id", obs.RunID(ctx)).
		Str("period", s.cfg.Period.String()).
		Int("trials", n).
		Int("routes", len(s.schedule)).
		Float64("mean_cost", sum.Mean).
		Float64("p2_5", sum.P2_5).
		Float64("p97_5", sum.P97_5).
		Msg("simulation done")

	return res, nil
}

// CostSummary describes the trial cost distribution.
type CostSummary struct {
	Trials     int
	Mean       float64
	StdDev     float64
	P2_5       float64
	Median     float64
	P97_5      float64
	MeanTrucks float64
	MaxTrucks  int
}

func (r *SimulationResult) Summary() CostSummary {
	out := CostSummary{Trials: len(r.Costs)}
	if len(r.Costs) == 0 {
		return out
	}

	sorted := slices.Clone(r.Costs)
	slices.Sort(sorted)
	out.Mean, out.StdDev = stat.MeanStdDev(sorted, nil)
	if len(sorted) < 2 {
		out.StdDev = 0
	}
	out.P2_5 = stat.Quantile(0.025, stat.Empirical, sorted, nil)
	out.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	out.P97_5 = stat.Quantile(0.975, stat.Empirical, sorted, nil)

	if len(r.Trucks) == 0 {
		return out
	}
	trucks := 0
	for _, t := range r.Trucks {
		trucks += t
		out.MaxTrucks = max(out.MaxTrucks, t)
	}
	out.MeanTrucks = float64(trucks) / float64(len(r.Trucks))
	return out
}
