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
	"store-route-planner/internal/ports"
	"strconv"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

const DefaultPoolDraws = 1000

// PoolConfig controls how many routes are drawn and how they are seeded.
type PoolConfig struct {
	Prefix  string
	Draws   int
	Seed    int64
	Workers int
	Params  domain.FleetParams
}

func (c PoolConfig) withDefaults() PoolConfig {
	if c.Prefix == "" {
		c.Prefix = "route"
	}
	if c.Draws <= 0 {
		c.Draws = DefaultPoolDraws
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}

type PoolStats struct {
	Draws       int
	Itineraries int
	Discarded   int
	Uncovered   []string
}

// RoutePool is the candidate set generated for one depot and period.
// Every itinerary is offered twice: a primary-shift variant priced on duration and a
// secondary-shift variant at the flat second-truck rate.
type RoutePool struct {
	center string
	stores []string
	draws  int
	routes []domain.CandidateRoute
}

// BuildRoutePool invokes ctor cfg.Draws times. Per-draw seeds are taken in order from a
// stream seeded with cfg.Seed, so the pool is reproducible however draws are scheduled.
// Any lookup failure aborts the whole pool.
func BuildRoutePool(ctx context.Context, ctor *RouteConstructor, cfg PoolConfig) (_ *RoutePool, err error) {
	defer obs.Time(ctx, "pool.build")(&err)

	if ctor == nil {
		return nil, errors.New("build route pool: constructor is nil")
	}
	cfg = cfg.withDefaults()

	master := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]int64, cfg.Draws)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	type draw struct {
		route     ConstructedRoute
		discarded bool
	}
	results := make([]draw, cfg.Draws)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := ctor.Construct(rand.New(rand.NewSource(seeds[i])))
			if errors.Is(err, domain.ErrInfeasibleSeed) {
				results[i].discarded = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("draw %d: %w", i, err)
			}
			results[i].route = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build route pool for %q: %w", ctor.Center(), err)
	}

	routes := make([]domain.CandidateRoute, 0, 2*cfg.Draws)
	for i, r := range results {
		if r.discarded {
			continue
		}
		priced := PriceItinerary(cfg.Prefix+strconv.Itoa(i), r.route, cfg.Params)
		if !priced[0].Feasible(cfg.Params) {
			return nil, fmt.Errorf("build route pool for %q: draw %d exceeds fleet limits", ctor.Center(), i)
		}
		routes = append(routes, priced...)
	}

	pool := NewRoutePool(ctor.Center(), ctor.Stores(), cfg.Draws, routes)
	stats := pool.Stats()
	log.Info().
		Str("run_id", obs.RunID(ctx)).
		Str("center", pool.center).
		Int("draws", stats.Draws).
		Int("itineraries", stats.Itineraries).
		Int("discarded", stats.Discarded).
		Strs("uncovered", stats.Uncovered).
		Msg("route pool built")

	return pool, nil
}

// PriceItinerary returns the primary and secondary shift variants of one itinerary.
func PriceItinerary(name string, r ConstructedRoute, params domain.FleetParams) []domain.CandidateRoute {
	primary := domain.CandidateRoute{
		Name:            name,
		Shift:           domain.ShiftPrimary,
		Itinerary:       r.Itinerary,
		Pallets:         r.Pallets,
		DurationSeconds: r.DurationSeconds,
		Cost:            r.DurationSeconds / 3600 * params.HourlyRate,
	}
	secondary := primary
	secondary.Name = name + "b"
	secondary.Shift = domain.ShiftSecondary
	secondary.Itinerary = r.Itinerary.Clone()
	secondary.Cost = params.SecondaryShiftCost
	return []domain.CandidateRoute{primary, secondary}
}

// NewRoutePool wraps already priced routes, e.g. ones restored from a cache.
func NewRoutePool(center string, stores []string, draws int, routes []domain.CandidateRoute) *RoutePool {
	s := slices.Clone(stores)
	slices.Sort(s)
	return &RoutePool{center: center, stores: s, draws: draws, routes: slices.Clone(routes)}
}

func (p *RoutePool) Center() string { return p.center }

func (p *RoutePool) Stores() []string { return slices.Clone(p.stores) }

func (p *RoutePool) Routes() []domain.CandidateRoute { return slices.Clone(p.routes) }

// Costs is the cost vector indexed by route name.
func (p *RoutePool) Costs() map[string]float64 {
	out := make(map[string]float64, len(p.routes))
	for _, r := range p.routes {
		out[r.Name] = r.Cost
	}
	return out
}

// StoreSequences maps route name to its full center-terminated sequence.
func (p *RoutePool) StoreSequences() map[string][]string {
	out := make(map[string][]string, len(p.routes))
	for _, r := range p.routes {
		out[r.Name] = r.Itinerary.Sequence()
	}
	return out
}

func (p *RoutePool) Candidates() Candidates {
	return Candidates{Stores: p.Stores(), Routes: p.Routes()}
}

func (p *RoutePool) Incidence() ports.Incidence { return p.Candidates().Incidence() }

// Coverage is the fraction of the pool's stores visited by at least one route.
func (p *RoutePool) Coverage() float64 {
	if len(p.stores) == 0 {
		return 0
	}
	return float64(len(p.stores)-len(p.uncovered())) / float64(len(p.stores))
}

func (p *RoutePool) Stats() PoolStats {
	itineraries := 0
	for _, r := range p.routes {
		if r.Shift == domain.ShiftPrimary {
			itineraries++
		}
	}
	return PoolStats{
		Draws:       p.draws,
		Itineraries: itineraries,
		Discarded:   p.draws - itineraries,
		Uncovered:   p.uncovered(),
	}
}

func (p *RoutePool) uncovered() []string {
	covered := make(map[string]bool, len(p.stores))
	for _, r := range p.routes {
		for _, s := range r.Itinerary.Stops() {
			covered[s] = true
		}
	}
	var out []string
	for _, s := range p.stores {
		if !covered[s] {
			out = append(out, s)
		}
	}
	return out
}

// Candidates is a selector-ready route set, possibly spanning several depots' pools.
type Candidates struct {
	Stores []string
	Routes []domain.CandidateRoute
}

// MergeCandidates joins independent per-depot pools. Route names must be unique.
func MergeCandidates(pools ...*RoutePool) (Candidates, error) {
	var out Candidates
	seenRoute := make(map[string]bool)
	seenStore := make(map[string]bool)
	for _, p := range pools {
		for _, s := range p.stores {
			if !seenStore[s] {
				seenStore[s] = true
				out.Stores = append(out.Stores, s)
			}
		}
		for _, r := range p.routes {
			if seenRoute[r.Name] {
				return Candidates{}, fmt.Errorf("merge candidates: duplicate route name %q", r.Name)
			}
			seenRoute[r.Name] = true
			out.Routes = append(out.Routes, r)
		}
	}
	slices.Sort(out.Stores)
	return out, nil
}

// Incidence builds the store x route 0/1 matrix. M is nil when there are no stores or routes.
func (c Candidates) Incidence() ports.Incidence {
	in := ports.Incidence{
		Stores: slices.Clone(c.Stores),
		Routes: make([]string, len(c.Routes)),
	}
	for j, r := range c.Routes {
		in.Routes[j] = r.Name
	}
	if len(c.Stores) == 0 || len(c.Routes) == 0 {
		return in
	}

	row := make(map[string]int, len(c.Stores))
	for i, s := range c.Stores {
		row[s] = i
	}
	in.M = mat.NewDense(len(c.Stores), len(c.Routes), nil)
	for j, r := range c.Routes {
		for _, s := range r.Itinerary.Stops() {
			if i, ok := row[s]; ok {
				in.M.Set(i, j, 1)
			}
		}
	}
	return in
}

// Problem assembles the selector input.
func (c Candidates) Problem(fleetCapacity int) ports.SelectionProblem {
	pr := ports.SelectionProblem{
		Routes:        make([]string, len(c.Routes)),
		Costs:         make([]float64, len(c.Routes)),
		Shifts:        make([]domain.Shift, len(c.Routes)),
		Incidence:     c.Incidence(),
		FleetCapacity: fleetCapacity,
	}
	for j, r := range c.Routes {
		pr.Routes[j] = r.Name
		pr.Costs[j] = r.Cost
		pr.Shifts[j] = r.Shift
	}
	return pr
}

// ScheduleFromSelection returns the chosen routes in candidate order.
func ScheduleFromSelection(c Candidates, sel ports.Selection) ([]domain.ScheduledRoute, error) {
	known := make(map[string]bool, len(c.Routes))
	var out []domain.ScheduledRoute
	for _, r := range c.Routes {
		known[r.Name] = true
		if sel[r.Name] {
			out = append(out, domain.ScheduledRoute{Name: r.Name, Itinerary: r.Itinerary.Clone()})
		}
	}
	for name, chosen := range sel {
		if chosen && !known[name] {
			return nil, fmt.Errorf("schedule from selection: unknown route %q", name)
		}
	}
	return out, nil
}
