package selection

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"slices"
	"store-route-planner/internal/platform/obs"
	"store-route-planner/internal/ports"

	"github.com/rs/zerolog/log"
)

const DefaultNodeLimit = 5_000_000

// BranchAndBound solves the set-partitioning problem exactly by depth-first search.
// It suits small pools; larger ones should go to the MIP selector.
type BranchAndBound struct {
	NodeLimit int
}

type bnbSearch struct {
	ctx      context.Context
	cols     []column
	covering [][]int
	share    []float64
	covered  []bool
	chosen   []int
	limit    int
	fleet    int
	primary  int
	nodes    int
	best     []int
	bestCost float64
	err      error
}

func (b BranchAndBound) Select(ctx context.Context, p ports.SelectionProblem) (_ ports.Selection, err error) {
	defer obs.Time(ctx, "selection.bnb")(&err)

	cols, err := columns(p)
	if err != nil {
		return nil, fmt.Errorf("branch and bound: %w", err)
	}
	stores := len(p.Incidence.Stores)
	if stores == 0 {
		return selectionOf(p, nil), nil
	}

	s := &bnbSearch{
		ctx:      ctx,
		cols:     cols,
		covering: make([][]int, stores),
		share:    make([]float64, stores),
		covered:  make([]bool, stores),
		limit:    b.NodeLimit,
		fleet:    p.FleetCapacity,
		bestCost: math.Inf(1),
	}
	if s.limit <= 0 {
		s.limit = DefaultNodeLimit
	}
	if s.fleet <= 0 {
		s.fleet = math.MaxInt
	}

	for i := range s.share {
		s.share[i] = math.Inf(1)
	}
	for j, c := range cols {
		if len(c.stores) == 0 {
			continue
		}
		per := c.cost / float64(len(c.stores))
		for _, i := range c.stores {
			s.covering[i] = append(s.covering[i], j)
			s.share[i] = min(s.share[i], per)
		}
	}
	for i, cs := range s.covering {
		if len(cs) == 0 {
			return nil, fmt.Errorf("branch and bound: store %q has no route: %w", p.Incidence.Stores[i], ErrInfeasible)
		}
		slices.SortFunc(cs, func(a, b int) int {
			if n := cmp.Compare(cols[a].cost, cols[b].cost); n != 0 {
				return n
			}
			return cmp.Compare(a, b)
		})
	}

	bound := 0.0
	for _, v := range s.share {
		bound += v
	}
	s.search(0, bound)

	if s.err != nil {
		return nil, fmt.Errorf("branch and bound: %w", s.err)
	}
	if s.best == nil {
		return nil, fmt.Errorf("branch and bound: %w", ErrInfeasible)
	}

	log.Debug().Int("nodes", s.nodes).Float64("cost", s.bestCost).Int("routes", len(s.best)).Msg("branch and bound solved")
	return selectionOf(p, s.best), nil
}

// search extends the partial selection. remaining is a lower bound on the cost of
// covering the still uncovered stores.
func (s *bnbSearch) search(cost, remaining float64) {
	if s.err != nil {
		return
	}
	s.nodes++
	if s.nodes > s.limit {
		s.err = ErrSearchLimit
		return
	}
	if s.nodes%4096 == 0 {
		if err := s.ctx.Err(); err != nil {
			s.err = err
			return
		}
	}

	// Branch on the uncovered store with the fewest candidate routes.
	row := -1
	for i, done := range s.covered {
		if !done && (row < 0 || len(s.covering[i]) < len(s.covering[row])) {
			row = i
		}
	}
	if row < 0 {
		if cost < s.bestCost {
			s.bestCost = cost
			s.best = slices.Clone(s.chosen)
		}
		return
	}

	for _, j := range s.covering[row] {
		c := s.cols[j]
		if c.primary && s.primary >= s.fleet {
			continue
		}
		if !s.fits(c) {
			continue
		}

		freed := 0.0
		for _, i := range c.stores {
			freed += s.share[i]
		}
		if cost+c.cost+remaining-freed >= s.bestCost {
			continue
		}

		s.take(c, true)
		s.search(cost+c.cost, remaining-freed)
		s.take(c, false)
		if s.err != nil {
			return
		}
	}
}

func (s *bnbSearch) fits(c column) bool {
	for _, i := range c.stores {
		if s.covered[i] {
			return false
		}
	}
	return true
}

func (s *bnbSearch) take(c column, on bool) {
	for _, i := range c.stores {
		s.covered[i] = on
	}
	if on {
		s.chosen = append(s.chosen, c.index)
		if c.primary {
			s.primary++
		}
		return
	}
	s.chosen = s.chosen[:len(s.chosen)-1]
	if c.primary {
		s.primary--
	}
}
