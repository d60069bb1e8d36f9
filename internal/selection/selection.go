// Package selection chooses the cheapest set of candidate routes that serves every
// store exactly once within the fleet limit.
package selection

import (
	"errors"
	"fmt"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/ports"
)

var (
	ErrInfeasible  = errors.New("no selection covers every store exactly once")
	ErrSearchLimit = errors.New("selection search limit reached")
)

// column is one candidate route as the set of store rows it visits.
type column struct {
	index   int
	stores  []int
	cost    float64
	primary bool
}

func columns(p ports.SelectionProblem) ([]column, error) {
	n := len(p.Routes)
	if len(p.Costs) != n || len(p.Shifts) != n {
		return nil, fmt.Errorf("selection problem: %d routes, %d costs, %d shifts", n, len(p.Costs), len(p.Shifts))
	}
	if len(p.Incidence.Stores) == 0 {
		return nil, nil
	}
	if p.Incidence.M == nil {
		return nil, fmt.Errorf("selection problem: %w", ErrInfeasible)
	}
	if r, c := p.Incidence.M.Dims(); r != len(p.Incidence.Stores) || c != n {
		return nil, fmt.Errorf("selection problem: incidence is %dx%d, want %dx%d", r, c, len(p.Incidence.Stores), n)
	}

	cols := make([]column, n)
	for j := range cols {
		cols[j] = column{index: j, cost: p.Costs[j], primary: p.Shifts[j] == domain.ShiftPrimary}
		for i := range p.Incidence.Stores {
			if p.Incidence.Covers(i, j) {
				cols[j].stores = append(cols[j].stores, i)
			}
		}
	}
	return cols, nil
}

func selectionOf(p ports.SelectionProblem, chosen []int) ports.Selection {
	out := make(ports.Selection, len(p.Routes))
	for _, r := range p.Routes {
		out[r] = false
	}
	for _, j := range chosen {
		out[p.Routes[j]] = true
	}
	return out
}
