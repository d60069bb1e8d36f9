package ports

import (
	"context"
	"store-route-planner/internal/domain"

	"gonum.org/v1/gonum/mat"
)

// Incidence is the store x route 0/1 coverage matrix handed to a selector.
type Incidence struct {
	Stores []string
	Routes []string
	M      *mat.Dense
}

// Covers reports whether route column j visits store row i.
func (in Incidence) Covers(i, j int) bool { return in.M.At(i, j) != 0 }

// SelectionProblem is the set-partitioning input: pick routes so every store is covered
// exactly once and at most FleetCapacity primary-shift routes are used.
// A FleetCapacity of zero leaves the fleet unbounded.
type SelectionProblem struct {
	Routes        []string
	Costs         []float64
	Shifts        []domain.Shift
	Incidence     Incidence
	FleetCapacity int
}

// Selection maps route name to whether it was chosen.
type Selection map[string]bool

// Selector solves the set-partitioning problem. Implementations are trusted: callers do
// not re-verify the returned selection.
type Selector interface {
	Select(ctx context.Context, problem SelectionProblem) (Selection, error)
}
