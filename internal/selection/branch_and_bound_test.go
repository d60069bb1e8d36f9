package selection

import (
	"context"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

var (
	_ ports.Selector = BranchAndBound{}
	_ ports.Selector = (*MIPSelector)(nil)
)

// problem builds a selection problem from route -> visited stores.
func problem(stores []string, routes []string, visits map[string][]string, costs map[string]float64, secondary map[string]bool, fleet int) ports.SelectionProblem {
	row := map[string]int{}
	for i, s := range stores {
		row[s] = i
	}
	m := mat.NewDense(len(stores), len(routes), nil)
	p := ports.SelectionProblem{
		Routes:        routes,
		Costs:         make([]float64, len(routes)),
		Shifts:        make([]domain.Shift, len(routes)),
		Incidence:     ports.Incidence{Stores: stores, Routes: routes, M: m},
		FleetCapacity: fleet,
	}
	for j, r := range routes {
		p.Costs[j] = costs[r]
		if secondary[r] {
			p.Shifts[j] = domain.ShiftSecondary
		}
		for _, s := range visits[r] {
			m.Set(row[s], j, 1)
		}
	}
	return p
}

func chosen(sel ports.Selection) []string {
	var out []string
	for r, ok := range sel {
		if ok {
			out = append(out, r)
		}
	}
	return out
}

func TestBranchAndBoundOptimal(t *testing.T) {
	stores := []string{"A", "B", "C", "D"}
	routes := []string{"ab", "cd", "abc", "d", "a", "bcd"}
	visits := map[string][]string{
		"ab": {"A", "B"}, "cd": {"C", "D"}, "abc": {"A", "B", "C"},
		"d": {"D"}, "a": {"A"}, "bcd": {"B", "C", "D"},
	}
	costs := map[string]float64{"ab": 5, "cd": 5, "abc": 6, "d": 3, "a": 2, "bcd": 8}

	sel, err := BranchAndBound{}.Select(context.Background(), problem(stores, routes, visits, costs, nil, 50))
	require.NoError(t, err)
	assert.Len(t, sel, len(routes))
	assert.ElementsMatch(t, []string{"abc", "d"}, chosen(sel))
}

func TestBranchAndBoundFleetCapacity(t *testing.T) {
	stores := []string{"A", "B"}
	routes := []string{"a", "b", "ab", "ab2"}
	visits := map[string][]string{"a": {"A"}, "b": {"B"}, "ab": {"A", "B"}, "ab2": {"A", "B"}}
	costs := map[string]float64{"a": 1, "b": 1, "ab": 10, "ab2": 20}
	secondary := map[string]bool{"ab2": true}

	sel, err := BranchAndBound{}.Select(context.Background(), problem(stores, routes, visits, costs, secondary, 1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ab"}, chosen(sel))

	// Two single-store primaries would exceed the fleet, so the secondary shift is used.
	sel, err = BranchAndBound{}.Select(context.Background(), problem(stores, []string{"a", "b", "ab2"}, visits, costs, secondary, 1))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ab2"}, chosen(sel))
}

func TestBranchAndBoundInfeasible(t *testing.T) {
	stores := []string{"A", "B", "C"}
	routes := []string{"ab", "bc"}
	visits := map[string][]string{"ab": {"A", "B"}, "bc": {"B", "C"}}
	costs := map[string]float64{"ab": 1, "bc": 1}

	_, err := BranchAndBound{}.Select(context.Background(), problem(stores, routes, visits, costs, nil, 50))
	assert.ErrorIs(t, err, ErrInfeasible)

	_, err = BranchAndBound{}.Select(context.Background(), problem([]string{"A", "Z"}, []string{"a"}, map[string][]string{"a": {"A"}}, costs, nil, 50))
	assert.ErrorIs(t, err, ErrInfeasible)
}

func TestBranchAndBoundSearchLimit(t *testing.T) {
	stores := []string{"A", "B"}
	routes := []string{"a", "b"}
	visits := map[string][]string{"a": {"A"}, "b": {"B"}}

	_, err := BranchAndBound{NodeLimit: 1}.Select(context.Background(), problem(stores, routes, visits, map[string]float64{"a": 1, "b": 1}, nil, 50))
	assert.ErrorIs(t, err, ErrSearchLimit)
}
