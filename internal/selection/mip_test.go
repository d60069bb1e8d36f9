package selection

import (
	"context"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/ports"
	"testing"
	"time"

	"github.com/nextmv-io/sdk/mip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The solver itself is a runtime plugin; these cases return before it is loaded.

func TestNewMIPSelector(t *testing.T) {
	s := NewMIPSelector(30 * time.Second)
	assert.Equal(t, mip.SolverProvider("highs"), s.Provider)
	assert.Equal(t, 30*time.Second, s.TimeLimit)
}

func TestMIPSelectorNoStores(t *testing.T) {
	p := ports.SelectionProblem{Routes: []string{"a"}, Costs: []float64{1}, Shifts: make([]domain.Shift, 1)}

	sel, err := NewMIPSelector(0).Select(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, ports.Selection{"a": false}, sel)
}

func TestMIPSelectorRejectsMalformedProblem(t *testing.T) {
	p := problem([]string{"A"}, []string{"a"}, map[string][]string{"a": {"A"}}, map[string]float64{"a": 1}, nil, 50)
	p.Costs = nil

	_, err := (&MIPSelector{Provider: "highs"}).Select(context.Background(), p)
	assert.ErrorContains(t, err, "mip select")

	p = problem([]string{"A"}, []string{"a"}, nil, map[string]float64{"a": 1}, nil, 50)
	p.Incidence.M = nil
	_, err = NewMIPSelector(0).Select(context.Background(), p)
	assert.ErrorIs(t, err, ErrInfeasible)
}
