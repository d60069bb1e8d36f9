package selection

import (
	"context"
	"errors"
	"fmt"
	"store-route-planner/internal/platform/obs"
	"store-route-planner/internal/ports"
	"time"

	"github.com/nextmv-io/sdk/mip"
	"github.com/rs/zerolog/log"
)

// MIPSelector solves the set-partitioning model with a nextmv MIP provider.
type MIPSelector struct {
	Provider  mip.SolverProvider
	TimeLimit time.Duration
}

const defaultMIPProvider mip.SolverProvider = "highs"

func NewMIPSelector(timeLimit time.Duration) *MIPSelector {
	return &MIPSelector{Provider: defaultMIPProvider, TimeLimit: timeLimit}
}

func (s *MIPSelector) Select(ctx context.Context, p ports.SelectionProblem) (_ ports.Selection, err error) {
	defer obs.Time(ctx, "selection.mip")(&err)

	cols, err := columns(p)
	if err != nil {
		return nil, fmt.Errorf("mip select: %w", err)
	}
	if len(p.Incidence.Stores) == 0 {
		return selectionOf(p, nil), nil
	}

	m := mip.NewModel()
	m.Objective().SetMinimize()

	x := make([]mip.Bool, len(cols))
	for j, c := range cols {
		x[j] = m.NewBool()
		m.Objective().NewTerm(c.cost, x[j])
	}

	// Every store on exactly one chosen route.
	rows := make([]mip.Constraint, len(p.Incidence.Stores))
	for i := range rows {
		rows[i] = m.NewConstraint(mip.Equal, 1)
	}
	for j, c := range cols {
		for _, i := range c.stores {
			rows[i].NewTerm(1, x[j])
		}
	}

	if p.FleetCapacity > 0 {
		fleet := m.NewConstraint(mip.LessThanOrEqual, float64(p.FleetCapacity))
		for j, c := range cols {
			if c.primary {
				fleet.NewTerm(1, x[j])
			}
		}
	}

	provider := s.Provider
	if provider == "" {
		provider = defaultMIPProvider
	}
	solver, err := mip.NewSolver(provider, m)
	if err != nil {
		return nil, fmt.Errorf("mip select: new solver %q: %w", provider, err)
	}

	opts := mip.NewSolveOptions()
	if s.TimeLimit > 0 {
		if err := opts.SetMaximumDuration(s.TimeLimit); err != nil {
			return nil, fmt.Errorf("mip select: %w", err)
		}
	}
	if err := opts.SetMIPGapRelative(0); err != nil {
		return nil, fmt.Errorf("mip select: %w", err)
	}
	opts.SetVerbosity(mip.Off)

	solution, err := solver.Solve(opts)
	if err != nil {
		return nil, fmt.Errorf("mip select: solve: %w", err)
	}
	if solution == nil || !solution.HasValues() {
		return nil, fmt.Errorf("mip select: %w", ErrInfeasible)
	}

	var chosen []int
	for j := range cols {
		if solution.Value(x[j]) > 0.5 {
			chosen = append(chosen, j)
		}
	}

	ev := log.Info()
	if !solution.IsOptimal() {
		ev = log.Warn()
	}
	ev.Str("run_id", obs.RunID(ctx)).
		Bool("optimal", solution.IsOptimal()).
		Float64("objective", solution.ObjectiveValue()).
		Int("routes", len(chosen)).
		Msg("mip selection solved")

	if len(chosen) == 0 {
		return nil, errors.New("mip select: solver chose no routes")
	}
	return selectionOf(p, chosen), nil
}
