package services

import (
	"context"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/selection"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func planInputs(t *testing.T, w lineWorld) PlanInputs {
	t.Helper()
	var locs []domain.Location
	for _, n := range w.names {
		d, ok := w.demand[n]
		if !ok {
			locs = append(locs, domain.Location{Name: n, Category: domain.CategoryDistributionCenter})
			continue
		}
		locs = append(locs, domain.Location{Name: n, Category: domain.CategoryBrandA, WeekdayDemand: d})
	}
	h := domain.DemandHistory{}
	h.Add(domain.CategoryBrandA, domain.PeriodWeekday, 3, 4, 5, 6)

	return PlanInputs{Locations: locs, Matrix: w.matrix(t), History: h, Selector: selection.BranchAndBound{}}
}

func planRequest(name string, depots ...string) PlanScheduleRequest {
	return PlanScheduleRequest{
		Name:          name,
		Depots:        depots,
		Period:        domain.PeriodWeekday,
		Pool:          PoolConfig{Draws: 120, Seed: 80, Params: domain.DefaultFleetParams()},
		FleetCapacity: 50,
		Simulation:    SimulationConfig{Trials: 300, Seed: 1},
	}
}

// heavyWorld gives every store more than half a truck, so each candidate serves one store
// and a partition always exists.
func heavyWorld() lineWorld {
	w := newLineWorld()
	for s := range w.demand {
		w.demand[s] = 12
	}
	return w
}

func assertPartition(t *testing.T, schedule []domain.ScheduledRoute, want []string) {
	t.Helper()
	var got []string
	for _, r := range schedule {
		got = append(got, r.Itinerary.Stops()...)
	}
	assert.ElementsMatch(t, want, got)
}

func TestPlanScheduleSingleDepot(t *testing.T) {
	w := heavyWorld()
	w.demand["S6"] = 0

	plan, err := PlanSchedule(context.Background(), planRequest("weekday-dc", "DC"), planInputs(t, w))
	require.NoError(t, err)

	assert.Equal(t, []string{"S1", "S2", "S3", "S4", "S5"}, plan.Assignment["DC"])
	assertPartition(t, plan.Schedule, []string{"S1", "S2", "S3", "S4", "S5"})
	assert.Positive(t, plan.PlannedCost)
	require.Len(t, plan.Pools, 1)
	assert.Equal(t, "route", plan.Pools[0].Routes()[0].Name[:5])
	require.NotNil(t, plan.Result)
	assert.Len(t, plan.Result.Costs, 300)
}

func TestPlanScheduleTwoDepots(t *testing.T) {
	w := heavyWorld()
	w.names = append(w.names, "South")
	w.pos["South"] = 35

	plan, err := PlanSchedule(context.Background(), planRequest("weekday-both", "DC", "South"), planInputs(t, w))
	require.NoError(t, err)

	assert.Equal(t, []string{"S1", "S2", "S3"}, plan.Assignment["DC"])
	assert.Equal(t, []string{"S4", "S5", "S6"}, plan.Assignment["South"])
	assertPartition(t, plan.Schedule, []string{"S1", "S2", "S3", "S4", "S5", "S6"})

	for _, r := range plan.Schedule {
		for _, s := range r.Itinerary.Stops() {
			assert.Contains(t, plan.Assignment[r.Itinerary.Center()], s)
		}
	}
	require.Len(t, plan.Pools, 2)
	assert.Equal(t, "route0_0", plan.Pools[0].Routes()[0].Name)
	assert.Equal(t, "route1_0", plan.Pools[1].Routes()[0].Name)
}

func TestPlanScheduleRequiresSelector(t *testing.T) {
	w := newLineWorld()
	in := planInputs(t, w)
	in.Selector = nil
	_, err := PlanSchedule(context.Background(), planRequest("x", "DC"), in)
	assert.Error(t, err)
}

func TestBuildDepotPool(t *testing.T) {
	w := heavyWorld()
	w.names = append(w.names, "South")
	w.pos["South"] = 35
	in := planInputs(t, w)

	pool, err := BuildDepotPool(context.Background(), in, "South", []string{"DC"}, domain.PeriodWeekday, PoolConfig{Draws: 30, Seed: 3, Params: domain.DefaultFleetParams()})
	require.NoError(t, err)
	assert.Equal(t, "South", pool.Center())
	assert.Equal(t, []string{"S4", "S5", "S6"}, pool.Stores())

	alone, err := BuildDepotPool(context.Background(), in, "South", nil, domain.PeriodWeekday, PoolConfig{Draws: 30, Seed: 3, Params: domain.DefaultFleetParams()})
	require.NoError(t, err)
	assert.Len(t, alone.Stores(), 6)
}

func TestSimulateSchedule(t *testing.T) {
	w := heavyWorld()
	in := planInputs(t, w)
	schedule := []domain.ScheduledRoute{
		{Name: "r1", Itinerary: domain.NewItinerary("DC", "S1", "S2")},
		{Name: "r2", Itinerary: domain.NewItinerary("DC", "S3")},
	}

	res, err := SimulateSchedule(context.Background(), in, schedule, SimulationConfig{Trials: 50, Period: domain.PeriodWeekday, Params: domain.DefaultFleetParams()})
	require.NoError(t, err)
	assert.Len(t, res.Costs, 50)

	bad := []domain.ScheduledRoute{{Name: "x", Itinerary: domain.NewItinerary("DC", "Atlantis")}}
	_, err = SimulateSchedule(context.Background(), in, bad, SimulationConfig{Trials: 5, Params: domain.DefaultFleetParams()})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)

	depotStop := []domain.ScheduledRoute{{Name: "x", Itinerary: domain.NewItinerary("DC", "S1", "DC")}}
	_, err = SimulateSchedule(context.Background(), in, depotStop, SimulationConfig{Trials: 5, Params: domain.DefaultFleetParams()})
	assert.ErrorIs(t, err, domain.ErrInvalidSchedule)

	storeCenter := []domain.ScheduledRoute{{Name: "x", Itinerary: domain.NewItinerary("S1", "S2")}}
	_, err = SimulateSchedule(context.Background(), in, storeCenter, SimulationConfig{Trials: 5, Params: domain.DefaultFleetParams()})
	assert.ErrorIs(t, err, domain.ErrNotADepot)
}

func TestBuildDepotPoolRejectsStoreAsDepot(t *testing.T) {
	in := planInputs(t, heavyWorld())
	cfg := PoolConfig{Draws: 5, Params: domain.DefaultFleetParams()}

	_, err := BuildDepotPool(context.Background(), in, "S1", nil, domain.PeriodWeekday, cfg)
	assert.ErrorIs(t, err, domain.ErrNotADepot)

	_, err = BuildDepotPool(context.Background(), in, "DC", []string{"S2"}, domain.PeriodWeekday, cfg)
	assert.ErrorIs(t, err, domain.ErrNotADepot)

	_, err = PlanSchedule(context.Background(), planRequest("x", "S3"), in)
	assert.ErrorIs(t, err, domain.ErrNotADepot)
}
