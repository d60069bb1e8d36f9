package services

import (
	"math/rand"
	"store-route-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func costTable(t *testing.T) *TravelTimeTable {
	t.Helper()
	return tableFrom(t, []string{"DC", "A", "B", "C"}, map[[2]string]float64{
		{"DC", "A"}: 1800,
		{"A", "B"}:  1800,
		{"DC", "B"}: 1800,
		{"DC", "C"}: 1800,
		{"A", "C"}:  2400,
		{"B", "C"}:  2400,
	})
}

func TestFleetCostRouteHours(t *testing.T) {
	calc := NewFleetCostCalculator(costTable(t), domain.DefaultFleetParams())
	it := domain.NewItinerary("DC", "A", "B")

	h, err := calc.RouteHours(it, 10, 0)
	require.NoError(t, err)
	assert.InDelta(t, 11400.0/3600, h, 1e-9)
	assert.InDelta(t, 11400.0/3600*175, calc.Cost(h), 1e-9)

	// 30 extra minutes for each of the 1.5 driving hours.
	h, err = calc.RouteHours(it, 10, 30)
	require.NoError(t, err)
	assert.InDelta(t, 14100.0/3600, h, 1e-9)
}

func TestFleetCostLeftOutDoubling(t *testing.T) {
	calc := NewFleetCostCalculator(costTable(t), domain.DefaultFleetParams())

	h, err := calc.LeftOutHours(domain.LeftOutStore{Center: "DC", Store: "C", Pallets: 25}, 0)
	require.NoError(t, err)
	// Doubled 3600s round trip plus 25 pallets of handling.
	assert.InDelta(t, 22200.0/3600, h, 1e-9)
	assert.InDelta(t, (22200.0/3600-4)*250+700, calc.Cost(h), 1e-9)

	h, err = calc.LeftOutHours(domain.LeftOutStore{Center: "DC", Store: "C", Pallets: 5}, 20)
	require.NoError(t, err)
	assert.InDelta(t, (3600.0+1200+3000)/3600, h, 1e-9)
}

func TestFleetCostTrial(t *testing.T) {
	calc := NewFleetCostCalculator(costTable(t), domain.DefaultFleetParams())
	rep := TrialRepair{
		Routes:  []RepairedRoute{{Name: "r1", Itinerary: domain.NewItinerary("DC", "A", "B"), Pallets: 17}},
		LeftOut: []domain.LeftOutStore{{Center: "DC", Store: "C", Pallets: 25}},
	}

	c, err := calc.Trial(rep, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Trucks)
	require.Len(t, c.RouteHours, 1)
	require.Len(t, c.LeftOutHours, 1)

	route := (5400.0 + 17*600) / 3600
	leftOut := 22200.0 / 3600
	assert.InDelta(t, route, c.RouteHours[0], 1e-9)
	want := calc.Cost(route) + calc.Cost(leftOut)
	assert.InDelta(t, want, c.Cost, 1e-9)
}

func TestFleetCostTrialUnknownLocation(t *testing.T) {
	calc := NewFleetCostCalculator(costTable(t), domain.DefaultFleetParams())
	rep := TrialRepair{Routes: []RepairedRoute{{Name: "r", Itinerary: domain.NewItinerary("DC", "Nowhere"), Pallets: 1}}}

	_, err := calc.Trial(rep, 0)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestTrafficModelExtraMinutes(t *testing.T) {
	m := DefaultTrafficModel()
	rng := rand.New(rand.NewSource(80))
	for i := 0; i < 1000; i++ {
		wd := m.ExtraMinutes(rng, domain.PeriodWeekday)
		assert.GreaterOrEqual(t, wd, 20.0)
		assert.Less(t, wd, 60.0)
		assert.Equal(t, float64(int(wd)), wd)

		we := m.ExtraMinutes(rng, domain.PeriodWeekend)
		assert.GreaterOrEqual(t, we, 20.0)
		assert.Less(t, we, 40.0)
	}

	fixed := TrafficModel{WeekdayMin: 30, WeekdayMax: 30}
	assert.Equal(t, 30.0, fixed.ExtraMinutes(rng, domain.PeriodWeekday))
}
