package services

import (
	"store-route-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteRepairPeelsUntilWithinCapacity(t *testing.T) {
	engine := NewRouteRepairEngine(domain.DefaultFleetParams())
	routes := []domain.ScheduledRoute{
		{Name: "r1", Itinerary: domain.NewItinerary("DC", "A", "B", "C")},
		{Name: "r2", Itinerary: domain.NewItinerary("DC", "D")},
	}
	demand := map[string]float64{"A": 8, "B": 9, "C": 25, "D": 12}

	rep := engine.Repair(routes, RouteDemand(routes, demand), demand)

	assert.Equal(t, 1, rep.Adjusted)
	assert.Empty(t, rep.Dissolved)
	require.Len(t, rep.Routes, 2)
	assert.Equal(t, []string{"A", "B"}, rep.Routes[0].Itinerary.Stops())
	assert.Equal(t, 17.0, rep.Routes[0].Pallets)
	assert.Equal(t, 12.0, rep.Routes[1].Pallets)
	assert.Equal(t, []domain.LeftOutStore{{Center: "DC", Store: "C", Pallets: 25}}, rep.LeftOut)

	// The schedule itself is left untouched.
	assert.Equal(t, []string{"A", "B", "C"}, routes[0].Itinerary.Stops())
}

func TestRouteRepairPeelsSeveralStores(t *testing.T) {
	engine := &RouteRepairEngine{Capacity: 20}
	routes := []domain.ScheduledRoute{{Name: "r1", Itinerary: domain.NewItinerary("DC", "A", "B", "C")}}
	demand := map[string]float64{"A": 12, "B": 9, "C": 6}

	rep := engine.Repair(routes, RouteDemand(routes, demand), demand)

	require.Len(t, rep.Routes, 1)
	assert.Equal(t, []string{"A"}, rep.Routes[0].Itinerary.Stops())
	assert.Equal(t, 12.0, rep.Routes[0].Pallets)
	require.Len(t, rep.LeftOut, 2)
	assert.Equal(t, "C", rep.LeftOut[0].Store)
	assert.Equal(t, "B", rep.LeftOut[1].Store)

	// Every store is still served exactly once.
	served := rep.Routes[0].Pallets
	for _, s := range rep.LeftOut {
		served += s.Pallets
	}
	assert.Equal(t, 27.0, served)
}

func TestRouteRepairDissolvesEmptiedRoute(t *testing.T) {
	engine := &RouteRepairEngine{Capacity: 20}
	routes := []domain.ScheduledRoute{{Name: "solo", Itinerary: domain.NewItinerary("DC", "X")}}
	demand := map[string]float64{"X": 30}

	rep := engine.Repair(routes, RouteDemand(routes, demand), demand)

	assert.Empty(t, rep.Routes)
	assert.Equal(t, []string{"solo"}, rep.Dissolved)
	assert.Equal(t, 1, rep.Adjusted)
	assert.Equal(t, []domain.LeftOutStore{{Center: "DC", Store: "X", Pallets: 30}}, rep.LeftOut)
}

func TestRouteRepairExactCapacityUntouched(t *testing.T) {
	engine := &RouteRepairEngine{Capacity: 20}
	routes := []domain.ScheduledRoute{{Name: "r", Itinerary: domain.NewItinerary("DC", "A", "B")}}
	demand := map[string]float64{"A": 10, "B": 10}

	rep := engine.Repair(routes, RouteDemand(routes, demand), demand)

	assert.Zero(t, rep.Adjusted)
	assert.Empty(t, rep.LeftOut)
	assert.Equal(t, []string{"A", "B"}, rep.Routes[0].Itinerary.Stops())
}
