package services

import (
	"store-route-planner/internal/domain"
)

// RepairedRoute is a scheduled route after over-capacity stores were peeled off.
type RepairedRoute struct {
	Name      string
	Itinerary domain.Itinerary
	Pallets   float64
}

// TrialRepair is the repaired schedule of one trial.
type TrialRepair struct {
	Routes []RepairedRoute
	// Stores peeled off over-capacity routes, each served by its own dedicated trip.
	LeftOut []domain.LeftOutStore
	// Number of routes that needed repair.
	Adjusted int
	// Routes emptied by repair. They are not part of Routes and consume no truck.
	Dissolved []string
}

// RouteRepairEngine restores the pallet capacity of routes under sampled demand.
type RouteRepairEngine struct {
	Capacity float64
}

func NewRouteRepairEngine(params domain.FleetParams) *RouteRepairEngine {
	return &RouteRepairEngine{Capacity: params.PalletCapacity}
}

// Repair peels stores from the end of every route whose trial demand exceeds capacity
// until it fits. routeDemand[i] is the trial demand of routes[i]; storeDemand holds the
// trial demand of each store.
//
// A route whose last remaining store still exceeds capacity is emptied: the store becomes
// a left-out trip and the route is dissolved. Every peel removes a store, so repair ends.
func (e *RouteRepairEngine) Repair(
	routes []domain.ScheduledRoute,
	routeDemand []float64,
	storeDemand map[string]float64,
) TrialRepair {
	out := TrialRepair{Routes: make([]RepairedRoute, 0, len(routes))}

	for i, r := range routes {
		demand := routeDemand[i]
		if demand <= e.Capacity {
			out.Routes = append(out.Routes, RepairedRoute{Name: r.Name, Itinerary: r.Itinerary, Pallets: demand})
			continue
		}

		out.Adjusted++
		it := r.Itinerary.Clone()
		for demand > e.Capacity {
			store, ok := it.Peel()
			if !ok {
				break
			}
			pallets := storeDemand[store]
			out.LeftOut = append(out.LeftOut, domain.LeftOutStore{Center: it.Center(), Store: store, Pallets: pallets})
			demand -= pallets
		}

		if it.Len() == 0 {
			out.Dissolved = append(out.Dissolved, r.Name)
			continue
		}
		out.Routes = append(out.Routes, RepairedRoute{Name: r.Name, Itinerary: it, Pallets: demand})
	}

	return out
}

// RouteDemand sums the given store demand over each route's stops.
func RouteDemand(routes []domain.ScheduledRoute, storeDemand map[string]float64) []float64 {
	out := make([]float64, len(routes))
	for i, r := range routes {
		out[i] = r.Itinerary.Pallets(storeDemand)
	}
	return out
}
