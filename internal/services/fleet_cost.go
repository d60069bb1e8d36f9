package services

import (
	"math/rand"
	"store-route-planner/internal/domain"
)

// TrafficModel draws the per-trial congestion factor in extra minutes per hour of driving.
type TrafficModel struct {
	WeekdayMin, WeekdayMax int
	WeekendMin, WeekendMax int
}

func DefaultTrafficModel() TrafficModel {
	return TrafficModel{WeekdayMin: 20, WeekdayMax: 60, WeekendMin: 20, WeekendMax: 40}
}

// ExtraMinutes draws a whole number of minutes uniformly from [min, max) for the period.
func (m TrafficModel) ExtraMinutes(rng *rand.Rand, p domain.Period) float64 {
	lo, hi := m.WeekdayMin, m.WeekdayMax
	if p == domain.PeriodWeekend {
		lo, hi = m.WeekendMin, m.WeekendMax
	}
	if hi <= lo {
		return float64(lo)
	}
	return float64(lo + rng.Intn(hi-lo))
}

// TrialCost is the operating cost of one repaired trial schedule.
type TrialCost struct {
	RouteHours   []float64
	LeftOutHours []float64
	Cost         float64
	Trucks       int
}

// FleetCostCalculator turns repaired routes and left-out trips into hours, dollars and trucks.
type FleetCostCalculator struct {
	table  *TravelTimeTable
	params domain.FleetParams
}

func NewFleetCostCalculator(table *TravelTimeTable, params domain.FleetParams) *FleetCostCalculator {
	return &FleetCostCalculator{table: table, params: params}
}

// RouteHours is driving time inflated by traffic plus pallet handling, in hours.
func (c *FleetCostCalculator) RouteHours(it domain.Itinerary, pallets, extraMinutes float64) (float64, error) {
	legs, err := c.table.LegSeconds(it.Sequence())
	if err != nil {
		return 0, err
	}
	return (inflate(legs, extraMinutes) + c.params.HandlingSeconds(pallets)) / 3600, nil
}

// LeftOutHours prices a dedicated center -> store -> center trip. Loads above capacity
// take two sequential truck trips, so the driving time doubles; handling does not.
func (c *FleetCostCalculator) LeftOutHours(s domain.LeftOutStore, extraMinutes float64) (float64, error) {
	legs, err := c.table.LegSeconds([]string{s.Center, s.Store, s.Center})
	if err != nil {
		return 0, err
	}
	if c.params.TrucksFor(s.Pallets) > 1 {
		legs *= 2
	}
	return (inflate(legs, extraMinutes) + c.params.HandlingSeconds(s.Pallets)) / 3600, nil
}

func (c *FleetCostCalculator) Cost(hours float64) float64 { return c.params.ShiftCost(hours) }

// Trial prices every repaired route (one truck each) and every left-out trip
// (one or two trucks) under a single traffic draw.
func (c *FleetCostCalculator) Trial(rep TrialRepair, extraMinutes float64) (TrialCost, error) {
	out := TrialCost{
		RouteHours:   make([]float64, len(rep.Routes)),
		LeftOutHours: make([]float64, len(rep.LeftOut)),
	}

	for i, r := range rep.Routes {
		h, err := c.RouteHours(r.Itinerary, r.Pallets, extraMinutes)
		if err != nil {
			return TrialCost{}, err
		}
		out.RouteHours[i] = h
		out.Cost += c.Cost(h)
		out.Trucks++
	}

	for i, s := range rep.LeftOut {
		h, err := c.LeftOutHours(s, extraMinutes)
		if err != nil {
			return TrialCost{}, err
		}
		out.LeftOutHours[i] = h
		out.Cost += c.Cost(h)
		out.Trucks += c.params.TrucksFor(s.Pallets)
	}

	return out, nil
}

// inflate adds extraMinutes of delay for every hour of driving.
func inflate(seconds, extraMinutes float64) float64 {
	return seconds + seconds/3600*extraMinutes*60
}
