package domain

// Shift distinguishes the two costing variants offered for every itinerary.
type Shift int

const (
	ShiftPrimary Shift = iota
	// Second truck deployed on an identical itinerary, costed at a flat rate.
	ShiftSecondary
)

func (s Shift) String() string {
	if s == ShiftSecondary {
		return "secondary"
	}
	return "primary"
}

// CandidateRoute is one priced option handed to the selector.
// It is immutable planning data owned by the pool that generated it.
type CandidateRoute struct {
	Name            string
	Shift           Shift
	Itinerary       Itinerary
	Pallets         float64
	DurationSeconds float64
	Cost            float64
}

func (r CandidateRoute) WithinDuration(p FleetParams) bool {
	return r.DurationSeconds <= p.MaxRouteSeconds
}

func (r CandidateRoute) WithinCapacity(p FleetParams) bool {
	return r.Pallets <= p.PalletCapacity
}

func (r CandidateRoute) Feasible(p FleetParams) bool {
	return r.WithinDuration(p) && r.WithinCapacity(p)
}

// ScheduledRoute is a route the selector chose.
type ScheduledRoute struct {
	Name      string
	Itinerary Itinerary
}

// LeftOutStore is a store peeled off an over-capacity route during one trial.
// It is served by its own center -> store -> center trip.
type LeftOutStore struct {
	Center  string
	Store   string
	Pallets float64
}
