package domain

import "slices"

// Itinerary is an ordered round trip from a distribution center through its stops and
// back to the same center. The center-terminated sequence is always valid: stops are
// only inserted before the return leg and only peeled from the end.
type Itinerary struct {
	center string
	stops  []string
}

// NewItinerary returns [center, stops..., center].
func NewItinerary(center string, stops ...string) Itinerary {
	return Itinerary{center: center, stops: slices.Clone(stops)}
}

func (it Itinerary) Center() string { return it.center }

// Number of stores visited.
func (it Itinerary) Len() int { return len(it.stops) }

// Stops returns a copy of the intermediate stores in visiting order.
func (it Itinerary) Stops() []string { return slices.Clone(it.stops) }

// Last returns the most recently added store, or the center for an empty itinerary.
func (it Itinerary) Last() string {
	if len(it.stops) == 0 {
		return it.center
	}
	return it.stops[len(it.stops)-1]
}

func (it Itinerary) Contains(store string) bool {
	return store == it.center || slices.Contains(it.stops, store)
}

// Sequence returns the full location sequence including both center endpoints.
func (it Itinerary) Sequence() []string {
	seq := make([]string, 0, len(it.stops)+2)
	seq = append(seq, it.center)
	seq = append(seq, it.stops...)
	return append(seq, it.center)
}

// With returns a copy with store inserted before the return leg.
func (it Itinerary) With(store string) Itinerary {
	stops := make([]string, 0, len(it.stops)+1)
	stops = append(stops, it.stops...)
	return Itinerary{center: it.center, stops: append(stops, store)}
}

// Peel removes and returns the store visited just before the return leg.
func (it *Itinerary) Peel() (string, bool) {
	if len(it.stops) == 0 {
		return "", false
	}
	last := it.stops[len(it.stops)-1]
	it.stops = slices.Clone(it.stops[:len(it.stops)-1])
	return last, true
}

func (it Itinerary) Clone() Itinerary {
	return Itinerary{center: it.center, stops: slices.Clone(it.stops)}
}

// Pallets sums the demand of the visited stores. Stores missing from demand count as zero.
func (it Itinerary) Pallets(demand map[string]float64) float64 {
	total := 0.0
	for _, s := range it.stops {
		total += demand[s]
	}
	return total
}
