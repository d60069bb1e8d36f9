package services

import (
	"fmt"
	"store-route-planner/internal/domain"
)

// TravelTimeTable is the read-only duration lookup for one depot and its stores.
// It is built by filtering a full matrix so routes never need an out-of-set lookup.
type TravelTimeTable struct {
	m domain.DurationMatrix
}

// NewTravelTimeTable keeps only the rows and columns named in keep.
// Every ordered pair among the kept locations must be present in full.
func NewTravelTimeTable(full domain.DurationMatrix, keep []string) (*TravelTimeTable, error) {
	names := make([]string, 0, len(keep))
	seen := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		if _, ok := seen[k]; ok {
			continue
		}
		if !full.Has(k) {
			return nil, fmt.Errorf("new travel time table: %w", &domain.LookupError{Origin: k, Destination: k})
		}
		seen[k] = struct{}{}
		names = append(names, k)
	}

	m, err := domain.NewDurationMatrix(names)
	if err != nil {
		return nil, fmt.Errorf("new travel time table: %w", err)
	}

	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			secs, ok := full.Get(a, b)
			if !ok {
				return nil, fmt.Errorf("new travel time table: %w", &domain.LookupError{Origin: a, Destination: b})
			}
			if err := m.Set(a, b, secs); err != nil {
				return nil, fmt.Errorf("new travel time table: %w", err)
			}
		}
	}

	return &TravelTimeTable{m: m}, nil
}

// Duration returns the travel time in seconds from a to b.
func (t *TravelTimeTable) Duration(a, b string) (float64, error) {
	secs, ok := t.m.Get(a, b)
	if !ok {
		return 0, &domain.LookupError{Origin: a, Destination: b}
	}
	return secs, nil
}

// LegSeconds sums the consecutive legs of seq.
func (t *TravelTimeTable) LegSeconds(seq []string) (float64, error) {
	total := 0.0
	for i := 1; i < len(seq); i++ {
		d, err := t.Duration(seq[i-1], seq[i])
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}

func (t *TravelTimeTable) Locations() []string { return t.m.Names() }

func (t *TravelTimeTable) Has(name string) bool { return t.m.Has(name) }
