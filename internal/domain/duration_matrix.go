package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DurationMatrix holds travel durations in seconds between named locations.
// Row is the origin, column the destination. Missing entries are NaN.
type DurationMatrix struct {
	names   []string
	index   map[string]int
	seconds *mat.Dense
}

// NewDurationMatrix returns a matrix with a zero diagonal and every other entry missing.
func NewDurationMatrix(names []string) (DurationMatrix, error) {
	if len(names) == 0 {
		return DurationMatrix{}, fmt.Errorf("new duration matrix: no locations")
	}

	index := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			return DurationMatrix{}, fmt.Errorf("new duration matrix: empty name at position %d", i)
		}
		if _, dup := index[n]; dup {
			return DurationMatrix{}, fmt.Errorf("new duration matrix: duplicate location %q", n)
		}
		index[n] = i
	}

	data := make([]float64, len(names)*len(names))
	for i := range data {
		data[i] = math.NaN()
	}
	m := mat.NewDense(len(names), len(names), data)
	for i := range names {
		m.Set(i, i, 0)
	}

	return DurationMatrix{
		names:   append([]string(nil), names...),
		index:   index,
		seconds: m,
	}, nil
}

func (m DurationMatrix) Names() []string { return append([]string(nil), m.names...) }

func (m DurationMatrix) Has(name string) bool {
	_, ok := m.index[name]
	return ok
}

func (m DurationMatrix) Set(origin, destination string, seconds float64) error {
	i, ok := m.index[origin]
	if !ok {
		return &LookupError{Origin: origin, Destination: destination}
	}
	j, ok := m.index[destination]
	if !ok {
		return &LookupError{Origin: origin, Destination: destination}
	}
	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("set duration %q -> %q: invalid seconds %v", origin, destination, seconds)
	}
	m.seconds.Set(i, j, seconds)
	return nil
}

// Get returns the duration and whether the entry is present.
func (m DurationMatrix) Get(origin, destination string) (float64, bool) {
	i, ok := m.index[origin]
	if !ok {
		return 0, false
	}
	j, ok := m.index[destination]
	if !ok {
		return 0, false
	}
	v := m.seconds.At(i, j)
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}
