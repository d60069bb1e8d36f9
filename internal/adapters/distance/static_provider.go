package distance

import (
	"context"
	"fmt"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/ports"
)

type Pair struct {
	From, To string
	Meters   float64
	Seconds  float64
}

// StaticProvider serves distances from memory, e.g. a duration matrix loaded from CSV.
type StaticProvider struct {
	m map[string]ports.DistanceResult
}

func NewStaticProvider(pairs []Pair) *StaticProvider {
	m := make(map[string]ports.DistanceResult, len(pairs))
	for _, p := range pairs {
		m[p.From+"|"+p.To] = ports.DistanceResult{DistanceMeters: p.Meters, DurationSeconds: p.Seconds}
	}
	return &StaticProvider{m: m}
}

// NewMatrixProvider exposes every present off-diagonal entry of m. Distances are unknown and left at zero.
func NewMatrixProvider(m domain.DurationMatrix) *StaticProvider {
	var pairs []Pair
	names := m.Names()
	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			if secs, ok := m.Get(a, b); ok {
				pairs = append(pairs, Pair{From: a, To: b, Seconds: secs})
			}
		}
	}
	return NewStaticProvider(pairs)
}

func (p *StaticProvider) GetDistances(ctx context.Context, origin string, destinations []string) (map[string]ports.DistanceResult, error) {
	out := make(map[string]ports.DistanceResult, len(destinations))
	for _, d := range destinations {
		r, ok := p.m[origin+"|"+d]
		if !ok {
			return nil, fmt.Errorf("missing pair %q -> %q: %w", origin, d, domain.ErrLocationNotFound)
		}
		out[d] = r
	}
	return out, nil
}
