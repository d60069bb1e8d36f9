package services

import (
	"fmt"
	"math"
	"store-route-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

// lineWorld places a center at minute 0 and stores every 5 minutes along a road.
// Travel time is the gap plus a fixed 5 minute stop-over.
type lineWorld struct {
	names  []string
	pos    map[string]float64
	demand map[string]float64
}

func newLineWorld() lineWorld {
	w := lineWorld{
		names:  []string{"DC", "S1", "S2", "S3", "S4", "S5", "S6"},
		pos:    map[string]float64{"DC": 0},
		demand: map[string]float64{"S1": 4, "S2": 5, "S3": 6, "S4": 3, "S5": 7, "S6": 8},
	}
	for i := 1; i <= 6; i++ {
		w.pos[fmt.Sprintf("S%d", i)] = float64(5 * i)
	}
	return w
}

func (w lineWorld) seconds(a, b string) float64 {
	return math.Abs(w.pos[a]-w.pos[b])*60 + 300
}

func (w lineWorld) matrix(t *testing.T) domain.DurationMatrix {
	t.Helper()
	m, err := domain.NewDurationMatrix(w.names)
	require.NoError(t, err)
	for _, a := range w.names {
		for _, b := range w.names {
			if a != b {
				require.NoError(t, m.Set(a, b, w.seconds(a, b)))
			}
		}
	}
	return m
}

func (w lineWorld) table(t *testing.T) *TravelTimeTable {
	t.Helper()
	tt, err := NewTravelTimeTable(w.matrix(t), w.names)
	require.NoError(t, err)
	return tt
}

func (w lineWorld) constructor(t *testing.T, params domain.FleetParams) *RouteConstructor {
	t.Helper()
	c, err := NewRouteConstructor("DC", w.demand, w.table(t), params)
	require.NoError(t, err)
	return c
}

// tableFrom builds a table from legs that take the same time in both directions.
func tableFrom(t *testing.T, names []string, legs map[[2]string]float64) *TravelTimeTable {
	t.Helper()
	m, err := domain.NewDurationMatrix(names)
	require.NoError(t, err)
	for k, v := range legs {
		require.NoError(t, m.Set(k[0], k[1], v))
		require.NoError(t, m.Set(k[1], k[0], v))
	}
	tt, err := NewTravelTimeTable(m, names)
	require.NoError(t, err)
	return tt
}
