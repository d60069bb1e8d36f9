package services

import (
	"context"
	"store-route-planner/internal/adapters/distance"
	"store-route-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignStoresToDepots(t *testing.T) {
	names := []string{"North", "South", "A", "B", "C"}
	m, err := domain.NewDurationMatrix(names)
	require.NoError(t, err)
	set := func(a, b string, v float64) { require.NoError(t, m.Set(a, b, v)) }
	set("North", "A", 600)
	set("South", "A", 1200)
	set("North", "B", 900)
	set("South", "B", 300)
	set("North", "C", 700)
	set("South", "C", 700)
	set("North", "South", 2000)
	set("South", "North", 2000)

	stores := []domain.Location{
		{Name: "A", Category: domain.CategoryBrandA},
		{Name: "B", Category: domain.CategoryBrandB},
		{Name: "C", Category: domain.CategoryCombined},
		{Name: "North", Category: domain.CategoryDistributionCenter},
	}

	got, err := AssignStoresToDepots(m, []string{"North", "South"}, stores)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C"}, locationNames(got["North"]))
	assert.Equal(t, []string{"B"}, locationNames(got["South"]))

	_, err = AssignStoresToDepots(m, []string{"North", "Nowhere"}, stores)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestAssignStoresToDepotsSkipsColocated(t *testing.T) {
	m, err := domain.NewDurationMatrix([]string{"North", "Depot Shop"})
	require.NoError(t, err)
	require.NoError(t, m.Set("North", "Depot Shop", 0))

	got, err := AssignStoresToDepots(m, []string{"North"}, []domain.Location{{Name: "Depot Shop", Category: domain.CategoryBrandA}})
	require.NoError(t, err)
	assert.Empty(t, got["North"])
}

func TestLoadDurationMatrix(t *testing.T) {
	w := newLineWorld()
	provider := distance.NewMatrixProvider(w.matrix(t))

	m, err := LoadDurationMatrix(context.Background(), w.names, provider)
	require.NoError(t, err)
	for _, a := range w.names {
		for _, b := range w.names {
			if a == b {
				continue
			}
			got, ok := m.Get(a, b)
			require.True(t, ok)
			assert.Equal(t, w.seconds(a, b), got)
		}
	}

	_, err = LoadDurationMatrix(context.Background(), append(w.names, "Nowhere"), provider)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func locationNames(ls []domain.Location) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Name
	}
	return out
}
