package repositories

import (
	"context"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/platform/db"
	"store-route-planner/internal/ports"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.LocationRepository = (*SQLLocationRepository)(nil)

func TestSqliteLocationRepository(t *testing.T) {
	conn, err := db.OpenSqlite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	ctx := context.Background()
	require.NoError(t, InitSchema(ctx, conn))
	// Idempotent.
	require.NoError(t, InitSchema(ctx, conn))

	repo := NewSQLLocationRepository(conn, DialectSqlite)
	in := []domain.Location{
		{Name: "Warehouse", Category: domain.CategoryDistributionCenter, Coordinates: &domain.Coordinates{Lat: -36.9, Lon: 174.8}},
		{Name: "Alpha", Category: domain.CategoryBrandA, WeekdayDemand: 6.5, WeekendDemand: 3},
		{Name: "Beta", Category: domain.CategoryCombined, WeekdayDemand: 9},
	}
	require.NoError(t, repo.SaveLocations(ctx, in))

	// Upsert replaces by name.
	require.NoError(t, repo.SaveLocations(ctx, []domain.Location{{Name: "Beta", Category: domain.CategoryCombined, WeekdayDemand: 11}}))

	got, err := repo.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, 6.5, got[0].WeekdayDemand)
	assert.Nil(t, got[0].Coordinates)
	assert.Equal(t, 11.0, got[1].WeekdayDemand)
	assert.Equal(t, domain.CategoryDistributionCenter, got[2].Category)
	require.NotNil(t, got[2].Coordinates)
	assert.Equal(t, 174.8, got[2].Coordinates.Lon)

	err = repo.SaveLocations(ctx, []domain.Location{{Name: " "}})
	assert.Error(t, err)
}
