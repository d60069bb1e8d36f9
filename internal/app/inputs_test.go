package app

import (
	"context"
	"os"
	"path/filepath"
	"store-route-planner/internal/adapters/repositories"
	"store-route-planner/internal/config"
	"store-route-planner/internal/selection"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func csvConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		LocationsPath: writeFile(t, dir, "locations.csv", `Name,Category,WeekdayDemand,WeekendDemand
DC,DistributionCenter,0,0
S1,BrandA,6,2
S2,BrandB,4,3
`),
		DurationsPath: writeFile(t, dir, "durations.csv", `,DC,S1,S2
DC,0,600,900
S1,600,0,400
S2,900,400,0
`),
		DemandHistoryPath: writeFile(t, dir, "history.csv", `Store,Brand,2021-06-14,2021-06-19
S1,BrandA,5,2
S2,BrandB,4,3
`),
		Selector: "bnb",
	}
}

func TestLoadFromCSV(t *testing.T) {
	res, err := Load(context.Background(), csvConfig(t))
	require.NoError(t, err)
	t.Cleanup(res.Close)

	assert.Len(t, res.Inputs.Locations, 3)
	assert.Equal(t, []string{"DC", "S1", "S2"}, res.Inputs.Matrix.Names())
	assert.NotEmpty(t, res.Inputs.History)
	assert.IsType(t, selection.BranchAndBound{}, res.Inputs.Selector)
	assert.Nil(t, res.Inputs.Cache)
}

func TestLoadPrefersSeededDatabase(t *testing.T) {
	ctx := context.Background()
	cfg := csvConfig(t)
	cfg.SqlitePath = filepath.Join(t.TempDir(), "planner.db")

	// An empty database falls back to CSV for both locations and durations.
	res, err := Load(ctx, cfg)
	require.NoError(t, err)
	locations, matrix := res.Inputs.Locations, res.Inputs.Matrix
	res.Close()

	conn, dialect, err := OpenDatabase(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, repositories.NewSQLLocationRepository(conn, dialect).SaveLocations(ctx, locations))
	n, err := repositories.SeedDurations(ctx, DurationStore(conn, dialect), matrix)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	require.NoError(t, conn.Close())

	cfg.LocationsPath = filepath.Join(t.TempDir(), "missing.csv")
	cfg.DurationsPath = filepath.Join(t.TempDir(), "missing.csv")
	res, err = Load(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(res.Close)

	assert.Len(t, res.Inputs.Locations, 3)
	v, ok := res.Inputs.Matrix.Get("S2", "S1")
	require.True(t, ok)
	assert.Equal(t, 400.0, v)
}

func TestLoadWithRedisPoolCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := csvConfig(t)
	cfg.RedisAddr = mr.Addr()

	res, err := Load(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(res.Close)

	assert.NotNil(t, res.Inputs.Cache)
}

func TestNewSelector(t *testing.T) {
	s, err := NewSelector(config.Config{Selector: "MIP"})
	require.NoError(t, err)
	assert.IsType(t, &selection.MIPSelector{}, s)

	_, err = NewSelector(config.Config{Selector: "greedy"})
	assert.Error(t, err)
}
