package main

import (
	"context"
	"store-route-planner/internal/adapters/dataset"
	"store-route-planner/internal/adapters/repositories"
	"store-route-planner/internal/app"
	"store-route-planner/internal/config"
	"store-route-planner/internal/platform/obs"

	"github.com/rs/zerolog/log"
)

// dbtool creates the schema and seeds locations and travel durations from CSV into
// postgres (DATABASE_URL) or SQLite (SQLITE_PATH).
func main() {
	cfg := config.Load()
	obs.Setup(cfg.LogLevel, cfg.LogPretty)

	if cfg.DatabaseURL == "" && cfg.SqlitePath == "" {
		log.Fatal().Msg("DATABASE_URL or SQLITE_PATH is required")
	}

	ctx, _ := obs.WithRunID(context.Background())
	if err := initAndSeed(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
}

func initAndSeed(ctx context.Context, cfg config.Config) (err error) {
	defer obs.Time(ctx, "dbtool.seed")(&err)

	log.Info().Msg("Initializing database schema...")
	conn, dialect, err := app.OpenDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Info().Msg("Schema ready.")

	locations, err := dataset.LoadLocations(cfg.LocationsPath)
	if err != nil {
		return err
	}
	if err := repositories.NewSQLLocationRepository(conn, dialect).SaveLocations(ctx, locations); err != nil {
		return err
	}
	log.Info().Int("locations", len(locations)).Msg("Locations seeded.")

	matrix, err := dataset.LoadDurationMatrix(cfg.DurationsPath)
	if err != nil {
		return err
	}
	n, err := repositories.SeedDurations(ctx, app.DurationStore(conn, dialect), matrix)
	if err != nil {
		return err
	}
	log.Info().Int("durations", n).Msg("Durations seeded.")

	return nil
}
