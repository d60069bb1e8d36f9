// Package app wires configuration to concrete adapters for the binaries.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store-route-planner/internal/adapters/cache"
	"store-route-planner/internal/adapters/dataset"
	"store-route-planner/internal/adapters/distance"
	"store-route-planner/internal/adapters/repositories"
	"store-route-planner/internal/config"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/platform/db"
	"store-route-planner/internal/ports"
	"store-route-planner/internal/selection"
	"store-route-planner/internal/services"
	"strings"

	"github.com/rs/zerolog/log"
)

// Resources holds the planning inputs and the connections opened to load them.
type Resources struct {
	Inputs services.PlanInputs

	closers []func() error
}

func (r *Resources) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			log.Warn().Err(err).Msg("close resource")
		}
	}
}

// Load opens the configured database and cache, then reads locations, travel durations
// and demand history. Locations come from the database when it has any, otherwise from
// CSV. Durations come from ORS when a key is set, then from the database, then from CSV.
func Load(ctx context.Context, cfg config.Config) (_ *Resources, err error) {
	res := &Resources{}
	defer func() {
		if err != nil {
			res.Close()
		}
	}()

	conn, dialect, err := OpenDatabase(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var store ports.DistanceStore
	if conn != nil {
		res.closers = append(res.closers, conn.Close)
		store = DurationStore(conn, dialect)
	}

	locations, err := loadLocations(ctx, cfg, conn, dialect)
	if err != nil {
		return nil, err
	}

	matrix, err := loadMatrix(ctx, cfg, locations, store)
	if err != nil {
		return nil, err
	}

	history, err := dataset.LoadDemandHistory(cfg.DemandHistoryPath)
	if err != nil {
		return nil, err
	}

	selector, err := NewSelector(cfg)
	if err != nil {
		return nil, err
	}

	res.Inputs = services.PlanInputs{
		Locations: locations,
		Matrix:    matrix,
		History:   history,
		Selector:  selector,
	}

	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, err
		}
		res.closers = append(res.closers, client.Close)
		res.Inputs.Cache = cache.NewRedisPoolCache(client, cfg.PoolCacheTTL)
	}

	log.Info().
		Int("locations", len(locations)).
		Int("matrix", len(matrix.Names())).
		Str("selector", cfg.Selector).
		Bool("pool_cache", res.Inputs.Cache != nil).
		Msg("inputs loaded")

	return res, nil
}

// NewSelector returns the configured set-partitioning solver.
func NewSelector(cfg config.Config) (ports.Selector, error) {
	switch strings.ToLower(cfg.Selector) {
	case "", "bnb":
		return selection.BranchAndBound{NodeLimit: cfg.SelectorNodeLimit}, nil
	case "mip":
		return selection.NewMIPSelector(cfg.SelectorTimeLimit), nil
	}
	return nil, fmt.Errorf("new selector: unknown selector %q", cfg.Selector)
}

// OpenDatabase prefers postgres over SQLite and ensures the schema exists.
// It returns a nil DB when neither is configured.
func OpenDatabase(ctx context.Context, cfg config.Config) (*sql.DB, repositories.Dialect, error) {
	var (
		conn    *sql.DB
		dialect repositories.Dialect
		err     error
	)
	switch {
	case cfg.DatabaseURL != "":
		conn, err = db.Open(cfg.DatabaseURL)
		dialect = repositories.DialectPostgres
	case cfg.SqlitePath != "":
		conn, err = db.OpenSqlite(cfg.SqlitePath)
		dialect = repositories.DialectSqlite
	default:
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}

	if err := repositories.InitSchema(ctx, conn); err != nil {
		conn.Close()
		return nil, 0, err
	}
	return conn, dialect, nil
}

// DurationStore returns the travel duration table of an open database.
func DurationStore(conn *sql.DB, dialect repositories.Dialect) ports.DistanceStore {
	if dialect == repositories.DialectSqlite {
		return cache.NewSqliteDurationStore(conn)
	}
	return cache.NewSQLDurationStore(conn)
}

func loadLocations(ctx context.Context, cfg config.Config, conn *sql.DB, dialect repositories.Dialect) ([]domain.Location, error) {
	if conn != nil {
		var repo ports.LocationRepository = repositories.NewSQLLocationRepository(conn, dialect)
		locations, err := repo.ListLocations(ctx)
		if err != nil {
			return nil, err
		}
		if len(locations) > 0 {
			return locations, nil
		}
		log.Info().Str("path", cfg.LocationsPath).Msg("database has no locations, reading CSV")
	}
	return dataset.LoadLocations(cfg.LocationsPath)
}

func loadMatrix(ctx context.Context, cfg config.Config, locations []domain.Location, store ports.DistanceStore) (domain.DurationMatrix, error) {
	names := make([]string, len(locations))
	for i, l := range locations {
		names[i] = l.Name
	}

	if cfg.ORSAPIKey != "" {
		var opts []distance.ORSOption
		if store != nil {
			opts = append(opts, distance.WithStore(store))
		}
		provider, err := distance.NewORSMatrixProvider(cfg.ORSAPIKey, locations, opts...)
		if err != nil {
			return domain.DurationMatrix{}, err
		}
		return services.LoadDurationMatrix(ctx, names, provider)
	}

	if store != nil {
		m, err := services.LoadDurationMatrix(ctx, names, distance.NewStoreProvider(store))
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, domain.ErrLocationNotFound) {
			return domain.DurationMatrix{}, err
		}
		log.Info().Err(err).Str("path", cfg.DurationsPath).Msg("database durations incomplete, reading CSV")
	}

	return dataset.LoadDurationMatrix(cfg.DurationsPath)
}
