package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store-route-planner/internal/domain"
	"strings"
)

type Dialect int

const (
	DialectPostgres Dialect = iota
	DialectSqlite
)

// SQL-backed implementation of the LocationRepository port.
type SQLLocationRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

func NewSQLLocationRepository(db *sql.DB, dialect Dialect) *SQLLocationRepository {
	return &SQLLocationRepository{DB: db, Dialect: dialect}
}

// Return all locations ordered by name.
func (r *SQLLocationRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	if r.DB == nil {
		return nil, errors.New("location repository: DB is nil")
	}

	query := `
	SELECT
		name,
		category,
		weekday_demand,
		weekend_demand,
		lat,
		lon
	FROM locations
	ORDER BY name;
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list locations: query locations table: %w", err)
	}
	defer rows.Close()

	locations := make([]domain.Location, 0, 64)
	for rows.Next() {
		var l domain.Location
		var category string
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&l.Name, &category, &l.WeekdayDemand, &l.WeekendDemand, &lat, &lon); err != nil {
			return nil, fmt.Errorf("list locations: scan row: %w", err)
		}
		l.Category, err = domain.ParseCategory(category)
		if err != nil {
			return nil, fmt.Errorf("list locations: %q: %w", l.Name, err)
		}
		if lat.Valid && lon.Valid {
			l.Coordinates = &domain.Coordinates{Lat: lat.Float64, Lon: lon.Float64}
		}
		locations = append(locations, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list locations: row iteration: %w", err)
	}

	return locations, nil
}

// SaveLocations upserts locations by name.
func (r *SQLLocationRepository) SaveLocations(ctx context.Context, locations []domain.Location) error {
	if r.DB == nil {
		return errors.New("location repository: DB is nil")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save locations: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, r.upsertQuery())
	if err != nil {
		return fmt.Errorf("save locations: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, l := range locations {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			return fmt.Errorf("save locations: location at index %d has an empty name", i)
		}
		var lat, lon sql.NullFloat64
		if l.Coordinates != nil {
			lat = sql.NullFloat64{Float64: l.Coordinates.Lat, Valid: true}
			lon = sql.NullFloat64{Float64: l.Coordinates.Lon, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, name, l.Category.String(), l.WeekdayDemand, l.WeekendDemand, lat, lon); err != nil {
			return fmt.Errorf("save locations: insert %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save locations: commit tx: %w", err)
	}

	return nil
}

func (r *SQLLocationRepository) upsertQuery() string {
	if r.Dialect == DialectSqlite {
		return `
	INSERT OR REPLACE INTO locations (name, category, weekday_demand, weekend_demand, lat, lon)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	}
	return `
	INSERT INTO locations (name, category, weekday_demand, weekend_demand, lat, lon)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (name) DO UPDATE
	SET category = EXCLUDED.category,
		weekday_demand = EXCLUDED.weekday_demand,
		weekend_demand = EXCLUDED.weekend_demand,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`
}
