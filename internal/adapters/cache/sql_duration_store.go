package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store-route-planner/internal/platform/obs"
	"store-route-planner/internal/ports"
	"strings"
)

// SQLDurationStore keeps fetched travel durations in postgres.
type SQLDurationStore struct {
	DB *sql.DB
}

func NewSQLDurationStore(db *sql.DB) *SQLDurationStore {
	return &SQLDurationStore{DB: db}
}

// GetMany returns the stored results for one origin and the given destinations.
func (s *SQLDurationStore) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "duration.store.GetMany")(&err)

	if s.DB == nil {
		return nil, errors.New("duration store: db is nil")
	}
	if origin == "" {
		return nil, errors.New("get durations: origin must not be empty")
	}

	uniq := uniqueKeys(destinations)
	if len(uniq) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	q := `
	SELECT destination, distance_meters, duration_seconds
	FROM travel_durations
	WHERE origin = $1
		AND destination = ANY($2::text[]);
	`

	rows, err := s.DB.QueryContext(ctx, q, origin, uniq)
	if err != nil {
		return nil, fmt.Errorf("get durations: query travel_durations table: %w", err)
	}
	defer rows.Close()

	out := make(map[string]ports.DistanceResult, len(uniq))
	for rows.Next() {
		var dest string
		var r ports.DistanceResult
		if err := rows.Scan(&dest, &r.DistanceMeters, &r.DurationSeconds); err != nil {
			return nil, fmt.Errorf("get durations: scan rows: %w", err)
		}
		out[dest] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get durations: row iteration: %w", err)
	}

	return out, nil
}

// PutMany upserts results for a single origin in one transaction.
func (s *SQLDurationStore) PutMany(
	ctx context.Context,
	origin string,
	results map[string]ports.DistanceResult,
) error {
	if s.DB == nil {
		return errors.New("duration store: db is nil")
	}
	if origin == "" {
		return errors.New("put durations: origin must not be empty")
	}
	if len(results) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("put durations: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO travel_durations (origin, destination, distance_meters, duration_seconds)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (origin, destination) DO UPDATE
	SET distance_meters = EXCLUDED.distance_meters,
		duration_seconds = EXCLUDED.duration_seconds;
	`)
	if err != nil {
		return fmt.Errorf("put durations: db prepare: %w", err)
	}
	defer stmt.Close()

	for dest, r := range results {
		if strings.TrimSpace(dest) == "" {
			return errors.New("put durations: empty destination key")
		}
		if _, err := stmt.ExecContext(ctx, origin, dest, r.DistanceMeters, r.DurationSeconds); err != nil {
			return fmt.Errorf("put durations dest=%q: %w", dest, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("put durations commit: %w", err)
	}

	return nil
}
