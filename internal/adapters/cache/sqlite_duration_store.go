package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store-route-planner/internal/ports"
	"strings"
)

// SQLite backed store of travel durations. Keys are expected to be
// consistent location names.
type SqliteDurationStore struct {
	DB *sql.DB
}

func NewSqliteDurationStore(db *sql.DB) *SqliteDurationStore {
	return &SqliteDurationStore{DB: db}
}

func (s *SqliteDurationStore) GetMany(
	ctx context.Context,
	origin string,
	destinations []string,
) (map[string]ports.DistanceResult, error) {
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

	args := make([]any, 0, 1+len(uniq))
	args = append(args, origin)
	for _, d := range uniq {
		args = append(args, d)
	}

	// SQLite cannot bind a slice to IN (...); only the placeholder list is interpolated.
	q := fmt.Sprintf(`
	SELECT destination, distance_meters, duration_seconds
	FROM travel_durations
	WHERE origin = ?
		AND destination IN (%s);
	`, strings.TrimSuffix(strings.Repeat("?,", len(uniq)), ","))

	rows, err := s.DB.QueryContext(ctx, q, args...)
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

func (s *SqliteDurationStore) PutMany(ctx context.Context, origin string, results map[string]ports.DistanceResult) error {
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
	INSERT OR REPLACE INTO travel_durations (
		origin,
		destination,
		distance_meters,
		duration_seconds
	)
	VALUES (?, ?, ?, ?)
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
