package ports

import "context"

// Distance and travel duration between two locations.
type DistanceResult struct {
	DistanceMeters  float64
	DurationSeconds float64
}

// Contract for retrieving travel distances and durations from one origin to many destinations.
// Every requested destination is present in the result or an error is returned.
type DistanceProvider interface {
	GetDistances(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
}

// Persistent store of previously fetched results. GetMany returns only the hits.
type DistanceStore interface {
	GetMany(ctx context.Context, origin string, destinations []string) (map[string]DistanceResult, error)
	PutMany(ctx context.Context, origin string, results map[string]DistanceResult) error
}
