package ports

import (
	"context"
	"store-route-planner/internal/domain"
)

// Port: a boundary for retrieving the location reference data.
type LocationRepository interface {
	ListLocations(ctx context.Context) ([]domain.Location, error)
}
