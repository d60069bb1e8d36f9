package ports

import (
	"context"
	"store-route-planner/internal/domain"
)

// PoolCache stores generated candidate routes under an input fingerprint.
// A miss returns ok=false and no error.
type PoolCache interface {
	GetRoutes(ctx context.Context, key string) (routes []domain.CandidateRoute, ok bool, err error)
	PutRoutes(ctx context.Context, key string, routes []domain.CandidateRoute) error
}
