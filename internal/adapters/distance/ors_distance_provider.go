package distance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/platform/obs"
	"store-route-planner/internal/ports"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultORSBaseURL = "https://api.openrouteservice.org"
	defaultORSProfile = "driving-hgv"
)

// ORSMatrixProvider implements DistanceProvider with the OpenRouteService matrix API.
//
// Locations are addressed by name and resolved to the coordinates they were registered
// with. Fetched rows are written through to an optional persistent store so a matrix
// is only ever paid for once.
//
// The provider is safe for concurrent use.
type ORSMatrixProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	coords  map[string]domain.Coordinates
	store   ports.DistanceStore
}

type ORSOption func(*ORSMatrixProvider)

// WithBaseURL points the provider at another ORS deployment.
func WithBaseURL(u string) ORSOption {
	return func(o *ORSMatrixProvider) { o.baseURL = strings.TrimRight(u, "/") }
}

func WithProfile(profile string) ORSOption {
	return func(o *ORSMatrixProvider) { o.profile = profile }
}

func WithStore(store ports.DistanceStore) ORSOption {
	return func(o *ORSMatrixProvider) { o.store = store }
}

// NewORSMatrixProvider registers every location that has coordinates.
func NewORSMatrixProvider(apiKey string, locations []domain.Location, opts ...ORSOption) (*ORSMatrixProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSMatrixProvider{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultORSBaseURL,
		profile: defaultORSProfile,
		coords:  make(map[string]domain.Coordinates, len(locations)),
	}
	for _, opt := range opts {
		opt(o)
	}

	for _, l := range locations {
		if l.Coordinates == nil {
			continue
		}
		if !l.Coordinates.Valid() {
			return nil, fmt.Errorf("new ORS provider: invalid coordinates for %q", l.Name)
		}
		o.coords[l.Name] = *l.Coordinates
	}
	if len(o.coords) == 0 {
		return nil, errors.New("new ORS provider: no location has coordinates")
	}

	return o, nil
}

// GetDistances returns results from one origin to many destinations, serving stored
// rows first and fetching only the misses.
func (o *ORSMatrixProvider) GetDistances(
	ctx context.Context,
	origin string,
	destinations []string,
) (_ map[string]ports.DistanceResult, err error) {
	defer obs.Time(ctx, "ors.GetDistances")(&err)

	if origin == "" {
		return nil, errors.New("origin must be non-empty")
	}

	seen := make(map[string]struct{}, len(destinations))
	destList := make([]string, 0, len(destinations))
	for _, d := range destinations {
		if d == "" || d == origin {
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		destList = append(destList, d)
	}

	if len(destList) == 0 {
		return map[string]ports.DistanceResult{}, nil
	}

	hits := make(map[string]ports.DistanceResult)
	if o.store != nil {
		hits, err = o.store.GetMany(ctx, origin, destList)
		if err != nil {
			return nil, fmt.Errorf("ORS get stored durations: %w", err)
		}
	}

	misses := make([]string, 0, len(destList))
	for _, d := range destList {
		if _, ok := hits[d]; !ok {
			misses = append(misses, d)
		}
	}

	if len(misses) == 0 {
		return hits, nil
	}

	originCoord, ok := o.coords[origin]
	if !ok {
		return nil, fmt.Errorf("missing coordinate for origin %q: %w", origin, domain.ErrLocationNotFound)
	}

	missCoords := make([]domain.Coordinates, 0, len(misses))
	for _, d := range misses {
		c, ok := o.coords[d]
		if !ok {
			return nil, fmt.Errorf("missing coordinate for destination %q: %w", d, domain.ErrLocationNotFound)
		}
		missCoords = append(missCoords, c)
	}

	fetched, err := o.fetchMatrixRow(ctx, originCoord, misses, missCoords)
	if err != nil {
		return nil, fmt.Errorf("fetching matrix row: %w", err)
	}

	if o.store != nil {
		if err := o.store.PutMany(ctx, origin, fetched); err != nil {
			log.Warn().Err(err).Str("origin", origin).Msg("duration store write failed")
		}
	}

	out := make(map[string]ports.DistanceResult, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}

	return out, nil
}
