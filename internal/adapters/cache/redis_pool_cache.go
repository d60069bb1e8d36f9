package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"store-route-planner/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisPoolCache stores generated candidate routes as JSON under a fingerprint key.
type RedisPoolCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient connects and pings so misconfiguration shows at startup.
func NewRedisClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %q: %w", addr, err)
	}
	return client, nil
}

// A zero ttl keeps entries until evicted.
func NewRedisPoolCache(client *redis.Client, ttl time.Duration) *RedisPoolCache {
	return &RedisPoolCache{client: client, ttl: ttl}
}

type cachedRoute struct {
	Name            string   `json:"name"`
	Secondary       bool     `json:"secondary,omitempty"`
	Center          string   `json:"center"`
	Stops           []string `json:"stops"`
	Pallets         float64  `json:"pallets"`
	DurationSeconds float64  `json:"duration_seconds"`
	Cost            float64  `json:"cost"`
}

func (c *RedisPoolCache) GetRoutes(ctx context.Context, key string) ([]domain.CandidateRoute, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached routes %q: %w", key, err)
	}

	var cached []cachedRoute
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached routes %q: %w", key, err)
	}

	routes := make([]domain.CandidateRoute, len(cached))
	for i, r := range cached {
		shift := domain.ShiftPrimary
		if r.Secondary {
			shift = domain.ShiftSecondary
		}
		routes[i] = domain.CandidateRoute{
			Name:            r.Name,
			Shift:           shift,
			Itinerary:       domain.NewItinerary(r.Center, r.Stops...),
			Pallets:         r.Pallets,
			DurationSeconds: r.DurationSeconds,
			Cost:            r.Cost,
		}
	}
	return routes, true, nil
}

func (c *RedisPoolCache) PutRoutes(ctx context.Context, key string, routes []domain.CandidateRoute) error {
	cached := make([]cachedRoute, len(routes))
	for i, r := range routes {
		cached[i] = cachedRoute{
			Name:            r.Name,
			Secondary:       r.Shift == domain.ShiftSecondary,
			Center:          r.Itinerary.Center(),
			Stops:           r.Itinerary.Stops(),
			Pallets:         r.Pallets,
			DurationSeconds: r.DurationSeconds,
			Cost:            r.Cost,
		}
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("encode routes %q: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("put cached routes %q: %w", key, err)
	}
	return nil
}
