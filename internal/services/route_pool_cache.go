package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"slices"
	"store-route-planner/internal/ports"

	"github.com/rs/zerolog/log"
)

// PoolFingerprint identifies every input that determines a pool's contents.
func PoolFingerprint(ctor *RouteConstructor, cfg PoolConfig) (string, error) {
	cfg = cfg.withDefaults()
	h := sha256.New()

	fmt.Fprintf(h, "center=%s;prefix=%s;draws=%d;seed=%d;params=%+v;", ctor.center, cfg.Prefix, cfg.Draws, cfg.Seed, cfg.Params)

	stores := slices.Clone(ctor.stores)
	for _, s := range stores {
		fmt.Fprintf(h, "store=%s:%g;", s, ctor.demand[s])
	}

	names := append([]string{ctor.center}, stores...)
	for _, a := range names {
		for _, b := range names {
			if a == b {
				continue
			}
			d, err := ctor.table.Duration(a, b)
			if err != nil {
				return "", fmt.Errorf("pool fingerprint: %w", err)
			}
			fmt.Fprintf(h, "%g,", d)
		}
	}

	return fmt.Sprintf("pool:%x", h.Sum(nil)[:16]), nil
}

// BuildCachedRoutePool serves the pool from cache when the same inputs were built before.
// Cache failures are logged and fall through to a fresh build.
func BuildCachedRoutePool(
	ctx context.Context,
	cache ports.PoolCache,
	ctor *RouteConstructor,
	cfg PoolConfig,
) (*RoutePool, error) {
	if cache == nil {
		return BuildRoutePool(ctx, ctor, cfg)
	}

	key, err := PoolFingerprint(ctor, cfg)
	if err != nil {
		return nil, fmt.Errorf("build cached route pool: %w", err)
	}

	routes, ok, err := cache.GetRoutes(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("pool cache read failed")
	}
	if ok {
		log.Info().Str("key", key).Str("center", ctor.center).Int("routes", len(routes)).Msg("route pool cache hit")
		return NewRoutePool(ctor.center, ctor.Stores(), cfg.withDefaults().Draws, routes), nil
	}

	pool, err := BuildRoutePool(ctx, ctor, cfg)
	if err != nil {
		return nil, err
	}

	if err := cache.PutRoutes(ctx, key, pool.routes); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("pool cache write failed")
	}

	return pool, nil
}
