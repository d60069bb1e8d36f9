package main

import (
	"context"
	"net/http"
	"store-route-planner/internal/api"
	"store-route-planner/internal/app"
	"store-route-planner/internal/config"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/platform/obs"
	"time"

	"github.com/rs/zerolog/log"
)

// main is the application composition root.
// It wires concrete adapters (CSV or SQL data, ORS, Redis) behind ports and starts the HTTP server.
func main() {
	cfg := config.Load()
	obs.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, runID := obs.WithRunID(context.Background())
	res, err := app.Load(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("run_id", runID).Msg("load inputs")
	}
	defer res.Close()

	router := api.NewRouter(res.Inputs, api.Options{
		Params:   domain.DefaultFleetParams(),
		PoolSeed: cfg.PoolSeed,
		SimSeed:  cfg.SimSeed,
		Trials:   cfg.Trials,
		Workers:  cfg.Workers,
	})

	// Timeouts allow for large simulations and cold pool caches.
	log.Info().Str("addr", ":"+cfg.Port).Msg("server listening")
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      300 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
