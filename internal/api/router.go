package api

import (
	"net/http"
	"store-route-planner/internal/api/handlers"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/services"
)

// Options carries request defaults that callers may override per request.
type Options struct {
	Params   domain.FleetParams
	PoolSeed int64
	SimSeed  int64
	Trials   int
	Workers  int
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(in services.PlanInputs, opts Options) http.Handler {
	mux := http.NewServeMux()

	poolHandler := &handlers.PoolHandler{
		Inputs:      in,
		Params:      opts.Params,
		DefaultSeed: opts.PoolSeed,
		Workers:     opts.Workers,
	}
	simHandler := &handlers.SimulationHandler{
		Inputs:        in,
		Params:        opts.Params,
		DefaultTrials: opts.Trials,
		DefaultSeed:   opts.SimSeed,
		Workers:       opts.Workers,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/pools", poolHandler.Build)
	mux.HandleFunc("/simulations", simHandler.Simulate)

	return loggingMiddleware(mux)
}
