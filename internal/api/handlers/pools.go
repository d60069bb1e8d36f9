package handlers

import (
	"net/http"
	"store-route-planner/internal/api/dto"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/services"
	"strings"
)

const maxPoolDraws = 20000

type PoolHandler struct {
	Inputs      services.PlanInputs
	Params      domain.FleetParams
	DefaultSeed int64
	Workers     int
}

// Build generates the candidate route pool of one depot and returns the selector inputs.
func (h *PoolHandler) Build(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.PoolRequest
	if !decodeBody(w, r, &req) {
		return
	}

	depot := strings.TrimSpace(req.Depot)
	if depot == "" {
		writeError(w, r, http.StatusBadRequest, "depot is required")
		return
	}
	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "period must be weekday or weekend")
		return
	}
	if req.Draws < 0 || req.Draws > maxPoolDraws {
		writeError(w, r, http.StatusBadRequest, "draws must be between 1 and 20000, or 0 for the default")
		return
	}
	seed := h.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	cfg := services.PoolConfig{Draws: req.Draws, Seed: seed, Workers: h.Workers, Params: h.Params}
	pool, err := services.BuildDepotPool(r.Context(), h.Inputs, depot, req.OpenDepots, period, cfg)
	if err != nil {
		writeServiceError(w, r, "build pool", err)
		return
	}

	writeJSON(w, r, http.StatusOK, poolResponse(pool, period))
}

func poolResponse(pool *services.RoutePool, period domain.Period) dto.PoolResponse {
	routes := pool.Routes()
	res := dto.PoolResponse{
		Center:    pool.Center(),
		Period:    period.String(),
		Costs:     pool.Costs(),
		Routes:    make([]dto.RouteResponse, 0, len(routes)),
		Sequences: pool.StoreSequences(),
	}
	for _, rt := range routes {
		res.Routes = append(res.Routes, dto.RouteResponse{
			Name:            rt.Name,
			Shift:           rt.Shift.String(),
			Sequence:        rt.Itinerary.Sequence(),
			Pallets:         rt.Pallets,
			DurationSeconds: rt.DurationSeconds,
			Cost:            rt.Cost,
		})
	}

	in := pool.Incidence()
	res.Incidence = dto.IncidenceResponse{Stores: in.Stores, Routes: in.Routes, Rows: make([][]int, len(in.Stores))}
	for i := range in.Stores {
		row := make([]int, len(in.Routes))
		for j := range in.Routes {
			if in.M != nil && in.Covers(i, j) {
				row[j] = 1
			}
		}
		res.Incidence.Rows[i] = row
	}

	stats := pool.Stats()
	res.Stats = dto.PoolStatsResponse{
		Draws:       stats.Draws,
		Itineraries: stats.Itineraries,
		Discarded:   stats.Discarded,
		Uncovered:   stats.Uncovered,
		Coverage:    pool.Coverage(),
	}
	return res
}
