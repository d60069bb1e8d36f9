package handlers

import (
	"net/http"
	"store-route-planner/internal/api/dto"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/services"
	"strings"
)

const maxTrials = 100000

type SimulationHandler struct {
	Inputs        services.PlanInputs
	Params        domain.FleetParams
	DefaultTrials int
	DefaultSeed   int64
	Workers       int
}

// Simulate evaluates a given schedule under sampled demand and traffic.
func (h *SimulationHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}

	var req dto.SimulationRequest
	if !decodeBody(w, r, &req) {
		return
	}

	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "period must be weekday or weekend")
		return
	}
	if len(req.Routes) == 0 {
		writeError(w, r, http.StatusBadRequest, "routes are required")
		return
	}

	trials := req.Trials
	if trials == 0 {
		trials = h.DefaultTrials
	}
	if trials < 1 || trials > maxTrials {
		writeError(w, r, http.StatusBadRequest, "trials must be between 1 and 100000, or 0 for the default")
		return
	}
	seed := h.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	schedule := make([]domain.ScheduledRoute, 0, len(req.Routes))
	names := make(map[string]bool, len(req.Routes))
	for _, rt := range req.Routes {
		name := strings.TrimSpace(rt.Name)
		center := strings.TrimSpace(rt.Center)
		if center == "" {
			center = h.soleDepot()
		}
		if name == "" || center == "" || len(rt.Stops) == 0 {
			writeError(w, r, http.StatusBadRequest, "every route needs a name, a center and stops")
			return
		}
		if names[name] {
			writeError(w, r, http.StatusBadRequest, "duplicate route name "+name)
			return
		}
		names[name] = true
		schedule = append(schedule, domain.ScheduledRoute{Name: name, Itinerary: domain.NewItinerary(center, rt.Stops...)})
	}

	cfg := services.SimulationConfig{Trials: trials, Period: period, Seed: seed, Workers: h.Workers, Params: h.Params}
	res, err := services.SimulateSchedule(r.Context(), h.Inputs, schedule, cfg)
	if err != nil {
		writeServiceError(w, r, "simulate", err)
		return
	}

	sum := res.Summary()
	writeJSON(w, r, http.StatusOK, dto.SimulationResponse{
		Period:   period.String(),
		Costs:    res.Costs,
		Trucks:   res.Trucks,
		Adjusted: res.AdjustedRoutes,
		Summary: dto.SummaryResponse{
			Trials:     sum.Trials,
			Mean:       sum.Mean,
			StdDev:     sum.StdDev,
			P2_5:       sum.P2_5,
			Median:     sum.Median,
			P97_5:      sum.P97_5,
			MeanTrucks: sum.MeanTrucks,
			MaxTrucks:  sum.MaxTrucks,
		},
	})
}

// soleDepot returns the only distribution center, or "" when there are several.
func (h *SimulationHandler) soleDepot() string {
	depot := ""
	for _, l := range h.Inputs.Locations {
		if !l.IsDepot() {
			continue
		}
		if depot != "" {
			return ""
		}
		depot = l.Name
	}
	return depot
}
