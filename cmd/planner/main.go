package main

import (
	"context"
	"fmt"
	"store-route-planner/internal/adapters/dataset"
	"store-route-planner/internal/app"
	"store-route-planner/internal/config"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/platform/obs"
	"store-route-planner/internal/services"
	"strings"

	"github.com/rs/zerolog/log"
)

type scenario struct {
	name   string
	period domain.Period
	depots []string
}

type comparison struct {
	a, b string
}

// planner runs every scenario end to end, writes the cost distributions and compares the
// single-depot scenarios against the all-depots one of the same period.
func main() {
	cfg := config.Load()
	obs.Setup(cfg.LogLevel, cfg.LogPretty)

	ctx, runID := obs.WithRunID(context.Background())
	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Str("run_id", runID).Msg("planner failed")
	}
}

func run(ctx context.Context, cfg config.Config) (err error) {
	defer obs.Time(ctx, "planner.run")(&err)

	res, err := app.Load(ctx, cfg)
	if err != nil {
		return err
	}
	defer res.Close()

	depots := cfg.Depots
	if len(depots) == 0 {
		for _, l := range res.Inputs.Locations {
			if l.IsDepot() {
				depots = append(depots, l.Name)
			}
		}
	}
	if len(depots) == 0 {
		return fmt.Errorf("planner: no distribution centers in the data set")
	}

	scenarios, comparisons := buildScenarios(depots)
	params := domain.DefaultFleetParams()
	results := make(map[string]*services.SimulationResult, len(scenarios))

	for _, sc := range scenarios {
		plan, err := services.PlanSchedule(ctx, services.PlanScheduleRequest{
			Name:          sc.name,
			Depots:        sc.depots,
			Period:        sc.period,
			Pool:          services.PoolConfig{Draws: cfg.PoolDraws, Seed: cfg.PoolSeed, Workers: cfg.Workers, Params: params},
			FleetCapacity: cfg.FleetCapacity,
			Simulation:    services.SimulationConfig{Trials: cfg.Trials, Seed: cfg.SimSeed, Workers: cfg.Workers},
		}, res.Inputs)
		if err != nil {
			return err
		}
		results[sc.name] = plan.Result

		path, err := dataset.SaveDistributions(cfg.OutputDir, sc.name, plan.Result)
		if err != nil {
			return err
		}

		sum := plan.Result.Summary()
		log.Info().
			Str("scenario", sc.name).
			Int("routes", len(plan.Schedule)).
			Float64("planned_cost", plan.PlannedCost).
			Float64("mean", sum.Mean).
			Float64("std_dev", sum.StdDev).
			Float64("p2_5", sum.P2_5).
			Float64("median", sum.Median).
			Float64("p97_5", sum.P97_5).
			Float64("mean_trucks", sum.MeanTrucks).
			Int("max_trucks", sum.MaxTrucks).
			Str("output", path).
			Msg("scenario done")
	}

	for _, c := range comparisons {
		cmp, err := services.CompareCosts(results[c.a].Costs, results[c.b].Costs)
		if err != nil {
			log.Warn().Err(err).Str("a", c.a).Str("b", c.b).Msg("comparison skipped")
			continue
		}
		log.Info().
			Str("a", c.a).
			Str("b", c.b).
			Float64("mean_a", cmp.MeanA).
			Float64("mean_b", cmp.MeanB).
			Float64("diff", cmp.Diff).
			Float64("t", cmp.T).
			Float64("p_value", cmp.PValue).
			Float64("ci_low", cmp.Low).
			Float64("ci_high", cmp.High).
			Bool("significant", cmp.Significant(0.05)).
			Msg("scenario comparison")
	}

	return nil
}

// buildScenarios returns, per period, one scenario with every depot open and, when there
// are several depots, one scenario per single depot compared against it.
func buildScenarios(depots []string) ([]scenario, []comparison) {
	var scenarios []scenario
	var comparisons []comparison

	for _, p := range []domain.Period{domain.PeriodWeekday, domain.PeriodWeekend} {
		if len(depots) == 1 {
			scenarios = append(scenarios, scenario{name: scenarioName(p, depots[0]), period: p, depots: depots})
			continue
		}

		all := scenario{name: scenarioName(p, "both"), period: p, depots: depots}
		if len(depots) > 2 {
			all.name = scenarioName(p, "all")
		}
		scenarios = append(scenarios, all)

		for _, d := range depots {
			single := scenario{name: scenarioName(p, d), period: p, depots: []string{d}}
			scenarios = append(scenarios, single)
			comparisons = append(comparisons, comparison{a: all.name, b: single.name})
		}
	}

	if len(depots) == 1 {
		comparisons = append(comparisons, comparison{a: scenarios[0].name, b: scenarios[1].name})
	}
	return scenarios, comparisons
}

func scenarioName(p domain.Period, label string) string {
	label = strings.ToLower(strings.Join(strings.Fields(label), "-"))
	return p.String() + "-" + label
}
