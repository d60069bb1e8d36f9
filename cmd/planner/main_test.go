package main

import (
	"store-route-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildScenariosTwoDepots(t *testing.T) {
	scenarios, comparisons := buildScenarios([]string{"North DC", "South"})

	var names []string
	for _, s := range scenarios {
		names = append(names, s.name)
	}
	assert.Equal(t, []string{
		"weekday-both", "weekday-north-dc", "weekday-south",
		"weekend-both", "weekend-north-dc", "weekend-south",
	}, names)
	assert.Equal(t, domain.PeriodWeekend, scenarios[3].period)
	assert.Equal(t, []string{"South"}, scenarios[5].depots)

	assert.Len(t, comparisons, 4)
	assert.Equal(t, comparison{a: "weekend-both", b: "weekend-south"}, comparisons[3])
}

func TestBuildScenariosSingleDepot(t *testing.T) {
	scenarios, comparisons := buildScenarios([]string{"DC"})

	assert.Len(t, scenarios, 2)
	assert.Equal(t, []comparison{{a: "weekday-dc", b: "weekend-dc"}}, comparisons)
}
