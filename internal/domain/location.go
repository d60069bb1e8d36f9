package domain

import (
	"fmt"
	"strings"
)

// Category classifies a location. Brand stores draw demand from their own brand's
// history; combined stores host both brands.
type Category int

const (
	CategoryDistributionCenter Category = iota
	CategoryBrandA
	CategoryBrandB
	CategoryCombined
)

func (c Category) String() string {
	switch c {
	case CategoryDistributionCenter:
		return "DistributionCenter"
	case CategoryBrandA:
		return "BrandA"
	case CategoryBrandB:
		return "BrandB"
	case CategoryCombined:
		return "Combined"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

// ParseCategory accepts the category names used in the location data files.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "distributioncenter", "distribution", "dc", "depot":
		return CategoryDistributionCenter, nil
	case "branda", "brand_a", "a":
		return CategoryBrandA, nil
	case "brandb", "brand_b", "b":
		return CategoryBrandB, nil
	case "combined":
		return CategoryCombined, nil
	}
	return 0, fmt.Errorf("parse category: unknown category %q", s)
}

// Period selects which demand column and traffic range apply.
type Period int

const (
	PeriodWeekday Period = iota
	PeriodWeekend
)

func (p Period) String() string {
	if p == PeriodWeekend {
		return "weekend"
	}
	return "weekday"
}

func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekday", "mon-fri":
		return PeriodWeekday, nil
	case "weekend", "sat", "saturday":
		return PeriodWeekend, nil
	}
	return 0, fmt.Errorf("parse period: unknown period %q", s)
}

// Location is immutable reference data: a distribution center or a store with its
// estimated pallet demand per period.
type Location struct {
	Name          string
	Category      Category
	WeekdayDemand float64
	WeekendDemand float64
	Coordinates   *Coordinates
}

func (l Location) IsDepot() bool { return l.Category == CategoryDistributionCenter }

// Estimated pallet demand for the given period.
func (l Location) Demand(p Period) float64 {
	if p == PeriodWeekend {
		return l.WeekendDemand
	}
	return l.WeekdayDemand
}

// DemandEstimates maps store name to estimated pallets for one period.
// Depots and stores with zero demand are left out.
func DemandEstimates(locations []Location, p Period) map[string]float64 {
	out := make(map[string]float64, len(locations))
	for _, l := range locations {
		if l.IsDepot() || l.Demand(p) <= 0 {
			continue
		}
		out[l.Name] = l.Demand(p)
	}
	return out
}
