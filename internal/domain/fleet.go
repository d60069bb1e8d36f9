package domain

// FleetParams holds the operating limits and tariffs shared by route construction,
// pricing, repair and costing.
type FleetParams struct {
	MaxRouteSeconds          float64
	PalletCapacity           float64
	HandlingSecondsPerPallet float64
	HourlyRate               float64
	OvertimeHourlyRate       float64
	FlatRateHours            float64
	SecondaryShiftCost       float64
	MinTargetStops           int
	MaxTargetStops           int
	NearestCandidates        int
}

func DefaultFleetParams() FleetParams {
	return FleetParams{
		MaxRouteSeconds:          4 * 3600,
		PalletCapacity:           20,
		HandlingSecondsPerPallet: 600,
		HourlyRate:               175,
		OvertimeHourlyRate:       250,
		FlatRateHours:            4,
		SecondaryShiftCost:       1500,
		MinTargetStops:           2,
		MaxTargetStops:           5,
		NearestCandidates:        3,
	}
}

func (p FleetParams) HandlingSeconds(pallets float64) float64 {
	return pallets * p.HandlingSecondsPerPallet
}

// Trucks needed for a dedicated trip carrying the given pallets.
func (p FleetParams) TrucksFor(pallets float64) int {
	if pallets > p.PalletCapacity {
		return 2
	}
	return 1
}

// ShiftCost prices a trip of the given length in hours. Hours beyond the flat-rate
// threshold are billed at the overtime rate.
func (p FleetParams) ShiftCost(hours float64) float64 {
	if hours >= p.FlatRateHours {
		return (hours-p.FlatRateHours)*p.OvertimeHourlyRate + p.HourlyRate*p.FlatRateHours
	}
	return hours * p.HourlyRate
}
