package dto

type ScheduledRouteRequest struct {
	Name   string   `json:"name"`
	// Optional when the data set has a single distribution center.
	Center string   `json:"center"`
	Stops  []string `json:"stops"`
}

type SimulationRequest struct {
	Routes []ScheduledRouteRequest `json:"routes"`
	Period string                  `json:"period"`
	Trials int                     `json:"trials"`
	Seed   *int64                  `json:"seed"`
}

type SummaryResponse struct {
	Trials     int     `json:"trials"`
	Mean       float64 `json:"mean"`
	StdDev     float64 `json:"std_dev"`
	P2_5       float64 `json:"p2_5"`
	Median     float64 `json:"median"`
	P97_5      float64 `json:"p97_5"`
	MeanTrucks float64 `json:"mean_trucks"`
	MaxTrucks  int     `json:"max_trucks"`
}

type SimulationResponse struct {
	Period   string          `json:"period"`
	Costs    []float64       `json:"costs"`
	Trucks   []int           `json:"trucks"`
	Adjusted []int           `json:"adjusted"`
	Summary  SummaryResponse `json:"summary"`
}
