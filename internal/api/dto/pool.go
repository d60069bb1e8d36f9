package dto

type PoolRequest struct {
	Depot string `json:"depot"`
	// Other depots open at the same time; stores are split between them.
	OpenDepots []string `json:"open_depots"`
	Period     string   `json:"period"`
	Draws      int      `json:"draws"`
	Seed       *int64   `json:"seed"`
}

type RouteResponse struct {
	Name            string   `json:"name"`
	Shift           string   `json:"shift"`
	Sequence        []string `json:"sequence"`
	Pallets         float64  `json:"pallets"`
	DurationSeconds float64  `json:"duration_seconds"`
	Cost            float64  `json:"cost"`
}

type IncidenceResponse struct {
	Stores []string `json:"stores"`
	Routes []string `json:"routes"`
	Rows   [][]int  `json:"rows"`
}

type PoolStatsResponse struct {
	Draws       int      `json:"draws"`
	Itineraries int      `json:"itineraries"`
	Discarded   int      `json:"discarded"`
	Uncovered   []string `json:"uncovered"`
	Coverage    float64  `json:"coverage"`
}

type PoolResponse struct {
	Center    string              `json:"center"`
	Period    string              `json:"period"`
	Costs     map[string]float64  `json:"costs"`
	Routes    []RouteResponse     `json:"routes"`
	Incidence IncidenceResponse   `json:"incidence"`
	// Route name to the full center-to-center sequence.
	Sequences map[string][]string `json:"sequences"`
	Stats     PoolStatsResponse   `json:"stats"`
}
