package domain

// DemandHistory pools historical per-store daily pallet observations by brand and period.
type DemandHistory map[Category]map[Period][]float64

func (h DemandHistory) Add(brand Category, p Period, values ...float64) {
	if h[brand] == nil {
		h[brand] = make(map[Period][]float64)
	}
	h[brand][p] = append(h[brand][p], values...)
}

func (h DemandHistory) Pool(brand Category, p Period) []float64 {
	return h[brand][p]
}
