package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"store-route-planner/internal/domain"
	"store-route-planner/internal/services"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLocations(t *testing.T) {
	in := `Name,Category,WeekdayDemand,WeekendDemand,Lat,Lon
Distribution North,DistributionCenter,0,0,-36.8,174.7
Alpha,BrandA,6,3,,
Beta Store, brandb ,4.5,0,-36.9,174.8

Gamma,Combined,9,5,-36.95,174.85
`
	locs, err := ReadLocations(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, locs, 4)

	assert.True(t, locs[0].IsDepot())
	require.NotNil(t, locs[0].Coordinates)
	assert.Equal(t, 174.7, locs[0].Coordinates.Lon)
	assert.Nil(t, locs[1].Coordinates)
	assert.Equal(t, domain.CategoryBrandB, locs[2].Category)
	assert.Equal(t, 4.5, locs[2].Demand(domain.PeriodWeekday))
	assert.Equal(t, 5.0, locs[3].Demand(domain.PeriodWeekend))
}

func TestReadLocationsErrors(t *testing.T) {
	cases := map[string]string{
		"missing column": "Name,Category,WeekdayDemand\nA,BrandA,1\n",
		"bad category":   "Name,Category,WeekdayDemand,WeekendDemand\nA,Shoes,1,1\n",
		"bad number":     "Name,Category,WeekdayDemand,WeekendDemand\nA,BrandA,x,1\n",
		"duplicate":      "Name,Category,WeekdayDemand,WeekendDemand\nA,BrandA,1,1\nA,BrandA,1,1\n",
		"empty":          "",
		"negative":       "Name,Category,WeekdayDemand,WeekendDemand\nA,BrandA,-5,1\n",
		"nan":            "Name,Category,WeekdayDemand,WeekendDemand\nA,BrandA,1,NaN\n",
		"inf":            "Name,Category,WeekdayDemand,WeekendDemand\nA,BrandA,+Inf,1\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ReadLocations(strings.NewReader(in))
			assert.Error(t, err)
		})
	}
}

func TestReadDurationMatrix(t *testing.T) {
	in := `,DC,A,B
DC,0,600,900
A,610,0,
B,905.5,300,0
`
	m, err := ReadDurationMatrix(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []string{"DC", "A", "B"}, m.Names())

	v, ok := m.Get("B", "DC")
	require.True(t, ok)
	assert.Equal(t, 905.5, v)

	_, ok = m.Get("A", "B")
	assert.False(t, ok)

	_, err = ReadDurationMatrix(strings.NewReader(",DC,A\nZ,0,1\n"))
	assert.Error(t, err)
	_, err = ReadDurationMatrix(strings.NewReader(",DC,A\nDC,0,-1\n"))
	assert.Error(t, err)
	_, err = ReadDurationMatrix(strings.NewReader(",DC,A\nDC,0,NaN\n"))
	assert.Error(t, err)
}

func TestReadDemandHistory(t *testing.T) {
	// 2021-06-14 is a Monday.
	in := `Store,Brand,2021-06-14,2021-06-15,2021-06-19,2021-06-20
Alpha,BrandA,4,5,2,
Beta,BrandB,7,,0,1
Gamma,BrandA,6,6,3,3
`
	h, err := ReadDemandHistory(strings.NewReader(in))
	require.NoError(t, err)

	assert.ElementsMatch(t, []float64{4, 5, 6, 6}, h.Pool(domain.CategoryBrandA, domain.PeriodWeekday))
	assert.ElementsMatch(t, []float64{2, 3, 3}, h.Pool(domain.CategoryBrandA, domain.PeriodWeekend))
	assert.ElementsMatch(t, []float64{7}, h.Pool(domain.CategoryBrandB, domain.PeriodWeekday))
	assert.ElementsMatch(t, []float64{0, 1}, h.Pool(domain.CategoryBrandB, domain.PeriodWeekend))

	_, err = ReadDemandHistory(strings.NewReader("Store,Brand,June\nA,BrandA,1\n"))
	assert.Error(t, err)
	_, err = ReadDemandHistory(strings.NewReader("Store,Brand,2021-06-14\nA,Combined,1\n"))
	assert.Error(t, err)

	for _, cell := range []string{"NaN", "Inf", "-inf", "-1"} {
		_, err = ReadDemandHistory(strings.NewReader("Store,Brand,2021-06-14\nA,BrandA," + cell + "\n"))
		assert.Error(t, err, cell)
	}
}

func TestWriteDistributions(t *testing.T) {
	res := &services.SimulationResult{
		Costs:          []float64{1234.5, 999},
		Trucks:         []int{12, 11},
		AdjustedRoutes: []int{1, 0},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDistributions(&buf, res))
	assert.Equal(t, "trial,cost,trucks,adjusted\n0,1234.50,12,1\n1,999.00,11,0\n", buf.String())

	dir := t.TempDir()
	path, err := SaveDistributions(filepath.Join(dir, "out"), "weekday-both", res)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(b))
}
