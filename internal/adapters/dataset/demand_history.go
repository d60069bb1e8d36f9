package dataset

import (
	"fmt"
	"io"
	"store-route-planner/internal/domain"
	"strings"
	"time"
)

// ReadDemandHistory parses Store,Brand,<YYYY-MM-DD>... rows of observed pallets.
// Monday to Friday columns feed the weekday pool, Saturday and Sunday the weekend pool.
// Blank cells are days without an observation.
func ReadDemandHistory(r io.Reader) (domain.DemandHistory, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("read demand history: %w", err)
	}
	if len(header) < 3 || !strings.EqualFold(header[0], "store") || !strings.EqualFold(header[1], "brand") {
		return nil, fmt.Errorf("read demand history: header must start with Store,Brand")
	}

	periods := make([]domain.Period, len(header)-2)
	for i, h := range header[2:] {
		day, err := time.Parse(time.DateOnly, h)
		if err != nil {
			return nil, fmt.Errorf("read demand history: column %q: %w", h, err)
		}
		periods[i] = periodOf(day)
	}

	h := domain.DemandHistory{}
	for n, rec := range rows {
		line := n + 2
		if len(rec) < 2 {
			return nil, fmt.Errorf("read demand history: line %d: missing brand", line)
		}
		brand, err := domain.ParseCategory(rec[1])
		if err != nil {
			return nil, fmt.Errorf("read demand history: line %d: %w", line, err)
		}
		if brand != domain.CategoryBrandA && brand != domain.CategoryBrandB {
			return nil, fmt.Errorf("read demand history: line %d: brand must be BrandA or BrandB, got %s", line, brand)
		}

		for j, cell := range rec[2:] {
			if j >= len(periods) {
				return nil, fmt.Errorf("read demand history: line %d: more values than date columns", line)
			}
			v, ok, err := parseFloat(cell)
			if err != nil {
				return nil, fmt.Errorf("read demand history: line %d column %q: %w", line, header[j+2], err)
			}
			if !ok {
				continue
			}
			if v < 0 {
				return nil, fmt.Errorf("read demand history: line %d column %q: negative demand", line, header[j+2])
			}
			h.Add(brand, periods[j], v)
		}
	}

	return h, nil
}

func LoadDemandHistory(path string) (domain.DemandHistory, error) {
	return openFile(path, ReadDemandHistory)
}

func periodOf(day time.Time) domain.Period {
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return domain.PeriodWeekend
	default:
		return domain.PeriodWeekday
	}
}
