package dataset

import (
	"fmt"
	"io"
	"store-route-planner/internal/domain"
	"strings"
)

// ReadLocations parses Name,Category,WeekdayDemand,WeekendDemand[,Lat,Lon].
// Columns are matched by header name, case-insensitively.
func ReadLocations(r io.Reader) ([]domain.Location, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return nil, fmt.Errorf("read locations: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(h)] = i
	}
	for _, required := range []string{"name", "category", "weekdaydemand", "weekenddemand"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("read locations: missing column %q", required)
		}
	}
	latCol, hasLat := col["lat"]
	lonCol, hasLon := col["lon"]

	field := func(rec []string, i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	seen := make(map[string]bool, len(rows))
	out := make([]domain.Location, 0, len(rows))
	for n, rec := range rows {
		line := n + 2
		l := domain.Location{Name: field(rec, col["name"])}
		if l.Name == "" {
			return nil, fmt.Errorf("read locations: line %d: empty name", line)
		}
		if seen[l.Name] {
			return nil, fmt.Errorf("read locations: line %d: duplicate location %q", line, l.Name)
		}
		seen[l.Name] = true

		if l.Category, err = domain.ParseCategory(field(rec, col["category"])); err != nil {
			return nil, fmt.Errorf("read locations: line %d: %w", line, err)
		}
		if l.WeekdayDemand, _, err = parseFloat(field(rec, col["weekdaydemand"])); err != nil {
			return nil, fmt.Errorf("read locations: line %d: weekday demand: %w", line, err)
		}
		if l.WeekendDemand, _, err = parseFloat(field(rec, col["weekenddemand"])); err != nil {
			return nil, fmt.Errorf("read locations: line %d: weekend demand: %w", line, err)
		}
		if l.WeekdayDemand < 0 || l.WeekendDemand < 0 {
			return nil, fmt.Errorf("read locations: line %d: negative demand for %q", line, l.Name)
		}

		if hasLat && hasLon {
			lat, okLat, err := parseFloat(field(rec, latCol))
			if err != nil {
				return nil, fmt.Errorf("read locations: line %d: lat: %w", line, err)
			}
			lon, okLon, err := parseFloat(field(rec, lonCol))
			if err != nil {
				return nil, fmt.Errorf("read locations: line %d: lon: %w", line, err)
			}
			if okLat && okLon {
				c := domain.Coordinates{Lat: lat, Lon: lon}
				if !c.Valid() {
					return nil, fmt.Errorf("read locations: line %d: coordinates out of range", line)
				}
				l.Coordinates = &c
			}
		}

		out = append(out, l)
	}

	return out, nil
}

func LoadLocations(path string) ([]domain.Location, error) {
	return openFile(path, ReadLocations)
}
