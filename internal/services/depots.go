package services

import (
	"errors"
	"fmt"
	"slices"
	"store-route-planner/internal/domain"
)

// AssignStoresToDepots gives each store to the open depot it can be reached from fastest.
// Ties go to the depot listed first. A location at zero duration from a depot is that
// depot's own entry and is skipped.
func AssignStoresToDepots(
	matrix domain.DurationMatrix,
	depots []string,
	stores []domain.Location,
) (map[string][]domain.Location, error) {
	if len(depots) == 0 {
		return nil, errors.New("assign stores to depots: no depots open")
	}

	out := make(map[string][]domain.Location, len(depots))
	for _, d := range depots {
		out[d] = nil
	}

	for _, s := range stores {
		if s.IsDepot() {
			continue
		}

		best, bestSecs, self := "", 0.0, false
		for _, d := range depots {
			secs, ok := matrix.Get(d, s.Name)
			if !ok {
				return nil, fmt.Errorf("assign stores to depots: %w", &domain.LookupError{Origin: d, Destination: s.Name})
			}
			if secs == 0 {
				self = true
				break
			}
			if best == "" || secs < bestSecs {
				best, bestSecs = d, secs
			}
		}
		if self {
			continue
		}
		out[best] = append(out[best], s)
	}

	return out, nil
}

// CheckDepots verifies that every name is a known distribution center.
func CheckDepots(locations []domain.Location, depots []string) error {
	for _, d := range depots {
		i := slices.IndexFunc(locations, func(l domain.Location) bool { return l.Name == d })
		if i < 0 {
			return fmt.Errorf("check depots: %q: %w", d, domain.ErrLocationNotFound)
		}
		if !locations[i].IsDepot() {
			return fmt.Errorf("check depots: %q: %w", d, domain.ErrNotADepot)
		}
	}
	return nil
}
