package dataset

import (
	"fmt"
	"io"
	"store-route-planner/internal/domain"
	"strings"
)

// ReadDurationMatrix parses a square matrix in seconds: the header row names the
// destinations after one leading cell, each row starts with its origin. Blank cells are
// missing entries.
func ReadDurationMatrix(r io.Reader) (domain.DurationMatrix, error) {
	header, rows, err := readAll(r)
	if err != nil {
		return domain.DurationMatrix{}, fmt.Errorf("read duration matrix: %w", err)
	}
	if len(header) < 2 {
		return domain.DurationMatrix{}, fmt.Errorf("read duration matrix: header has no destinations")
	}

	names := header[1:]
	m, err := domain.NewDurationMatrix(names)
	if err != nil {
		return domain.DurationMatrix{}, fmt.Errorf("read duration matrix: %w", err)
	}

	seen := make(map[string]bool, len(rows))
	for n, rec := range rows {
		line := n + 2
		origin := strings.TrimSpace(rec[0])
		if !m.Has(origin) {
			return domain.DurationMatrix{}, fmt.Errorf("read duration matrix: line %d: origin %q is not a column", line, origin)
		}
		if seen[origin] {
			return domain.DurationMatrix{}, fmt.Errorf("read duration matrix: line %d: duplicate origin %q", line, origin)
		}
		seen[origin] = true
		if len(rec)-1 > len(names) {
			return domain.DurationMatrix{}, fmt.Errorf("read duration matrix: line %d: %d values for %d columns", line, len(rec)-1, len(names))
		}

		for j, cell := range rec[1:] {
			dest := names[j]
			if dest == origin {
				continue
			}
			v, ok, err := parseFloat(cell)
			if err != nil {
				return domain.DurationMatrix{}, fmt.Errorf("read duration matrix: line %d column %q: %w", line, dest, err)
			}
			if !ok {
				continue
			}
			if err := m.Set(origin, dest, v); err != nil {
				return domain.DurationMatrix{}, fmt.Errorf("read duration matrix: line %d: %w", line, err)
			}
		}
	}

	return m, nil
}

func LoadDurationMatrix(path string) (domain.DurationMatrix, error) {
	return openFile(path, ReadDurationMatrix)
}
