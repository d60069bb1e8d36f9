package domain

import (
	"errors"
	"fmt"
)

var (
	ErrLocationNotFound = errors.New("location not found")
	ErrEmptyDemandPool  = errors.New("empty demand pool")
	ErrInfeasibleSeed   = errors.New("seed store cannot be served by a single feasible route")
	ErrNoStores         = errors.New("no stores to serve")
	ErrNotADepot        = errors.New("location is not a distribution center")
	ErrInvalidSchedule  = errors.New("invalid schedule")
)

// LookupError reports a travel duration that is not available for an ordered pair.
type LookupError struct {
	Origin      string
	Destination string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("travel duration %q -> %q: %v", e.Origin, e.Destination, ErrLocationNotFound)
}

func (e *LookupError) Unwrap() error { return ErrLocationNotFound }
