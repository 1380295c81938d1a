package align

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParams     = errors.New("invalid alignment parameters")
	ErrLengthMismatch    = errors.New("stream lengths do not match")
	ErrTriggersNotSorted = errors.New("trigger numbers are not sorted")
)

type Params struct {
	// Tolerance is the maximum distance per coordinate (exclusive) for two
	// hits to be considered the same particle.
	Tolerance float64 `json:"tolerance"`

	// BadTriggers is the number of consecutive uncorrelated triggers that
	// declares the correlation broken.
	BadTriggers int `json:"bad_triggers"`

	// SearchRadius bounds the offset search, in indices.
	SearchRadius int `json:"search_radius"`

	// GoodTriggers is the number of consecutive correlated triggers a
	// candidate needs to be accepted. Zero accepts any positional match.
	GoodTriggers int `json:"good_triggers"`
}

func DefaultParams() Params {
	return Params{
		Tolerance:    3.0,
		BadTriggers:  5,
		SearchRadius: 2000,
		GoodTriggers: 3,
	}
}

func (p Params) Validate() error {
	if !(p.Tolerance > 0) {
		return fmt.Errorf("%w: tolerance must be positive, got %v", ErrInvalidParams, p.Tolerance)
	}
	if p.BadTriggers < 1 {
		return fmt.Errorf("%w: bad_triggers must be at least 1, got %d", ErrInvalidParams, p.BadTriggers)
	}
	if p.SearchRadius < 1 {
		return fmt.Errorf("%w: search_radius must be at least 1, got %d", ErrInvalidParams, p.SearchRadius)
	}
	if p.GoodTriggers < 0 {
		return fmt.Errorf("%w: good_triggers must not be negative, got %d", ErrInvalidParams, p.GoodTriggers)
	}
	return nil
}
