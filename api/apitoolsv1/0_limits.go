package apitoolsv1

import (
	"context"
	"errors"

	"github.com/fulldump/box"
)

var ErrTooLarge = errors.New("request too large")

// Limits bound the buffers the tools allocate on behalf of a request.
type Limits struct {
	MaxBins     int
	MaxCapacity int
}

func DefaultLimits() Limits {
	return Limits{
		MaxBins:     1 << 24,
		MaxCapacity: 1 << 24,
	}
}

type contextKey string

const contextLimitsKey contextKey = "tools-limits"

func injectLimits(limits Limits) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			next(context.WithValue(ctx, contextLimitsKey, limits))
		}
	}
}

func getLimits(ctx context.Context) Limits {
	limits, ok := ctx.Value(contextLimitsKey).(Limits)
	if !ok {
		return DefaultLimits()
	}
	return limits
}
