package apitoolsv1

import (
	"context"
	"fmt"

	"github.com/fulldump/telesync/events"
)

type pairRequest struct {
	A        []int64 `json:"a"`
	B        []int64 `json:"b"`
	Capacity int     `json:"capacity"`
}

func intersect(ctx context.Context, input *pairRequest) ([]int64, error) {
	return events.Intersect(input.A, input.B), nil
}

// union merges with max multiplicity. Without capacity the result can hold
// every input entry.
func union(ctx context.Context, input *pairRequest) ([]int64, error) {

	capacity := input.Capacity
	if capacity <= 0 {
		capacity = len(input.A) + len(input.B)
	}
	if limit := getLimits(ctx).MaxCapacity; capacity > limit {
		return nil, fmt.Errorf("%w: capacity %d, at most %d allowed", ErrTooLarge, capacity, limit)
	}

	dst := make([]int64, capacity)
	n, err := events.MaxUnionInto(dst, input.A, input.B)
	if err != nil {
		return nil, fmt.Errorf("union of %d and %d events: %w", len(input.A), len(input.B), err)
	}

	return dst[:n], nil
}

func inSorted(ctx context.Context, input *pairRequest) ([]bool, error) {
	return events.In1DSorted(input.A, input.B), nil
}

type countEventsRequest struct {
	Events []int64 `json:"events"`
}

type eventCount struct {
	Event int64  `json:"event"`
	Count uint32 `json:"count"`
}

func countEvents(ctx context.Context, input *countEventsRequest) ([]eventCount, error) {

	ids, counts := events.CountPerEvent(input.Events)

	result := make([]eventCount, len(ids))
	for i := range ids {
		result[i] = eventCount{Event: ids[i], Count: counts[i]}
	}

	return result, nil
}
