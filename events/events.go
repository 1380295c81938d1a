// Package events works on trigger number columns. Every input is expected to
// be sorted in ascending order, as produced by the data acquisition.
package events

import (
	"errors"
	"fmt"
)

var ErrCapacityExceeded = errors.New("result buffer is too small")

// CountPerEvent collapses consecutive equal trigger numbers into (number,
// count) pairs.
func CountPerEvent(events []int64) (ids []int64, counts []uint32) {

	ids = []int64{}
	counts = []uint32{}

	for i := 0; i < len(events); {
		j := i + 1
		for j < len(events) && events[j] == events[i] {
			j++
		}
		ids = append(ids, events[i])
		counts = append(counts, uint32(j-i))
		i = j
	}

	return
}

// Intersect returns the trigger numbers present in both a and b, each once.
func Intersect(a, b []int64) []int64 {

	result := []int64{}

	j := 0
	for i, e := range a {
		if i > 0 && a[i-1] == e {
			continue
		}
		for j < len(b) && b[j] < e {
			j++
		}
		if j == len(b) {
			break
		}
		if b[j] == e {
			result = append(result, e)
		}
	}

	return result
}

// MaxUnionInto merges a and b into dst. A trigger number appears as many times
// as its highest multiplicity in either input. It returns how many entries of
// dst were written; when dst fills up the entries written so far are kept and
// ErrCapacityExceeded is returned.
func MaxUnionInto(dst, a, b []int64) (int, error) {

	written := 0
	emit := func(e int64, times int) error {
		for k := 0; k < times; k++ {
			if written == len(dst) {
				return fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, len(dst))
			}
			dst[written] = e
			written++
		}
		return nil
	}

	i, j := 0, 0
	for i < len(a) || j < len(b) {

		var e int64
		switch {
		case j == len(b):
			e = a[i]
		case i == len(a):
			e = b[j]
		default:
			e = min(a[i], b[j])
		}

		na := run(a[i:], e)
		nb := run(b[j:], e)
		i += na
		j += nb

		if err := emit(e, max(na, nb)); err != nil {
			return written, err
		}
	}

	return written, nil
}

// run counts the leading entries of s equal to e.
func run(s []int64, e int64) int {
	n := 0
	for n < len(s) && s[n] == e {
		n++
	}
	return n
}

// In1DSorted reports for every entry of a whether it is present in b.
func In1DSorted(a, b []int64) []bool {

	result := make([]bool, len(a))

	j := 0
	for i, e := range a {
		for j < len(b) && b[j] < e {
			j++
		}
		result[i] = j < len(b) && b[j] == e
	}

	return result
}
