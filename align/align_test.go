package align

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	. "github.com/fulldump/biff"
)

func position(i int) Hit {
	return Hit{
		Column: 1 + float64((i*7)%97),
		Row:    1 + float64((i*13)%89),
	}
}

func garbage(i int) Hit {
	return Hit{Column: 500 + float64(i), Row: 500 + float64(i)}
}

// aligned returns n triggers with one hit each, both devices agreeing.
func aligned(n int) Streams {
	s := Streams{
		Triggers:   make([]int64, n),
		Reference:  make([]Hit, n),
		Secondary:  make([]Hit, n),
		Correlated: make([]bool, n),
	}
	for i := 0; i < n; i++ {
		s.Triggers[i] = int64(i)
		s.Reference[i] = position(i)
		s.Secondary[i] = position(i)
		s.Correlated[i] = true
	}
	return s
}

func testParams() Params {
	return Params{
		Tolerance:    0.5,
		BadTriggers:  3,
		SearchRadius: 10,
		GoodTriggers: 3,
	}
}

func allTrue(mask []bool) bool {
	return !slices.Contains(mask, false)
}

func countReal(hits []Hit) (n int) {
	for _, h := range hits {
		if !h.Virtual() {
			n++
		}
	}
	return
}

func TestAlign_AlreadyAligned(t *testing.T) {

	s := aligned(40)
	before := slices.Clone(s.Secondary)

	result, err := Align(s, testParams())
	AssertNil(err)

	AssertEqual(result.Outcome, Done)
	AssertEqual(result.Fixes, 0)
	AssertEqual(result.BreakAt, -1)
	AssertEqual(result.Applied, []Fix{})
	AssertEqual(s.Secondary, before)
	AssertTrue(allTrue(s.Correlated))
}

func TestAlign_InsertedRecord(t *testing.T) {

	n, k := 40, 10
	s := aligned(n)
	s.Secondary[k] = Hit{}
	for i := k + 1; i < n; i++ {
		s.Secondary[i] = position(i - 1)
	}

	result, err := Align(s, testParams())
	AssertNil(err)

	AssertEqual(result.Outcome, Done)
	AssertEqual(result.Fixes, 1)
	AssertEqual(result.Applied, []Fix{{Ref: k, Sec: k + 1, Offset: 1}})
	for i := 0; i < n-1; i++ {
		if s.Secondary[i] != s.Reference[i] {
			t.Fatalf("index %d: got %v, want %v", i, s.Secondary[i], s.Reference[i])
		}
	}
	AssertTrue(s.Secondary[n-1].Virtual())
	AssertTrue(allTrue(s.Correlated))
}

func TestAlign_DroppedRecord(t *testing.T) {

	n, k := 40, 10
	s := aligned(n)
	for i := k; i < n-1; i++ {
		s.Secondary[i] = position(i + 1)
	}
	s.Secondary[n-1] = Hit{}
	real := countReal(s.Secondary)

	result, err := Align(s, testParams())
	AssertNil(err)

	AssertEqual(result.Outcome, Done)
	AssertEqual(result.Fixes, 1)
	AssertEqual(result.Applied, []Fix{{Ref: k + 1, Sec: k, Offset: -1}})

	AssertTrue(s.Secondary[k].Virtual())
	for i := k + 1; i < n; i++ {
		if s.Secondary[i] != s.Reference[i] {
			t.Fatalf("index %d: got %v, want %v", i, s.Secondary[i], s.Reference[i])
		}
	}
	AssertEqual(countReal(s.Secondary), real)

	AssertFalse(s.Correlated[k])
	AssertTrue(allTrue(s.Correlated[:k]))
	AssertTrue(allTrue(s.Correlated[k+1:]))
}

func TestAlign_VirtualTriggersAreNeutral(t *testing.T) {

	s := aligned(40)
	for i := 10; i < 20; i++ {
		s.Reference[i] = Hit{}
		s.Secondary[i] = Hit{}
	}
	before := slices.Clone(s.Secondary)

	result, err := Align(s, testParams())
	AssertNil(err)

	AssertEqual(result.Outcome, Done)
	AssertEqual(result.Fixes, 0)
	AssertEqual(s.Secondary, before)
	AssertTrue(allTrue(s.Correlated))
}

func TestAlign_UnresolvedTriggersAreNeutral(t *testing.T) {

	s := aligned(40)
	for i := 10; i < 20; i++ {
		s.Secondary[i] = garbage(i)
		s.Correlated[i] = false
	}

	result, err := Align(s, testParams())
	AssertNil(err)

	AssertEqual(result.Outcome, Done)
	AssertEqual(result.Fixes, 0)
	AssertEqual(s.Secondary[10], garbage(10))
}

func TestAlign_GiveUp(t *testing.T) {

	n, k := 40, 10
	s := aligned(n)
	for i := k; i < n; i++ {
		s.Secondary[i] = garbage(i)
	}

	result, err := Align(s, testParams())
	AssertNil(err)

	AssertEqual(result.Outcome, GaveUp)
	AssertEqual(result.BreakAt, k)
	AssertEqual(result.Fixes, 0)
	AssertTrue(allTrue(s.Correlated[:k]))
	AssertEqual(slices.Contains(s.Correlated[k:], true), false)
}

func TestAlign_Errors(t *testing.T) {

	Alternative("Length mismatch", func(a *A) {
		s := aligned(10)
		s.Correlated = s.Correlated[:9]
		_, err := Align(s, testParams())
		a.AssertTrue(errors.Is(err, ErrLengthMismatch))
	})

	Alternative("Invalid params", func(a *A) {
		p := testParams()
		p.Tolerance = 0
		_, err := Align(aligned(10), p)
		a.AssertTrue(errors.Is(err, ErrInvalidParams))
	})

	Alternative("Unsorted triggers", func(a *A) {
		s := aligned(10)
		s.Triggers[3], s.Triggers[4] = s.Triggers[4], s.Triggers[3]
		_, err := Align(s, testParams())
		a.AssertTrue(errors.Is(err, ErrTriggersNotSorted))
	})

	Alternative("Empty streams", func(a *A) {
		result, err := Align(Streams{}, testParams())
		a.AssertNil(err)
		a.AssertEqual(result.Outcome, Done)
	})
}

type recorder []string

func (r *recorder) Printf(format string, v ...any) {
	*r = append(*r, fmt.Sprintf(format, v...))
}

func TestAlign_WithLogger(t *testing.T) {

	s := aligned(40)
	s.Secondary[10] = Hit{}
	for i := 11; i < 40; i++ {
		s.Secondary[i] = position(i - 1)
	}

	lines := &recorder{}
	_, err := Align(s, testParams(), WithLogger(lines))
	AssertNil(err)

	AssertEqual(len(*lines) > 0, true)
	AssertEqual((*lines)[0], "align: correlation lost at index 10 (trigger 10)")
}
