package align

import (
	"testing"

	"github.com/fulldump/biff"
)

// twoHitStreams has two hits per trigger, secondary garbage from index from.
func twoHitStreams(n, from int) *streams {
	s := &streams{
		triggers:  make([]int64, n),
		ref:       make([]Hit, n),
		sec:       make([]Hit, n),
		state:     make([]Correlation, n),
		tolerance: 0.5,
	}
	for i := 0; i < n; i++ {
		s.triggers[i] = int64(i / 2)
		s.ref[i] = position(i)
		s.sec[i] = position(i)
		if i >= from {
			s.sec[i] = garbage(i)
		}
		s.state[i] = Correlated
	}
	return s
}

func TestDetect_RewindsToTriggerStart(t *testing.T) {

	s := twoHitStreams(30, 10)

	at, broken := s.detect(Cursor{}, 2)
	biff.AssertTrue(broken)
	biff.AssertEqual(at, Cursor{Ref: 10, Sec: 10})

	// starting in the middle of a trigger still reports its first index
	at, broken = s.detect(Cursor{Ref: 11, Sec: 11}, 2)
	biff.AssertTrue(broken)
	biff.AssertEqual(at, Cursor{Ref: 10, Sec: 10})
}

func TestDetect_Holds(t *testing.T) {

	s := twoHitStreams(30, 30)

	_, broken := s.detect(Cursor{}, 2)
	biff.AssertFalse(broken)
}

func TestValidate(t *testing.T) {

	s := twoHitStreams(30, 10)

	biff.AssertTrue(s.validate(Cursor{}, 30, 3))
	biff.AssertFalse(s.validate(Cursor{Ref: 10, Sec: 10}, 30, 3))
	biff.AssertTrue(s.validate(Cursor{Ref: 10, Sec: 10}, 30, 0))
}

func TestValidate_VirtualTriggersDoNotCount(t *testing.T) {

	s := twoHitStreams(30, 30)
	for i := 2; i < 30; i++ {
		s.ref[i] = Hit{}
		s.sec[i] = Hit{}
	}

	// only trigger 0 carries evidence
	biff.AssertFalse(s.validate(Cursor{}, 30, 3))
	biff.AssertFalse(s.validate(Cursor{}, 30, 2))
	biff.AssertTrue(s.validate(Cursor{}, 30, 1))
}

func TestValidate_UnresolvedTriggersDoNotCount(t *testing.T) {

	s := twoHitStreams(30, 30)
	s.sec[2] = garbage(2)
	s.sec[3] = garbage(3)

	// trigger 1 disagrees and breaks the run: 0 | 2 3
	biff.AssertFalse(s.validate(Cursor{}, 10, 3))

	// once unresolved it is skipped: 0 2 3
	s.state[2] = Unresolved
	s.state[3] = Unresolved
	biff.AssertTrue(s.validate(Cursor{}, 10, 3))
	biff.AssertFalse(s.validate(Cursor{}, 10, 4))
}

func TestSearch_MarksUnmatched(t *testing.T) {

	s := twoHitStreams(30, 10)
	p := Params{Tolerance: 0.5, BadTriggers: 2, SearchRadius: 4, GoodTriggers: 1}

	_, found := s.search(10, p)
	biff.AssertFalse(found)
	for i := 10; i < 14; i++ {
		biff.AssertEqual(s.state[i], pendingUnmatched)
	}
	biff.AssertEqual(s.state[14], Correlated)

	s.clearPending()
	for i := 10; i < 14; i++ {
		biff.AssertEqual(s.state[i], Unresolved)
	}
}

func TestResync_AmbiguousMerge(t *testing.T) {

	s := &streams{
		triggers:  []int64{0, 1, 2, 2, 3, 4, 5},
		ref:       make([]Hit, 7),
		sec:       make([]Hit, 7),
		state:     make([]Correlation, 7),
		tolerance: 0.5,
	}
	for i := range s.triggers {
		s.ref[i] = position(i)
		s.sec[i] = garbage(i)
		s.state[i] = Correlated
	}

	ambiguous := s.resync(Cursor{Ref: 1, Sec: 2})

	biff.AssertEqual(ambiguous, 1)
	biff.AssertEqual(s.sec, []Hit{
		garbage(0), garbage(2), garbage(4), {}, garbage(5), garbage(6), {},
	})
	biff.AssertEqual(s.state, []Correlation{
		Correlated, Unresolved, Correlated, Correlated, Correlated, Correlated, Correlated,
	})
}

func TestResync_ZeroOffset(t *testing.T) {

	s := twoHitStreams(6, 6)

	biff.AssertEqual(s.resync(Cursor{Ref: 2, Sec: 3}), 0)
	biff.AssertEqual(s.sec[2], position(2))
	biff.AssertEqual(s.sec[3], position(3))
}

func TestMerged(t *testing.T) {

	biff.AssertEqual(merged(Correlated, Correlated), Correlated)
	biff.AssertEqual(merged(pendingUnmatched, Correlated), Correlated)
	biff.AssertEqual(merged(Unresolved, Correlated), Unresolved)
	biff.AssertEqual(merged(Correlated, Unresolved), Unresolved)
}
