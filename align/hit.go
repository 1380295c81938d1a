package align

import "math"

// Hit is a (column, row) position record. Both coordinates exactly zero is a
// virtual hit: nothing was recorded for that index.
type Hit struct {
	Column float64 `json:"column"`
	Row    float64 `json:"row"`
}

func (h Hit) Virtual() bool {
	return h.Column == 0 && h.Row == 0
}

// Near reports whether both coordinate differences are below tolerance.
func (h Hit) Near(other Hit, tolerance float64) bool {
	return math.Abs(h.Column-other.Column) < tolerance && math.Abs(h.Row-other.Row) < tolerance
}

type Correlation uint8

const (
	Unresolved Correlation = iota
	Correlated

	// pendingUnmatched flags a reference index for which the offset search
	// found no candidate. It is only set on indices that were Correlated and
	// never leaves the package: finish collapses it to Unresolved.
	pendingUnmatched
)

func (c Correlation) String() string {
	switch c {
	case Correlated:
		return "correlated"
	case pendingUnmatched:
		return "pending"
	default:
		return "unresolved"
	}
}

// base drops the transient search marker and returns the state underneath.
func (c Correlation) base() Correlation {
	if c == pendingUnmatched {
		return Correlated
	}
	return c
}

// merged is the state of a rewritten secondary index: correlated only if both
// sides were, an existing Unresolved is never promoted.
func merged(ref, sec Correlation) Correlation {
	if ref.base() == Correlated && sec.base() == Correlated {
		return Correlated
	}
	return Unresolved
}

// Cursor is a pair of positions, one in each stream.
type Cursor struct {
	Ref int `json:"ref"`
	Sec int `json:"sec"`
}
