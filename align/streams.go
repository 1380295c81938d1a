package align

// streams is the working set of one alignment call. Triggers and reference
// hits are only read; secondary hits and states are rewritten in place.
type streams struct {
	triggers  []int64
	ref       []Hit
	sec       []Hit
	state     []Correlation
	tolerance float64
}

func (s *streams) len() int {
	return len(s.triggers)
}

// correlated reports positional evidence between two real hits.
func (s *streams) correlated(ref, sec int) bool {
	a, b := s.ref[ref], s.sec[sec]
	if a.Virtual() || b.Virtual() {
		return false
	}
	return a.Near(b, s.tolerance)
}

// neutral pairs cannot tell anything about the correlation: both hits are
// virtual or the secondary index is already known to be unresolved.
func (s *streams) neutral(ref, sec int) bool {
	if s.ref[ref].Virtual() && s.sec[sec].Virtual() {
		return true
	}
	return s.state[sec] == Unresolved
}

// firstOfTrigger walks back to the first index sharing the trigger of i.
func (s *streams) firstOfTrigger(i int) int {
	for i > 0 && s.triggers[i-1] == s.triggers[i] {
		i--
	}
	return i
}

type evidence int

const (
	evidenceNone evidence = iota
	evidenceGood
	evidenceBad
)

func (e evidence) String() string {
	switch e {
	case evidenceGood:
		return "good"
	case evidenceBad:
		return "bad"
	default:
		return "none"
	}
}

// trigger summarizes one completed trigger of a walk.
type trigger struct {
	number   int64
	first    int // first reference index of the trigger
	evidence evidence
}

// walk replays both streams trigger by trigger from c, holding the trigger
// offset between the two cursors constant. For every completed trigger fn is
// called; returning false stops the walk. Indices at or beyond limit are never
// visited, and the walk ends as soon as the secondary cursor reaches the last
// index below limit, so the trailing trigger is never reported.
func (s *streams) walk(c Cursor, limit int, fn func(t trigger) bool) {

	if c.Ref >= limit || c.Sec >= limit {
		return
	}

	offset := s.triggers[c.Sec] - s.triggers[c.Ref]
	ref, sec := c.Ref, c.Sec

	current := trigger{
		number: s.triggers[ref],
		first:  s.firstOfTrigger(ref),
	}
	good := false
	compared, neutral := 0, 0

	for ; ref < limit; ref++ {
		if s.triggers[ref] != current.number {
			switch {
			case good:
				current.evidence = evidenceGood
			case compared == neutral:
				current.evidence = evidenceNone
			default:
				current.evidence = evidenceBad
			}
			if !fn(current) {
				return
			}

			for sec+1 < limit && s.triggers[sec]-offset < s.triggers[ref] {
				sec++
			}

			current = trigger{number: s.triggers[ref], first: ref}
			good = false
			compared, neutral = 0, 0
		}

		compared++
		if s.correlated(ref, sec) {
			good = true
		}
		if s.neutral(ref, sec) {
			neutral++
		}

		if sec+1 >= limit {
			return
		}
		if s.triggers[ref]+offset == s.triggers[sec+1] {
			sec++
		}
	}
}

// clearPending collapses every transient search marker.
func (s *streams) clearPending() {
	for i, c := range s.state {
		if c == pendingUnmatched {
			s.state[i] = Unresolved
		}
	}
}
