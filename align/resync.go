package align

// resync rewrites the secondary stream so that, from fix.Ref onward, index i
// holds the secondary data recorded for trigger(i) + offset, where offset is
// the trigger distance of the fix pair. It returns the number of triggers
// whose merge was ambiguous.
func (s *streams) resync(fix Cursor) int {

	n := s.len()
	offset := s.triggers[fix.Sec] - s.triggers[fix.Ref]
	if offset == 0 {
		return 0
	}

	// A positive offset reads ahead of the write position, so the shift can
	// be done in place. A negative one would overwrite unread data.
	hits, states := s.sec, s.state
	if offset < 0 {
		hits = make([]Hit, n)
		states = make([]Correlation, n)
		copy(states, s.state)
	}

	ambiguous := 0
	consumed := -1 // last secondary index copied
	ref, sec := fix.Ref, fix.Sec

	current := s.triggers[ref]
	first := ref
	refHits, secHits := 0, 0

	// closeTrigger counts the real secondary hits of the finished trigger that
	// found no slot. More raw hits than reference slots means some were
	// dropped and the trigger cannot be trusted.
	closeTrigger := func(next func(t int64) bool) {
		for ; sec < n && next(s.triggers[sec]-offset); sec++ {
			if sec != consumed && !s.sec[sec].Virtual() {
				secHits++
			}
		}
		if secHits > refHits {
			ambiguous++
			for i := first; i < ref; i++ {
				states[i] = Unresolved
			}
		}
	}

	for ; ref < n; ref++ {
		if s.triggers[ref] != current {
			boundary := s.triggers[ref]
			closeTrigger(func(t int64) bool { return t < boundary })
			current = boundary
			first = ref
			refHits, secHits = 0, 0
		}
		refHits++

		if sec >= n {
			break
		}

		if sec == consumed {
			hits[ref] = Hit{}
		} else {
			hits[ref] = s.sec[sec]
			if !hits[ref].Virtual() {
				secHits++
			}
			consumed = sec
		}
		states[ref] = merged(s.state[ref], s.state[sec])
		if offset > 0 {
			s.sec[sec] = Hit{}
		}

		if sec+1 < n && s.triggers[ref]+offset == s.triggers[sec+1] {
			sec++
		}
	}

	if ref >= n {
		last := current
		closeTrigger(func(t int64) bool { return t <= last })
	}

	if offset > 0 {
		// source exhausted: nothing left to move into the tail
		for i := ref; i < n; i++ {
			s.sec[i] = Hit{}
		}
		return ambiguous
	}

	copy(s.sec[fix.Sec:], hits[fix.Sec:])
	copy(s.state[fix.Sec:], states[fix.Sec:])

	return ambiguous
}
