package align

// search looks for the secondary index holding the data of a reference index
// at or after from. Positional coincidence alone can happen by chance, so
// every candidate is validated before it is accepted. Reference indices left
// without a validated candidate get the transient pending marker.
func (s *streams) search(from int, p Params) (Cursor, bool) {

	n := s.len()
	stop := min(from+p.SearchRadius, n)

	for ref := from; ref < stop; ref++ {
		if s.ref[ref].Virtual() {
			continue
		}

		first := max(ref-p.SearchRadius, 0)
		last := min(ref+p.SearchRadius, n)
		for sec := first; sec < last; sec++ {
			if !s.correlated(ref, sec) {
				continue
			}
			candidate := Cursor{Ref: ref, Sec: sec}
			if s.validate(candidate, stop, p.GoodTriggers) {
				return candidate, true
			}
		}

		if s.state[ref] == Correlated {
			s.state[ref] = pendingUnmatched
		}
	}

	return Cursor{}, false
}
