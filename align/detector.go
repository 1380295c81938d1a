package align

// detect scans forward from c until badTriggers consecutive triggers fail to
// correlate. Triggers without evidence are skipped without breaking the run.
// On a break the returned cursor points at the first hit of the first bad
// trigger, keeping the index distance of c.
func (s *streams) detect(c Cursor, badTriggers int) (Cursor, bool) {

	bad := 0
	at := c
	broken := false

	s.walk(c, s.len(), func(t trigger) bool {
		switch t.evidence {
		case evidenceGood:
			bad = 0
			return true
		case evidenceNone:
			return true
		}

		if bad == 0 {
			at = Cursor{Ref: t.first, Sec: t.first + c.Sec - c.Ref}
		}
		bad++
		if bad >= badTriggers {
			broken = true
			return false
		}
		return true
	})

	return at, broken
}
