package align

// validate replays forward continuity from a candidate pair and requires
// goodTriggers consecutive correlated triggers before limit. A trigger that
// fails to correlate resets the run, triggers without evidence do not count.
func (s *streams) validate(c Cursor, limit, goodTriggers int) bool {

	if goodTriggers == 0 {
		return true
	}

	good := 0
	s.walk(c, limit, func(t trigger) bool {
		switch t.evidence {
		case evidenceGood:
			good++
		case evidenceBad:
			good = 0
		}
		return good < goodTriggers
	})

	return good >= goodTriggers
}
