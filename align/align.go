package align

import (
	"fmt"
	"slices"
)

// Streams are the inputs of one alignment run. Secondary and Correlated are
// rewritten in place, Triggers and Reference are only read.
type Streams struct {
	Triggers   []int64
	Reference  []Hit
	Secondary  []Hit
	Correlated []bool
}

type Outcome string

const (
	Done   Outcome = "done"
	GaveUp Outcome = "gave_up"
)

// Fix is one applied resynchronization: from index Ref on, the secondary
// stream now holds what was recorded at Sec.
type Fix struct {
	Ref    int   `json:"ref"`
	Sec    int   `json:"sec"`
	Offset int64 `json:"offset"`
}

type Result struct {
	Fixes   int     `json:"fixes"`
	Outcome Outcome `json:"outcome"`
	BreakAt int     `json:"break_at"`
	Applied []Fix   `json:"applied"`
}

type Logger interface {
	Printf(format string, v ...any)
}

type silent struct{}

func (silent) Printf(string, ...any) {}

type options struct {
	logger Logger
}

type Option func(o *options)

// WithLogger traces every phase transition of the run.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

type phase int

const (
	scanning phase = iota
	breaking
	searching
	fixing
	done
	gaveUp
)

// Align detects where the secondary stream lost correlation with the
// reference stream, finds the offset that restores it and rewrites the
// secondary stream, repeating until the end of data or until no offset can be
// found.
func Align(s Streams, p Params, opts ...Option) (Result, error) {

	o := &options{logger: silent{}}
	for _, opt := range opts {
		opt(o)
	}

	if err := p.Validate(); err != nil {
		return Result{}, err
	}

	n := len(s.Triggers)
	if len(s.Reference) != n || len(s.Secondary) != n || len(s.Correlated) != n {
		return Result{}, fmt.Errorf("%w: triggers=%d reference=%d secondary=%d correlated=%d",
			ErrLengthMismatch, n, len(s.Reference), len(s.Secondary), len(s.Correlated))
	}
	if !slices.IsSorted(s.Triggers) {
		return Result{}, ErrTriggersNotSorted
	}

	w := &streams{
		triggers:  s.Triggers,
		ref:       s.Reference,
		sec:       s.Secondary,
		state:     make([]Correlation, n),
		tolerance: p.Tolerance,
	}
	for i, c := range s.Correlated {
		if c {
			w.state[i] = Correlated
		}
	}

	result := Result{
		Outcome: Done,
		BreakAt: -1,
		Applied: []Fix{},
	}

	start := 0
	var breakAt, fix Cursor

	for ph := scanning; ph != done && ph != gaveUp; {
		switch ph {

		case scanning:
			if start >= n {
				ph = done
				continue
			}
			var broken bool
			breakAt, broken = w.detect(Cursor{Ref: start, Sec: start}, p.BadTriggers)
			if !broken {
				o.logger.Printf("align: correlated from %d to end of data", start)
				ph = done
				continue
			}
			ph = breaking

		case breaking:
			o.logger.Printf("align: correlation lost at index %d (trigger %d)", breakAt.Ref, s.Triggers[breakAt.Ref])
			ph = searching

		case searching:
			var found bool
			fix, found = w.search(breakAt.Ref, p)
			if !found {
				o.logger.Printf("align: no offset found within %d indices of %d", p.SearchRadius, breakAt.Ref)
				for i := breakAt.Ref; i < n; i++ {
					w.state[i] = Unresolved
				}
				result.Outcome = GaveUp
				result.BreakAt = breakAt.Ref
				ph = gaveUp
				continue
			}
			ph = fixing

		case fixing:
			if fix.Ref == fix.Sec {
				o.logger.Printf("align: correlation back at index %d, nothing to fix", fix.Ref)
			} else if offset := s.Triggers[fix.Sec] - s.Triggers[fix.Ref]; offset != 0 {
				ambiguous := w.resync(fix)
				result.Fixes++
				result.Applied = append(result.Applied, Fix{Ref: fix.Ref, Sec: fix.Sec, Offset: offset})
				o.logger.Printf("align: fix at %d->%d offset %d (%d ambiguous triggers)", fix.Ref, fix.Sec, offset, ambiguous)
			}

			next := fix.Ref
			if next <= start {
				next = start + 1
			}
			start = next
			ph = scanning
		}
	}

	w.clearPending()
	for i, c := range w.state {
		s.Correlated[i] = c == Correlated
	}

	return result, nil
}
