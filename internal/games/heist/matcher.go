package heist

import "iter"

// SearchStep is the outcome of comparing one window against a pattern.
type SearchStep struct {
	Start   int  // first index of the window
	Len     int  // window length (pattern length)
	Matched bool // every slot in the window equals the pattern
}

// Window returns the inclusive index span the step compared.
func (s SearchStep) Window() Span {
	return Span{From: s.Start, To: s.Start + s.Len - 1}
}

// windowMatches compares slots[start:start+len(p)] against p.
func windowMatches(slots *[Capacity]Slot, start int, p Pattern) bool {
	for k, d := range p {
		if !slots[start+k].Is(d) {
			return false
		}
	}
	return true
}

// lastStart returns the highest candidate start for p, or -1 when p has no
// candidate window at all.
func lastStart(p Pattern) int {
	if len(p) == 0 || len(p) > Capacity {
		return -1
	}
	return Capacity - len(p)
}

// FindFirst returns the lowest start index whose window equals p. It runs
// the same scan StepSearch exposes, so both always agree.
func FindFirst(slots [Capacity]Slot, p Pattern) (int, bool) {
	for step := range StepSearch(slots, p).Steps() {
		if step.Matched {
			return step.Start, true
		}
	}
	return -1, false
}

// Search is a pull-based, step-wise pattern search over a snapshot of the
// array. It yields one SearchStep per candidate window, left to right, and
// keeps going past a match; the consumer decides when to stop pulling.
// Dropping a Search is its cancellation.
type Search struct {
	slots   [Capacity]Slot
	pattern Pattern
	next    int
	last    int
}

// StepSearch starts a fresh search of p over slots.
func StepSearch(slots [Capacity]Slot, p Pattern) *Search {
	return &Search{
		slots:   slots,
		pattern: append(Pattern(nil), p...),
		last:    lastStart(p),
	}
}

// Next compares the next window. ok is false once every window was visited.
func (s *Search) Next() (step SearchStep, ok bool) {
	if s.Done() {
		return SearchStep{}, false
	}
	start := s.next
	s.next++
	return SearchStep{
		Start:   start,
		Len:     len(s.pattern),
		Matched: windowMatches(&s.slots, start, s.pattern),
	}, true
}

// Done reports whether every candidate window has been produced.
func (s *Search) Done() bool {
	return s.next > s.last
}

// Total returns the number of windows the full search visits.
func (s *Search) Total() int {
	return s.last + 1
}

// Pattern returns the pattern being searched for.
func (s *Search) Pattern() Pattern {
	return s.pattern
}

// Steps adapts the remaining steps to a range-over-func sequence.
func (s *Search) Steps() iter.Seq[SearchStep] {
	return func(yield func(SearchStep) bool) {
		for {
			step, ok := s.Next()
			if !ok || !yield(step) {
				return
			}
		}
	}
}
