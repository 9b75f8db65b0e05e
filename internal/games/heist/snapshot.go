package heist

// Snapshot captures everything the presentation layer needs to draw a
// session at one instant.
type Snapshot struct {
	Slots     [Capacity]Slot
	Filled    int
	Level     int
	LevelName string
	Target    string // e.g. "2-digit pattern"
	Remaining int
	Status    Status
	Elapsed   int

	HintVisible bool
	Hint        string

	CanAdvance    bool
	Searching     bool
	SearchPattern Pattern // nil unless Searching
	SearchWindows int     // windows the in-flight search visits
	ClockID       uint64
	ClockRunning  bool
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	lvl := s.Level()
	snap := Snapshot{
		Slots:        s.array.Snapshot(),
		Filled:       s.array.Len(),
		Level:        lvl.Number(),
		LevelName:    lvl.Rule().Name,
		Target:       lvl.Rule().Describe(),
		Remaining:    lvl.Remaining(),
		Status:       lvl.Status(),
		Elapsed:      lvl.Elapsed(),
		HintVisible:  s.hint,
		CanAdvance:   s.CanAdvance(),
		Searching:    s.Searching(),
		ClockID:      s.ClockID(),
		ClockRunning: s.ClockRunning(),
	}
	if s.hint {
		snap.Hint = s.hintText()
	}
	if s.search != nil {
		snap.SearchPattern = append(Pattern(nil), s.search.Pattern()...)
		snap.SearchWindows = s.search.Total()
	}
	return snap
}

// Empty reports whether no slot is filled.
func (s Snapshot) Empty() bool {
	return s.Filled == 0
}
