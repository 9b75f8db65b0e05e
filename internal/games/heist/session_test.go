package heist

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

// newTestSession returns a session on level n with a known secret.
func newTestSession(t *testing.T, n int, secret Pattern, opts ...Option) *Session {
	t.Helper()
	s := NewSession(append([]Option{WithSeed(1), WithStartLevel(n)}, opts...)...)
	s.levels.current = newLevel(*GetRule(n), secret)
	return s
}

// fill inserts digits at indices 0, 1, 2, ... and returns the last result.
func fill(t *testing.T, s *Session, digits ...int) Result {
	t.Helper()
	var res Result
	for i, d := range digits {
		res = s.Insert(strconv.Itoa(i), strconv.Itoa(d))
		if !res.OK() {
			t.Fatalf("Insert(%d, %d) error = %v", i, d, res.Err)
		}
	}
	return res
}

func TestNewSession(t *testing.T) {
	s := NewSession(WithSeed(9))

	snap := s.Snapshot()
	if snap.Level != 1 || snap.Status != StatusRunning || snap.Remaining != TimeLimit {
		t.Errorf("new session snapshot = %+v", snap)
	}
	if !snap.Empty() {
		t.Error("new session should start with an empty array")
	}
	if !s.ClockRunning() || s.ClockID() == 0 {
		t.Error("new session should have a running clock")
	}

	if got := NewSession(WithStartLevel(42)).Level().Number(); got != 1 {
		t.Errorf("invalid start level should fall back to 1, got %d", got)
	}
	if got := NewSession(WithStartLevel(3)).Level().Number(); got != 3 {
		t.Errorf("WithStartLevel(3) started level %d", got)
	}
}

func TestSessionWinOnInsert(t *testing.T) {
	s := newTestSession(t, 2, Pattern{1, 2, 3})
	for range 5 {
		s.TickClock()
	}

	if res := fill(t, s, 1, 2); res.Has(EventLevelWon) {
		t.Fatal("two digits cannot match a three digit secret")
	}
	res := s.Insert("2", "3")
	if !res.Has(EventLevelWon) {
		t.Fatalf("third insert should win, events = %v", res.Events)
	}
	last, _ := res.Last()
	if last.Message != "Level Complete! You cracked the code in 5s." {
		t.Errorf("win message = %q", last.Message)
	}
	if s.Level().Status() != StatusWon || s.ClockRunning() {
		t.Error("winning should stop the clock")
	}

	before := s.Level().Remaining()
	if res := s.TickClock(); len(res.Events) != 0 || s.Level().Remaining() != before {
		t.Error("ticks after a win must do nothing")
	}
}

func TestSessionWinIsReportedOnce(t *testing.T) {
	s := newTestSession(t, 1, Pattern{4, 2})
	fill(t, s, 4, 2)

	if res := s.Delete("1"); res.Has(EventLevelWon) {
		t.Error("no second win after delete")
	}
	if res := s.Insert("1", "2"); res.Has(EventLevelWon) {
		t.Error("no second win after re-forming the secret")
	}
	if s.Level().Status() != StatusWon {
		t.Error("a won level stays won")
	}
}

func TestSessionWinOnDelete(t *testing.T) {
	s := newTestSession(t, 1, Pattern{1, 2})
	fill(t, s, 1, 5, 2)

	res := s.Delete("1")
	if !res.Has(EventLevelWon) {
		t.Errorf("closing the gap should win, events = %v", res.Events)
	}
}

func TestSessionReversedLevel(t *testing.T) {
	s := newTestSession(t, 3, Pattern{1, 2, 3})

	if res := fill(t, s, 1, 2, 3); res.Has(EventLevelWon) {
		t.Fatal("forward secret must not win level 3")
	}
	s.ClearArray()
	if res := fill(t, s, 3, 2, 1); !res.Has(EventLevelWon) {
		t.Error("reversed secret should win level 3")
	}
}

func TestSessionTimeout(t *testing.T) {
	s := newTestSession(t, 1, Pattern{7, 7})

	timeouts := 0
	for i := 1; i <= TimeLimit+3; i++ {
		res := s.TickClock()
		if res.Has(EventTimedOut) {
			timeouts++
			if i != TimeLimit {
				t.Errorf("timeout reported on tick %d", i)
			}
			last, _ := res.Last()
			if last.Severity != SeverityErr || last.Message != "Time up! Try again." {
				t.Errorf("timeout event = %+v", last)
			}
		}
	}
	if timeouts != 1 {
		t.Errorf("timeout reported %d times, want 1", timeouts)
	}
	if s.ClockRunning() {
		t.Error("clock should stop at timeout")
	}

	// Editing stays possible, but the level cannot be won any more.
	if res := fill(t, s, 7, 7); res.Has(EventLevelWon) {
		t.Error("a timed out level cannot be won")
	}
	if s.CanAdvance() {
		t.Error("a timed out level cannot advance")
	}
}

func TestSessionRestartLevel(t *testing.T) {
	s := newTestSession(t, 2, Pattern{1, 1, 1})
	fill(t, s, 5, 6)
	s.TickClock()
	s.ToggleHint()
	s.Search("5")
	oldID := s.ClockID()

	res := s.RestartLevel()
	if !res.OK() || !res.Has(EventLevelStarted) || !res.Has(EventSearchCancelled) {
		t.Fatalf("RestartLevel events = %v, err = %v", res.Events, res.Err)
	}

	snap := s.Snapshot()
	if snap.Level != 2 || snap.Remaining != TimeLimit || snap.Status != StatusRunning {
		t.Errorf("after restart snapshot = %+v", snap)
	}
	if !snap.Empty() || snap.HintVisible || snap.Searching {
		t.Error("restart should clear the array, hide the hint and drop the search")
	}
	if s.ClockID() == oldID || s.AcceptsClock(oldID) || !s.AcceptsClock(s.ClockID()) {
		t.Error("restart should retire the old clock stream")
	}
}

func TestSessionAdvanceLevel(t *testing.T) {
	s := newTestSession(t, 1, Pattern{3, 4})

	res := s.AdvanceLevel()
	if !errors.Is(res.Err, ErrCannotAdvance) {
		t.Fatalf("AdvanceLevel before winning error = %v", res.Err)
	}
	if s.Level().Number() != 1 {
		t.Error("a rejected advance must keep the level")
	}

	fill(t, s, 3, 4)
	if !s.CanAdvance() {
		t.Fatal("CanAdvance should be true after a win")
	}
	oldID := s.ClockID()

	res = s.AdvanceLevel()
	if !res.OK() {
		t.Fatalf("AdvanceLevel error = %v", res.Err)
	}
	snap := s.Snapshot()
	if snap.Level != 2 || snap.Status != StatusRunning || !snap.Empty() {
		t.Errorf("after advance snapshot = %+v", snap)
	}
	if s.ClockID() == oldID || !s.ClockRunning() {
		t.Error("advance should start a fresh clock")
	}
	if len(s.Level().Secret()) != 3 {
		t.Errorf("level 2 secret length = %d", len(s.Level().Secret()))
	}
}

func TestSessionAdvancePastLastLevel(t *testing.T) {
	s := newTestSession(t, 3, Pattern{1, 2, 3})
	fill(t, s, 3, 2, 1)

	if s.CanAdvance() {
		t.Error("the last level cannot advance")
	}
	res := s.AdvanceLevel()
	if !errors.Is(res.Err, ErrNoNextLevel) {
		t.Errorf("AdvanceLevel on level 3 error = %v, want ErrNoNextLevel", res.Err)
	}
	if s.Level().Number() != 3 || s.Level().Status() != StatusWon {
		t.Error("a rejected advance must keep the won level")
	}
}

func TestSessionStartLevel(t *testing.T) {
	s := newTestSession(t, 1, Pattern{0, 0})

	res := s.StartLevel(7)
	if !errors.Is(res.Err, ErrNoSuchLevel) {
		t.Fatalf("StartLevel(7) error = %v", res.Err)
	}
	if last, _ := res.Last(); last.Severity != SeverityErr {
		t.Errorf("severity = %v, want err", last.Severity)
	}

	if res := s.StartLevel(3); !res.OK() || s.Level().Number() != 3 {
		t.Errorf("StartLevel(3) = %v, level %d", res.Err, s.Level().Number())
	}
}

func TestSessionInsertValidation(t *testing.T) {
	tests := []struct {
		name     string
		index    string
		value    string
		want     error
		severity Severity
	}{
		{"index not a number", "abc", "1", ErrIndexOutOfBounds, SeverityErr},
		{"index empty", "", "1", ErrIndexOutOfBounds, SeverityErr},
		{"index negative", "-1", "1", ErrIndexOutOfBounds, SeverityErr},
		{"index too large", "10", "1", ErrIndexOutOfBounds, SeverityErr},
		{"value not a number", "0", "x", ErrValueOutOfRange, SeverityWarn},
		{"value too large", "0", "10", ErrValueOutOfRange, SeverityWarn},
		{"value negative", "0", "-3", ErrValueOutOfRange, SeverityWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, 1, Pattern{9, 9})
			res := s.Insert(tt.index, tt.value)

			if !errors.Is(res.Err, tt.want) {
				t.Errorf("Insert(%q, %q) error = %v, want %v", tt.index, tt.value, res.Err, tt.want)
			}
			last, _ := res.Last()
			if last.Kind != EventRejected || last.Severity != tt.severity {
				t.Errorf("event = %+v", last)
			}
			if !s.Snapshot().Empty() {
				t.Error("a rejected insert must not change the array")
			}
		})
	}
}

func TestSessionInsertTrimsInput(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})

	res := s.Insert(" 3 ", " 4 ")
	if !res.OK() {
		t.Fatalf("Insert error = %v", res.Err)
	}
	if !s.Snapshot().Slots[3].Is(4) {
		t.Error("digit 4 should land at index 3")
	}
	if res.Shift == nil || res.Shift.Index != 3 {
		t.Errorf("shift = %+v", res.Shift)
	}
	if last, _ := res.Last(); last.Message != "Inserted 4 at index 3!" {
		t.Errorf("message = %q", last.Message)
	}
}

func TestSessionArrayFull(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})
	fill(t, s, 0, 1, 2, 3, 4, 5, 6, 7, 8, 9)
	before := s.Snapshot().Slots

	res := s.Insert("5", "7")
	if !errors.Is(res.Err, ErrArrayFull) {
		t.Fatalf("error = %v, want ErrArrayFull", res.Err)
	}
	if last, _ := res.Last(); last.Message != "Array full! Cannot insert." {
		t.Errorf("message = %q", last.Message)
	}
	if s.Snapshot().Slots != before {
		t.Error("a full array must stay unchanged")
	}
}

func TestSessionDeleteEmptySlot(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})
	fill(t, s, 1, 2, 3)

	res := s.Delete("3")
	if !errors.Is(res.Err, ErrEmptySlot) {
		t.Fatalf("error = %v, want ErrEmptySlot", res.Err)
	}
	if last, _ := res.Last(); last.Severity != SeverityWarn {
		t.Errorf("severity = %v, want warn", last.Severity)
	}

	res = s.Delete("0")
	if !res.OK() || res.Shift == nil || res.Shift.Value != 1 {
		t.Errorf("Delete(0) = %+v", res)
	}
}

func TestSessionClearArray(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})
	fill(t, s, 1, 2)

	res := s.ClearArray()
	if !res.Has(EventCleared) || res.Has(EventLevelWon) {
		t.Errorf("ClearArray events = %v", res.Events)
	}
	if !s.Snapshot().Empty() {
		t.Error("array should be empty")
	}
}

func TestSessionSearchFound(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})
	fill(t, s, 1, 2, 3)

	res := s.Search("2, 3")
	if !res.OK() || res.Found != 1 || !s.Searching() {
		t.Fatalf("Search() = %+v", res)
	}

	res = s.StepSearch()
	if res.Step == nil || res.Step.Start != 0 || res.Step.Matched || len(res.Events) != 0 {
		t.Errorf("first step = %+v", res)
	}

	res = s.StepSearch()
	if res.Step == nil || !res.Step.Matched || res.Found != 1 {
		t.Fatalf("second step = %+v", res)
	}
	if last, _ := res.Last(); last.Kind != EventPatternFound || last.Message != "Pattern found at index 1." {
		t.Errorf("event = %+v", last)
	}
	if s.Searching() {
		t.Error("search should end at the first match")
	}
	if res := s.StepSearch(); res.Step != nil || len(res.Events) != 0 {
		t.Error("StepSearch with no search in flight should do nothing")
	}
}

func TestSessionSearchNotFound(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})
	fill(t, s, 1, 2, 3)

	res := s.Search("9")
	if res.Found != -1 {
		t.Errorf("Found = %d, want -1", res.Found)
	}

	steps := 0
	for s.Searching() {
		res = s.StepSearch()
		steps++
		if steps > Capacity {
			t.Fatal("search did not terminate")
		}
	}
	if steps != Capacity {
		t.Errorf("search took %d steps, want %d", steps, Capacity)
	}
	if last, _ := res.Last(); last.Kind != EventPatternNotFound || last.Severity != SeverityWarn {
		t.Errorf("final event = %+v", last)
	}
}

func TestSessionSearchEmptyArray(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})
	s.Search("1")

	var res Result
	for s.Searching() {
		res = s.StepSearch()
	}
	if !res.Has(EventPatternNotFound) {
		t.Error("search over an empty array should report not found")
	}
}

func TestSessionSearchInvalidPattern(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})

	res := s.Search("1, 2, x")
	if !errors.Is(res.Err, ErrInvalidPattern) {
		t.Fatalf("error = %v, want ErrInvalidPattern", res.Err)
	}
	if last, _ := res.Last(); last.Message != "Enter a valid pattern (e.g., 1,2,3)." {
		t.Errorf("message = %q", last.Message)
	}
	if s.Searching() {
		t.Error("an invalid pattern must not start a search")
	}
}

func TestSessionMutationCancelsSearch(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})
	fill(t, s, 1, 2, 3)
	s.Search("3")
	s.StepSearch()

	res := s.Insert("0", "5")
	if !res.Has(EventSearchCancelled) || !res.Has(EventInserted) {
		t.Errorf("Insert events = %v", res.Events)
	}
	if s.Searching() {
		t.Error("insert should cancel the in-flight search")
	}

	s.Search("3")
	if res := s.CancelSearch(); !res.Has(EventSearchCancelled) || s.Searching() {
		t.Error("CancelSearch should drop the search")
	}
	if res := s.CancelSearch(); len(res.Events) != 0 {
		t.Error("cancelling with nothing in flight should be quiet")
	}
}

func TestSessionRejectedIntentKeepsSearch(t *testing.T) {
	s := newTestSession(t, 1, Pattern{9, 9})
	fill(t, s, 1, 2, 3)

	tests := []struct {
		name string
		do   func() Result
		want error
	}{
		{"bad index", func() Result { return s.Insert("x", "5") }, ErrIndexOutOfBounds},
		{"bad value", func() Result { return s.Insert("0", "12") }, ErrValueOutOfRange},
		{"delete empty", func() Result { return s.Delete("7") }, ErrEmptySlot},
		{"delete out of range", func() Result { return s.Delete("10") }, ErrIndexOutOfBounds},
		{"bad pattern", func() Result { return s.Search("1, x") }, ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Search("3")
			s.StepSearch()

			res := tt.do()
			if !errors.Is(res.Err, tt.want) {
				t.Fatalf("error = %v, want %v", res.Err, tt.want)
			}
			if res.Has(EventSearchCancelled) {
				t.Errorf("events = %v, a rejected intent should not cancel", res.Events)
			}
			if !s.Searching() {
				t.Error("search stopped after a rejected intent")
			}
		})
	}

	// A new valid search replaces the old one.
	s.Search("3")
	res := s.Search("2")
	if !res.Has(EventSearchCancelled) || !res.Has(EventSearchStarted) || res.Found != 1 {
		t.Errorf("replacing search: events = %v, found = %d", res.Events, res.Found)
	}
}

func TestSessionHint(t *testing.T) {
	s := newTestSession(t, 3, Pattern{4, 5, 6})

	res := s.ToggleHint()
	last, _ := res.Last()
	if !strings.Contains(last.Message, "[4, 5, 6]") || !strings.Contains(last.Message, "reverse") {
		t.Errorf("hint message = %q", last.Message)
	}
	if snap := s.Snapshot(); !snap.HintVisible || snap.Hint != last.Message {
		t.Errorf("snapshot hint = %v %q", snap.HintVisible, snap.Hint)
	}

	res = s.ToggleHint()
	if last, _ := res.Last(); last.Message != "Hint hidden." {
		t.Errorf("second toggle message = %q", last.Message)
	}
	if s.Snapshot().HintVisible {
		t.Error("hint should be hidden after the second toggle")
	}
}

func TestSessionHintDisabled(t *testing.T) {
	s := newTestSession(t, 1, Pattern{1, 2}, WithHints(false))

	res := s.ToggleHint()
	if last, _ := res.Last(); last.Severity != SeverityWarn || last.Message != "Hints are disabled." {
		t.Errorf("event = %+v", last)
	}
	if s.Snapshot().HintVisible {
		t.Error("disabled hints must never show")
	}
}

func TestSessionListener(t *testing.T) {
	var seen []Event
	s := NewSession(WithSeed(4), WithListener(func(e Event) { seen = append(seen, e) }))
	s.levels.current = newLevel(Rules[0], Pattern{9, 9})

	if len(seen) != 1 || seen[0].Kind != EventLevelStarted {
		t.Fatalf("events after NewSession = %v", seen)
	}

	var want []Event
	want = append(want, seen...)
	for _, r := range []Result{s.Insert("0", "1"), s.Delete("5"), s.Search("1"), s.StepSearch()} {
		want = append(want, r.Events...)
	}

	if len(seen) != len(want) {
		t.Fatalf("listener saw %d events, results carried %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("event %d: listener %+v, result %+v", i, seen[i], want[i])
		}
	}
	for _, e := range seen {
		if e.Level != 1 {
			t.Errorf("event %v tagged with level %d", e.Kind, e.Level)
		}
	}
}
