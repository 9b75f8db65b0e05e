package heist

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Session is one game: it owns the array and the level controller, and is
// the only way the presentation layer changes either. A Session is not safe
// for concurrent use; the caller delivers intents and clock ticks serially.
type Session struct {
	array    Array
	levels   *Controller
	search   *Search
	hint     bool
	hintsOn  bool
	listener Listener
}

type sessionOptions struct {
	seed       int64
	startLevel int
	hints      bool
	listener   Listener
}

// Option configures a new Session.
type Option func(*sessionOptions)

// WithSeed fixes the RNG seed used for secrets. 0 seeds from the clock.
func WithSeed(seed int64) Option {
	return func(o *sessionOptions) { o.seed = seed }
}

// WithStartLevel chooses the first level (1..MaxLevel). Invalid values fall
// back to level 1.
func WithStartLevel(n int) Option {
	return func(o *sessionOptions) { o.startLevel = n }
}

// WithHints enables or disables the secret hint.
func WithHints(enabled bool) Option {
	return func(o *sessionOptions) { o.hints = enabled }
}

// WithListener registers a callback for every emitted event.
func WithListener(l Listener) Option {
	return func(o *sessionOptions) { o.listener = l }
}

// NewSession creates a session with its first level already running.
func NewSession(opts ...Option) *Session {
	o := sessionOptions{startLevel: 1, hints: true}
	for _, opt := range opts {
		opt(&o)
	}
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}
	if GetRule(o.startLevel) == nil {
		o.startLevel = 1
	}

	s := &Session{
		levels:   NewController(rand.New(rand.NewSource(o.seed))),
		hintsOn:  o.hints,
		listener: o.listener,
	}
	s.StartLevel(o.startLevel)
	return s
}

// Level returns the active level.
func (s *Session) Level() *Level {
	return s.levels.Current()
}

// ClockID returns the id of the live countdown stream.
func (s *Session) ClockID() uint64 {
	return s.levels.Clock().ID()
}

// ClockRunning reports whether the countdown wants ticks.
func (s *Session) ClockRunning() bool {
	return s.levels.Clock().Running()
}

// AcceptsClock reports whether a tick tagged with id belongs to the live
// countdown.
func (s *Session) AcceptsClock(id uint64) bool {
	return s.levels.Clock().Accepts(id)
}

// Searching reports whether a step-wise search is in flight.
func (s *Session) Searching() bool {
	return s.search != nil
}

// CanAdvance reports whether AdvanceLevel would succeed.
func (s *Session) CanAdvance() bool {
	lvl := s.Level()
	return lvl.Status() == StatusWon && lvl.Number() < MaxLevel
}

// Insert parses index and value text and inserts the digit. Only an insert
// that changes the array cancels an in-flight search.
func (s *Session) Insert(indexText, valueText string) Result {
	res := Result{Op: OpInsertValue, Found: -1}

	index, err := parseIndex(indexText)
	if err != nil {
		return s.reject(res, err)
	}
	value, err := strconv.Atoi(strings.TrimSpace(valueText))
	if err != nil {
		return s.reject(res, fmt.Errorf("%w: %q is not a digit", ErrValueOutOfRange, valueText))
	}

	shift, err := s.array.Insert(index, value)
	if err != nil {
		return s.reject(res, err)
	}
	s.cancelSearch(&res)
	res.Shift = &shift
	s.emit(&res, EventInserted, SeverityOK, fmt.Sprintf("Inserted %d at index %d!", value, index))
	s.checkWin(&res)
	return res
}

// Delete parses index text and deletes the digit there. Like Insert, a
// rejected delete leaves an in-flight search running.
func (s *Session) Delete(indexText string) Result {
	res := Result{Op: OpDeleteValue, Found: -1}

	index, err := parseIndex(indexText)
	if err != nil {
		return s.reject(res, err)
	}
	shift, err := s.array.Delete(index)
	if err != nil {
		return s.reject(res, err)
	}
	s.cancelSearch(&res)
	res.Shift = &shift
	s.emit(&res, EventDeleted, SeverityOK, fmt.Sprintf("Deleted element at index %d.", index))
	s.checkWin(&res)
	return res
}

// ClearArray empties the array. Clearing never wins a level, so no win
// check runs.
func (s *Session) ClearArray() Result {
	res := Result{Op: OpClearArray, Found: -1}
	s.cancelSearch(&res)
	s.array.Clear()
	s.emit(&res, EventCleared, SeverityInfo, "Array cleared.")
	return res
}

// Search parses a query pattern and starts a step-wise search for it.
// The first match is computed eagerly into Result.Found so callers that do
// not animate can report it at once; animating callers pull StepSearch.
func (s *Session) Search(queryText string) Result {
	res := Result{Op: OpSearch, Found: -1}

	p, err := ParsePattern(queryText)
	if err != nil {
		return s.reject(res, err)
	}
	s.cancelSearch(&res)
	snap := s.array.Snapshot()
	if at, ok := FindFirst(snap, p); ok {
		res.Found = at
	}
	s.search = StepSearch(snap, p)
	s.emit(&res, EventSearchStarted, SeverityInfo, "Searching...")
	return res
}

// StepSearch compares the next window of the in-flight search. The search
// ends at the first match or after the last window; either way the final
// outcome is reported as an event.
func (s *Session) StepSearch() Result {
	res := Result{Op: OpStepSearch, Found: -1}
	if s.search == nil {
		return res
	}

	step, ok := s.search.Next()
	if ok {
		res.Step = &step
	}
	switch {
	case ok && step.Matched:
		s.search = nil
		res.Found = step.Start
		s.emit(&res, EventPatternFound, SeverityOK, fmt.Sprintf("Pattern found at index %d.", step.Start))
	case s.search.Done():
		s.search = nil
		s.emit(&res, EventPatternNotFound, SeverityWarn, "Pattern not found.")
	}
	return res
}

// CancelSearch abandons the in-flight search, if any.
func (s *Session) CancelSearch() Result {
	res := Result{Op: OpCancelSearch, Found: -1}
	s.cancelSearch(&res)
	return res
}

// TickClock removes one second from the running level. Calls made while the
// countdown is stopped do nothing.
func (s *Session) TickClock() Result {
	res := Result{Op: OpTickClock, Found: -1}
	status, stopped := s.levels.Tick()
	if stopped && status == StatusTimedOut {
		s.emit(&res, EventTimedOut, SeverityErr, "Time up! Try again.")
	}
	return res
}

// StartLevel discards the current level and array contents and starts level n.
func (s *Session) StartLevel(n int) Result {
	return s.begin(Result{Op: OpStartLevel, Found: -1}, func() (*Level, error) {
		return s.levels.StartLevel(n)
	})
}

// RestartLevel starts a fresh attempt at the current level with a new secret.
func (s *Session) RestartLevel() Result {
	n := s.Level().Number()
	return s.begin(Result{Op: OpRestartLevel, Found: -1}, func() (*Level, error) {
		return s.levels.StartLevel(n)
	})
}

// AdvanceLevel moves on once the current level is won.
func (s *Session) AdvanceLevel() Result {
	res := Result{Op: OpAdvanceLevel, Found: -1}
	lvl := s.Level()
	if lvl.Number() >= MaxLevel {
		return s.reject(res, ErrNoNextLevel)
	}
	if lvl.Status() != StatusWon {
		return s.reject(res, ErrCannotAdvance)
	}
	return s.begin(res, s.levels.Advance)
}

// ToggleHint shows or hides the secret.
func (s *Session) ToggleHint() Result {
	res := Result{Op: OpToggleHint, Found: -1}
	if !s.hintsOn {
		s.emit(&res, EventHint, SeverityWarn, "Hints are disabled.")
		return res
	}
	s.hint = !s.hint
	if s.hint {
		s.emit(&res, EventHint, SeverityInfo, s.hintText())
	} else {
		s.emit(&res, EventHint, SeverityInfo, "Hint hidden.")
	}
	return res
}

// begin runs a level change and resets per-level state on success.
func (s *Session) begin(res Result, start func() (*Level, error)) Result {
	s.cancelSearch(&res)
	if _, err := start(); err != nil {
		return s.reject(res, err)
	}
	s.array.Clear()
	s.hint = false
	s.emit(&res, EventLevelStarted, SeverityInfo, "New level started. Insert digits and search for the pattern!")
	return res
}

// checkWin runs after every mutation.
func (s *Session) checkWin(res *Result) {
	if !s.levels.CheckWin(s.array.Snapshot()) {
		return
	}
	s.emit(res, EventLevelWon, SeverityOK,
		fmt.Sprintf("Level Complete! You cracked the code in %ds.", s.Level().Elapsed()))
}

func (s *Session) cancelSearch(res *Result) {
	if s.search == nil {
		return
	}
	s.search = nil
	s.emit(res, EventSearchCancelled, SeverityInfo, "Search cancelled.")
}

func (s *Session) reject(res Result, err error) Result {
	res.Err = err
	s.emit(&res, EventRejected, SeverityOf(err), feedbackFor(err))
	return res
}

func (s *Session) emit(res *Result, kind EventKind, sev Severity, msg string) {
	ev := Event{Kind: kind, Severity: sev, Message: msg, Level: s.Level().Number()}
	res.Events = append(res.Events, ev)
	if s.listener != nil {
		s.listener(ev)
	}
}

func (s *Session) hintText() string {
	lvl := s.Level()
	text := "Secret pattern: " + lvl.Secret().String()
	if lvl.Reversed() {
		text += " → find its reverse"
	}
	return text
}

// parseIndex turns free text into an index. Anything that is not a whole
// number is out of bounds by definition.
func parseIndex(text string) (int, error) {
	i, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", ErrIndexOutOfBounds, text)
	}
	return i, nil
}

// feedbackFor returns the player-facing message for an engine error.
func feedbackFor(err error) string {
	switch {
	case errors.Is(err, ErrIndexOutOfBounds):
		return "Index out of bounds!"
	case errors.Is(err, ErrValueOutOfRange):
		return "Enter a value 0–9."
	case errors.Is(err, ErrArrayFull):
		return "Array full! Cannot insert."
	case errors.Is(err, ErrEmptySlot):
		return "Nothing to delete at that index."
	case errors.Is(err, ErrInvalidPattern):
		return "Enter a valid pattern (e.g., 1,2,3)."
	case errors.Is(err, ErrNoNextLevel):
		return "That was the final level."
	case errors.Is(err, ErrCannotAdvance):
		return "Crack this level first."
	case errors.Is(err, ErrNoSuchLevel):
		return "There is no such level."
	default:
		return err.Error()
	}
}
