package heist

import (
	"fmt"
	"math/rand"
)

// TimeLimit is the number of seconds each level allows.
const TimeLimit = 60

// Rule defines the secret shape of one campaign level.
type Rule struct {
	ID        int
	Name      string
	SecretLen int  // number of digits in the secret
	Reversed  bool // the secret must appear back to front
}

// Rules defines the three campaign levels. Only the last level asks for the
// reversed secret.
var Rules = []Rule{
	{ID: 1, Name: "Pair Lock", SecretLen: 2},
	{ID: 2, Name: "Triple Lock", SecretLen: 3},
	{ID: 3, Name: "Mirror Lock", SecretLen: 3, Reversed: true},
}

// MaxLevel is the last campaign level.
const MaxLevel = 3

// GetRule returns the rule for level n (1-based), or nil if there is none.
func GetRule(n int) *Rule {
	if n < 1 || n > len(Rules) {
		return nil
	}
	return &Rules[n-1]
}

// Describe returns the target description shown to the player,
// e.g. "3-digit pattern (reversed)".
func (r Rule) Describe() string {
	desc := fmt.Sprintf("%d-digit pattern", r.SecretLen)
	if r.Reversed {
		desc += " (reversed)"
	}
	return desc
}

// Status is the state of a level.
type Status int

const (
	StatusRunning Status = iota
	StatusWon
	StatusTimedOut
)

// String returns a lowercase name for the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusTimedOut:
		return "timed_out"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusWon || s == StatusTimedOut
}

// Level is one attempt at a campaign level. It moves from Running to Won or
// TimedOut and never leaves a terminal state; a new attempt is a new Level.
type Level struct {
	rule      Rule
	secret    Pattern
	remaining int
	status    Status
	elapsed   int
}

// newLevel builds a running level with the given secret.
func newLevel(rule Rule, secret Pattern) *Level {
	return &Level{
		rule:      rule,
		secret:    secret,
		remaining: TimeLimit,
		status:    StatusRunning,
	}
}

// Number returns the 1-based level number.
func (l *Level) Number() int { return l.rule.ID }

// Rule returns the rule this level was built from.
func (l *Level) Rule() Rule { return l.rule }

// Secret returns a copy of the secret pattern.
func (l *Level) Secret() Pattern { return append(Pattern(nil), l.secret...) }

// Reversed reports whether the secret must be formed back to front.
func (l *Level) Reversed() bool { return l.rule.Reversed }

// Remaining returns the seconds left on the clock.
func (l *Level) Remaining() int { return l.remaining }

// Status returns the current state.
func (l *Level) Status() Status { return l.status }

// Elapsed returns the seconds taken to win, or 0 if the level was not won.
func (l *Level) Elapsed() int { return l.elapsed }

// Target returns the pattern that must appear in the array.
func (l *Level) Target() Pattern {
	if l.rule.Reversed {
		return l.secret.Reversed()
	}
	return l.Secret()
}

// Tick removes one second. The transition to TimedOut happens exactly once,
// on the tick that reaches zero; terminal levels ignore ticks.
func (l *Level) Tick() Status {
	if l.status != StatusRunning {
		return l.status
	}
	if l.remaining > 0 {
		l.remaining--
	}
	if l.remaining == 0 {
		l.status = StatusTimedOut
	}
	return l.status
}

// CheckWin tests slots against the target. It returns true only on the call
// that moves the level from Running to Won.
func (l *Level) CheckWin(slots [Capacity]Slot) bool {
	if l.status != StatusRunning {
		return false
	}
	if _, ok := FindFirst(slots, l.Target()); !ok {
		return false
	}
	l.status = StatusWon
	l.elapsed = TimeLimit - l.remaining
	return true
}

// Controller creates levels and owns the countdown that drives the current
// one.
type Controller struct {
	rng     *rand.Rand
	current *Level
	clock   Countdown
}

// NewController creates a controller drawing secrets from rng.
func NewController(rng *rand.Rand) *Controller {
	return &Controller{rng: rng}
}

// Current returns the active level, or nil before the first StartLevel.
func (c *Controller) Current() *Level {
	return c.current
}

// Clock returns the countdown driving the active level.
func (c *Controller) Clock() *Countdown {
	return &c.clock
}

// StartLevel replaces the current level with a fresh attempt at level n.
// The previous countdown is stopped before the new one starts.
func (c *Controller) StartLevel(n int) (*Level, error) {
	rule := GetRule(n)
	if rule == nil {
		return nil, fmt.Errorf("%w: %d", ErrNoSuchLevel, n)
	}

	secret := make(Pattern, rule.SecretLen)
	for i := range secret {
		secret[i] = c.rng.Intn(10)
	}

	c.clock.stop()
	c.current = newLevel(*rule, secret)
	c.clock.start()
	return c.current, nil
}

// Advance starts the level after the current one.
func (c *Controller) Advance() (*Level, error) {
	if c.current == nil {
		return c.StartLevel(1)
	}
	if c.current.Number() >= MaxLevel {
		return nil, ErrNoNextLevel
	}
	return c.StartLevel(c.current.Number() + 1)
}

// Tick forwards one second to the current level and stops the countdown
// when the level times out. stopped is true only on that tick. With the
// clock stopped it reports the level's status unchanged.
func (c *Controller) Tick() (status Status, stopped bool) {
	if c.current == nil {
		return StatusRunning, false
	}
	if !c.clock.Running() {
		return c.current.Status(), false
	}
	status = c.current.Tick()
	if status.Terminal() {
		stopped = c.clock.stop()
	}
	return status, stopped
}

// CheckWin runs the win check on the current level and stops the countdown
// on the winning call.
func (c *Controller) CheckWin(slots [Capacity]Slot) bool {
	if c.current == nil || !c.current.CheckWin(slots) {
		return false
	}
	c.clock.stop()
	return true
}
