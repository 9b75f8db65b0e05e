package heist

// Severity grades a feedback message for display.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityOK
	SeverityWarn
	SeverityErr
)

// String returns the short severity name used in logs.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityOK:
		return "ok"
	case SeverityWarn:
		return "warn"
	case SeverityErr:
		return "err"
	default:
		return "unknown"
	}
}

// EventKind identifies a state change reported by a Session.
type EventKind int

const (
	EventLevelStarted EventKind = iota
	EventInserted
	EventDeleted
	EventCleared
	EventRejected // an intent failed validation; the state is unchanged
	EventSearchStarted
	EventPatternFound
	EventPatternNotFound
	EventSearchCancelled
	EventLevelWon
	EventTimedOut
	EventHint
)

// String returns a stable name for the kind.
func (k EventKind) String() string {
	switch k {
	case EventLevelStarted:
		return "level_started"
	case EventInserted:
		return "inserted"
	case EventDeleted:
		return "deleted"
	case EventCleared:
		return "cleared"
	case EventRejected:
		return "rejected"
	case EventSearchStarted:
		return "search_started"
	case EventPatternFound:
		return "pattern_found"
	case EventPatternNotFound:
		return "pattern_not_found"
	case EventSearchCancelled:
		return "search_cancelled"
	case EventLevelWon:
		return "level_won"
	case EventTimedOut:
		return "timed_out"
	case EventHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Event is one piece of feedback for the presentation layer.
type Event struct {
	Kind     EventKind
	Severity Severity
	Message  string
	Level    int // level number the event belongs to
}

// Listener receives every event a Session emits, in order.
type Listener func(Event)

// Op identifies the session operation that produced a Result.
type Op int

const (
	OpInsertValue Op = iota
	OpDeleteValue
	OpClearArray
	OpSearch
	OpStepSearch
	OpCancelSearch
	OpTickClock
	OpStartLevel
	OpRestartLevel
	OpAdvanceLevel
	OpToggleHint
)

// String returns the operation name.
func (o Op) String() string {
	switch o {
	case OpInsertValue:
		return "insert"
	case OpDeleteValue:
		return "delete"
	case OpClearArray:
		return "clear"
	case OpSearch:
		return "search"
	case OpStepSearch:
		return "step_search"
	case OpCancelSearch:
		return "cancel_search"
	case OpTickClock:
		return "tick"
	case OpStartLevel:
		return "start_level"
	case OpRestartLevel:
		return "restart_level"
	case OpAdvanceLevel:
		return "advance_level"
	case OpToggleHint:
		return "toggle_hint"
	default:
		return "unknown"
	}
}

// Result is what a Session operation reports back.
type Result struct {
	Op     Op
	Err    error   // nil on success; one of the package's sentinel errors otherwise
	Events []Event // emitted in order; may be empty (e.g. a quiet tick)

	Shift *ShiftDescriptor // set by successful insert/delete
	Step  *SearchStep      // set by StepSearch when a window was compared

	// Found is the first match index for Search (computed eagerly) and for
	// the StepSearch call that finds it; -1 otherwise.
	Found int
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Last returns the final event, which is the message to show the player.
func (r Result) Last() (Event, bool) {
	if len(r.Events) == 0 {
		return Event{}, false
	}
	return r.Events[len(r.Events)-1], true
}

// Has reports whether the result contains an event of kind k.
func (r Result) Has(k EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == k {
			return true
		}
	}
	return false
}
