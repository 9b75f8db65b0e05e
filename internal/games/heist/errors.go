package heist

import "errors"

// Domain errors. All of them are recoverable and surface to the player as
// feedback; wrap them with fmt.Errorf("%w: ...") to add detail.
var (
	ErrIndexOutOfBounds = errors.New("index out of bounds")
	ErrValueOutOfRange  = errors.New("value out of range")
	ErrArrayFull        = errors.New("array full")
	ErrEmptySlot        = errors.New("empty slot")
	ErrInvalidPattern   = errors.New("invalid pattern")
)

// Level lifecycle errors.
var (
	ErrNoSuchLevel   = errors.New("no such level")
	ErrNoNextLevel   = errors.New("no next level")
	ErrCannotAdvance = errors.New("level not complete")
)

// SeverityOf maps an error returned by the engine to a feedback severity.
// Bounds and capacity violations are errors; bad input is a warning.
func SeverityOf(err error) Severity {
	switch {
	case err == nil:
		return SeverityOK
	case errors.Is(err, ErrIndexOutOfBounds),
		errors.Is(err, ErrArrayFull),
		errors.Is(err, ErrNoSuchLevel):
		return SeverityErr
	default:
		return SeverityWarn
	}
}
