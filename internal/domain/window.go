package domain

import "time"

// WindowBound names which side of a trip's date window a timestamp violated.
type WindowBound string

const (
	WindowBeforeStart WindowBound = "before-start"
	WindowAfterEnd    WindowBound = "after-end"
)

// WindowError reports a timestamp outside the [start, end] window.
type WindowError struct {
	Bound WindowBound
}

func (e *WindowError) Error() string {
	switch e.Bound {
	case WindowBeforeStart:
		return "timestamp is before the window start"
	case WindowAfterEnd:
		return "timestamp is after the window end"
	default:
		return "timestamp is outside the window"
	}
}

// ValidateWithinWindow checks that candidate lies within [start, end].
// Both bounds are inclusive: a candidate equal to either bound is valid.
func ValidateWithinWindow(start, end, candidate time.Time) error {
	if candidate.Before(start) {
		return &WindowError{Bound: WindowBeforeStart}
	}
	if candidate.After(end) {
		return &WindowError{Bound: WindowAfterEnd}
	}
	return nil
}
