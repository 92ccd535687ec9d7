package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors for truth verification.
var (
	// ErrFalse matches every truth failure.
	ErrFalse = errors.New("grid: false grid")

	// ErrDoesNotEndInRounds marks a grid whose last row is not its seed.
	ErrDoesNotEndInRounds = errors.New("grid: does not end in rounds")

	// ErrRepeatedChange marks a row repeated more often than the extents allow.
	ErrRepeatedChange = errors.New("grid: repeated change")
)

// FalseError describes why a grid is not true.
type FalseError struct {
	// Kind is ErrDoesNotEndInRounds or ErrRepeatedChange.
	Kind error
	// Row is the offending row: the final row, or the repeated one.
	Row string
}

// Error renders the message shown to users.
func (e *FalseError) Error() string {
	switch e.Kind {
	case ErrDoesNotEndInRounds:
		return fmt.Sprintf("Does not end in rounds. (Last change %s.)", e.Row)
	case ErrRepeatedChange:
		return "Repeated change found: " + e.Row
	default:
		return "False grid: " + e.Row
	}
}

// Is matches ErrFalse and the concrete kind.
func (e *FalseError) Is(target error) bool {
	return target == ErrFalse || target == e.Kind
}

// Unwrap exposes the kind.
func (e *FalseError) Unwrap() error { return e.Kind }
