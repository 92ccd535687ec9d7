package notation

import "errors"

// ErrInvalidPlaceNotation is returned when a place-notation string is malformed.
var ErrInvalidPlaceNotation = errors.New("notation: invalid place notation")

// Cross is the token for "all change".
const Cross = ""

// Prefixes selecting symmetric or non-symmetric expansion.
const (
	Symmetric    = '&'
	NonSymmetric = '+'
)

// Notation is an ordered sequence of place tokens; Cross marks an all-change.
type Notation []string
