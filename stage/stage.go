package stage

import (
	"fmt"
	"strconv"
	"strings"
)

// New returns the Stage for the given number of bells.
func New(bells int) (Stage, error) {
	if bells < MinBells || bells > MaxBells {
		return 0, fmt.Errorf("%w: %d", ErrInvalidStage, bells)
	}

	return Stage(bells), nil
}

// Parse reads a decimal bell count such as "6".
func Parse(s string) (Stage, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStage, s)
	}

	return New(n)
}

// Valid reports whether s is one of the supported stages.
func (s Stage) Valid() bool { return int(s) >= MinBells && int(s) <= MaxBells }

// Bells returns the number of bells.
func (s Stage) Bells() int { return int(s) }

// Label returns the label of the heaviest bell (e.g. '6' on Minor, 'T' on Maximus).
func (s Stage) Label() byte { return LabelAt(int(s)) }

// Rounds returns the identity row for this stage.
func (s Stage) Rounds() string { return Rounds(int(s)) }

// Extent returns the number of distinct rows on this stage (N!).
func (s Stage) Extent() int {
	if !s.Valid() {
		return 0
	}

	return extents[s]
}

// String returns the traditional stage name ("Minor", "Royal", ...).
func (s Stage) String() string {
	if !s.Valid() {
		return strconv.Itoa(int(s)) + " In"
	}

	return names[s]
}

// Rounds returns the first n labels in order.
func Rounds(n int) string {
	if n <= 0 {
		return ""
	}
	if n > len(Labels) {
		n = len(Labels)
	}

	return Labels[:n]
}

// IsLabel reports whether c belongs to the label alphabet.
func IsLabel(c byte) bool { return PositionOf(c) > 0 }

// PositionOf returns the 1-based position written with label c, or 0 when c
// is not a label.
func PositionOf(c byte) int {
	return strings.IndexByte(Labels, c) + 1
}

// LabelAt returns the label written for 1-based position p.
// It panics if p is outside the label alphabet.
func LabelAt(p int) byte { return Labels[p-1] }
