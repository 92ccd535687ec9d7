package method

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for method construction.
var (
	// ErrInvalidPlaceNotation reports malformed place or lead-end notation.
	ErrInvalidPlaceNotation = errors.New("method: invalid place notation")

	// ErrSegmentMismatch reports lead-end segments that do not line up with
	// the place-notation segments.
	ErrSegmentMismatch = errors.New("method: segment count mismatch")

	// ErrUnknownCall is returned by ParseCall for an unrecognised call code.
	ErrUnknownCall = errors.New("method: unknown call")

	// ErrUnknownType is returned by ParseType for an unrecognised type code.
	ErrUnknownType = errors.New("method: unknown method type")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("method: invalid option supplied")
)

// Call is the kind of lead: plain, or one of the calls.
type Call int

// Lead kinds.
const (
	Plain Call = iota
	Bob
	TwinBob
	Single
)

var callCodes = [...]string{Plain: "", Bob: "-", TwinBob: "x", Single: "s"}

// ParseCall maps a call code to its Call. "" and "p" are plain.
func ParseCall(code string) (Call, error) {
	switch code {
	case "", "p":
		return Plain, nil
	case "-":
		return Bob, nil
	case "x":
		return TwinBob, nil
	case "s":
		return Single, nil
	}

	return Plain, fmt.Errorf("%w: %q", ErrUnknownCall, code)
}

// String returns the call code ("" for plain).
func (c Call) String() string { return callCodes[c] }

// Type is the class of a method.
type Type int

// Method classes, in ordering precedence.
const (
	Alliance Type = iota
	LittleAlliance
	Delight
	Hybrid
	Differential
	Principle
	BobMethod
	Place
	Surprise
	LittleSurprise
	SlowCourse
	TrebleBob
	TreblePlace
)

type typeInfo struct {
	code      string
	name      string
	displayed bool
}

var types = [...]typeInfo{
	Alliance:       {"A", "Alliance", true},
	LittleAlliance: {"LA", "Little Alliance", true},
	Delight:        {"D", "Delight", true},
	Hybrid:         {"H", "Hybrid", true},
	Differential:   {"I", "Differential", true},
	Principle:      {"O", "Principle", false},
	BobMethod:      {"P", "Bob", false},
	Place:          {"L", "Place", true},
	Surprise:       {"S", "Surprise", true},
	LittleSurprise: {"LS", "Little Surprise", true},
	SlowCourse:     {"SC", "Slow Course", true},
	TrebleBob:      {"T", "Treble Bob", true},
	TreblePlace:    {"TP", "Treble Place", true},
}

// ParseType reads a type code. Two-letter codes (TP, LS, LA, SC) are matched
// before one-letter codes, so "SC" is Slow Course and "S" Surprise.
func ParseType(code string) (Type, error) {
	if len(code) >= 2 {
		switch code[:2] {
		case "TP":
			return TreblePlace, nil
		case "LS":
			return LittleSurprise, nil
		case "LA":
			return LittleAlliance, nil
		case "SC":
			return SlowCourse, nil
		}
	}
	if code != "" {
		switch code[0] {
		case 'A':
			return Alliance, nil
		case 'D':
			return Delight, nil
		case 'H':
			return Hybrid, nil
		case 'I':
			return Differential, nil
		case 'O':
			return Principle, nil
		case 'P':
			return BobMethod, nil
		case 'L':
			return Place, nil
		case 'S':
			return Surprise, nil
		case 'T':
			return TrebleBob, nil
		}
	}

	return BobMethod, fmt.Errorf("%w: %q", ErrUnknownType, code)
}

// TypeByName finds a type by its display name ("Treble Bob"), ignoring case.
func TypeByName(name string) (Type, bool) {
	for t, info := range types {
		if strings.EqualFold(info.name, strings.TrimSpace(name)) {
			return Type(t), true
		}
	}

	return 0, false
}

// Code returns the short code ("S", "TP", ...).
func (t Type) Code() string { return types[t].code }

// String returns the type name ("Surprise").
func (t Type) String() string { return types[t].name }

// Displayed reports whether the type name is part of a method's full title.
// Principles and Bob methods are written without it.
func (t Type) Displayed() bool { return types[t].displayed }

// Segment is one comma-separated part of a method's notation.
type Segment struct {
	Label         string // "" when unlabelled
	PlaceNotation string
	PlainLeadEnd  string
	BobLeadEnd    string // "" when the method has no bob
	SingleLeadEnd string // "" when the method has no single
}
