package parser

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/changering/method"
)

// Sentinel errors for composition files. Each is returned wrapped in *Error.
var (
	// ErrUnknownMethod is returned for a method line that names no library method.
	ErrUnknownMethod = errors.New("parser: unrecognised method reference")

	// ErrNoMethods is returned when a composition precedes every method line.
	ErrNoMethods = errors.New("parser: no method definitions found")

	// ErrBlankLine is returned for a blank line where a header is expected.
	ErrBlankLine = errors.New("parser: unexpected blank line in composition")

	// ErrNoRows is returned when a composition ends before its first row.
	ErrNoRows = errors.New("parser: no rows found in composition")

	// ErrUndefinedLabel is returned for a method label with no method line.
	ErrUndefinedLabel = errors.New("parser: undefined method label")

	// ErrLeadCount is returned when the lead-count column holds neither a
	// number nor a method label.
	ErrLeadCount = errors.New("parser: the plain lead count column contains an unexpected character")

	// ErrCalls is returned for a table row with more call cells than headers.
	ErrCalls = errors.New("parser: more calls than headers in row")

	// ErrFootnote is returned for a line after the rows that is not a footnote.
	ErrFootnote = errors.New("parser: unrecognised footnote")
)

// Error locates a failure in the source file.
type Error struct {
	Line int
	Text string
	Err  error
}

// Error returns "line N: cause: text".
func (e *Error) Error() string {
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

// Unwrap returns the cause.
func (e *Error) Unwrap() error { return e.Err }

// Form is the row shape of a composition, fixed by its first line.
type Form int

// Composition forms.
const (
	// Simple compositions have one call column, a course end and a lead
	// count or method label.
	Simple Form = iota
	// LeadCountTable headers are lead numbers or twin-bob positions.
	LeadCountTable
	// CallingPositionTable headers are calling positions.
	CallingPositionTable
	// ShortHand is a single "$" line.
	ShortHand
)

var formNames = [...]string{"simple", "lead count table", "calling position table", "shorthand"}

// String returns a readable form name.
func (f Form) String() string {
	if f < 0 || int(f) >= len(formNames) {
		return "unknown"
	}

	return formNames[f]
}

// IsTable reports whether rows are table rows.
func (f Form) IsTable() bool { return f == LeadCountTable || f == CallingPositionTable }

// Line is a source line. Events that do not consume a line carry the zero
// Line.
type Line struct {
	Number int
	Text   string
}

// Source returns the line itself.
func (l Line) Source() Line { return l }

// Event is one step of a parsed file. Consumers switch on the concrete type.
type Event interface {
	Source() Line
}

// Passthrough is a comment, or a blank line between compositions.
type Passthrough struct {
	Line
}

// MethodFound declares a method, under Label when the file is spliced.
type MethodFound struct {
	Line
	Label  string
	Method *method.Method
}

// ChangesFound is the change count written above a composition.
type ChangesFound struct {
	Line
	Changes int
}

// Started opens a composition. Changes is the count from a preceding
// ChangesFound, or 0.
type Started struct {
	Line
	Form    Form
	Changes int
}

// SimpleHeader is the header of a simple composition.
type SimpleHeader struct {
	Line
	// FirstChange is "" when the header names only a method.
	FirstChange string
	// Method is the first method: the labelled one, or the last declared.
	Method *method.Method
}

// TableHeader is the header line of a table.
type TableHeader struct {
	Line
	Headers []string
	// FirstChange is the trailing column when it reads as a row, else "".
	FirstChange string
}

// SimpleRow is one row of a simple composition.
type SimpleRow struct {
	Line
	Row  int
	Call string
	// Label is set when the row changes method.
	Label  string
	Method *method.Method
	// CourseEnd is "" when the row has none.
	CourseEnd string
	Complete  bool
	Count     int
}

// TableRow is one row of a table.
type TableRow struct {
	Line
	Row int
	// Calls has one cell per header. It is nil for part and footnote
	// references.
	Calls []string
	// Ref is the reference cell as written ("2A", "a"), or "".
	Ref string
	// Part and Repetitions decode a part reference.
	Part        string
	Repetitions int
	// Footnote names a footnote reference.
	Footnote string
	// Labels and Methods are the method changes written in the row; Methods
	// holds the last declared method when the row names none.
	Labels    []string
	Methods   []*method.Method
	CourseEnd string
	Complete  bool
	// PartLabels tags the row for part references.
	PartLabels []string
	// NumLeads is the bracketed lead count, or -1.
	NumLeads int
}

// ShorthandRow is the text after "$".
type ShorthandRow struct {
	Line
	Text string
}

// Footnote is a footnote line.
type Footnote struct {
	Line
}

// Finished closes the composition opened by the last Started.
type Finished struct {
	Line
}
