package composition

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/changering/method"
)

// Sentinel errors for composition definitions.
var (
	// ErrDefinition matches every DefinitionError.
	ErrDefinition = errors.New("composition: invalid definition")

	// ErrNoMethod is returned by Prove when no first method was set.
	ErrNoMethod = errors.New("composition: no method defined")
)

// DefinitionError reports a composition that cannot be rung as written.
type DefinitionError struct {
	Msg string
}

// Error returns the message shown to users.
func (e *DefinitionError) Error() string { return e.Msg }

// Is matches ErrDefinition.
func (e *DefinitionError) Is(target error) bool { return target == ErrDefinition }

func definitionf(format string, args ...any) error {
	return &DefinitionError{Msg: fmt.Sprintf(format, args...)}
}

// Shape selects how rows are interpreted.
type Shape int

// Row shapes.
const (
	// Shorthand rows are a call and a plain lead count.
	Shorthand Shape = iota
	// CallingPositions rows are table cells under calling-position headers.
	CallingPositions
	// LeadCounts rows are table cells under lead-number headers.
	LeadCounts
)

var shapeNames = [...]string{"shorthand", "calling positions", "lead counts"}

// String returns a readable shape name.
func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}

	return shapeNames[s]
}

// IsTable reports whether rows are table rows.
func (s Shape) IsTable() bool { return s != Shorthand }

// CourseEnd is a row recorded at the end of a course. Complete is false when
// the course was cut short and the row was rung on theoretically.
type CourseEnd struct {
	Row      string
	Complete bool
}

// String parenthesises incomplete course ends.
func (c CourseEnd) String() string {
	if c.Complete {
		return c.Row
	}

	return "(" + c.Row + ")"
}

// RowKind distinguishes the table-row variants.
type RowKind int

// Table row variants.
const (
	// CallsRow holds one cell per header.
	CallsRow RowKind = iota
	// PartRow repeats the rows tagged with a part label.
	PartRow
	// FootnoteRow is expanded from a footnote such as "a = 2,5,s7".
	FootnoteRow
)

// Row is one table row. Empty cells are "".
type Row struct {
	Kind  RowKind
	Calls []string
	// Methods holds one method per lead for spliced rows; a single method
	// otherwise.
	Methods []*method.Method
	// NumLeads is the lead count written after the calls, or -1.
	NumLeads int
	// Labels tags the row as belonging to parts ("A", "B").
	Labels           []string
	DisplayCourseEnd bool
	// Expanded marks rows split off a multi-call cell.
	Expanded bool

	// Part and Repetitions describe a PartRow ("2A").
	Part        string
	Repetitions int
	// Footnote names the footnote of a FootnoteRow.
	Footnote string
}

// NewCallsRow returns a calls row with no lead count that displays its
// course end.
func NewCallsRow(calls []string, methods ...*method.Method) Row {
	return Row{Kind: CallsRow, Calls: calls, Methods: methods, NumLeads: -1, DisplayCourseEnd: true}
}

// NewPartRow returns a row repeating part label reps times.
func NewPartRow(label string, reps int, methods ...*method.Method) Row {
	return Row{Kind: PartRow, Calls: []string{""}, Methods: methods, NumLeads: -1, DisplayCourseEnd: true, Part: label, Repetitions: reps}
}

// NewFootnoteRow returns a row expanded from footnote label.
func NewFootnoteRow(label string, methods ...*method.Method) Row {
	return Row{Kind: FootnoteRow, Calls: []string{""}, Methods: methods, NumLeads: -1, DisplayCourseEnd: true, Footnote: label}
}

func (r Row) width() int {
	if r.Kind != CallsRow {
		return 1
	}

	return len(r.Calls)
}

func (r Row) cell(i int) string {
	if i < 0 || i >= len(r.Calls) {
		return ""
	}

	return r.Calls[i]
}

func (r Row) inPart(label string) bool {
	for _, l := range r.Labels {
		if l == label {
			return true
		}
	}

	return false
}

func (r Row) clone() Row {
	out := r
	out.Calls = append([]string(nil), r.Calls...)
	out.Methods = append([]*method.Method(nil), r.Methods...)
	out.Labels = append([]string(nil), r.Labels...)

	return out
}

// insertColumn duplicates the cell at idx.
func (r Row) insertColumn(idx int) Row {
	out := r.clone()
	if r.Kind != CallsRow || idx < 0 || idx >= len(r.Calls) {
		return out
	}
	calls := make([]string, 0, len(r.Calls)+1)
	calls = append(calls, r.Calls[:idx+1]...)
	calls = append(calls, r.Calls[idx:]...)
	out.Calls = calls

	return out
}

// String renders the row's calls the way they are written in a table, each
// followed by a tab. The course end, lead count and part labels follow.
func (r Row) String() string {
	switch r.Kind {
	case PartRow:
		if r.Repetitions > 1 {
			return strconv.Itoa(r.Repetitions) + r.Part + "\t"
		}

		return r.Part + "\t"
	case FootnoteRow:
		return r.Footnote + "\t"
	}

	var b strings.Builder
	for _, c := range r.Calls {
		b.WriteString(c)
		b.WriteByte('\t')
	}

	return b.String()
}
