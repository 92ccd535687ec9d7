package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/changering/composition"
)

// Diagnostic is a discrepancy found while rewriting a file.
type Diagnostic struct {
	// Composition is 1-based.
	Composition int
	Line        int
	Msg         string
}

// String returns the message with its location.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s Composition Number: %d, Line Number: %d", d.Msg, d.Composition, d.Line)
}

type rewriter struct {
	entries []Entry
	next    int

	cur     *composition.Composition
	valid   bool
	row     int
	changes int
	headers bool
	line    Line
	lastRow int
	out     []byte
	pending strings.Builder
	diags   []Diagnostic
}

// Rewrite reproduces the parsed file with the results of proving entries,
// which must come from Build on the same events. Missing change counts,
// first changes and course ends are filled in, rows a proof added are
// appended, and written values that disagree are reported. A composition
// that is false, badly defined or disagrees with its proof keeps its
// original text from the point of disagreement.
func Rewrite(events []Event, entries []Entry) (string, []Diagnostic) {
	w := &rewriter{entries: entries}
	for _, ev := range events {
		src := ev.Source()
		if src.Number > 0 {
			w.lineStarted(src)
		}
		switch e := ev.(type) {
		case ChangesFound:
			w.changes = e.Changes
		case Started:
			w.started()
		case SimpleHeader:
			w.simpleHeader(e)
		case TableHeader:
			w.tableHeader(e)
		case SimpleRow:
			w.simpleRow(e)
		case TableRow:
			w.tableRow(e)
		case ShorthandRow:
			w.shorthandRow()
		case Finished:
			w.finished()
		}
		if src.Number > 0 {
			w.lineFinished()
		}
	}
	w.out = append(w.out, w.pending.String()...)

	return strings.TrimSpace(string(w.out)), w.diags
}

func (w *rewriter) lineStarted(l Line) {
	w.line = l
	w.out = append(w.out, w.pending.String()...)
	w.pending.Reset()
}

// lineFinished copies lines nothing was written for.
func (w *rewriter) lineFinished() {
	if w.pending.Len() == 0 {
		w.out = append(w.out, w.line.Text...)
		w.out = append(w.out, '\n')
	}
}

func (w *rewriter) report(format string, args ...any) {
	w.diags = append(w.diags, Diagnostic{Composition: w.next, Line: w.line.Number, Msg: fmt.Sprintf(format, args...)})
}

func (w *rewriter) started() {
	w.cur, w.valid = nil, false
	if w.next < len(w.entries) {
		e := w.entries[w.next]
		w.cur = e.Composition
		w.valid = e.Err == nil && w.cur != nil && w.cur.IsTrue() == nil
	}
	w.next++
	w.headers = false

	if w.cur == nil {
		return
	}
	calculated := w.cur.Changes()
	switch {
	case w.changes > 0:
		if w.valid && w.changes != calculated {
			w.report("Incorrect number of changes found: %d calculated, %d found.", calculated, w.changes)
			w.valid = false
		}
	case w.valid:
		w.pending.WriteString(strconv.Itoa(calculated) + "\n")
	}
}

func (w *rewriter) checkFirstChange(found string) {
	if found == "" {
		w.pending.WriteString("\t" + w.cur.FirstChange())
		return
	}
	if !composition.DoCourseEndsMatch(found, w.cur.FirstChange()) {
		w.report("Incorrect first change found: %s calculated, %s found.", w.cur.FirstChange(), found)
	}
}

func (w *rewriter) simpleHeader(e SimpleHeader) {
	if w.valid {
		w.checkFirstChange(e.FirstChange)
	}
	if !strings.HasPrefix(e.Text, "\t") {
		w.pending.WriteByte('\t')
	}
	w.pending.WriteString(e.Text + "\n")
	w.headers = true
}

func (w *rewriter) tableHeader(e TableHeader) {
	if w.valid {
		w.pending.WriteString(strings.ToUpper(e.Text))
		w.checkFirstChange(e.FirstChange)
	} else {
		w.pending.WriteString(e.Text)
	}
	w.pending.WriteByte('\n')
	w.headers = true
}

// courseEnd returns the calculated course end of row and whether the
// written one, if any, agrees with it.
func (w *rewriter) courseEnd(row int, written string, complete bool) (composition.CourseEnd, bool) {
	var calc composition.CourseEnd
	if ces := w.cur.CourseEnds(); row < len(ces) {
		calc = ces[row]
	}
	if written == "" {
		return calc, true
	}
	if !composition.DoCourseEndsMatch(calc.Row, written) {
		w.report("Incorrect course end found: %s calculated, %s found.", calc.Row, written)
		return calc, false
	}
	if complete != calc.Complete {
		w.report("Unexpected incomplete course end found: %s calculated, %s found.", completeness(calc.Complete), completeness(complete))
		return calc, false
	}

	return calc, true
}

func completeness(complete bool) string {
	if complete {
		return "Complete"
	}

	return "Incomplete"
}

func (w *rewriter) rowHeader() {
	if !w.headers {
		w.pending.WriteString("\t" + w.cur.FirstChange() + "\n")
		w.headers = true
	}
}

func (w *rewriter) simpleRow(e SimpleRow) {
	w.row = e.Row
	if !w.valid {
		w.pending.WriteString(e.Text)
	} else {
		w.rowHeader()
		calc, ok := w.courseEnd(e.Row, e.CourseEnd, e.Complete)
		w.valid = ok
		switch {
		case e.CourseEnd != "":
			w.pending.WriteString(e.Text)
		case w.cur.IsSpliced():
			w.pending.WriteString(e.Call + "\t" + calc.String() + "\t")
			if e.Label != "" {
				w.pending.WriteString(wrap(e.Label, !calc.Complete))
			}
		default:
			w.pending.WriteString(e.Call + "\t" + calc.String() + "\t" + strconv.Itoa(e.Count))
		}
	}
	w.pending.WriteByte('\n')
	w.lastRow = len(w.out) + w.pending.Len()
}

func wrap(s string, parens bool) string {
	if parens {
		return "(" + s + ")"
	}

	return s
}

func (w *rewriter) tableRow(e TableRow) {
	w.row = e.Row
	if !w.valid {
		w.pending.WriteString(e.Text)
	} else {
		w.rowHeader()
		calc, ok := w.courseEnd(e.Row, e.CourseEnd, e.Complete)
		w.valid = ok
		if e.CourseEnd != "" {
			w.pending.WriteString(e.Text)
		} else {
			w.writeTableRow(e, calc)
		}
	}
	w.pending.WriteByte('\n')
	w.lastRow = len(w.out) + w.pending.Len()
}

func (w *rewriter) writeTableRow(e TableRow, calc composition.CourseEnd) {
	b := &w.pending
	if e.Ref != "" {
		b.WriteString(e.Ref)
		b.WriteString(strings.Repeat("\t", max(len(w.cur.Headers()), 1)))
	} else {
		for _, call := range e.Calls {
			b.WriteString(call + "\t")
		}
	}
	if len(e.Labels) > 0 {
		for i, l := range e.Labels {
			b.WriteString(wrap(l, !calc.Complete && i == len(e.Labels)-1))
		}
		b.WriteByte('\t')
	}
	b.WriteString(calc.String())
	if e.NumLeads != -1 {
		b.WriteString("\t[" + strconv.Itoa(e.NumLeads) + "]")
	}
	for _, l := range e.PartLabels {
		b.WriteString("\t:" + l)
	}
}

func (w *rewriter) shorthandRow() {
	if w.cur == nil {
		w.pending.WriteString(w.line.Text + "\n")
		return
	}
	if w.valid {
		if !w.headers {
			w.pending.WriteString(w.cur.HeaderString())
			w.headers = true
		}
		for i := 0; i < w.cur.NumRows(); i++ {
			w.pending.WriteString(w.cur.RowString(i))
		}
	} else {
		w.pending.WriteString(w.line.Text + "\n")
	}
	w.row = w.cur.NumRows() - 1
	w.lastRow = len(w.out) + w.pending.Len()
}

// finished flushes the composition and inserts the rows its proof added
// after the last row of the file.
func (w *rewriter) finished() {
	w.out = append(w.out, w.pending.String()...)
	w.pending.Reset()

	if w.cur != nil && w.valid && w.row+1 < w.cur.NumRows() {
		var added strings.Builder
		for i := w.row + 1; i < w.cur.NumRows(); i++ {
			added.WriteString(w.cur.RowString(i))
		}
		tail := append([]byte(added.String()), w.out[w.lastRow:]...)
		w.out = append(w.out[:w.lastRow], tail...)
	}

	w.pending.WriteByte('\n')
	w.changes = 0
}
