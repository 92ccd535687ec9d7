package composition

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/notation"
	"github.com/katalvlaran/changering/stage"
)

// maxPartNesting bounds how deeply part references may refer to rows that
// are themselves part references.
const maxPartNesting = 16

// leadTransitions maps, per segment, the position of each bell at the start
// of a lead to its position at the end.
type leadTransitions struct {
	plain, bob, single []map[byte]byte
}

func leadTransition(m *method.Method, n notation.Notation) map[byte]byte {
	g := grid.New(m.Stage())
	g.ApplyAll(n)

	return g.Transitions()
}

// transitions computes the lead transitions of every method in rows.
// Overridden calls replace the method's own call in every segment.
func (c *Composition) transitions(methods []*method.Method) (map[*method.Method]*leadTransitions, error) {
	out := map[*method.Method]*leadTransitions{}
	for _, m := range methods {
		if m == nil {
			return nil, ErrNoMethod
		}
		if _, ok := out[m]; ok {
			continue
		}
		t := &leadTransitions{}
		for seg := 0; seg < m.NumSegments(); seg++ {
			t.plain = append(t.plain, leadTransition(m, m.LeadNotation(method.Plain, seg)))
			for _, call := range []method.Call{method.Bob, method.Single} {
				lead, err := c.callLead(m, call, seg)
				if err != nil {
					return nil, err
				}
				if lead == nil {
					continue
				}
				if call == method.Bob {
					t.bob = append(t.bob, leadTransition(m, lead))
				} else {
					t.single = append(t.single, leadTransition(m, lead))
				}
			}
		}
		out[m] = t
	}

	return out, nil
}

// callLead returns the lead rung for call in segment seg, honouring
// overrides, or nil when the method has no such call.
func (c *Composition) callLead(m *method.Method, call method.Call, seg int) (notation.Notation, error) {
	if call == method.TwinBob {
		call = method.Bob
	}
	if o, ok := c.overrides[call]; ok && call != method.Plain {
		n, err := m.CreateLeadNotation(o)
		if err != nil {
			return nil, definitionf("Invalid call override %q: %v", o, err)
		}

		return n, nil
	}

	return m.LeadNotation(call, seg), nil
}

func lookup(t []map[byte]byte, seg int, pos byte) (byte, bool) {
	if seg < 0 || seg >= len(t) {
		return 0, false
	}
	p, ok := t[seg][pos]

	return p, ok
}

// partRows copies the rows once per part with substitutions applied. Only
// the first part displays course ends.
func (c *Composition) partRows() []Row {
	out := make([]Row, 0, len(c.rows)*len(c.parts))
	for part := 1; part <= len(c.parts); part++ {
		for _, r := range c.rows {
			nr := r.clone()
			nr.Calls = make([]string, r.width())
			for k := range nr.Calls {
				if cell := r.cell(k); cell != "" {
					nr.Calls[k] = tableCell.Replace(c.resolve(cell, part))
				}
			}
			nr.DisplayCourseEnd = part == 1 && r.DisplayCourseEnd
			out = append(out, nr)
		}
	}

	return out
}

// expandReferences turns footnote rows into calls rows, inserting any lead
// numbers the footnotes name as extra numeric headers. It returns the
// working headers; the composition's own headers are left as written.
func (c *Composition) expandReferences(rows []Row) ([]Row, []string, error) {
	refs := map[string][]string{}
	for _, f := range c.footnotes {
		if m := referencePattern.FindStringSubmatch(f); m != nil {
			refs[m[1]] = strings.Split(m[2], ",")
		}
	}

	headers := append([]string(nil), c.headers...)
	for _, r := range rows {
		if r.Kind != FootnoteRow {
			continue
		}
		for _, call := range refs[r.Footnote] {
			lead := strings.TrimPrefix(call, "s")
			if indexOf(headers, lead) >= 0 {
				continue
			}
			n, err := strconv.Atoi(lead)
			if err != nil {
				return nil, nil, definitionf("Invalid lead number in footnote %q: %s", r.Footnote, call)
			}
			at := len(headers)
			for j, h := range headers {
				if v, err := strconv.Atoi(h); err == nil && v > n {
					at = j
					break
				}
			}
			headers = append(headers[:at], append([]string{lead}, headers[at:]...)...)
		}
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		calls := make([]string, len(headers))
		if r.Kind != FootnoteRow {
			for j, cell := range r.Calls {
				if cell == "" || j >= len(c.headers) {
					continue
				}
				calls[indexOf(headers, c.headers[j])] = cell
			}
			nr := r.clone()
			nr.Calls = calls
			out = append(out, nr)

			continue
		}

		list, ok := refs[r.Footnote]
		if !ok {
			return nil, nil, definitionf("No footnote reference found for part %q", r.Footnote)
		}
		last := ""
		for _, call := range list {
			if lead, ok := strings.CutPrefix(call, "s"); ok {
				calls[indexOf(headers, lead)] = "s"
			} else {
				calls[indexOf(headers, call)] = "-"
			}
			last = call
		}
		nr := r.clone()
		nr.Kind, nr.Calls, nr.Footnote = CallsRow, calls, ""
		if nr.NumLeads <= -1 {
			n, err := strconv.Atoi(strings.TrimPrefix(last, "s"))
			if err != nil {
				return nil, nil, definitionf("Invalid lead number in footnote %q: %s", r.Footnote, last)
			}
			nr.NumLeads = n
		}
		out = append(out, nr)
	}

	return out, headers, nil
}

// expandParts replaces part rows by copies of the rows tagged with their
// label, as many times as the row asks. Only the first round of expansion
// displays course ends.
func (c *Composition) expandParts(rows []Row) ([]Row, error) {
	cur := rows
	display := true
	for depth := 0; hasPartRows(cur); depth++ {
		if depth >= maxPartNesting {
			return nil, definitionf("Part references are nested too deeply.")
		}
		first := map[string]int{}
		for i, r := range cur {
			for _, l := range r.Labels {
				if _, ok := first[l]; !ok {
					first[l] = i
				}
			}
		}

		next := make([]Row, 0, len(cur))
		for i, r := range cur {
			if r.Kind != PartRow {
				next = append(next, r)
				continue
			}
			start, ok := first[r.Part]
			if !ok {
				return nil, definitionf("No rows found for part %q", r.Part)
			}
			for rep := 0; rep < r.Repetitions; rep++ {
				for k := start; k < len(cur) && cur[k].inPart(r.Part); k++ {
					nr := cur[k].clone()
					nr.Labels, nr.DisplayCourseEnd = nil, false
					next = append(next, nr)
				}
			}
			if len(next) > 0 {
				next[len(next)-1].DisplayCourseEnd = display && i < len(cur)/len(c.parts)
			}
		}
		cur, display = next, false
	}

	return cur, nil
}

func hasPartRows(rows []Row) bool {
	for _, r := range rows {
		if r.Kind == PartRow {
			return true
		}
	}

	return false
}

// expandedRows performs every table expansion in order: parts and
// substitutions, footnote references, part references, then numeric and
// multi-call cells. Each resulting row has at most one call per cell.
func (c *Composition) expandedRows() ([]Row, []string, error) {
	rows, headers, err := c.expandReferences(c.partRows())
	if err != nil {
		return nil, nil, err
	}
	if rows, err = c.expandParts(rows); err != nil {
		return nil, nil, err
	}

	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		width := r.width()
		cur := make([]string, width)
		for j := 0; j < width; j++ {
			call := r.cell(j)
			if call == "" {
				continue
			}
			if n, err := strconv.Atoi(call); err == nil {
				call = strings.Repeat("-", n)
			}
			for k := 0; k < len(call); k++ {
				if k > 0 {
					nr := r.clone()
					nr.Calls, nr.DisplayCourseEnd, nr.Expanded = cur, false, true
					out = append(out, nr)
					cur = make([]string, width)
				}
				cur[j] = call[k : k+1]
			}
		}
		nr := r.clone()
		nr.Calls = cur
		out = append(out, nr)
	}

	return out, headers, nil
}

// CallingPosition returns the position, as a bell label, at which the
// tracked bell is called for header name in m. Amendments are applied
// first. B is found by ringing the call lead from rounds.
func CallingPosition(m *method.Method, name string, call method.Call) (byte, error) {
	name = strings.ToUpper(m.AmendedCallingPosition(name))
	bells := m.Stage().Bells()

	var pos int
	switch {
	case name == "H":
		pos = bells
	case name == "W":
		pos = bells - 1
	case name == "M":
		pos = bells - 2
	case name == "I":
		pos = 2
	case name == "O":
		pos = 3
	case name == "B":
		lead := m.LeadNotation(call, 0)
		if lead == nil {
			return 0, definitionf("Call is undefined: %s", call)
		}
		g := grid.New(m.Stage())
		g.ApplyAll(lead)
		if g.Len() < 2 {
			return 0, definitionf("Unrecognised calling position: %s", name)
		}
		pos = strings.IndexByte(g.Last(), g.Row(g.Len() - 2)[1]) + 1
	case len(name) == 1 && stage.IsLabel(name[0]):
		pos = stage.PositionOf(name[0])
	default:
		return 0, definitionf("Unrecognised calling position: %s", name)
	}
	if pos < 1 || pos > bells {
		return 0, definitionf("Unrecognised calling position: %s", name)
	}

	return stage.LabelAt(pos), nil
}

// addTableRows parses the compact calling-position form, e.g. "WsHH" or
// "2WH". Without headers they are taken from the positions used.
func (c *Composition) addTableRows(shorthand string) error {
	shorthand = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, shorthand)

	if len(c.headers) == 0 {
		var headers []string
		for _, r := range shorthand {
			if isCallChar(byte(r)) {
				continue
			}
			h := strings.ToUpper(string(r))
			if indexOf(headers, h) < 0 {
				headers = append(headers, h)
			}
		}
		c.SetHeaders(headers)
	}
	joined := strings.Join(c.headers, "")

	var calls []string
	call := ""
	last := -1
	flush := func() {
		for _, cell := range calls {
			if cell != "" {
				c.AddRow(NewCallsRow(calls, c.firstMethod))
				break
			}
		}
		calls = make([]string, len(c.headers))
	}
	flush()
	for i := 0; i < len(shorthand); i++ {
		ch := shorthand[i]
		if isCallChar(ch) && !strings.ContainsRune(joined, rune(ch)) {
			call += string(ch)
			continue
		}
		idx := -1
		for j, h := range c.headers {
			if strings.EqualFold(h, string(ch)) {
				idx = j
				break
			}
		}
		if idx < 0 {
			return definitionf("Unrecognised header in short hand composition: %c", ch)
		}
		if idx <= last {
			flush()
		}
		if call == "" {
			call = "-"
		}
		calls[idx] = call
		call, last = "", idx
	}
	flush()

	return nil
}

func isCallChar(ch byte) bool { return ch == 's' || (ch >= '0' && ch <= '9') }

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}

	return -1
}
