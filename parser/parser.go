package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/changering/composition"
	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

type state int

const (
	inList state = iota
	inHeader
	inComposition
	inFootnotes
)

type parser struct {
	library []*method.Method
	labels  map[string]*method.Method
	last    *method.Method

	state   state
	form    Form
	row     int
	headers []string
	changes int

	events []Event
}

// Parse reads a composition file. library holds the methods that method
// lines may name. The first malformed line stops parsing with an *Error.
func Parse(r io.Reader, library []*method.Method) ([]Event, error) {
	p := &parser{library: library, labels: map[string]*method.Method{}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		l := Line{Number: n, Text: sc.Text()}
		for done := false; !done; {
			var err error
			if done, err = p.step(l); err != nil {
				return nil, &Error{Line: l.Number, Text: l.Text, Err: err}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("parser: read: %w", err)
	}
	if p.state == inComposition || p.state == inFootnotes {
		p.finish()
	}

	return p.events, nil
}

// ParseString parses a composition file held in memory.
func ParseString(s string, library []*method.Method) ([]Event, error) {
	return Parse(strings.NewReader(s), library)
}

// step handles l in the current state. It returns false when the state
// changed and l must be handled again in the new one.
func (p *parser) step(l Line) (bool, error) {
	switch p.state {
	case inHeader:
		return p.header(l)
	case inComposition:
		return p.composition(l)
	case inFootnotes:
		return p.footnote(l)
	}

	return p.list(l)
}

func (p *parser) emit(e Event) { p.events = append(p.events, e) }

func isComment(s string) bool { return strings.HasPrefix(s, "#") }

func (p *parser) list(l Line) (bool, error) {
	if l.Text == "" || isComment(l.Text) {
		p.emit(Passthrough{l})
		return true, nil
	}

	if m := methodLine.FindStringSubmatch(l.Text); m != nil {
		found := p.lookup(m[2], m[3])
		if found == nil {
			return true, ErrUnknownMethod
		}
		p.labels[m[1]] = found
		p.last = found
		p.emit(MethodFound{Line: l, Label: m[1], Method: found})

		return true, nil
	}

	if len(p.labels) == 0 {
		return true, ErrNoMethods
	}
	p.state = inHeader
	if m := changesLine.FindStringSubmatch(l.Text); m != nil {
		p.changes, _ = strconv.Atoi(m[1])
		p.emit(ChangesFound{Line: l, Changes: p.changes})

		return true, nil
	}

	return false, nil
}

// lookup finds a library method by stage and title. A method whose type is
// displayed must be named with its type, "Cambridge Surprise".
func (p *parser) lookup(title, bells string) *method.Method {
	st, err := stage.Parse(bells)
	if err != nil {
		return nil
	}
	for _, m := range p.library {
		if m.Stage() != st {
			continue
		}
		name := title
		if m.Type().Displayed() {
			if !strings.HasSuffix(name, m.Type().String()) {
				continue
			}
			name = strings.TrimSuffix(name, m.Type().String())
		}
		if strings.TrimSpace(name) == m.Name() {
			return m
		}
	}

	return nil
}

// classify picks the row shape from the first line of a composition.
func classify(s string) Form {
	if strings.HasPrefix(s, "$") {
		return ShortHand
	}
	if _, err := method.ParseCall(strings.TrimSpace(s[:1])); err == nil {
		return Simple
	}
	if len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z' {
		return Simple
	}
	if leadCountHeader.MatchString(s) {
		return LeadCountTable
	}

	return CallingPositionTable
}

func (p *parser) header(l Line) (bool, error) {
	if isComment(l.Text) {
		p.emit(Passthrough{l})
		return true, nil
	}
	if l.Text == "" {
		return true, ErrBlankLine
	}

	p.row = 0
	p.form = classify(l.Text)
	p.emit(Started{Form: p.form, Changes: p.changes})
	p.state = inComposition

	if p.form.IsTable() {
		headers := splitTabs(l.Text)
		first := ""
		if n := len(headers); n > 0 {
			if m := firstChangeCell.FindStringSubmatch(headers[n-1]); m != nil {
				first, headers = m[1], headers[:n-1]
			}
		}
		p.headers = headers
		p.emit(TableHeader{Line: l, Headers: headers, FirstChange: first})

		return true, nil
	}

	if p.form == Simple {
		if m := simpleHeader.FindStringSubmatch(l.Text); m != nil {
			first, _ := courseEndCell(m[1])
			found := false
			if col := m[2]; headerLabel.MatchString(col) {
				label := strings.ReplaceAll(col, "*", "")
				meth, ok := p.labels[label]
				if !ok {
					return true, fmt.Errorf("%w: %q", ErrUndefinedLabel, label)
				}
				p.last, found = meth, true
			}
			if first != "" || found {
				p.emit(SimpleHeader{Line: l, FirstChange: first, Method: p.last})
				return true, nil
			}
		}
	}

	return false, nil
}

func (p *parser) composition(l Line) (bool, error) {
	if isComment(l.Text) {
		p.emit(Passthrough{l})
		return true, nil
	}
	if l.Text == "" {
		return true, p.end()
	}
	if strings.HasPrefix(l.Text, "$") {
		p.form = ShortHand
	}

	switch p.form {
	case LeadCountTable, CallingPositionTable:
		if m := tableRow.FindStringSubmatch(l.Text); m != nil {
			ev, err := p.tableRow(l, m)
			if err != nil {
				return true, err
			}
			p.emit(ev)

			return true, nil
		}
	case Simple:
		if m := simpleRow.FindStringSubmatch(l.Text); m != nil {
			ev, err := p.simpleRow(l, m)
			if err != nil {
				return true, err
			}
			p.emit(ev)

			return true, nil
		}
	case ShortHand:
		p.row = 1
		p.emit(ShorthandRow{Line: l, Text: strings.TrimPrefix(l.Text, "$")})
		p.state = inFootnotes

		return true, nil
	}

	p.state = inFootnotes

	return false, nil
}

func (p *parser) simpleRow(l Line, m []string) (SimpleRow, error) {
	ev := SimpleRow{Line: l, Row: p.row, Call: m[1], Complete: true, Count: 1}
	if m[2] != "" {
		ev.CourseEnd, ev.Complete = courseEndCell(m[2])
	}
	if col := m[3]; col != "" {
		switch label := strings.ReplaceAll(strings.Trim(col, "()"), "*", ""); {
		case digits.MatchString(col):
			ev.Count, _ = strconv.Atoi(col)
		case rowLabel.MatchString(label):
			meth, ok := p.labels[label]
			if !ok {
				return ev, fmt.Errorf("%w: %q", ErrUndefinedLabel, label)
			}
			p.last = meth
			ev.Label = label
		default:
			return ev, fmt.Errorf("%w: %s", ErrLeadCount, col)
		}
	}
	ev.Method = p.last
	p.row++

	return ev, nil
}

func (p *parser) tableRow(l Line, m []string) (TableRow, error) {
	ev := TableRow{Line: l, Row: p.row, Complete: true, NumLeads: -1}

	if m[2] != "" {
		label := ""
		add := func() error {
			meth, ok := p.labels[label]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUndefinedLabel, label)
			}
			ev.Labels = append(ev.Labels, label)
			ev.Methods = append(ev.Methods, meth)

			return nil
		}
		for _, ch := range parens.Replace(m[2]) {
			switch {
			case ch >= 'A' && ch <= 'Z':
				if label != "" {
					if err := add(); err != nil {
						return ev, err
					}
				}
				label = string(ch)
			case ch != '*' && label != "":
				label += string(ch)
			}
		}
		if label != "" {
			if err := add(); err != nil {
				return ev, err
			}
		}
	} else {
		ev.Methods = []*method.Method{p.last}
	}

	cells := splitTabs(m[1])
	switch {
	case len(cells) == 1 && partReference.MatchString(cells[0]):
		ref := partReference.FindStringSubmatch(cells[0])
		ev.Ref, ev.Part, ev.Repetitions = cells[0], ref[2], 1
		if ref[1] != "" {
			ev.Repetitions, _ = strconv.Atoi(ref[1])
		}
	case len(cells) == 1 && footnoteReference.MatchString(cells[0]):
		ev.Ref, ev.Footnote = cells[0], cells[0]
	default:
		if len(cells) > len(p.headers) {
			return ev, fmt.Errorf("%w: %d calls, %d headers", ErrCalls, len(cells), len(p.headers))
		}
		ev.Calls = make([]string, len(p.headers))
		copy(ev.Calls, cells)
	}

	if m[3] != "" {
		ev.CourseEnd, ev.Complete = courseEndCell(m[3])
	}
	if m[4] != "" {
		ev.NumLeads, _ = strconv.Atoi(m[4])
	}
	if labels := strings.ReplaceAll(m[5], "\t", ""); labels != "" {
		ev.PartLabels = strings.Split(labels[1:], ":")
	}
	p.row++

	return ev, nil
}

func (p *parser) footnote(l Line) (bool, error) {
	if isComment(l.Text) {
		p.emit(Passthrough{l})
		return true, nil
	}
	if l.Text == "" {
		return true, p.end()
	}
	if !composition.IsFootnote(l.Text) {
		return true, ErrFootnote
	}
	p.emit(Footnote{l})

	return true, nil
}

// end closes the composition at a blank line.
func (p *parser) end() error {
	if p.row == 0 {
		return ErrNoRows
	}
	p.finish()

	return nil
}

func (p *parser) finish() {
	p.emit(Finished{})
	p.state = inList
	p.changes = 0
	p.headers = nil
}
