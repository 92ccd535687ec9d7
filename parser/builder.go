package parser

import (
	"regexp"

	"github.com/katalvlaran/changering/composition"
	"github.com/katalvlaran/changering/method"
)

var shorthandCalls = regexp.MustCompile(`^[p\-s]+$`)

// Entry is one composition built from a file.
type Entry struct {
	Composition *composition.Composition
	// Line is the first line of the composition.
	Line int
	// Err is the definition error that stopped the composition being built.
	Err error
}

type builder struct {
	labels  map[string]*method.Method
	last    *method.Method
	entries []Entry
	cur     *Entry
}

// Build turns parsed events into compositions, one Entry per Started event.
// A definition error is kept on its entry; the other compositions are still
// built.
func Build(events []Event) []Entry {
	b := &builder{labels: map[string]*method.Method{}}
	for _, ev := range events {
		b.handle(ev)
	}

	return b.entries
}

func (b *builder) methods() map[string]*method.Method {
	out := make(map[string]*method.Method, len(b.labels))
	for k, v := range b.labels {
		out[k] = v
	}

	return out
}

func (b *builder) create(shape composition.Shape, changes int) *composition.Composition {
	c := composition.New(shape, b.methods(), changes)
	c.SetFirstMethod(b.last)

	return c
}

func (b *builder) handle(ev Event) {
	switch e := ev.(type) {
	case MethodFound:
		b.labels[e.Label] = e.Method
		b.last = e.Method
		return
	case Started:
		b.entries = append(b.entries, Entry{})
		b.cur = &b.entries[len(b.entries)-1]
		switch e.Form {
		case Simple:
			b.cur.Composition = b.create(composition.Shorthand, e.Changes)
		case LeadCountTable:
			b.cur.Composition = b.create(composition.LeadCounts, e.Changes)
		case CallingPositionTable:
			b.cur.Composition = b.create(composition.CallingPositions, e.Changes)
		}
		b.cur.Line = -1
		return
	case Finished:
		b.cur = nil
		return
	case Passthrough, ChangesFound:
		return
	}

	if b.cur == nil || b.cur.Err != nil {
		return
	}
	if b.cur.Line == -1 {
		b.cur.Line = ev.Source().Number
	}
	c := b.cur.Composition

	switch e := ev.(type) {
	case SimpleHeader:
		if e.FirstChange != "" {
			c.SetFirstChange(e.FirstChange)
		}
		c.SetFirstMethod(e.Method)
	case TableHeader:
		c.SetHeaders(e.Headers)
		c.SetFirstChange(e.FirstChange)
	case SimpleRow:
		if c.FirstMethod() == nil {
			c.SetFirstMethod(e.Method)
		}
		c.AddCall(e.Call, e.Count)
		for i := 0; i < e.Count; i++ {
			c.AddMethodChange(e.Method)
		}
	case TableRow:
		c.AddRow(rowOf(e))
	case ShorthandRow:
		if c == nil {
			shape := composition.CallingPositions
			if shorthandCalls.MatchString(e.Text) {
				shape = composition.Shorthand
			}
			c = b.create(shape, 0)
			b.cur.Composition = c
		}
		c.SetFirstMethod(b.last)
		if err := c.AddRows(e.Text); err != nil {
			b.cur.Err = &Error{Line: e.Number, Text: e.Text, Err: err}
		}
	case Footnote:
		c.AddFootnote(e.Text)
	}
}

func rowOf(e TableRow) composition.Row {
	var r composition.Row
	switch {
	case e.Part != "":
		r = composition.NewPartRow(e.Part, e.Repetitions, e.Methods...)
	case e.Footnote != "":
		r = composition.NewFootnoteRow(e.Footnote, e.Methods...)
		r.NumLeads = e.NumLeads
	default:
		r = composition.NewCallsRow(append([]string(nil), e.Calls...), e.Methods...)
		r.NumLeads = e.NumLeads
	}
	r.Labels = append([]string(nil), e.PartLabels...)

	return r
}
