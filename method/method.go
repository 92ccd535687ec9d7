package method

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/notation"
	"github.com/katalvlaran/changering/stage"
)

// Method is an immutable, fully derived method definition.
type Method struct {
	name       string
	typ        Type
	st         stage.Stage
	segments   []Segment
	leads      map[Call][]notation.Notation
	opts       Options
	startBell  int
	identifier string
}

var identifierStrip = regexp.MustCompile(`[\s']+`)

// New builds a Method. placeNotation and the lead ends are comma-separated
// per segment; a place-notation segment may carry a "label=" prefix. Empty
// bobLE or singleLE means the call is not available.
func New(name string, typ Type, st stage.Stage, placeNotation, plainLE, bobLE, singleLE string, opts ...Option) (*Method, error) {
	if !st.Valid() {
		return nil, fmt.Errorf("method %q: %w", name, stage.ErrInvalidStage)
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	m := &Method{name: name, typ: typ, st: st, opts: o, leads: make(map[Call][]notation.Notation, 3)}
	if err := m.setSegments(placeNotation, plainLE, bobLE, singleLE); err != nil {
		return nil, fmt.Errorf("method %q: %w", name, err)
	}

	m.startBell = o.StartBell
	if m.startBell == 0 {
		m.startBell = 1
		if last := m.leads[Plain][0].Last(); last != notation.Cross {
			m.startBell = stage.PositionOf(last[len(last)-1])
		}
	}
	m.identifier = string(st.Label()) + "_" + typ.Code() + "_" + identifierStrip.ReplaceAllString(name, "")

	return m, nil
}

func (m *Method) setSegments(pn, plainLE, bobLE, singleLE string) error {
	pns := strings.Split(pn, ",")
	plains := strings.Split(plainLE, ",")
	if len(plains) != len(pns) {
		return fmt.Errorf("%w: %d place notations, %d lead ends", ErrSegmentMismatch, len(pns), len(plains))
	}
	var bobs, singles []string
	if bobLE != "" {
		if bobs = strings.Split(bobLE, ","); len(bobs) != len(pns) {
			return fmt.Errorf("%w: the number of place notations and bob lead end notations are not the same", ErrSegmentMismatch)
		}
	}
	if singleLE != "" {
		if singles = strings.Split(singleLE, ","); len(singles) != len(pns) {
			return fmt.Errorf("%w: the number of place notations and single lead end notations are not the same", ErrSegmentMismatch)
		}
	}

	m.segments = make([]Segment, len(pns))
	for i, p := range pns {
		seg := Segment{PlaceNotation: p, PlainLeadEnd: plains[i]}
		if label, rest, ok := strings.Cut(p, "="); ok {
			seg.Label, seg.PlaceNotation = label, rest
		}
		if bobs != nil {
			seg.BobLeadEnd = bobs[i]
		}
		if singles != nil {
			seg.SingleLeadEnd = singles[i]
		}
		m.segments[i] = seg
	}

	build := func(c Call, le func(Segment) string) error {
		out := make([]notation.Notation, len(m.segments))
		for i, seg := range m.segments {
			n, err := leadNotation(seg.PlaceNotation, le(seg))
			if err != nil {
				return err
			}
			out[i] = n
		}
		m.leads[c] = out

		return nil
	}
	if err := build(Plain, func(s Segment) string { return s.PlainLeadEnd }); err != nil {
		return err
	}
	if bobs != nil {
		if err := build(Bob, func(s Segment) string { return s.BobLeadEnd }); err != nil {
			return err
		}
	}
	if singles != nil {
		if err := build(Single, func(s Segment) string { return s.SingleLeadEnd }); err != nil {
			return err
		}
	}

	return nil
}

// leadNotation appends the last lead-end token to the segment notation and
// lays the remaining lead-end tokens over the tokens before it.
func leadNotation(pn, le string) (notation.Notation, error) {
	body, err := notation.Parse(pn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlaceNotation, err)
	}
	end, err := notation.Parse(le)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlaceNotation, err)
	}

	out := append(body.Clone(), end.Last())
	ptr := len(out) - 1
	for k := len(end) - 2; k >= 0; k-- {
		ptr--
		if ptr < 0 {
			return nil, fmt.Errorf("%w: lead end %q is longer than %q", ErrInvalidPlaceNotation, le, pn)
		}
		out[ptr] = end[k]
	}

	return out, nil
}

// Name returns the method name without type or stage.
func (m *Method) Name() string { return m.name }

// Type returns the method class.
func (m *Method) Type() Type { return m.typ }

// Stage returns the number of bells.
func (m *Method) Stage() stage.Stage { return m.st }

// Segments returns a copy of the notation segments.
func (m *Method) Segments() []Segment {
	out := make([]Segment, len(m.segments))
	copy(out, m.segments)

	return out
}

// NumSegments returns the number of notation segments.
func (m *Method) NumSegments() int { return len(m.segments) }

// StartBell returns the traced bell.
func (m *Method) StartBell() int { return m.startBell }

// StartOffset returns the number of changes rung before the first lead.
func (m *Method) StartOffset() int { return m.opts.StartOffset }

// HasCall reports whether c can be rung. Plain always can.
func (m *Method) HasCall(c Call) bool {
	_, ok := m.leads[leadKey(c)]
	return ok
}

// LeadNotation returns the full lead for call c in segment seg, or nil when
// the call is unavailable. A twin bob rings the bob lead. The returned
// notation must not be modified.
func (m *Method) LeadNotation(c Call, seg int) notation.Notation {
	leads, ok := m.leads[leadKey(c)]
	if !ok || seg < 0 || seg >= len(leads) {
		return nil
	}

	return leads[seg]
}

func leadKey(c Call) Call {
	if c == TwinBob {
		return Bob
	}

	return c
}

// CreateLeadNotation builds a one-off lead for the first segment with le as
// its lead end, as used by call overrides such as "- = 16".
func (m *Method) CreateLeadNotation(le string) (notation.Notation, error) {
	return leadNotation(m.segments[0].PlaceNotation, le)
}

// AmendedCallingPosition returns the method's own name for calling position
// name, or name itself.
func (m *Method) AmendedCallingPosition(name string) string {
	if a, ok := m.opts.Amendments[name]; ok {
		return a
	}

	return name
}

// Amendments returns a copy of the calling-position amendments.
func (m *Method) Amendments() map[string]string {
	out := make(map[string]string, len(m.opts.Amendments))
	for k, v := range m.opts.Amendments {
		out[k] = v
	}

	return out
}

// FileIdentifier returns "<stage label>_<type code>_<name>" with whitespace
// and apostrophes removed from the name.
func (m *Method) FileIdentifier() string { return m.identifier }

// Title returns the name followed by the displayed type, if any.
func (m *Method) Title() string {
	if m.typ.Displayed() {
		return m.name + " " + m.typ.String()
	}

	return m.name
}

// String returns the full title, e.g. "Cambridge Surprise Minor".
func (m *Method) String() string { return m.Title() + " " + m.st.String() }

// Equal reports whether both methods share name, stage and type.
func (m *Method) Equal(o *Method) bool {
	if m == nil || o == nil {
		return m == o
	}

	return m.name == o.name && m.st == o.st && m.typ == o.typ
}

// Compare orders by stage, then type, then name.
func (m *Method) Compare(o *Method) int {
	switch {
	case m.st != o.st:
		return cmpInt(int(m.st), int(o.st))
	case m.typ != o.typ:
		return cmpInt(int(m.typ), int(o.typ))
	}

	return strings.Compare(m.name, o.name)
}

func cmpInt(a, b int) int {
	if a < b {
		return -1
	}

	return 1
}

// Description summarises every segment: place notation, plain lead end and
// lead head, then the bob and single lead ends with the lead head they
// produce and each bell whose course they alter, written "bell:position".
// Segments are separated by "; ".
func (m *Method) Description() string {
	var b strings.Builder
	for i, seg := range m.segments {
		if i > 0 {
			b.WriteString("; ")
		}
		if seg.Label != "" {
			b.WriteString(seg.Label + ": ")
		}
		b.WriteString(seg.PlaceNotation)
		plain := m.describeLead(&b, "plh", seg.PlainLeadEnd, m.leads[Plain][i], nil)
		if seg.BobLeadEnd != "" {
			b.WriteString(",")
			m.describeLead(&b, "blh", seg.BobLeadEnd, m.leads[Bob][i], plain)
		}
		if seg.SingleLeadEnd != "" {
			b.WriteString(",")
			m.describeLead(&b, "slh", seg.SingleLeadEnd, m.leads[Single][i], plain)
		}
	}

	return b.String()
}

func (m *Method) describeLead(b *strings.Builder, tag, le string, lead notation.Notation, plain map[byte]byte) map[byte]byte {
	g := grid.New(m.st)
	g.ApplyAll(lead)
	lh := strings.TrimPrefix(g.FirstLeadEnd(), "1")
	fmt.Fprintf(b, " %s\u00a0%s (%s)", tag, le, lh)

	t := g.Transitions()
	if plain != nil {
		for p := 1; p <= m.st.Bells(); p++ {
			bell := stage.LabelAt(p)
			if plain[bell] != t[bell] {
				fmt.Fprintf(b, " %c:%c", bell, t[bell])
			}
		}
	}

	return t
}
