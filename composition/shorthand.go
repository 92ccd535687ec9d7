package composition

import (
	"strings"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
)

// AddRows appends rows written in compact form. For Shorthand each 'p' is a
// plain lead and any other character a call ending a row ("pp-pps"); plain
// leads left at the end become a final row with no call. For
// CallingPositions the form is calling positions optionally preceded by
// calls ("WsHH"). LeadCounts has no compact form.
func (c *Composition) AddRows(shorthand string) error {
	switch c.shape {
	case CallingPositions:
		return c.addTableRows(shorthand)
	case LeadCounts:
		return definitionf("Short hand notation is not supported for lead count tables.")
	}

	count := 0
	for i := 0; i < len(shorthand); i++ {
		ch := shorthand[i]
		if ch == 'p' {
			count++
			continue
		}
		c.AddCall(string(ch), count+1)
		c.AddMethodChange(nil)
		count = 0
	}
	if count > 0 {
		c.AddCall("", count)
		c.AddMethodChange(nil)
	}

	return nil
}

// expandCalls applies the footnotes to the shorthand rows for every part.
// A substitution of several calls becomes one row per call.
func (c *Composition) expandCalls() ([]method.Call, []int, []*method.Method, error) {
	var (
		calls   []method.Call
		counts  []int
		methods []*method.Method
	)
	for part := 1; part <= len(c.parts); part++ {
		for j, raw := range c.calls {
			resolved := c.resolve(raw, part)
			for k := 0; k < len(resolved) || k == 0; k++ {
				code := ""
				if k < len(resolved) {
					code = resolved[k : k+1]
				}
				call, err := method.ParseCall(code)
				if err != nil {
					return nil, nil, nil, definitionf("Call is undefined: %s", code)
				}
				calls = append(calls, call)
				if k == 0 {
					counts = append(counts, c.counts[j])
				} else {
					counts = append(counts, 1)
				}
				m := c.firstMethod
				if j < len(c.methodChanges) {
					m = c.methodChanges[j]
				}
				methods = append(methods, m)
			}
		}
	}

	return calls, counts, methods, nil
}

func (c *Composition) proveShorthand() (*grid.Grid, error) {
	first := c.firstMethod
	st := first.Stage()
	calls, counts, methods, err := c.expandCalls()
	if err != nil {
		return nil, err
	}

	g := grid.New(st)
	offset := 0
	if first.StartOffset() > 0 {
		g.ApplyFrom(first.LeadNotation(method.Plain, 0), first.StartOffset())
		c.firstChange = g.Last()
	} else if !strings.Contains(st.Rounds(), c.firstChange) {
		lead := grid.NewFrom(st, c.firstChange)
		c.finishCourse([]*method.Method{first}, 0, 0, lead, -1, false)
		offset = (lead.Len() - 1) % len(first.LeadNotation(method.Plain, 0))
	}

	m := first
	seg := first.NumSegments() - 1
	addCourseEnds := true
	for i, call := range calls {
		for j := 0; j < counts[i]-1; j++ {
			seg %= m.NumSegments()
			n := m.LeadNotation(method.Plain, seg)
			seg = (seg + 1) % m.NumSegments()
			g.ApplyFrom(n, offset)
			offset = 0
		}

		seg %= m.NumSegments()
		n, err := c.callLead(m, call, seg)
		if err != nil {
			return nil, err
		}
		if n == nil {
			return nil, definitionf("Call is undefined: %s", call)
		}
		seg = (seg + 1) % m.NumSegments()
		courseEnd := g.ApplyFrom(n, offset)
		offset = 0

		addCourseEnds = i < len(c.calls)
		if addCourseEnds {
			c.addCourseEnd(courseEnd, true)
		}
		m = methods[i]
	}

	if c.padPlainLeads {
		rounds := st.Rounds()
		if !g.ContainsSufficientRounds() {
			if extra := c.finishCourse([]*method.Method{m}, 0, seg, g, -1, addCourseEnds); extra > 0 {
				c.calls = append(c.calls, "")
				c.counts = append(c.counts, extra)
			}
		} else if g.Last() != rounds {
			for g.Len() > 1 && g.Last() != rounds {
				g.RemoveRow(g.Len() - 1)
			}
			if addCourseEnds && len(c.courseEnds) > 0 {
				c.courseEnds[len(c.courseEnds)-1].Complete = false
			}
		}
	}

	return g, c.checkTruth(g, m)
}
