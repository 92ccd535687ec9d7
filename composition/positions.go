package composition

import (
	"strings"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

// courseEndState tracks whether the course end of a row that finished away
// from home is still owed.
type courseEndState int

const (
	courseEndUnset courseEndState = iota
	courseEndShown
	courseEndHidden
)

func numCalls(r Row) int {
	n := 0
	for _, cell := range r.Calls {
		if call, err := method.ParseCall(cell); err == nil && call != method.Plain {
			n++
		}
	}

	return n
}

func (c *Composition) proveCallingPositions() (*grid.Grid, error) {
	first := c.firstMethod
	st := first.Stage()
	home := st.Label()
	pos := home
	seg := 0
	offset := first.StartOffset()

	g := grid.NewFrom(st, c.firstChange)
	if !strings.Contains(st.Rounds(), c.firstChange) {
		c.finishCourse([]*method.Method{first}, 0, 0, g, -1, false)
		pos = stage.LabelAt(strings.IndexByte(g.LastLeadEnd(), home) + 1)
		offset = (g.Len() - 1) % len(first.LeadNotation(method.Plain, 0))
	}
	g = grid.New(st)

	rows, headers, err := c.expandedRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, definitionf("The composition does not contain any rows.")
	}
	var methods []*method.Method
	for _, r := range rows {
		if !r.Expanded {
			methods = append(methods, r.Methods...)
		}
	}
	if len(methods) == 0 {
		return nil, ErrNoMethod
	}
	tr, err := c.transitions(methods)
	if err != nil {
		return nil, err
	}

	// Each call is tried for at most this many leads before giving up.
	maxSegments := 1
	for _, m := range methods {
		maxSegments = max(maxSegments, m.NumSegments())
	}
	attemptLimit := st.Bells()*maxSegments*len(methods) + 1

	var lastOfLastCourse string
	display := courseEndUnset
	mp := 0
	for rp, row := range rows {
		for cp := range row.Calls {
			cell := row.Calls[cp]
			if cell == "" {
				continue
			}
			call, err := method.ParseCall(cell)
			if err != nil {
				return nil, definitionf("Call is undefined: %s", cell)
			}
			if cp >= len(headers) {
				return nil, definitionf("Unrecognised calling position: %s", cell)
			}

			found := false
			start := pos
			for attempts := 0; ; attempts++ {
				if attempts > attemptLimit {
					return nil, definitionf("Unable to place call %s at %s.", cell, headers[cp])
				}
				m := methods[mp]
				seg %= m.NumSegments()
				target, err := CallingPosition(m, headers[cp], call)
				if err != nil {
					return nil, err
				}
				t := tr[m]

				var callTable []map[byte]byte
				switch call {
				case method.Bob, method.TwinBob:
					callTable = t.bob
				case method.Single:
					callTable = t.single
				}
				if to, ok := lookup(callTable, seg, pos); ok && call != method.Plain && to == target {
					lead, err := c.callLead(m, call, seg)
					if err != nil {
						return nil, err
					}
					if _, overridden := c.overrides[leadCall(call)]; overridden {
						g.ApplyAll(lead)
					} else {
						g.ApplyFrom(lead, offset)
					}
					pos = target
					found = true
				} else {
					g.ApplyFrom(m.LeadNotation(method.Plain, seg), offset)
					pos, _ = lookup(t.plain, seg, pos)
				}

				last := g.Last()
				if pos == home {
					if lastOfLastCourse != "" ||
						(found && row.DisplayCourseEnd && (rp < len(rows)-1 || mp == len(methods)-1)) ||
						(found && display == courseEndUnset && row.DisplayCourseEnd && cp == numCalls(row)) ||
						display == courseEndShown {
						c.addCourseEnd(last, true)
					}
					lastOfLastCourse, display = "", courseEndUnset
				} else if found && lastOfLastCourse != "" {
					extra := grid.NewFrom(st, lastOfLastCourse)
					theoretical := stage.LabelAt(strings.IndexByte(lastOfLastCourse, home) + 1)
					for i := 0; theoretical != home && i < attemptLimit; i++ {
						extra.ApplyFrom(m.LeadNotation(method.Plain, seg), offset)
						theoretical, _ = lookup(t.plain, seg, theoretical)
					}
					c.addCourseEnd(extra.Last(), false)
					lastOfLastCourse, display = "", courseEndUnset
				}

				if mp < len(methods)-1 {
					mp++
				}
				seg = (seg + 1) % methods[mp].NumSegments()
				offset = 0

				if found || pos == start {
					break
				}
			}
			if !found && call != method.Plain {
				return nil, definitionf("Unable to place call %s at %s.", cell, headers[cp])
			}
		}

		lastOfLastCourse, display = "", courseEndUnset
		if pos != home {
			display = courseEndHidden
			if row.DisplayCourseEnd {
				display = courseEndShown
				lastOfLastCourse = g.Last()
			}
		}
	}

	leadsToCourseEnd := 0
	lmp, lseg := mp, seg
	for i := 0; (lmp < len(methods)-1 || pos != home) && i < attemptLimit; i++ {
		m := methods[lmp]
		pos, _ = lookup(tr[m].plain, lseg%m.NumSegments(), pos)
		leadsToCourseEnd++
		if lmp < len(methods)-1 {
			lmp++
		}
		lseg = (lseg + 1) % methods[lmp].NumSegments()
	}

	if c.padPlainLeads {
		c.finishCourse(methods, mp, seg, g, leadsToCourseEnd, leadsToCourseEnd > 0 && rows[len(rows)-1].DisplayCourseEnd)
	}

	if err := c.checkTruth(g, first); err != nil {
		return g, err
	}
	if len(c.courseEnds) != len(c.rows) {
		return g, definitionf("The number of course ends (%d) does not match the number of rows (%d).", len(c.courseEnds), len(c.rows))
	}

	return g, nil
}

func leadCall(c method.Call) method.Call {
	if c == method.TwinBob {
		return method.Bob
	}

	return c
}
