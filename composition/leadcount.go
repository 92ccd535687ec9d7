package composition

import (
	"strconv"
	"strings"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

// twinBobLeads maps the twin-bob headings to the two leads they call, and
// the numbered twin-bob positions to their single lead.
var twinBobLeads = map[string][]int{
	"S": {3, 4}, "H": {5, 6}, "L": {7, 8}, "Q": {12, 13},
	"1": {13}, "2": {7}, "3": {5}, "4": {3}, "5": {9}, "6": {11},
}

// lastLead returns the highest lead number a header can name.
func lastLead(header string) int {
	switch header {
	case "S":
		return 4
	case "H":
		return 6
	case "L":
		return 8
	case "Q":
		return 13
	}
	n, _ := strconv.Atoi(header)

	return n
}

// leadNumbers converts headers to lead numbers. A twin-bob heading covers
// two leads, so its column is duplicated in every row.
func (c *Composition) leadNumbers(headers []string, rows []Row) ([]int, []Row, error) {
	var out []int
	inserted := 0
	for i, h := range headers {
		if !c.twinBob {
			n, err := strconv.Atoi(h)
			if err != nil {
				return nil, nil, definitionf("Unrecognised calling position: %s", h)
			}
			out = append(out, n)

			continue
		}
		leads, ok := twinBobLeads[h]
		if !ok {
			return nil, nil, definitionf("Unrecognised calling position: %s", h)
		}
		out = append(out, leads...)
		if len(leads) == 2 {
			for k := range rows {
				rows[k] = rows[k].insertColumn(i + inserted)
			}
			inserted++
		}
	}

	return out, rows, nil
}

func nextCall(calls []string, from int) int {
	for i := from; i < len(calls); i++ {
		if calls[i] != "" {
			return i
		}
	}

	return -1
}

func (c *Composition) proveLeadCounts() (*grid.Grid, error) {
	first := c.firstMethod
	st := first.Stage()
	if len(c.headers) == 0 {
		return nil, definitionf("The composition does not contain any headers.")
	}

	seg, mrp, mp := 0, 0, 0
	offset := 0
	home := st.Label()
	g := grid.New(st)
	switch {
	case first.StartOffset() > 0:
		g.ApplyFrom(first.LeadNotation(method.Plain, 0), first.StartOffset())
		c.firstChange = g.Last()
		full := grid.New(st)
		full.ApplyFrom(first.LeadNotation(method.Plain, 0), first.StartOffset())
		seg = 1 % first.NumSegments()
		c.finishCourse([]*method.Method{first}, 0, seg, full, -1, false)
		if i := full.Len() - first.StartOffset() - 1; i >= 0 {
			if p := strings.IndexByte(full.Row(i), st.Label()); p >= 0 {
				home = stage.LabelAt(p + 1)
			}
		}
	case !strings.Contains(st.Rounds(), c.firstChange):
		lead := grid.NewFrom(st, c.firstChange)
		c.finishCourse([]*method.Method{first}, 0, 0, lead, -1, false)
		offset = (lead.Len() - 1) % len(first.LeadNotation(method.Plain, 0))
	}
	pos := st.Label()

	defaultLeads := st.Bells() - 1
	if first.Type() == method.Principle {
		defaultLeads = st.Bells()
	}
	defaultLeads = max(defaultLeads, lastLead(c.headers[len(c.headers)-1]))

	rows, headers, err := c.expandedRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, definitionf("The composition does not contain any rows.")
	}
	leadNumbers, rows, err := c.leadNumbers(headers, rows)
	if err != nil {
		return nil, err
	}
	var all []*method.Method
	for _, r := range rows {
		if len(r.Methods) == 0 {
			return nil, ErrNoMethod
		}
		all = append(all, r.Methods...)
	}
	tr, err := c.transitions(all)
	if err != nil {
		return nil, err
	}

	for rn, row := range rows {
		leadCount := 1
		if offset > 0 {
			leadCount = 0
		}
		hp := nextCall(row.Calls, 0)
		numLeads := defaultLeads
		if row.NumLeads != -1 {
			numLeads = row.NumLeads
		}

		for ; leadCount <= numLeads; leadCount++ {
			call := method.Plain
			if hp > -1 && offset == 0 && hp < len(leadNumbers) && leadCount == leadNumbers[hp] {
				if call, err = method.ParseCall(row.Calls[hp]); err != nil {
					return nil, definitionf("Call is undefined: %s", row.Calls[hp])
				}
				hp = nextCall(row.Calls, hp+1)
			}

			m := rows[mrp].Methods[mp]
			seg %= m.NumSegments()
			t := tr[m]
			lead := grid.NewFrom(st, g.Last())
			n, err := c.callLead(m, call, seg)
			if err != nil {
				return nil, err
			}
			if n == nil {
				return nil, definitionf("Call is undefined: %s", call)
			}
			if _, overridden := c.overrides[leadCall(call)]; overridden && call != method.Plain {
				lead.ApplyAll(n)
			} else {
				lead.ApplyFrom(n, offset)
			}
			switch call {
			case method.Bob, method.TwinBob:
				pos, _ = lookup(t.bob, seg, pos)
			case method.Single:
				pos, _ = lookup(t.single, seg, pos)
			default:
				pos, _ = lookup(t.plain, seg, pos)
			}
			g.AppendGrid(lead)

			if mp < len(rows[mrp].Methods)-1 {
				mp++
			}
			seg = (seg + 1) % rows[mrp].Methods[mp].NumSegments()
			offset = 0

			if leadCount == numLeads {
				if row.DisplayCourseEnd && (rn < len(rows)-1 || g.EndsInRounds()) {
					c.addCourseEnd(g.Last(), true)
				}
				if mrp < len(rows)-1 {
					mrp++
				}
				mp = 0
			}
			if hp == -1 && rn == len(rows)-1 {
				break
			}
		}
	}

	lastRow := rows[len(rows)-1]
	if c.padPlainLeads {
		if !g.ContainsSufficientRounds() {
			total := 0
			for _, t := range tr {
				for _, p := range t.plain {
					total += len(p)
				}
			}
			methods := rows[mrp].Methods
			m := methods[mp]
			lseg, leads := seg, 0
			for ; leads < total; leads++ {
				if lseg == 0 && pos == home {
					break
				}
				pos, _ = lookup(tr[m].plain, lseg%m.NumSegments(), pos)
				lseg = (lseg + 1) % m.NumSegments()
			}
			c.finishCourse(methods, mp, seg, g, leads, lastRow.DisplayCourseEnd)
		} else if !g.EndsInRounds() {
			final := g.Last()
			for g.Len() > 1 && !g.EndsInRounds() {
				g.RemoveRow(g.Len() - 1)
			}
			if lastRow.DisplayCourseEnd {
				c.addCourseEnd(final, false)
			}
		}
	}

	if err := c.checkTruth(g, first); err != nil {
		return g, err
	}
	if len(c.courseEnds) != len(c.rows) {
		return g, definitionf("The number of course ends (%d) does not match the number of rows (%d).", len(c.courseEnds), len(c.rows))
	}

	return g, nil
}
