package composition

import (
	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
)

// finishCourse rings plain leads from the end of g, starting with
// methods[mi] at segment si, until rounds comes up. leadsToCourseEnd > 0
// fixes the number of leads; otherwise at most bells·segments are tried,
// and -1 additionally stops at the first rounds. Rows after an early rounds
// are rung on a detached grid so g itself ends there. It returns the number
// of whole leads rung before rounds.
func (c *Composition) finishCourse(methods []*method.Method, mi, si int, g *grid.Grid, leadsToCourseEnd int, addCourseEnds bool) int {
	if g.Len() > 1 && g.EndsInRounds() {
		return 0
	}

	first := methods[mi]
	st := first.Stage()
	rounds := st.Rounds()
	maxLeads := leadsToCourseEnd
	if leadsToCourseEnd <= 0 {
		maxLeads = st.Bells() * first.NumSegments()
	}

	cur := g
	leads, added := 0, 0
	offsetLead := false
	for {
		leads++
		m := methods[mi]
		si %= m.NumSegments()
		lead := grid.NewFrom(st, cur.Last())
		lead.ApplyAll(m.LeadNotation(method.Plain, si))
		si = (si + 1) % m.NumSegments()

		if lead.ContainsRounds() {
			for i := 1; i < lead.Len(); i++ {
				cur.Append(lead.Row(i), lead.IsLeadEnd(i), lead.IsLabel(i))
				if lead.Row(i) == rounds {
					added = leads - 1
					cur = grid.NewFrom(st, rounds)
					if leadsToCourseEnd == -1 {
						leads = maxLeads
					}
				}
			}
		} else {
			cur.AppendGrid(lead)
			if !offsetLead && m.StartOffset() > 0 && leads == maxLeads {
				maxLeads++
				offsetLead = true
			}
		}

		if mi < len(methods)-1 {
			mi++
		}
		if leads >= maxLeads {
			break
		}
	}

	if !g.ContainsSufficientRounds() {
		m := methods[mi]
		si %= m.NumSegments()
		lead := grid.NewFrom(st, cur.Last())
		lead.ApplyAll(m.LeadNotation(method.Plain, si))
		if lead.ContainsRounds() {
			for i := 1; i < lead.Len(); i++ {
				cur.Append(lead.Row(i), lead.IsLeadEnd(i), lead.IsLabel(i))
				if lead.Row(i) == rounds {
					if addCourseEnds {
						c.addCourseEnd(cur.LastLeadEnd(), true)
					}

					break
				}
			}
		}
	} else if addCourseEnds {
		last := cur.Last()
		c.addCourseEnd(last, last == rounds || last == g.LastLeadEnd())
	}

	return added
}
