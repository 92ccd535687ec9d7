package composition

import (
	"strconv"
	"strings"
)

// String renders the composition as it is written in a composition file:
// the change count (when known), the header line, the rows and the
// footnotes, each on its own line.
func (c *Composition) String() string {
	var b strings.Builder
	if c.changes > 0 {
		b.WriteString(strconv.Itoa(c.changes))
		b.WriteByte('\n')
	}
	b.WriteString(c.HeaderString())
	for i := 0; i < c.NumRows(); i++ {
		b.WriteString(c.RowString(i))
	}
	for _, f := range c.footnotes {
		b.WriteString(f)
		b.WriteByte('\n')
	}

	return b.String()
}

// HeaderString renders the header line, newline included.
func (c *Composition) HeaderString() string {
	var b strings.Builder
	if c.shape.IsTable() {
		for _, h := range c.headers {
			b.WriteString(h)
			b.WriteByte('\t')
		}
		b.WriteString(c.firstChange)
		b.WriteByte('\n')

		return b.String()
	}

	if c.firstChange != "" {
		b.WriteByte('\t')
		b.WriteString(c.firstChange)
	}
	b.WriteByte('\t')
	if c.spliced && c.firstMethod != nil {
		b.WriteString(c.MethodLabel(c.firstMethod))
	}
	b.WriteByte('\n')

	return b.String()
}

// RowString renders row i with its course end, newline included.
func (c *Composition) RowString(i int) string {
	var b strings.Builder
	if c.shape.IsTable() {
		if i >= len(c.rows) {
			return ""
		}
		b.WriteString(c.rows[i].String())
		if i < len(c.courseEnds) {
			b.WriteString(c.courseEnds[i].String())
		}
		if n := c.rows[i].NumLeads; n != -1 {
			b.WriteString("\t[" + strconv.Itoa(n) + "]")
		}
		if labels := c.rows[i].Labels; len(labels) > 0 {
			b.WriteString("\t:" + strings.Join(labels, ":"))
		}
		b.WriteByte('\n')

		return b.String()
	}

	if i >= len(c.calls) {
		return ""
	}
	b.WriteString(c.calls[i])
	if i < len(c.courseEnds) {
		b.WriteByte('\t')
		b.WriteString(c.courseEnds[i].String())
	}
	switch {
	case !c.spliced:
		b.WriteByte('\t')
		b.WriteString(strconv.Itoa(c.counts[i]))
	case i < len(c.methodChanges):
		b.WriteByte('\t')
		b.WriteString(c.MethodLabel(c.methodChanges[i]))
	}
	b.WriteByte('\n')

	return b.String()
}
