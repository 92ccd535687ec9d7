package grid

import (
	"sort"
	"strings"

	"github.com/katalvlaran/changering/notation"
	"github.com/katalvlaran/changering/stage"
)

// Grid is a sequence of rows generated from a seed row.
type Grid struct {
	st       stage.Stage
	rows     []string
	leadEnds []bool
	labels   []bool
}

// New returns a one-row grid seeded with rounds.
func New(st stage.Stage) *Grid {
	return NewFrom(st, st.Rounds())
}

// NewFrom returns a one-row grid seeded with first, completed to the full
// stage: labels missing from first are prefixed in order until the first
// label that first does contain, and the remaining positions are appended.
func NewFrom(st stage.Stage, first string) *Grid {
	g := &Grid{st: st}
	g.Append(Complete(st, first), false, true)

	return g
}

// Complete pads a partial row to the full width of st.
// Complete(Major, "5678") == "12345678"; Complete(Major, "1342") == "13425678".
func Complete(st stage.Stage, partial string) string {
	var b strings.Builder
	b.Grow(st.Bells())
	for p := 1; p <= st.Bells(); p++ {
		c := stage.LabelAt(p)
		if strings.IndexByte(partial, c) >= 0 {
			break
		}
		b.WriteByte(c)
	}
	b.WriteString(partial)
	for p := b.Len() + 1; p <= st.Bells(); p++ {
		b.WriteByte(stage.LabelAt(p))
	}

	return b.String()
}

// Stage returns the grid's stage.
func (g *Grid) Stage() stage.Stage { return g.st }

// Len returns the number of rows, seed included.
func (g *Grid) Len() int { return len(g.rows) }

// Row returns row i.
func (g *Grid) Row(i int) string { return g.rows[i] }

// First returns the seed row.
func (g *Grid) First() string { return g.rows[0] }

// Last returns the most recent row.
func (g *Grid) Last() string { return g.rows[len(g.rows)-1] }

// IsLeadEnd reports whether row i closed a lead.
func (g *Grid) IsLeadEnd(i int) bool { return g.leadEnds[i] }

// IsLabel reports whether row i starts a repetition of the applied notation.
func (g *Grid) IsLabel(i int) bool { return g.labels[i] }

// Append adds a row with its flags and returns it.
func (g *Grid) Append(row string, leadEnd, label bool) string {
	g.rows = append(g.rows, row)
	g.leadEnds = append(g.leadEnds, leadEnd)
	g.labels = append(g.labels, label)

	return row
}

// AppendGrid appends every row of o except its seed and returns the new last row.
func (g *Grid) AppendGrid(o *Grid) string {
	g.rows = append(g.rows, o.rows[1:]...)
	g.leadEnds = append(g.leadEnds, o.leadEnds[1:]...)
	g.labels = append(g.labels, o.labels[1:]...)

	return g.Last()
}

// RemoveRow deletes row i.
func (g *Grid) RemoveRow(i int) {
	g.rows = append(g.rows[:i], g.rows[i+1:]...)
	g.leadEnds = append(g.leadEnds[:i], g.leadEnds[i+1:]...)
	g.labels = append(g.labels[:i], g.labels[i+1:]...)
}

// Apply crosses tokens start..end (inclusive) of n onto the last row.
// The row produced by n's final token is flagged as a lead end; a row is
// flagged as a label when the grid length before it is a multiple of len(n).
// The last row produced is returned.
func (g *Grid) Apply(n notation.Notation, start, end int) string {
	cur := g.Last()
	for i := start; i <= end; i++ {
		cur = Cross(cur, n[i], g.st)
		g.Append(cur, i == len(n)-1, len(g.rows)%len(n) == 0)
	}

	return cur
}

// ApplyFrom applies n from token start to its end.
func (g *Grid) ApplyFrom(n notation.Notation, start int) string {
	return g.Apply(n, start, len(n)-1)
}

// ApplyAll applies every token of n.
func (g *Grid) ApplyAll(n notation.Notation) string {
	return g.Apply(n, 0, len(n)-1)
}

// Cross performs one change on row. Positions named in places stay put and
// the others swap in adjacent pairs; an unpaired final position stays.
// A place token whose first place is even gains an implicit lead place; one
// whose last place has the wrong parity for the stage gains an implicit
// place at the back. The empty token (notation.Cross) swaps every pair.
func Cross(row, places string, st stage.Stage) string {
	if places != notation.Cross {
		first := stage.PositionOf(places[0])
		last := stage.PositionOf(places[len(places)-1])
		bells := st.Bells()
		switch {
		case first%2 == 0:
			places = "1" + places
		case (bells%2 == 0 && last%2 == 1) || (bells%2 == 1 && last%2 == 0):
			places += string(st.Label())
		}
	}

	out := make([]byte, 0, len(row))
	for i := 1; i <= len(row); i++ {
		if places != notation.Cross && strings.IndexByte(places, stage.LabelAt(i)) >= 0 {
			out = append(out, row[i-1])
			continue
		}
		if i < len(row) {
			out = append(out, row[i], row[i-1])
			i++
			continue
		}
		out = append(out, row[i-1])
	}

	return string(out)
}

// FirstLeadEnd returns the first row flagged as a lead end, or the last row.
func (g *Grid) FirstLeadEnd() string {
	for i, le := range g.leadEnds {
		if le {
			return g.rows[i]
		}
	}

	return g.Last()
}

// LastLeadEnd returns the last row flagged as a lead end, or the seed.
func (g *Grid) LastLeadEnd() string {
	for i := len(g.leadEnds) - 1; i >= 0; i-- {
		if g.leadEnds[i] {
			return g.rows[i]
		}
	}

	return g.rows[0]
}

// Transitions maps each bell to the position (as a label) it occupies at the
// first lead end.
func (g *Grid) Transitions() map[byte]byte {
	lh := g.FirstLeadEnd()
	t := make(map[byte]byte, len(lh))
	for p := 1; p <= len(lh); p++ {
		bell := stage.LabelAt(p)
		t[bell] = stage.LabelAt(strings.IndexByte(lh, bell) + 1)
	}

	return t
}

// IsTrue returns nil when the grid ends on its seed and no row occurs more
// often than the number of extents covered, else a *FalseError.
func (g *Grid) IsTrue() error {
	extent := g.st.Extent()
	changes := len(g.rows) - 1
	extents := (changes + extent - 1) / extent

	last := g.Last()
	if last != g.rows[0] {
		return &FalseError{Kind: ErrDoesNotEndInRounds, Row: last}
	}

	sorted := make([]string, changes)
	copy(sorted, g.rows[:changes])
	sort.Strings(sorted)

	for i := 0; i < len(sorted); {
		advanced := false
		for j := 1; j <= extents+1; j++ {
			if i+j >= len(sorted) {
				return nil
			}
			if sorted[i] != sorted[i+j] {
				i += j
				advanced = true
				break
			}
			if j > extents-1 {
				return &FalseError{Kind: ErrRepeatedChange, Row: sorted[i]}
			}
		}
		if !advanced {
			i++
		}
	}

	return nil
}

// ContainsRounds reports whether rounds occurs after the seed.
func (g *Grid) ContainsRounds() bool {
	rounds := g.st.Rounds()
	for _, r := range g.rows[1:] {
		if r == rounds {
			return true
		}
	}

	return false
}

// ContainsSufficientRounds reports whether rounds recurs often enough to
// close every extent the grid covers: exactly once below one extent,
// otherwise at least once per full extent.
func (g *Grid) ContainsSufficientRounds() bool {
	rounds := g.st.Rounds()
	n := 0
	for _, r := range g.rows[1:] {
		if r == rounds {
			n++
		}
	}
	changes := len(g.rows) - 1
	if changes < g.st.Extent() {
		return n == 1
	}

	return changes/g.st.Extent() <= n
}

// EndsInRounds reports whether the last row is rounds.
func (g *Grid) EndsInRounds() bool { return g.Last() == g.st.Rounds() }

// Rows returns a copy of every row.
func (g *Grid) Rows() []string {
	out := make([]string, len(g.rows))
	copy(out, g.rows)

	return out
}

// String renders one row per line.
func (g *Grid) String() string {
	var b strings.Builder
	for _, r := range g.rows {
		b.WriteString(r)
		b.WriteByte('\n')
	}

	return b.String()
}
