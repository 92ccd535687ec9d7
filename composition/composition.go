package composition

import (
	"errors"
	"sort"
	"strings"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
)

// Composition is a mutable composition definition together with the results
// of its last proof.
type Composition struct {
	shape   Shape
	methods map[string]*method.Method

	changes       int
	firstChange   string
	firstMethod   *method.Method
	spliced       bool
	methodChanges []*method.Method
	courseEnds    []CourseEnd
	footnotes     []string
	padPlainLeads bool

	// substitution tables: global, then one per part.
	global    map[string]string
	parts     []map[string]string
	overrides map[method.Call]string

	// Shorthand rows.
	calls  []string
	counts []int

	// Table rows.
	headers []string
	rows    []Row
	twinBob bool

	proved bool
	truth  error
}

// New returns an empty composition of the given shape. methods maps the
// labels used in the composition text to their methods; "" is the label of an
// unspliced composition. changes is the change count written in the source,
// or 0.
func New(shape Shape, methods map[string]*method.Method, changes int) *Composition {
	if methods == nil {
		methods = map[string]*method.Method{}
	}

	return &Composition{
		shape:         shape,
		methods:       methods,
		changes:       changes,
		padPlainLeads: true,
		global:        map[string]string{},
		parts:         []map[string]string{{}},
		overrides:     map[method.Call]string{},
	}
}

func (c *Composition) touch() { c.proved, c.truth = false, nil }

// Shape returns the row shape.
func (c *Composition) Shape() Shape { return c.shape }

// Changes returns the number of changes: as written before a proof, as rung
// after one.
func (c *Composition) Changes() int { return c.changes }

// SetChanges sets the change count.
func (c *Composition) SetChanges(n int) {
	c.changes = n
	c.touch()
}

// FirstChange returns the first change, or "" when it starts from rounds and
// none was written.
func (c *Composition) FirstChange() string { return c.firstChange }

// SetFirstChange sets the row the composition starts from.
func (c *Composition) SetFirstChange(row string) {
	c.firstChange = row
	c.touch()
}

// FirstMethod returns the method rung first.
func (c *Composition) FirstMethod() *method.Method { return c.firstMethod }

// SetFirstMethod sets the method rung first.
func (c *Composition) SetFirstMethod(m *method.Method) {
	c.firstMethod = m
	c.touch()
}

// Methods returns the label to method map.
func (c *Composition) Methods() map[string]*method.Method { return c.methods }

// IsSpliced reports whether more than one method is rung.
func (c *Composition) IsSpliced() bool { return c.spliced }

// AddMethodChange records the method rung for the next row. nil means the
// first method.
func (c *Composition) AddMethodChange(m *method.Method) {
	if m == nil {
		m = c.firstMethod
	}
	if len(c.methodChanges) == 0 {
		c.spliced = c.spliced || m != c.firstMethod
	} else {
		c.spliced = c.spliced || m != c.methodChanges[len(c.methodChanges)-1]
	}
	c.methodChanges = append(c.methodChanges, m)
	c.touch()
}

// SetPadPlainLeads controls whether Prove rings plain leads after the last
// row until rounds. The default is true.
func (c *Composition) SetPadPlainLeads(pad bool) {
	c.padPlainLeads = pad
	c.touch()
}

// CourseEnds returns the course ends recorded by the last proof.
func (c *Composition) CourseEnds() []CourseEnd {
	return append([]CourseEnd(nil), c.courseEnds...)
}

func (c *Composition) addCourseEnd(row string, complete bool) {
	c.courseEnds = append(c.courseEnds, CourseEnd{Row: row, Complete: complete})
}

// Footnotes returns the footnote lines in order.
func (c *Composition) Footnotes() []string { return append([]string(nil), c.footnotes...) }

// NumParts returns the number of parts, 1 unless a part directive says
// otherwise.
func (c *Composition) NumParts() int { return len(c.parts) }

// NumRows returns the number of rows as written.
func (c *Composition) NumRows() int {
	if c.shape.IsTable() {
		return len(c.rows)
	}

	return len(c.calls)
}

// MethodLabel returns the label under which m was defined, or "?".
func (c *Composition) MethodLabel(m *method.Method) string {
	labels := make([]string, 0, len(c.methods))
	for l := range c.methods {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	for _, l := range labels {
		if c.methods[l] == m {
			return l
		}
	}

	return "?"
}

// AddCall appends a shorthand row: call rung after count-1 plain leads.
func (c *Composition) AddCall(call string, count int) {
	c.calls = append(c.calls, call)
	c.counts = append(c.counts, count)
	c.touch()
}

// Calls returns the shorthand calls as written.
func (c *Composition) Calls() []string { return append([]string(nil), c.calls...) }

// Counts returns the shorthand lead counts as written.
func (c *Composition) Counts() []int { return append([]int(nil), c.counts...) }

// SetHeaders sets the table headers, upper-cased.
func (c *Composition) SetHeaders(headers []string) {
	c.headers = make([]string, len(headers))
	c.twinBob = false
	for i, h := range headers {
		c.headers[i] = strings.ToUpper(h)
		if len(c.headers[i]) == 1 && strings.ContainsAny(c.headers[i], "SHLQ") {
			c.twinBob = true
		}
	}
	c.touch()
}

// Headers returns the table headers.
func (c *Composition) Headers() []string { return append([]string(nil), c.headers...) }

// AddRow appends a table row. The first row's first method becomes the first
// method of the composition.
func (c *Composition) AddRow(r Row) {
	if len(c.rows) == 0 && len(r.Methods) > 0 {
		c.firstMethod = r.Methods[0]
	}
	c.rows = append(c.rows, r)
	c.touch()
}

// Rows returns copies of the table rows as written.
func (c *Composition) Rows() []Row {
	out := make([]Row, len(c.rows))
	for i, r := range c.rows {
		out[i] = r.clone()
	}

	return out
}

// Prove rings the composition, records its course ends and change count, and
// checks it for truth. The grid is returned even when it is false so callers
// can inspect it; it is nil for definition errors.
func (c *Composition) Prove() (*grid.Grid, error) {
	g, err := c.prove()
	c.proved, c.truth = true, err

	return g, err
}

func (c *Composition) prove() (*grid.Grid, error) {
	if c.firstMethod == nil {
		return nil, ErrNoMethod
	}
	c.courseEnds = nil
	if c.firstChange == "" {
		c.firstChange = c.firstMethod.Stage().Rounds()
	}

	switch c.shape {
	case CallingPositions:
		return c.proveCallingPositions()
	case LeadCounts:
		return c.proveLeadCounts()
	default:
		return c.proveShorthand()
	}
}

// IsTrue returns nil when the composition is true, the reason otherwise. The
// result of the last proof is reused until the composition changes.
func (c *Composition) IsTrue() error {
	if !c.proved {
		_, _ = c.Prove()
	}

	return c.truth
}

// checkTruth is the shared tail of every proof: record the change count,
// simplify the course ends and verify the grid.
func (c *Composition) checkTruth(g *grid.Grid, m *method.Method) error {
	c.changes = g.Len() - 1
	c.simplifyCourseEnds(m)

	return g.IsTrue()
}

// IsFalse reports whether err came from the truth check rather than from the
// definition.
func IsFalse(err error) bool { return errors.Is(err, grid.ErrFalse) }
