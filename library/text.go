package library

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

// Field positions in a text library line.
const (
	fieldName = iota
	fieldType
	fieldStage
	fieldNotation
	fieldPlainLE
	fieldBobLE
	fieldSingleLE
	fieldStartBell
	fieldStartOffset
	fieldAmendments

	requiredFields = fieldPlainLE + 1
)

// ReadText reads a pipe-delimited method library. Lines with too few
// fields, an unreadable stage or invalid place notation are reported as
// errors and skipped; an unknown type (Bob assumed) and a non-numeric
// start offset (0 used) are reported as warnings. A non-numeric start bell
// stops the read with ErrStartBell.
func ReadText(r io.Reader, diags Diagnostics) ([]*method.Method, error) {
	diags = sink(diags)
	var out []*method.Method

	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		m, err := readLine(n, line, diags)
		if err != nil {
			return out, err
		}
		if m != nil {
			out = append(out, m)
		}
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("library: %w", err)
	}

	return out, nil
}

// splitFields splits on "|" and drops trailing empty fields.
func splitFields(line string) []string {
	fields := strings.Split(line, "|")
	for len(fields) > 0 && fields[len(fields)-1] == "" {
		fields = fields[:len(fields)-1]
	}

	return fields
}

func readLine(n int, line string, diags Diagnostics) (*method.Method, error) {
	report := func(sev Severity, format string, args ...any) {
		diags.Report(Diagnostic{Severity: sev, Line: n, Msg: fmt.Sprintf(format, args...)})
	}
	field := func(fields []string, i int) string {
		if i < len(fields) {
			return fields[i]
		}

		return ""
	}

	fields := splitFields(line)
	if len(fields) < requiredFields {
		report(Error, "Method definition has incorrect number of separators (%d): %s", len(fields), line)
		return nil, nil
	}
	name := fields[fieldName]

	var opts []method.Option
	if s := field(fields, fieldStartOffset); s != "" {
		offset, err := strconv.Atoi(s)
		if err != nil {
			report(Warning, "A non-numerical start offset was specified for method %s: %s. Default value 0 used.", name, s)
		} else {
			opts = append(opts, method.WithStartOffset(offset))
		}
	}
	if s := field(fields, fieldStartBell); s != "" {
		bell, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: method %s: %s", ErrStartBell, name, s)
		}
		opts = append(opts, method.WithStartBell(bell))
	}
	for _, amendment := range strings.Split(field(fields, fieldAmendments), ",") {
		if parts := strings.Split(amendment, "="); len(parts) == 2 {
			opts = append(opts, method.WithAmendment(parts[0], parts[1]))
		}
	}

	typ, err := method.ParseType(fields[fieldType])
	if err != nil {
		report(Warning, "An unknown method type was specified for method %s: %s. Assuming Plain method.", name, fields[fieldType])
	}
	st, err := stage.Parse(fields[fieldStage])
	if err != nil {
		report(Error, "A non-numerical stage was specified for method %s: %s.", name, fields[fieldStage])
		return nil, nil
	}

	m, err := method.New(name, typ, st, fields[fieldNotation], fields[fieldPlainLE],
		field(fields, fieldBobLE), field(fields, fieldSingleLE), opts...)
	if err != nil {
		report(Error, "Invalid place notation found for method %s: %v.", name, err)
		return nil, nil
	}

	return m, nil
}

// WriteText writes methods as text library lines. A comment block naming
// the stage opens each run of methods of the same stage. Only the first
// segment of each method is written.
func WriteText(w io.Writer, methods []*method.Method) error {
	bw := bufio.NewWriter(w)
	var cur stage.Stage
	for _, m := range methods {
		if m.Stage() != cur {
			cur = m.Stage()
			fmt.Fprintf(bw, "\n#\n# %s\n#\n", cur)
		}
		fmt.Fprintln(bw, DefinitionLine(m))
	}

	return bw.Flush()
}

// DefinitionLine renders the first segment of m as a text library line
// without the optional start and amendment fields.
func DefinitionLine(m *method.Method) string {
	seg := m.Segments()[0]
	pn := seg.PlaceNotation
	if seg.Label != "" {
		pn = seg.Label + "=" + pn
	}

	return strings.Join([]string{
		m.Name(), m.Type().Code(), strconv.Itoa(m.Stage().Bells()),
		pn, seg.PlainLeadEnd, seg.BobLeadEnd, seg.SingleLeadEnd,
	}, "|")
}

// GroupByStage splits methods into runs of the same stage, keeping order.
func GroupByStage(methods []*method.Method) [][]*method.Method {
	var out [][]*method.Method
	for i, m := range methods {
		if i == 0 || m.Stage() != methods[i-1].Stage() {
			out = append(out, nil)
		}
		out[len(out)-1] = append(out[len(out)-1], m)
	}

	return out
}

// Select returns the methods called name on st, in library order.
func Select(methods []*method.Method, name string, st stage.Stage) []*method.Method {
	var out []*method.Method
	for _, m := range methods {
		if m.Name() == name && m.Stage() == st {
			out = append(out, m)
		}
	}

	return out
}
