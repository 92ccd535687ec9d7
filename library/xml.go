package library

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

// xmlNode is either the <properties> or a <method> child of a <methodSet>.
type xmlNode struct {
	XMLName        xml.Name
	Stage          string             `xml:"stage"`
	Classification *xmlClassification `xml:"classification"`
	Name           string             `xml:"name"`
	Notation       *string            `xml:"notation"`
}

type xmlClassification struct {
	Little string `xml:"little,attr"`
	Value  string `xml:",chardata"`
}

type xmlMethodSet struct {
	Nodes []xmlNode `xml:",any"`
}

// ReadXML reads the <methodSet> elements of an XML method collection,
// wherever they appear in the document. Methods are returned ordered by
// stage, then type and name. A method with invalid place notation is
// reported and ends its set.
func ReadXML(r io.Reader, diags Diagnostics) ([]*method.Method, error) {
	diags = sink(diags)
	report := func(format string, args ...any) {
		diags.Report(Diagnostic{Severity: Error, Msg: fmt.Sprintf(format, args...)})
	}

	var out []*method.Method
	dec := xml.NewDecoder(r)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			report("Unable to parse method XML file: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrXML, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "methodSet" {
			continue
		}
		var set xmlMethodSet
		if err := dec.DecodeElement(&set, &start); err != nil {
			report("Unable to parse method XML file: %v", err)
			return nil, fmt.Errorf("%w: %w", ErrXML, err)
		}
		out = append(out, readSet(set, report)...)
	}
	slices.SortStableFunc(out, (*method.Method).Compare)

	return out, nil
}

func readSet(set xmlMethodSet, report func(string, ...any)) []*method.Method {
	var (
		out     []*method.Method
		st      stage.Stage
		setType = method.Principle
	)
	for _, node := range set.Nodes {
		switch node.XMLName.Local {
		case "properties":
			if node.Stage != "" {
				s, err := stage.Parse(node.Stage)
				if err != nil {
					report("Invalid stage in method set: %s", node.Stage)
					return out
				}
				st = s
			}
			if node.Classification != nil {
				setType = classification(node.Classification)
			}
		case "method":
			if st == 0 {
				report("No stage found before method")
				return out
			}
			typ := setType
			if node.Classification != nil {
				typ = classification(node.Classification)
			}
			if node.Notation == nil {
				report("Error in place notation: no notation for %s", node.Name)
				return out
			}
			pn, le := splitNotation(*node.Notation)
			offset := 1
			if le != "" {
				offset = stage.PositionOf(le[len(le)-1])
			}
			m, err := method.New(strings.TrimSpace(node.Name), typ, st, pn, le, "", "", method.WithStartOffset(offset))
			if err != nil {
				report("Error in place notation: %v", err)
				return out
			}
			out = append(out, m)
		}
	}

	return out
}

// splitNotation turns the collection form "x16x16x16,12" into a symmetric
// notation and its lead end. When the first half is the shorter one the
// second half is the symmetric part, doubled out with a "+" prefix, and the
// first half is the lead end.
func splitNotation(s string) (pn, le string) {
	parts := strings.Split(strings.ReplaceAll(strings.TrimSpace(s), "-", "x"), ",")
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) < 2 {
		parts = []string{parts[0], "x"}
	}
	if len(parts[0]) < len(parts[1]) {
		return "+" + parts[1] + reverse(parts[1]), parts[0]
	}

	return "&" + parts[0], parts[1]
}

func reverse(s string) string {
	b := []byte(s)
	slices.Reverse(b)

	return string(b)
}

// classification maps a collection classification to a Type. Surprise and
// Alliance have little variants; anything unrecognised is Principle.
func classification(c *xmlClassification) method.Type {
	name := strings.TrimSpace(c.Value)
	little := c.Little == "true"
	switch name {
	case "Surprise":
		if little {
			return method.LittleSurprise
		}
		return method.Surprise
	case "Alliance":
		if little {
			return method.LittleAlliance
		}
		return method.Alliance
	}
	if t, ok := method.TypeByName(name); ok {
		return t
	}

	return method.Principle
}
