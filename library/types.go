package library

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for reading libraries.
var (
	// ErrStartBell is returned when a text library gives a non-numeric
	// start bell.
	ErrStartBell = errors.New("library: non-numerical start bell")

	// ErrXML is returned when an XML library cannot be decoded.
	ErrXML = errors.New("library: unable to parse method XML file")

	// ErrUnknownFormat is returned for an unrecognised library format.
	ErrUnknownFormat = errors.New("library: unknown format")
)

// Severity grades a Diagnostic.
type Severity int

const (
	// Warning means a default was substituted and the method kept.
	Warning Severity = iota
	// Error means the method was skipped.
	Error
)

// String returns "warning" or "error".
func (s Severity) String() string {
	if s == Error {
		return "error"
	}

	return "warning"
}

// Diagnostic is a problem found in one library entry.
type Diagnostic struct {
	Severity Severity
	// Line is 1-based for text libraries and 0 for XML.
	Line int
	Msg  string
}

// String renders the diagnostic as "[WARNING] msg" or "msg".
func (d Diagnostic) String() string {
	if d.Severity == Warning {
		return "[WARNING] " + d.Msg
	}

	return d.Msg
}

// Diagnostics receives problems found while reading a library.
type Diagnostics interface {
	Report(d Diagnostic)
}

// Collector is a Diagnostics that keeps everything it is given.
type Collector []Diagnostic

// Report appends d.
func (c *Collector) Report(d Diagnostic) { *c = append(*c, d) }

// Errors returns the diagnostics of severity Error.
func (c Collector) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range c {
		if d.Severity == Error {
			out = append(out, d)
		}
	}

	return out
}

// discard drops every diagnostic.
type discard struct{}

func (discard) Report(Diagnostic) {}

func sink(d Diagnostics) Diagnostics {
	if d == nil {
		return discard{}
	}

	return d
}

// Format selects a library reader.
type Format int

const (
	// Auto picks XML for ".xml" files and Text otherwise.
	Auto Format = iota
	Text
	XML
)

// String returns the configuration name of the format.
func (f Format) String() string {
	switch f {
	case Text:
		return "text"
	case XML:
		return "xml"
	default:
		return "auto"
	}
}

// ParseFormat maps "auto", "text" or "xml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "text", "txt":
		return Text, nil
	case "xml":
		return XML, nil
	}

	return Auto, fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}
