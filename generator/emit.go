package generator

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/changering/method"
)

// Format selects how found compositions are written.
type Format int

const (
	// Plain writes a composition file: the method line, then each
	// composition followed by its Peal Prover call list as a comment.
	Plain Format = iota
	// Prover writes Peal Prover macros, one per composition.
	Prover
)

// String returns the configuration name of the format.
func (f Format) String() string {
	if f == Prover {
		return "prover"
	}

	return "plain"
}

// ParseFormat maps "plain" or "prover" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "plain":
		return Plain, nil
	case "prover", "pealprover":
		return Prover, nil
	}

	return Plain, fmt.Errorf("%w: unknown format %q", ErrOptionViolation, s)
}

var proverCalls = strings.NewReplacer(BobCall, " b", PlainCall, " p", SingleCall, " s")

// ProverCalls renders a shorthand call string as a Peal Prover call list:
// "pp-" becomes " p p b".
func ProverCalls(calls string) string { return proverCalls.Replace(calls) }

// Emitter streams found compositions to a writer.
type Emitter struct {
	w      io.Writer
	format Format
	m      *method.Method
}

// NewEmitter returns an Emitter writing compositions of m to w.
func NewEmitter(w io.Writer, format Format, m *method.Method) *Emitter {
	return &Emitter{w: w, format: format, m: m}
}

// Begin writes the preamble.
func (e *Emitter) Begin() error {
	if e.format == Prover {
		return e.line("! Generated compositions...")
	}

	return e.line("[" + e.m.Name() + "," + strconv.Itoa(e.m.Stage().Bells()) + "]\n")
}

// Emit writes one composition. Its signature matches WithOnFound.
func (e *Emitter) Emit(f Found) error {
	if e.format == Prover {
		return e.line("!c1 = {" + ProverCalls(f.Calls) + " }")
	}

	return e.line(f.Composition.String() + "# Peal Prover: " + ProverCalls(f.Calls) + "\n")
}

// End writes the trailer.
func (e *Emitter) End() error {
	if e.format == Prover {
		return e.line("composition = { c1 }")
	}

	return nil
}

func (e *Emitter) line(s string) error {
	_, err := io.WriteString(e.w, s+"\n")

	return err
}
