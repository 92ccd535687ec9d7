package prover

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/changering/parser"
)

// ErrNoLibrary is returned when no methods are supplied.
var ErrNoLibrary = errors.New("prover: empty method library")

// Option configures a run.
type Option func(*Options)

// Options holds the parameters of a run.
type Options struct {
	// Rewrite replaces each file with its rewritten form.
	Rewrite bool

	// OutputDir receives the stripped listing of each file; empty
	// disables it.
	OutputDir string

	// Overwrite truncates stripped listings instead of appending.
	Overwrite bool

	// Logger receives progress; nil means no logging.
	Logger *zap.Logger
}

// DefaultOptions neither rewrites nor strips and logs nothing.
func DefaultOptions() Options {
	return Options{Logger: zap.NewNop()}
}

// WithRewrite enables rewriting files in place.
func WithRewrite(rewrite bool) Option {
	return func(o *Options) { o.Rewrite = rewrite }
}

// WithOutputDir sets the directory for stripped listings.
func WithOutputDir(dir string) Option {
	return func(o *Options) { o.OutputDir = dir }
}

// WithOverwrite truncates stripped listings before writing.
func WithOverwrite(overwrite bool) Option {
	return func(o *Options) { o.Overwrite = overwrite }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// Failure is a composition that did not prove.
type Failure struct {
	// Number is the 1-based position of the composition in its file.
	Number int
	// Line is the first line of the composition.
	Line int
	Err  error
}

// String renders the failure as it is logged.
func (f Failure) String() string {
	return fmt.Sprintf("Composition #%d: %v", f.Number, f.Err)
}

// Report is the outcome of proving one file.
type Report struct {
	Path     string
	Total    int
	Proved   int
	Failures []Failure

	// Diagnostics are the mismatches found while rewriting.
	Diagnostics []parser.Diagnostic

	// Rewritten is set when the file was replaced.
	Rewritten bool

	// Stripped is the listing path written, if any.
	Stripped string
}

// Summary returns the proved-of-total line.
func (r *Report) Summary() string {
	if r.Proved < r.Total {
		return fmt.Sprintf("%d of %d composition(s) proved.", r.Proved, r.Total)
	}

	return fmt.Sprintf("All %d composition(s) proved.", r.Total)
}

// AllProved reports whether every composition in the file is true.
func (r *Report) AllProved() bool { return r.Proved == r.Total }
