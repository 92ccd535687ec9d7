package artifact

import (
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"
)

var (
	// ErrNoDir is returned when no output directory is configured.
	ErrNoDir = errors.New("artifact: no output directory")

	// ErrNoRounds is returned when a plain course does not come round
	// within the extent.
	ErrNoRounds = errors.New("artifact: plain course does not come round")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("artifact: invalid option supplied")
)

// Kind selects the artifact written for each method.
type Kind int

const (
	Description Kind = iota
	Grid
)

// Suffix returns the file name suffix for the kind.
func (k Kind) Suffix() string {
	if k == Grid {
		return ".grid.txt"
	}

	return ".desc.txt"
}

// String names the kind.
func (k Kind) String() string {
	if k == Grid {
		return "grid"
	}

	return "description"
}

// Option configures Write.
type Option func(*Options)

// Options holds the parameters of a Write.
type Options struct {
	// Overwrite replaces existing files.
	Overwrite bool

	// Workers limits concurrent renders.
	Workers int

	// Logger receives one entry per written file.
	Logger *zap.Logger

	err error
}

// DefaultOptions keeps existing files, uses one worker per CPU and logs
// nothing.
func DefaultOptions() Options {
	return Options{Workers: runtime.GOMAXPROCS(0), Logger: zap.NewNop()}
}

// WithOverwrite replaces existing files when overwrite is true.
func WithOverwrite(overwrite bool) Option {
	return func(o *Options) { o.Overwrite = overwrite }
}

// WithWorkers sets the number of concurrent renders. 0 means one per CPU.
func WithWorkers(n int) Option {
	return func(o *Options) {
		switch {
		case n < 0:
			o.err = fmt.Errorf("%w: Workers cannot be negative (%d)", ErrOptionViolation, n)
		case n == 0:
			o.Workers = runtime.GOMAXPROCS(0)
		default:
			o.Workers = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}
