package generator

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/katalvlaran/changering/composition"
)

// Sentinel errors for generation.
var (
	// ErrNilMethod is returned when Generate is called without a method.
	ErrNilMethod = errors.New("generator: method is nil")

	// ErrUnknownCall is returned when a candidate uses a call the method
	// does not define.
	ErrUnknownCall = errors.New("generator: composition made unknown call")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("generator: invalid option supplied")
)

// DefaultMaxChanges is the change ceiling past which an unfinished branch
// is abandoned.
const DefaultMaxChanges = 5300

// Shorthand call codes the search extends branches with.
const (
	PlainCall  = "p"
	BobCall    = "-"
	SingleCall = "s"
)

// Option configures Generate via functional arguments. Invalid values are
// recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds the parameters of a search.
type Options struct {
	// Ctx allows cancellation between and during rounds.
	Ctx context.Context

	// MaxChanges is the ceiling for unfinished branches.
	MaxChanges int

	// Workers limits concurrent proofs per round.
	Workers int

	// Calls overrides the calls derived from the method.
	Calls []string

	// Logger receives progress; nil means no logging.
	Logger *zap.Logger

	// OnFound is called for every true composition in discovery order.
	// Returning an error stops the search.
	OnFound func(Found) error

	// OnRound is called after each round with the next work-list size.
	OnRound func(round, branches int)

	err error
}

// DefaultOptions returns a background context, the default ceiling, one
// worker per CPU, calls taken from the method and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		MaxChanges: DefaultMaxChanges,
		Workers:    runtime.GOMAXPROCS(0),
		Logger:     zap.NewNop(),
		OnFound:    func(Found) error { return nil },
		OnRound:    func(int, int) {},
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxChanges sets the change ceiling.
//
//	n > 0: abandon unfinished branches longer than n changes
//	n <= 0: invalid option → ErrOptionViolation
func WithMaxChanges(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: MaxChanges must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxChanges = n
	}
}

// WithWorkers sets the number of concurrent proofs. 0 means one per CPU.
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

// WithCalls restricts or extends the calls tried. Each must be one of
// PlainCall, BobCall or SingleCall.
func WithCalls(calls ...string) Option {
	return func(o *Options) {
		if len(calls) == 0 {
			o.err = fmt.Errorf("%w: no calls", ErrOptionViolation)
			return
		}
		for _, c := range calls {
			if c != PlainCall && c != BobCall && c != SingleCall {
				o.err = fmt.Errorf("%w: unknown call %q", ErrOptionViolation, c)
				return
			}
		}
		o.Calls = append([]string(nil), calls...)
	}
}

// WithLogger sets the progress logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithOnFound registers the hook for true compositions.
func WithOnFound(fn func(Found) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnFound = fn
		}
	}
}

// WithOnRound registers the hook run after each round.
func WithOnRound(fn func(round, branches int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnRound = fn
		}
	}
}

// Found is a true composition discovered by the search.
type Found struct {
	// Number counts from 1 in discovery order.
	Number int

	// Calls is the shorthand call string, e.g. "pp-pp-".
	Calls string

	// Changes is the length of the composition.
	Changes int

	// Composition is the proved composition.
	Composition *composition.Composition
}

// Result summarises a search.
type Result struct {
	Found     []Found
	Rounds    int
	Tried     int
	Abandoned int
}
