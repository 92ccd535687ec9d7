package generator

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/changering/composition"
	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
)

// verdict classifies a proved candidate.
type verdict int

const (
	falseBranch verdict = iota
	trueBranch
	unfinished
)

// outcome is the proof of one candidate.
type outcome struct {
	comp    *composition.Composition
	verdict verdict
}

// searcher encapsulates mutable search state.
type searcher struct {
	m     *method.Method
	opts  Options
	ctx   context.Context
	log   *zap.Logger
	calls []string
	work  []string
	res   *Result
}

// Generate searches for true compositions of m, applying any number of
// functional Options. Found compositions are returned in discovery order
// and passed to OnFound as they are numbered. Returns ErrNilMethod,
// ErrOptionViolation, ErrUnknownCall, a context error or a wrapped OnFound
// error; the partial Result is returned alongside any error.
func Generate(m *method.Method, opts ...Option) (*Result, error) {
	if m == nil {
		return nil, ErrNilMethod
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	s := &searcher{
		m:     m,
		opts:  o,
		ctx:   o.Ctx,
		log:   o.Logger.With(zap.String("method", m.String())),
		calls: o.Calls,
		res:   &Result{},
	}
	if len(s.calls) == 0 {
		s.calls = CallsFor(m)
	}
	s.work = append([]string(nil), s.calls...)
	s.log.Info("generating compositions",
		zap.Strings("calls", s.calls),
		zap.Int("max_changes", o.MaxChanges),
		zap.Int("workers", o.Workers))

	return s.res, s.loop()
}

// CallsFor returns the calls the method supports: plain, bob and, when the
// method has a single, single.
func CallsFor(m *method.Method) []string {
	calls := []string{PlainCall, BobCall}
	if m.HasCall(method.Single) {
		calls = append(calls, SingleCall)
	}

	return calls
}

// loop runs rounds until the work list is empty, an error or cancellation.
func (s *searcher) loop() error {
	for len(s.work) > 0 {
		if err := s.ctx.Err(); err != nil {
			return err
		}
		s.res.Rounds++
		if err := s.round(); err != nil {
			return err
		}
		s.opts.OnRound(s.res.Rounds, len(s.work))
		s.log.Info(fmt.Sprintf("%d more branches to try...", len(s.work)),
			zap.Int("round", s.res.Rounds), zap.Int("branches", len(s.work)))
	}

	return nil
}

// round proves every extension of the work list in parallel, then handles
// the outcomes in work-list order.
func (s *searcher) round() error {
	candidates := make([]string, 0, len(s.work)*len(s.calls))
	for _, branch := range s.work {
		for _, call := range s.calls {
			candidates = append(candidates, branch+call)
		}
	}

	outcomes := make([]outcome, len(candidates))
	g, ctx := errgroup.WithContext(s.ctx)
	g.SetLimit(s.opts.Workers)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := prove(s.m, cand)
			if err != nil {
				return err
			}
			outcomes[i] = out

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	remaining := len(s.work)
	next := make([]string, 0, len(candidates))
	for i, out := range outcomes {
		s.res.Tried++
		switch out.verdict {
		case trueBranch:
			if err := s.found(candidates[i], out.comp, remaining); err != nil {
				return err
			}
		case unfinished:
			if out.comp.Changes() > s.opts.MaxChanges {
				s.res.Abandoned++
				s.log.Debug(fmt.Sprintf("Number of changes exceeds %d, giving up composition %s", s.opts.MaxChanges, candidates[i]),
					zap.Int("changes", out.comp.Changes()))
				continue
			}
			next = append(next, candidates[i])
		}
	}
	s.work = next

	return nil
}

func (s *searcher) found(calls string, c *composition.Composition, remaining int) error {
	f := Found{
		Number:      len(s.res.Found) + 1,
		Calls:       calls,
		Changes:     c.Changes(),
		Composition: c,
	}
	s.res.Found = append(s.res.Found, f)
	s.log.Info(fmt.Sprintf("Found #%d", f.Number),
		zap.Int("changes", f.Changes),
		zap.String("calls", calls),
		zap.Int("branches_remaining", remaining))
	if err := s.opts.OnFound(f); err != nil {
		return fmt.Errorf("generator: OnFound error at %q: %w", calls, err)
	}

	return nil
}

// prove rings calls as a fresh unpadded shorthand composition of m.
func prove(m *method.Method, calls string) (outcome, error) {
	c := composition.New(composition.Shorthand, map[string]*method.Method{"": m}, 0)
	c.SetPadPlainLeads(false)
	c.SetFirstMethod(m)
	if err := c.AddRows(calls); err != nil {
		return outcome{}, fmt.Errorf("%w: %s: %v", ErrUnknownCall, calls, err)
	}

	err := c.IsTrue()
	switch {
	case err == nil:
		return outcome{comp: c, verdict: trueBranch}, nil
	case errors.Is(err, grid.ErrDoesNotEndInRounds):
		return outcome{comp: c, verdict: unfinished}, nil
	case composition.IsFalse(err):
		return outcome{comp: c, verdict: falseBranch}, nil
	default:
		return outcome{}, fmt.Errorf("%w: %s: %v", ErrUnknownCall, calls, err)
	}
}
