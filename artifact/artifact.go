package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/changering/grid"
	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/notation"
)

// PlainCourse rings m's plain lead from its start offset, wrapping round to
// the start of the lead, and repeats the lead until the grid returns to
// rounds.
func PlainCourse(m *method.Method) (*grid.Grid, error) {
	var lead notation.Notation
	for i := 0; i < m.NumSegments(); i++ {
		lead = append(lead, m.LeadNotation(method.Plain, i)...)
	}

	g := grid.New(m.Stage())
	offset := m.StartOffset() % len(lead)
	for leads := 0; leads == 0 || !g.EndsInRounds(); leads++ {
		if leads > m.Stage().Extent() {
			return nil, fmt.Errorf("%w: %s", ErrNoRounds, m)
		}
		g.ApplyFrom(lead, offset)
		g.Apply(lead, 0, offset-1)
	}

	return g, nil
}

// Render returns the artifact text for m.
func Render(m *method.Method, kind Kind) (string, error) {
	if kind == Grid {
		g, err := PlainCourse(m)
		if err != nil {
			return "", err
		}

		return g.String() + "\n", nil
	}

	return strings.ToUpper(m.String()) + "\n" + m.Description() + "\n", nil
}

// Path returns the file the artifact of m is written to inside dir.
func Path(dir string, m *method.Method, kind Kind) string {
	return filepath.Join(dir, m.FileIdentifier()+kind.Suffix())
}

// Write renders kind for every method into dir, creating it if needed, and
// returns the paths written in method order. Failures are collected and
// returned together after every method has been tried.
func Write(dir string, methods []*method.Method, kind Kind, opts ...Option) ([]string, error) {
	if dir == "" {
		return nil, ErrNoDir
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("artifact: %w", err)
	}

	written := make([]bool, len(methods))
	errs := make([]error, len(methods))
	var g errgroup.Group
	g.SetLimit(o.Workers)
	for i, m := range methods {
		i, m := i, m
		g.Go(func() error {
			written[i], errs[i] = write(Path(dir, m, kind), m, kind, o.Overwrite)
			return nil
		})
	}
	_ = g.Wait()

	var (
		paths  []string
		result *multierror.Error
	)
	for i, m := range methods {
		if errs[i] != nil {
			o.Logger.Error("unable to write "+kind.String(), zap.String("method", m.String()), zap.Error(errs[i]))
			result = multierror.Append(result, fmt.Errorf("%s: %w", m, errs[i]))
			continue
		}
		if written[i] {
			o.Logger.Info(" - "+m.String(), zap.String("path", Path(dir, m, kind)))
			paths = append(paths, Path(dir, m, kind))
		}
	}

	return paths, result.ErrorOrNil()
}

func write(path string, m *method.Method, kind Kind, overwrite bool) (bool, error) {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return false, err
		}
	}
	text, err := Render(m, kind)
	if err != nil {
		return false, err
	}

	return true, os.WriteFile(path, []byte(text), 0o644)
}
