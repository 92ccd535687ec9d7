package prover

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/parser"
)

// Tally proves every built composition and counts the true ones. A
// composition that could not be built counts as a failure with its build
// error.
func Tally(entries []parser.Entry) (proved int, failures []Failure) {
	for i, e := range entries {
		err := e.Err
		if err == nil {
			err = e.Composition.IsTrue()
		}
		if err != nil {
			failures = append(failures, Failure{Number: i + 1, Line: e.Line, Err: err})
			continue
		}
		proved++
	}

	return proved, failures
}

// ProveFile proves the compositions in the file at path. A parse error
// stops the file and is returned with a report of what was done.
func ProveFile(path string, lib []*method.Method, opts ...Option) (*Report, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return proveFile(path, lib, o)
}

func proveFile(path string, lib []*method.Method, o Options) (*Report, error) {
	rep := &Report{Path: path}
	if len(lib) == 0 {
		return rep, ErrNoLibrary
	}
	log := o.Logger.With(zap.String("file", path))
	log.Info("Compositions File: " + path)

	data, err := os.ReadFile(path)
	if err != nil {
		return rep, fmt.Errorf("prover: %w", err)
	}
	events, err := parser.Parse(bytes.NewReader(data), lib)
	if err != nil {
		log.Error(err.Error())
		return rep, fmt.Errorf("%s: %w", path, err)
	}

	entries := parser.Build(events)
	rep.Total = len(entries)
	rep.Proved, rep.Failures = Tally(entries)
	for _, f := range rep.Failures {
		log.Error(f.String(), zap.Int("line", f.Line))
	}
	log.Info(rep.Summary(), zap.Int("proved", rep.Proved), zap.Int("total", rep.Total))

	if o.Rewrite && rep.Total > 0 {
		out, diags := parser.Rewrite(events, entries)
		rep.Diagnostics = diags
		for _, d := range diags {
			log.Warn(d.String())
		}
		out += "\n"
		if out != string(data) {
			if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
				return rep, fmt.Errorf("prover: %w", err)
			}
			rep.Rewritten = true
			if events, err = parser.ParseString(out, lib); err != nil {
				return rep, fmt.Errorf("%s: rewritten: %w", path, err)
			}
		}
	}

	if o.OutputDir != "" {
		target := filepath.Join(o.OutputDir, filepath.Base(path))
		if err := writeStripped(target, parser.Strip(events), o.Overwrite); err != nil {
			return rep, fmt.Errorf("prover: %w", err)
		}
		rep.Stripped = target
	}

	return rep, nil
}

func writeStripped(path, text string, overwrite bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	flags := os.O_CREATE | os.O_WRONLY | os.O_APPEND
	if overwrite {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// Run proves root, which may be a single file or a directory walked in
// lexical order. Files that fail are reported and the run continues; their
// errors are returned together.
func Run(root string, lib []*method.Method, opts ...Option) ([]*Report, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		reports []*Report
		result  *multierror.Error
	)
	skip := ""
	if o.OutputDir != "" {
		skip, _ = filepath.Abs(o.OutputDir)
	}
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result = multierror.Append(result, err)
			return nil
		}
		if d.IsDir() {
			if abs, _ := filepath.Abs(path); skip != "" && abs == skip {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		rep, err := proveFile(path, lib, o)
		reports = append(reports, rep)
		if err != nil {
			result = multierror.Append(result, err)
		}

		return nil
	})
	if walkErr != nil {
		result = multierror.Append(result, walkErr)
	}

	return reports, result.ErrorOrNil()
}
