package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/changering/generator"
	"github.com/katalvlaran/changering/library"
	"github.com/katalvlaran/changering/method"
	"github.com/katalvlaran/changering/stage"
)

type generateFlags struct {
	method     string
	stage      string
	typ        string
	format     string
	output     string
	maxChanges int
	workers    int
}

func newGenerateCmd(a *app) *cobra.Command {
	var f generateFlags
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Search for true touches of a single method",
		Long: `Searches breadth-first over plain, bob and (when the method has one) single
leads for calling strings that come round. Every true composition found is
written out, either in the composition-file form or as Peal Prover macros.

  ringer generate -m "Plain Bob" -s 6 --max-changes 720
  ringer generate -m Cambridge -s 6 -t S --format prover -o cambridge.pp`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				a.cfg.Generate.Format = f.format
			}
			if cmd.Flags().Changed("output") {
				a.cfg.Generate.Output = f.output
			}
			if cmd.Flags().Changed("max-changes") {
				a.cfg.Generate.MaxChanges = f.maxChanges
			}
			if cmd.Flags().Changed("workers") {
				a.cfg.Generate.Workers = f.workers
			}

			return a.generate(cmd, f)
		},
	}
	cmd.Flags().StringVarP(&f.method, "method", "m", "", "Method name (required)")
	cmd.Flags().StringVarP(&f.stage, "stage", "s", "", "Number of bells (required)")
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "Method type code, e.g. P, S, TB")
	cmd.Flags().StringVar(&f.format, "format", "plain", "Output format: plain or prover")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Output file (default standard output)")
	cmd.Flags().IntVar(&f.maxChanges, "max-changes", generator.DefaultMaxChanges, "Abandon touches longer than this")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Parallel provers per round (0 = one per CPU)")
	_ = cmd.MarkFlagRequired("method")
	_ = cmd.MarkFlagRequired("stage")

	return cmd
}

func (a *app) generate(cmd *cobra.Command, f generateFlags) error {
	st, err := stage.Parse(f.stage)
	if err != nil {
		return err
	}
	format, err := generator.ParseFormat(a.cfg.Generate.Format)
	if err != nil {
		return err
	}
	methods, err := a.library()
	if err != nil {
		return err
	}
	m, err := pickMethod(methods, f.method, st, f.typ)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if a.cfg.Generate.Output != "" {
		file, err := os.Create(a.cfg.Generate.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}

	em := generator.NewEmitter(w, format, m)
	if err := em.Begin(); err != nil {
		return err
	}
	res, err := generator.Generate(m,
		generator.WithContext(cmd.Context()),
		generator.WithMaxChanges(a.cfg.Generate.MaxChanges),
		generator.WithWorkers(a.cfg.Generate.Workers),
		generator.WithLogger(a.log),
		generator.WithOnFound(em.Emit),
	)
	if err != nil {
		return err
	}
	if err := em.End(); err != nil {
		return err
	}

	summary := fmt.Sprintf("%d composition(s) of %s found; %d tried, %d abandoned over %d rounds.",
		len(res.Found), m.String(), res.Tried, res.Abandoned, res.Rounds)
	fmt.Fprintln(cmd.ErrOrStderr(), a.styles.status(len(res.Found) > 0).Render(summary))

	return nil
}

// pickMethod finds name on st, narrowed by a type code when one is given.
func pickMethod(methods []*method.Method, name string, st stage.Stage, code string) (*method.Method, error) {
	found := library.Select(methods, name, st)
	if code != "" {
		typ, err := method.ParseType(code)
		if err != nil {
			return nil, err
		}
		var narrowed []*method.Method
		for _, m := range found {
			if m.Type() == typ {
				narrowed = append(narrowed, m)
			}
		}
		found = narrowed
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no method %q on %s in the library", name, st)
	}

	return found[0], nil
}
