package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/changering/artifact"
	"github.com/katalvlaran/changering/method"
)

// newArtifactCmd builds "describe" or "grid"; they differ only in the file
// written per method.
func newArtifactCmd(a *app, use string) *cobra.Command {
	kind, short := artifact.Description, "Write a description file for each method"
	if use == "grid" {
		kind, short = artifact.Grid, "Write the plain course of each method"
	}

	var (
		outputDir string
		overwrite bool
		workers   int
	)
	cmd := &cobra.Command{
		Use:   use + " [method name...]",
		Short: short,
		Long: short + ` in the library, or only those named.
Files are named <stage>_<type>_<name>` + kind.Suffix() + ` and existing ones are kept
unless --overwrite is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("output-dir") {
				a.cfg.Artifacts.OutputDir = outputDir
			}
			if cmd.Flags().Changed("overwrite") {
				a.cfg.Artifacts.Overwrite = overwrite
			}

			return a.artifacts(cmd, kind, args, workers)
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Output directory (overrides artifacts.output_dir)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing files")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel writers (0 = one per CPU)")

	return cmd
}

func (a *app) artifacts(cmd *cobra.Command, kind artifact.Kind, names []string, workers int) error {
	methods, err := a.library()
	if err != nil {
		return err
	}
	methods = byName(methods, names)
	if len(methods) == 0 {
		return fmt.Errorf("no methods named %q in the library", names)
	}

	a.log.Info("Writing " + kind.String() + " files to " + a.cfg.Artifacts.OutputDir)
	written, err := artifact.Write(a.cfg.Artifacts.OutputDir, methods, kind,
		artifact.WithOverwrite(a.cfg.Artifacts.Overwrite),
		artifact.WithWorkers(workers),
		artifact.WithLogger(a.log),
	)
	summary := fmt.Sprintf("%d of %d %s file(s) written.", len(written), len(methods), kind)
	fmt.Fprintln(cmd.OutOrStdout(), a.styles.status(err == nil).Render(summary))

	return err
}

// byName keeps the methods whose name is listed; no names keeps all.
func byName(methods []*method.Method, names []string) []*method.Method {
	if len(names) == 0 {
		return methods
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []*method.Method
	for _, m := range methods {
		if want[m.Name()] {
			out = append(out, m)
		}
	}

	return out
}
