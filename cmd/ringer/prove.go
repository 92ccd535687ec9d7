package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/changering/prover"
)

func newProveCmd(a *app) *cobra.Command {
	var (
		rewrite   bool
		outputDir string
		overwrite bool
	)
	cmd := &cobra.Command{
		Use:   "prove <path>",
		Short: "Prove every composition in a file or directory",
		Long: `Proves each composition in the file, or in every file below the directory,
and reports how many came out true.

With --rewrite each file is replaced by its completed form: change counts,
first changes and course ends are filled in and checked. With --output-dir
a stripped listing of each file is written there.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("rewrite") {
				a.cfg.Prove.Rewrite = rewrite
			}
			if cmd.Flags().Changed("output-dir") {
				a.cfg.Prove.OutputDir = outputDir
			}
			if cmd.Flags().Changed("overwrite") {
				a.cfg.Prove.Overwrite = overwrite
			}

			return a.prove(cmd, args[0])
		},
	}
	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "Rewrite files in place")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "Directory for stripped listings")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Truncate stripped listings instead of appending")

	return cmd
}

func (a *app) prove(cmd *cobra.Command, path string) error {
	methods, err := a.library()
	if err != nil {
		return err
	}

	reports, runErr := prover.Run(path, methods,
		prover.WithRewrite(a.cfg.Prove.Rewrite),
		prover.WithOutputDir(a.cfg.Prove.OutputDir),
		prover.WithOverwrite(a.cfg.Prove.Overwrite),
		prover.WithLogger(a.log),
	)

	out := cmd.OutOrStdout()
	total, proved := 0, 0
	for _, rep := range reports {
		total += rep.Total
		proved += rep.Proved
		fmt.Fprintf(out, "%s %s\n", a.styles.Muted.Render(rep.Path+":"), a.styles.status(rep.AllProved()).Render(rep.Summary()))
		if rep.Rewritten {
			fmt.Fprintf(out, "  %s\n", a.styles.Muted.Render("rewritten"))
		}
	}
	summary := fmt.Sprintf("%d of %d composition(s) proved in %d file(s).", proved, total, len(reports))
	fmt.Fprintln(out, a.styles.status(proved == total && runErr == nil).Render(summary))

	return runErr
}
