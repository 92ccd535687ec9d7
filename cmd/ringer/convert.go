package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/changering/internal/logging"
	"github.com/katalvlaran/changering/library"
	"github.com/katalvlaran/changering/method"
)

func newConvertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <library.xml>",
		Short: "Convert an XML method library to text libraries, one per stage",
		Long: `Reads an XML method library and writes its methods as text definitions,
one file per stage next to the input: methods.xml becomes methods_Minor.txt,
methods_Major.txt and so on.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := a.convert(args[0])
			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), a.styles.Muted.Render(p))
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.styles.OK.Render(fmt.Sprintf("%d library file(s) written.", len(paths))))

			return nil
		},
	}
}

// convert writes one text library per stage and returns their paths.
func (a *app) convert(path string) ([]string, error) {
	methods, err := library.Load(path, library.XML, logging.Diagnostics(a.log))
	if err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	var paths []string
	for _, group := range library.GroupByStage(methods) {
		target := base + "_" + group[0].Stage().String() + ".txt"
		if err := writeLibrary(target, group); err != nil {
			return paths, err
		}
		a.log.Info("Converted", zap.String("stage", group[0].Stage().String()), zap.Int("methods", len(group)), zap.String("path", target))
		paths = append(paths, target)
	}

	return paths, nil
}

func writeLibrary(path string, group []*method.Method) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := library.WriteText(f, group); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}
