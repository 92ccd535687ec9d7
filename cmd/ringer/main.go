// Command ringer proves, generates and documents change-ringing
// compositions.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/changering/internal/config"
	"github.com/katalvlaran/changering/internal/logging"
	"github.com/katalvlaran/changering/library"
	"github.com/katalvlaran/changering/method"
)

// app carries the state shared by every subcommand.
type app struct {
	// Global flags
	cfgPath string
	methods string
	verbose bool

	cfg config.Config
	log *zap.Logger
	// ownLog is set when the logger was built here and must be synced.
	ownLog bool
	styles styles
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ringer",
		Short: "Prove and generate change-ringing compositions",
		Long: `ringer works with compositions written in the usual shorthand, lead-count
and calling-position forms against a library of method definitions.

  ringer prove compositions/        prove every file, rewriting or stripping them
  ringer generate -m "Plain Bob" -s 6
  ringer describe                   write a description file per method
  ringer grid                       write the plain course of each method`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.ownLog && a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", config.FileName, "Configuration file")
	root.PersistentFlags().StringVarP(&a.methods, "methods", "l", "", "Method library (overrides library.path)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newProveCmd(a),
		newGenerateCmd(a),
		newArtifactCmd(a, "describe"),
		newArtifactCmd(a, "grid"),
		newConvertCmd(a),
		newConfigCmd(a),
	)

	return root
}

// setup loads the configuration, applies the global flags and builds the
// logger unless one was supplied.
func (a *app) setup(cmd *cobra.Command) error {
	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(a.cfgPath); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.methods != "" {
		cfg.Library.Path = a.methods
	}
	a.cfg = cfg
	a.styles = newStyles()

	if a.log != nil {
		return nil
	}
	a.log, err = logging.New(cfg.Log.Level, a.verbose)
	if err != nil {
		return err
	}
	a.ownLog = true

	return nil
}

// library reads the configured method library, logging its diagnostics.
func (a *app) library() ([]*method.Method, error) {
	format, err := library.ParseFormat(a.cfg.Library.Format)
	if err != nil {
		return nil, err
	}
	methods, err := library.Load(a.cfg.Library.Path, format, logging.Diagnostics(a.log))
	if err != nil {
		return nil, err
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no methods found in %s", a.cfg.Library.Path)
	}
	a.log.Debug("Method library loaded",
		zap.String("path", a.cfg.Library.Path),
		zap.Int("methods", len(methods)))

	return methods, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(&app{}).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
