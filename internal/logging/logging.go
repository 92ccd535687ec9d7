// Package logging builds the command-line logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/changering/library"
)

// New builds a console logger writing to standard error at level; verbose
// forces debug.
func New(level string, verbose bool) (*zap.Logger, error) {
	cfg, err := Config(level, verbose)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: failed to initialize logger: %w", err)
	}

	return logger, nil
}

// Config returns the zap configuration New builds from.
func Config(level string, verbose bool) (zap.Config, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.DisableStacktrace = true
	cfg.Sampling = nil

	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return cfg, fmt.Errorf("logging: %w", err)
	}
	cfg.Level = lvl
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return cfg, nil
}

// Diagnostics returns a sink that logs library diagnostics.
func Diagnostics(l *zap.Logger) library.Diagnostics {
	if l == nil {
		l = zap.NewNop()
	}

	return diagnostics{l}
}

type diagnostics struct{ log *zap.Logger }

func (d diagnostics) Report(diag library.Diagnostic) {
	fields := []zap.Field{zap.Int("line", diag.Line)}
	if diag.Severity == library.Warning {
		d.log.Warn(diag.Msg, fields...)
		return
	}
	d.log.Error(diag.Msg, fields...)
}
