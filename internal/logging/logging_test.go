package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/changering/internal/logging"
	"github.com/katalvlaran/changering/library"
)

func TestConfig(t *testing.T) {
	cfg, err := logging.Config("warn", false)
	require.NoError(t, err)
	assert.Equal(t, "console", cfg.Encoding)
	assert.Equal(t, zapcore.WarnLevel, cfg.Level.Level())

	cfg, err = logging.Config("warn", true)
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, cfg.Level.Level())

	_, err = logging.Config("chatty", false)
	require.Error(t, err)
}

func TestNew(t *testing.T) {
	l, err := logging.New("error", false)
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.ErrorLevel))

	_, err = logging.New("", true)
	require.NoError(t, err)
}

func TestDiagnostics(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	sink := logging.Diagnostics(zap.New(core))
	sink.Report(library.Diagnostic{Severity: library.Warning, Line: 3, Msg: "assumed Plain"})
	sink.Report(library.Diagnostic{Severity: library.Error, Line: 7, Msg: "bad notation"})

	entries := logs.AllUntimed()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "assumed Plain", entries[0].Message)
	assert.Equal(t, int64(3), entries[0].ContextMap()["line"])
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)

	// A nil logger discards.
	logging.Diagnostics(nil).Report(library.Diagnostic{Msg: "ignored"})
}
