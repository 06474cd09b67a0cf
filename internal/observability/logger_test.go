// File: internal/observability/logger_test.go
package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/bootstraponline/droiddriver/internal/config"
)

func TestLoggerBeforeInitialize(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	// Must be safe to use without initialization.
	Logger().Info("ignored")
}

func TestInitializeWritesToConsole(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &zaptest.Buffer{}
	cfg := config.LoggerConfig{
		Level:       "debug",
		Format:      "json",
		ServiceName: "testdriver",
	}
	Initialize(cfg, buf)

	Logger().Info("element wrapped", zap.String("selector", "#login"))
	require.NoError(t, Logger().Sync())

	lines := buf.Lines()
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "element wrapped")
	assert.Contains(t, lines[0], "testdriver")
	assert.Contains(t, lines[0], `"selector":"#login"`)
}

func TestInitializeOnlyOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	first := &zaptest.Buffer{}
	second := &zaptest.Buffer{}
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, first)
	Initialize(config.LoggerConfig{Level: "info", Format: "json"}, second)

	Logger().Info("routed")
	_ = Logger().Sync()

	assert.NotEmpty(t, first.Lines())
	assert.Empty(t, second.Lines(), "second Initialize must be a no-op")
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	buf := &zaptest.Buffer{}
	Initialize(config.LoggerConfig{Level: "chatty", Format: "json"}, buf)

	Logger().Debug("suppressed")
	Logger().Info("kept")
	_ = Logger().Sync()

	lines := buf.Lines()
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "kept")
}
