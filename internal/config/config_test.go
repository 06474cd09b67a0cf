// File: internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger().Level)
	assert.Equal(t, "droiddriver", cfg.Logger().ServiceName)
	assert.Equal(t, 10*time.Second, cfg.Driver().DefaultActionTimeout)
	assert.Equal(t, 50.0, cfg.Driver().EventRate)
	assert.True(t, cfg.Chrome().Headless)
	assert.Equal(t, 90*time.Second, cfg.Chrome().NavigationTimeout)
}

func TestSetters(t *testing.T) {
	cfg := NewDefaultConfig()

	cfg.SetDriverDefaultActionTimeout(3 * time.Second)
	cfg.SetDriverEventRate(10)
	cfg.SetChromeHeadless(false)
	cfg.SetChromeNavigationTimeout(time.Minute)

	assert.Equal(t, 3*time.Second, cfg.Driver().DefaultActionTimeout)
	assert.Equal(t, 10.0, cfg.Driver().EventRate)
	assert.False(t, cfg.Chrome().Headless)
	assert.Equal(t, time.Minute, cfg.Chrome().NavigationTimeout)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
logger:
  level: debug
  service_name: mydriver
driver:
  default_action_timeout: 2s
  event_rate: 25
chrome:
  headless: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger().Level)
	assert.Equal(t, "mydriver", cfg.Logger().ServiceName)
	assert.Equal(t, 2*time.Second, cfg.Driver().DefaultActionTimeout)
	assert.Equal(t, 25.0, cfg.Driver().EventRate)
	assert.False(t, cfg.Chrome().Headless)
	// Untouched sections keep defaults.
	assert.Equal(t, 90*time.Second, cfg.Chrome().NavigationTimeout)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DROIDDRIVER_LOGGER_LEVEL", "warn")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logger:\n  level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logger().Level, "environment wins over the file")
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("driver:\n  event_rate: 0\n"), 0o600))

	_, err := Load(path)
	assert.ErrorContains(t, err, "event_rate")
}
