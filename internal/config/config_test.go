package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlmeasure/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stlmeasure.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 1.04, cfg.Density)
	assert.Equal(t, config.OutputText, cfg.Output)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.False(t, cfg.Strict)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
density: 1.25
output: json
jobs: 8
log:
  level: debug
fetch:
  timeout: 5s
  maxRetries: 1
watch:
  debounce: 250ms
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1.25, cfg.Density)
	assert.Equal(t, config.OutputJSON, cfg.Output)
	assert.Equal(t, 8, cfg.Jobs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, uint(1), cfg.Fetch.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
	// Untouched values keep their defaults
	assert.Equal(t, ":8080", cfg.Server.Listen)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "density: 1.25\noutput: json\n")
	t.Setenv("STLMEASURE_DENSITY", "7.8")
	t.Setenv("STLMEASURE_OUTPUT", "yaml")
	t.Setenv("STLMEASURE_STRICT", "true")
	t.Setenv("STLMEASURE_LISTEN", "127.0.0.1:9000")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7.8, cfg.Density)
	assert.Equal(t, config.OutputYAML, cfg.Output)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
}

func TestLoadInvalidEnvironment(t *testing.T) {
	t.Setenv("STLMEASURE_JOBS", "many")

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STLMEASURE_JOBS")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*config.Config) {}},
		{name: "zero density", mutate: func(c *config.Config) { c.Density = 0 }, wantErr: true},
		{name: "negative density", mutate: func(c *config.Config) { c.Density = -1 }, wantErr: true},
		{name: "unknown output", mutate: func(c *config.Config) { c.Output = "xml" }, wantErr: true},
		{name: "no jobs", mutate: func(c *config.Config) { c.Jobs = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *config.Config) { c.Log.Level = "loud" }, wantErr: true},
		{name: "empty listen", mutate: func(c *config.Config) { c.Server.Listen = "" }, wantErr: true},
		{name: "zero fetch timeout", mutate: func(c *config.Config) { c.Fetch.Timeout = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
