package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"schema-typer/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "schema-typer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, &config.Config{
		RootName: "Root",
		MaxDepth: 64,
		Log:      config.LogConfig{Level: "info", Format: "text"},
		Output:   config.OutputConfig{Format: "text", Package: "model"},
	}, cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
root_name: Document
log:
  level: debug
output:
  format: go
  package: schemas
`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Document", cfg.RootName)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "go", cfg.Output.Format)
	assert.Equal(t, "schemas", cfg.Output.Package)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("SCHEMA_TYPER_LOG_FORMAT", "json")
	t.Setenv("SCHEMA_TYPER_MAX_DEPTH", "8")

	path := writeConfig(t, "log:\n  format: text\n")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.MaxDepth)
}

func TestLoadErrors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := writeConfig(t, "log:\n  level: loud\noutput:\n  format: xml\n")
	_, err = config.Load(path)
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Contains(t, err.Error(), `log level "loud"`)
	assert.Contains(t, err.Error(), `output format "xml"`)
}

func TestLogger(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	var buf bytes.Buffer

	logger, err := cfg.Logger(&buf)
	require.NoError(t, err)
	logger.Debug("hidden")
	logger.Info("shown", "root", "Person")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown root=Person")

	buf.Reset()
	cfg.Log = config.LogConfig{Level: "debug", Format: "json"}

	logger, err = cfg.Logger(&buf)
	require.NoError(t, err)
	logger.Debug("visible")
	assert.Contains(t, buf.String(), `"msg":"visible"`)
}

func TestMarshal(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	data, err := cfg.Marshal()
	require.NoError(t, err)

	var back config.Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, *cfg, back)
	assert.Contains(t, string(data), "root_name: Root")
}
