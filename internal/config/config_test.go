package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)

	cfg, err := c.GetConfig()
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Log.LogLevel)
	assert.Empty(t, cfg.Log.LogFile)
	assert.True(t, cfg.History.Enabled)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_LocalOverridesGlobal(t *testing.T) {
	global := filepath.Join(t.TempDir(), "global")
	local := filepath.Join(t.TempDir(), "local")
	writeFile(t, global, "log.rendertools.yaml", "log:\n  level: DEBUG\n  file: /tmp/rt.log\n")
	writeFile(t, local, "log.rendertools.json", `{"log": {"level": "WARN"}}`)
	writeFile(t, local, "ignored.yaml", "log:\n  level: ERROR\n")

	c, err := Load(global, local)
	require.NoError(t, err)
	cfg, err := c.GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "WARN", cfg.Log.LogLevel)
	assert.Equal(t, "/tmp/rt.log", cfg.Log.LogFile)
	assert.Equal(t, filepath.Join(local, "log.rendertools.json"), cfg.sourceOf("log.level"))
	assert.Equal(t, "default", cfg.sourceOf("history.enabled"))
}

func TestLoad_EnvironmentBeatsFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rendertools.yaml", "history:\n  dbPath: /from/file.db\n  enabled: true\n")
	t.Setenv("RENDERTOOLS_HISTORY_DBPATH", "/from/env.db")
	t.Setenv("RENDERTOOLS_HISTORY_ENABLED", "false")

	c, err := Load(dir)
	require.NoError(t, err)
	cfg, err := c.GetConfig()
	require.NoError(t, err)

	assert.Equal(t, "/from/env.db", cfg.History.DBPath)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "RENDERTOOLS_HISTORY_DBPATH environment variable", cfg.sourceOf("history.dbpath"))
}

func TestLoad_UnknownKeys(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rendertools.yaml", "log:\n  colour: blue\nserver:\n  port: 8080\n")

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"log.colour", "server.port"}, c.Unknown())
}

func TestLoad_BadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rendertools.yaml", "log: [unclosed\n")

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestNew_OverridesAndValidation(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", "/data")
	t.Chdir(t.TempDir())

	level := "DEBUG"
	cfg, err := New(&RuntimeOverrides{LogLevel: &level})
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", cfg.Log.LogLevel)
	assert.Equal(t, filepath.Join("/data", "rendertools", "history.db"), cfg.History.DBPath)
	assert.Equal(t, "--log-level flag", cfg.sourceOf("log.level"))

	bad := "LOUD"
	_, err = New(&RuntimeOverrides{LogLevel: &bad})
	assert.ErrorContains(t, err, "config validation error")
}

func TestPrintConfig(t *testing.T) {
	dbPath := "/tmp/history.db"
	cfg := &ConfigSchema{
		Log:     Log{LogLevel: "WARN"},
		History: History{Enabled: true, DBPath: dbPath},
		sources: map[string][]configSource{
			"history.dbpath": {{value: dbPath, source: "--db-path flag"}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, cfg.PrintConfig(&buf, false))
	assert.Contains(t, buf.String(), "level: WARN")
	assert.NotContains(t, buf.String(), "#")

	buf.Reset()
	require.NoError(t, cfg.PrintConfig(&buf, true))
	assert.Contains(t, buf.String(), "dbPath: /tmp/history.db # (--db-path flag)")
	assert.Contains(t, buf.String(), "level: WARN # (default)")
}

func TestGetKnownKeys(t *testing.T) {
	assert.Equal(t, map[string]bool{
		"log.level":       true,
		"log.file":        true,
		"history.enabled": true,
		"history.dbpath":  true,
	}, GetKnownKeys())
}

func TestGenerateJSONSchema(t *testing.T) {
	schema, err := GenerateJSONSchema()
	require.NoError(t, err)
	assert.Equal(t, "Rendertools Configuration Schema", schema.Title)
}
