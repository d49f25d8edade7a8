package appState

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/isaacphi/rendertools/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, parseLevel("INFO"))
	assert.Equal(t, slog.LevelWarn, parseLevel("WARN"))
	assert.Equal(t, slog.LevelError, parseLevel("ERROR"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestSetupLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rendertools.log")
	logger, closer, err := setupLogger(config.Log{LogLevel: "WARN", LogFile: path})
	require.NoError(t, err)
	require.NotNil(t, closer)

	logger.Info("dropped")
	logger.Warn("kept", "tool", "renderFlowchart")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "tool=renderFlowchart")
}

func TestOpenHistory(t *testing.T) {
	app := &App{Config: &config.ConfigSchema{}}
	repo, err := app.OpenHistory()
	require.NoError(t, err)
	assert.Nil(t, repo)

	app.Config.History = config.History{Enabled: true, DBPath: filepath.Join(t.TempDir(), "history.db")}
	repo, err = app.OpenHistory()
	require.NoError(t, err)
	require.NotNil(t, repo)
	assert.NoError(t, repo.Close())
}
