package appState

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/isaacphi/rendertools/internal/config"
	"github.com/isaacphi/rendertools/internal/repository"
	"github.com/isaacphi/rendertools/internal/repository/sqlite"
)

// App holds the global application state
type App struct {
	Config *config.ConfigSchema
	Logger *slog.Logger
	closer io.Closer // For cleanup of resources like log files
}

var (
	globalApp *App
	initOnce  sync.Once
	initErr   error
	mu        sync.RWMutex
)

// Initialize creates the global app instance with the given overrides
func Initialize(overrides *config.RuntimeOverrides) error {
	initOnce.Do(func() {
		// Load base configuration first
		cfg, err := config.New(overrides)
		if err != nil {
			initErr = fmt.Errorf("failed to load config: %w", err)
			return
		}

		// Set up logger
		logger, closer, err := setupLogger(cfg.Log)
		if err != nil {
			initErr = fmt.Errorf("failed to setup logger: %w", err)
			return
		}

		mu.Lock()
		globalApp = &App{
			Config: cfg,
			Logger: logger,
			closer: closer,
		}
		mu.Unlock()

		// Set as default logger
		slog.SetDefault(logger)
	})
	return initErr
}

// Get returns the global app instance and panics if not initialized
func Get() *App {
	mu.RLock()
	defer mu.RUnlock()

	if globalApp == nil {
		panic("app not initialized")
	}
	return globalApp
}

// TryGet returns the global app instance and a boolean indicating if it's initialized
func TryGet() (*App, bool) {
	mu.RLock()
	defer mu.RUnlock()
	return globalApp, globalApp != nil
}

// OpenHistory opens the call history, or returns nil when history is disabled
func (a *App) OpenHistory() (repository.CallRepository, error) {
	if !a.Config.History.Enabled {
		return nil, nil
	}
	repo, err := sqlite.Initialize(a.Config.History.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	return repo, nil
}

// Cleanup performs cleanup of app resources
func Cleanup() error {
	mu.Lock()
	defer mu.Unlock()

	if globalApp != nil && globalApp.closer != nil {
		return globalApp.closer.Close()
	}
	return nil
}

func setupLogger(cfg config.Log) (*slog.Logger, io.Closer, error) {
	level := parseLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
	}

	if cfg.LogFile == "" {
		// Use stderr so stdout stays free for tool output and the MCP stdio channel
		handler := slog.NewTextHandler(os.Stderr, opts)
		return slog.New(handler), nil, nil
	}

	// Create log file
	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	handler := slog.NewTextHandler(file, opts)
	return slog.New(handler), file, nil
}

func parseLevel(name string) slog.Level {
	switch name {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	}
	return slog.LevelInfo
}
