package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/isaacphi/rendertools/internal/appState"
	"github.com/isaacphi/rendertools/internal/config"
	configCmd "github.com/isaacphi/rendertools/internal/ui/cli/config"
	"github.com/isaacphi/rendertools/internal/ui/cli/history"
	"github.com/isaacphi/rendertools/internal/ui/cli/serve"
	"github.com/isaacphi/rendertools/internal/ui/cli/tools"
	"github.com/spf13/cobra"
)

var (
	logLevel string
	logFile  string
	dbPath   string
)

var rootCmd = &cobra.Command{
	Use:               "rendertools",
	Short:             "Diagram render tools for agents",
	Long:              `Inspect, validate and serve the diagram render tools over MCP`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
}

func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Set up the root command to use this context
	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Add global flags for logging
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set logging level (DEBUG, INFO, WARN, ERROR)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (defaults to stderr)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db-path", "", "Call history database path")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Initialize app with flag overrides
		overrides := &config.RuntimeOverrides{}
		if logLevel != "" {
			overrides.LogLevel = &logLevel
		}
		if logFile != "" {
			overrides.LogFile = &logFile
		}
		if dbPath != "" {
			overrides.DBPath = &dbPath
		}
		return appState.Initialize(overrides)
	}

	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return appState.Cleanup()
	}

	// Remove "completions" command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		configCmd.ConfigCmd,
		tools.ToolsCmd,
		serve.ServeCmd,
		history.HistoryCmd,
	)
}
