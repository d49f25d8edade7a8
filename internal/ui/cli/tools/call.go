package tools

import (
	"fmt"

	"github.com/isaacphi/rendertools/internal/appState"
	"github.com/isaacphi/rendertools/internal/mcp"
	"github.com/isaacphi/rendertools/internal/registry"
	"github.com/isaacphi/rendertools/internal/render"
	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [json|-]",
	Short: "Dispatch one tool call through the dry-run renderer",
	Long:  "Validate and normalize a tool call exactly as the MCP server does, record it in the call history, and print what the renderer would receive.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readArguments(cmd.InOrStdin(), args[1:])
		if err != nil {
			return err
		}

		app := appState.Get()
		history, err := app.OpenHistory()
		if err != nil {
			return err
		}
		if history != nil {
			defer history.Close()
		}

		server := mcp.New(registry.Default(), render.DryRun{}, history, app.Logger)
		res, err := server.Call(cmd.Context(), args[0], raw)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "request %s\n", res.RequestID)
		fmt.Fprintln(cmd.OutOrStdout(), res.Text)
		return nil
	},
}
