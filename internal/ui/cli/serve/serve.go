package serve

import (
	"github.com/isaacphi/rendertools/internal/appState"
	"github.com/isaacphi/rendertools/internal/mcp"
	"github.com/isaacphi/rendertools/internal/registry"
	"github.com/isaacphi/rendertools/internal/render"
	"github.com/spf13/cobra"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the render tools over MCP stdio",
	Long:  "Register every render tool on an MCP server speaking over stdin/stdout. Calls are validated, normalized and answered by the dry-run renderer.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := appState.Get()
		history, err := app.OpenHistory()
		if err != nil {
			return err
		}
		if history != nil {
			defer history.Close()
		}

		server := mcp.New(registry.Default(), render.DryRun{}, history, app.Logger)
		return server.Serve(cmd.Context())
	},
}
