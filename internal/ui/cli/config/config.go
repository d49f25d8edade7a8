package config

import (
	"github.com/isaacphi/rendertools/internal/appState"
	"github.com/spf13/cobra"
)

var (
	includeSources bool

	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "View configuration",
		Long:  "Print the merged configuration from defaults, config files, environment and flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := appState.Get().Config
			return cfg.PrintConfig(cmd.OutOrStdout(), includeSources)
		},
	}
)

func init() {
	ConfigCmd.Flags().BoolVarP(&includeSources, "include-sources", "s", false, "Show source file for each configuration value")
}
