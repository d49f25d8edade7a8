package tools

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/isaacphi/rendertools/internal/domain"
	"github.com/isaacphi/rendertools/internal/mcp"
	"github.com/isaacphi/rendertools/internal/registry"
	"github.com/spf13/cobra"
)

var ToolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect and validate the render tools",
}

var listCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the render tools",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		mcp.PrintTools(cmd.OutOrStdout(), registry.Default().Tools())
	},
}

var showCmd = &cobra.Command{
	Use:   "show [tool]",
	Short: "Show a tool's description and parameters",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, err := lookup(args[0])
		if err != nil {
			return err
		}
		mcp.PrintTool(cmd.OutOrStdout(), def)
		return nil
	},
}

type toolSchema struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

var schemaCmd = &cobra.Command{
	Use:   "schema [tool]",
	Short: "Print the JSON Schema of one tool, or of every tool",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out any
		if len(args) == 1 {
			def, err := lookup(args[0])
			if err != nil {
				return err
			}
			out = def.JSONSchema
		} else {
			var all []toolSchema
			for _, def := range registry.Default().Tools() {
				all = append(all, toolSchema{Name: def.Name, Description: def.Description, InputSchema: def.JSONSchema})
			}
			out = all
		}
		return writeJSON(cmd.OutOrStdout(), out)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [tool] [json|-]",
	Short: "Validate arguments for a tool",
	Long:  "Validate JSON arguments for a tool and print the normalized input. Arguments are read from stdin when omitted or '-'.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readArguments(cmd.InOrStdin(), args[1:])
		if err != nil {
			return err
		}

		in, err := registry.Default().Validate(args[0], raw)
		if err != nil {
			if invalid, ok := err.(*domain.InvalidInputError); ok {
				for _, v := range invalid.Violations {
					fmt.Fprintf(cmd.ErrOrStderr(), "  %s\n", v)
				}
			}
			return err
		}
		return writeJSON(cmd.OutOrStdout(), in)
	},
}

func init() {
	ToolsCmd.AddCommand(listCmd, showCmd, schemaCmd, validateCmd, callCmd)
}

func lookup(name string) (registry.ToolDefinition, error) {
	def, ok := registry.Default().Lookup(name)
	if !ok {
		return def, &domain.UnknownToolError{Name: name}
	}
	return def, nil
}

func readArguments(stdin io.Reader, args []string) (json.RawMessage, error) {
	if len(args) == 1 && args[0] != "-" {
		return json.RawMessage(args[0]), nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read arguments: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return nil, fmt.Errorf("no arguments given")
	}
	return data, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
