package mcp

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/invopop/jsonschema"
	"github.com/isaacphi/rendertools/internal/registry"
)

var (
	nameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	labelStyle = lipgloss.NewStyle().Faint(true)
)

// PrintTools writes a one-line summary per tool.
func PrintTools(w io.Writer, defs []registry.ToolDefinition) {
	for _, def := range defs {
		summary, _, _ := strings.Cut(strings.TrimSpace(def.Description), "\n")
		fmt.Fprintf(w, "%s %s\n", nameStyle.Render(def.Name), labelStyle.Render("("+def.Kind.String()+")"))
		fmt.Fprintf(w, "  %s\n", summary)
	}
}

// PrintTool writes a tool's description and parameters in YAML-like form.
func PrintTool(w io.Writer, def registry.ToolDefinition) {
	fmt.Fprintf(w, "%s:\n", nameStyle.Render(def.Name))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("kind:"), def.Kind)
	if def.Kind == registry.KindSingleDiagram {
		fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("diagramType:"), def.DiagramType)
	}
	fmt.Fprintf(w, "  %s\n", labelStyle.Render("description: |"))
	for _, line := range strings.Split(strings.TrimSpace(def.Description), "\n") {
		fmt.Fprintf(w, "    %s\n", line)
	}
	fmt.Fprintf(w, "  %s\n", labelStyle.Render("parameters:"))
	printProperties(w, def.JSONSchema, "    ")
}

func printProperties(w io.Writer, s *jsonschema.Schema, indent string) {
	if s == nil || s.Properties == nil {
		return
	}
	required := make(map[string]bool, len(s.Required))
	for _, name := range s.Required {
		required[name] = true
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		name, prop := pair.Key, pair.Value
		line := indent + name + ":"
		if prop.Type != "" {
			line += " " + prop.Type
		}
		if required[name] {
			line += " " + labelStyle.Render("(required)")
		}
		fmt.Fprintln(w, line)
		if len(prop.Enum) > 0 {
			values := make([]string, len(prop.Enum))
			for i, v := range prop.Enum {
				values[i] = fmt.Sprint(v)
			}
			fmt.Fprintf(w, "%s  enum: [%s]\n", indent, strings.Join(values, ", "))
		}
		if prop.Const != nil {
			fmt.Fprintf(w, "%s  const: %v\n", indent, prop.Const)
		}
		if prop.Description != "" {
			fmt.Fprintf(w, "%s  description: %s\n", indent, prop.Description)
		}
		printProperties(w, prop, indent+"  ")
		if prop.Items != nil {
			printProperties(w, prop.Items, indent+"  ")
		}
	}
}
