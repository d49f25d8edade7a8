package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"
	"github.com/isaacphi/rendertools/internal/config"
	"github.com/isaacphi/rendertools/internal/registry"
	"golang.org/x/sync/errgroup"
)

func main() {
	var outDir string
	flag.StringVar(&outDir, "out", "schemas", "Output directory")
	flag.Parse()

	// Convert to absolute path if relative
	if !filepath.IsAbs(outDir) {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
			os.Exit(1)
		}
		outDir = filepath.Join(wd, outDir)
	}

	// Ensure the directory exists
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory %s: %v\n", outDir, err)
		os.Exit(1)
	}

	configSchema, err := config.GenerateJSONSchema()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating config schema: %v\n", err)
		os.Exit(1)
	}

	schemas := map[string]*jsonschema.Schema{"config.schema.json": configSchema}
	for _, def := range registry.Default().Tools() {
		schemas[def.Name+".schema.json"] = def.JSONSchema
	}

	var g errgroup.Group
	for name, schema := range schemas {
		path := filepath.Join(outDir, name)
		g.Go(func() error {
			return writeSchema(path, schema)
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing schemas: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%d schemas written to %s\n", len(schemas), outDir)
}

func writeSchema(path string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
