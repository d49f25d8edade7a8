package config

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetKnownKeys returns all valid configuration keys based on the schema
func GetKnownKeys() map[string]bool {
	known := make(map[string]bool)
	addKnownKeys("", reflect.TypeOf(ConfigSchema{}), known)
	return known
}

// addKnownKeys recursively adds the dotted keys of a struct type
func addKnownKeys(prefix string, t reflect.Type, known map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		// Convert the key to lowercase since viper lowercases all keys
		key := strings.ToLower(tag)
		if prefix != "" {
			key = prefix + "." + key
		}

		if field.Type.Kind() == reflect.Struct {
			addKnownKeys(key, field.Type, known)
			continue
		}
		known[key] = true
	}
}

// PrintConfig writes the configuration as YAML, optionally noting where each
// value came from
func (s *ConfigSchema) PrintConfig(w io.Writer, includeSources bool) error {
	var node yaml.Node
	if err := node.Encode(s); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if includeSources {
		s.annotate(&node, "")
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}
	return enc.Close()
}

func (s *ConfigSchema) annotate(node *yaml.Node, prefix string) {
	if node.Kind == yaml.DocumentNode {
		for _, child := range node.Content {
			s.annotate(child, prefix)
		}
		return
	}
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		path := strings.ToLower(key.Value)
		if prefix != "" {
			path = prefix + "." + path
		}
		if value.Kind == yaml.MappingNode {
			s.annotate(value, path)
			continue
		}
		value.LineComment = "# (" + s.sourceOf(path) + ")"
	}
}

func (s *ConfigSchema) sourceOf(key string) string {
	if sources := s.sources[key]; len(sources) > 0 {
		return sources[len(sources)-1].source
	}
	return "default"
}
