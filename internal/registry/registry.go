// Package registry is the fixed catalog of diagram-rendering tools.
//
// Each tool pairs a name and description with two views of one input
// contract: a typed Schema used to validate arguments at call time, and a
// JSON Schema mirror advertised to clients that cannot use the typed one.
// Both are derived from the input structs in inputs.go.
//
// A Registry is built once and never changes afterwards; every method is safe
// for concurrent use without locking.
package registry

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"github.com/isaacphi/rendertools/internal/domain"
)

const (
	RenderPrompt                    = "renderPrompt"
	RenderElements                  = "renderElements"
	RenderSequenceDiagram           = "renderSequenceDiagram"
	RenderEntityRelationshipDiagram = "renderEntityRelationshipDiagram"
	RenderCloudArchitectureDiagram  = "renderCloudArchitectureDiagram"
	RenderFlowchart                 = "renderFlowchart"
	RenderBpmnDiagram               = "renderBpmnDiagram"
)

// Kind is the input shape a tool accepts.
type Kind int

const (
	KindPrompt Kind = iota
	KindElements
	KindSingleDiagram
)

func (k Kind) String() string {
	switch k {
	case KindPrompt:
		return "prompt"
	case KindElements:
		return "elements"
	case KindSingleDiagram:
		return "single-diagram"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ToolDefinition describes one callable tool. JSONSchema is shared with the
// registry and must be treated as read-only.
type ToolDefinition struct {
	Name        string
	Description string
	Kind        Kind
	// DiagramType is set for single-diagram tools only.
	DiagramType domain.DiagramType
	Schema      Schema
	JSONSchema  *jsonschema.Schema
}

func definitions() []ToolDefinition {
	var (
		promptSchema   = SchemaFor[RenderPromptInput]()
		elementsSchema = SchemaFor[RenderElementsInput]()
		singleSchema   = SchemaFor[SingleDiagramInput]()
	)
	single := func(name, description string, dt domain.DiagramType) ToolDefinition {
		return ToolDefinition{
			Name:        name,
			Description: description,
			Kind:        KindSingleDiagram,
			DiagramType: dt,
			Schema:      objectSchema[SingleDiagramInput, *SingleDiagramInput]{},
			JSONSchema:  singleSchema,
		}
	}
	return []ToolDefinition{
		{
			Name:        RenderPrompt,
			Description: renderPromptDescription,
			Kind:        KindPrompt,
			Schema:      objectSchema[RenderPromptInput, *RenderPromptInput]{},
			JSONSchema:  promptSchema,
		},
		{
			Name:        RenderElements,
			Description: renderElementsDescription,
			Kind:        KindElements,
			Schema:      objectSchema[RenderElementsInput, *RenderElementsInput]{},
			JSONSchema:  elementsSchema,
		},
		single(RenderSequenceDiagram, sequenceDiagramDescription, domain.DiagramSequence),
		single(RenderEntityRelationshipDiagram, entityRelationshipDescription, domain.DiagramEntityRelationship),
		single(RenderCloudArchitectureDiagram, cloudArchitectureDescription, domain.DiagramCloudArchitecture),
		single(RenderFlowchart, flowchartDescription, domain.DiagramFlowchart),
		single(RenderBpmnDiagram, bpmnDescription, domain.DiagramBPMN),
	}
}

// Registry holds the tool definitions in presentation order plus name-keyed
// indexes derived from that order.
type Registry struct {
	tools         []ToolDefinition
	byName        map[string]int
	singleDiagram map[string]domain.DiagramType
}

var defaultRegistry = mustNew()

// Default returns the process-wide registry.
func Default() *Registry { return defaultRegistry }

// New builds a registry of the seven rendering tools.
func New() (*Registry, error) {
	return build(definitions())
}

func mustNew() *Registry {
	r, err := New()
	if err != nil {
		panic(err)
	}
	return r
}

func build(defs []ToolDefinition) (*Registry, error) {
	r := &Registry{
		tools:         defs,
		byName:        make(map[string]int, len(defs)),
		singleDiagram: make(map[string]domain.DiagramType),
	}
	for i, def := range defs {
		if err := checkDefinition(def); err != nil {
			return nil, err
		}
		if _, dup := r.byName[def.Name]; dup {
			return nil, fmt.Errorf("tool %q defined twice", def.Name)
		}
		r.byName[def.Name] = i
		if def.Kind == KindSingleDiagram {
			r.singleDiagram[def.Name] = def.DiagramType
		}
	}
	return r, nil
}

// checkDefinition rejects definitions a client could not call: the mirror
// must be an object schema whose required members are all declared.
func checkDefinition(def ToolDefinition) error {
	if def.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if def.Schema == nil || def.JSONSchema == nil {
		return fmt.Errorf("tool %q: both schemas are required", def.Name)
	}
	if def.JSONSchema.Type != "object" {
		return fmt.Errorf("tool %q: json schema type must be 'object', got %q", def.Name, def.JSONSchema.Type)
	}
	for _, name := range def.JSONSchema.Required {
		if _, ok := def.JSONSchema.Properties.Get(name); !ok {
			return fmt.Errorf("tool %q: required member %q is not a property", def.Name, name)
		}
	}
	if def.Kind == KindSingleDiagram && !def.DiagramType.Valid() {
		return fmt.Errorf("tool %q: single-diagram tool needs a diagram type", def.Name)
	}
	return nil
}

// Tools returns the definitions in presentation order.
func (r *Registry) Tools() []ToolDefinition {
	out := make([]ToolDefinition, len(r.tools))
	copy(out, r.tools)
	return out
}

// Names returns the tool names in presentation order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.tools))
	for i, def := range r.tools {
		names[i] = def.Name
	}
	return names
}

// Lookup finds a tool by exact, case-sensitive name.
func (r *Registry) Lookup(name string) (ToolDefinition, bool) {
	i, ok := r.byName[name]
	if !ok {
		return ToolDefinition{}, false
	}
	return r.tools[i], true
}

func (r *Registry) IsKnownToolName(name string) bool {
	_, ok := r.byName[name]
	return ok
}

func (r *Registry) IsSingleDiagramTool(name string) bool {
	_, ok := r.singleDiagram[name]
	return ok
}

// DiagramTypeFor returns the diagram type a single-diagram tool is fixed to.
// ok is false for any other name.
func (r *Registry) DiagramTypeFor(name string) (dt domain.DiagramType, ok bool) {
	dt, ok = r.singleDiagram[name]
	return dt, ok
}

// Validate checks raw arguments against the named tool's schema. It returns
// a *domain.UnknownToolError or a *domain.InvalidInputError listing every
// violation.
func (r *Registry) Validate(name string, raw json.RawMessage) (Input, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return nil, &domain.UnknownToolError{Name: name}
	}
	in, violations := def.Schema.Parse(raw)
	if len(violations) > 0 {
		return nil, &domain.InvalidInputError{Tool: name, Violations: violations}
	}
	return in, nil
}

// ValidateValue is Validate for an in-memory value, typically a map decoded
// from some other transport.
func (r *Registry) ValidateValue(name string, v any) (Input, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		if !r.IsKnownToolName(name) {
			return nil, &domain.UnknownToolError{Name: name}
		}
		return nil, &domain.InvalidInputError{
			Tool:       name,
			Violations: []domain.FieldError{{Reason: "not representable as JSON: " + err.Error()}},
		}
	}
	return r.Validate(name, raw)
}

// ToElements rewrites a single-diagram call as the equivalent one-element
// renderElements input.
func (r *Registry) ToElements(name string, in *SingleDiagramInput) (*RenderElementsInput, error) {
	dt, ok := r.DiagramTypeFor(name)
	if !ok {
		return nil, &domain.UnknownToolError{Name: name}
	}
	return &RenderElementsInput{
		Elements: []DiagramElement{{
			Type:        elementType,
			DiagramType: dt,
			Code:        in.Code,
		}},
		RenderOptions: RenderOptions{
			Theme:        in.Theme,
			ColorMode:    in.ColorMode,
			StyleMode:    in.StyleMode,
			Typeface:     in.Typeface,
			Background:   in.Background,
			ImageQuality: in.ImageQuality,
		},
	}, nil
}
