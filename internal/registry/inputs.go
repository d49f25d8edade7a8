package registry

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/isaacphi/rendertools/internal/domain"
)

// Extras holds the unrecognized top-level fields of an open input, keyed by
// field name, exactly as they were received.
type Extras map[string]json.RawMessage

// objectMode decides what happens to keys a struct does not declare.
type objectMode int

const (
	// closedObject drops unrecognized keys.
	closedObject objectMode = iota
	// openObject keeps unrecognized keys in the struct's Extras.
	openObject
	// strictObject reports unrecognized keys as violations.
	strictObject
)

type object interface {
	objectMode() objectMode
}

type openInput interface {
	object
	extras() *Extras
}

// Input is a validated, normalized tool input: one of *RenderPromptInput,
// *RenderElementsInput or *SingleDiagramInput.
type Input interface {
	object
	isInput()
}

// RenderOptions are the rendering knobs shared by the prompt and elements
// tools. The renderer's settings module owns the full list; anything it adds
// that is not declared here passes through untouched.
type RenderOptions struct {
	Padding          *float64             `json:"padding,omitempty"`
	ImageQuality     *domain.ImageQuality `json:"imageQuality,omitempty" validate:"omitempty,enum"`
	Background       *bool                `json:"background,omitempty"`
	Theme            *domain.Theme        `json:"theme,omitempty" validate:"omitempty,enum"`
	Format           *domain.Format       `json:"format,omitempty" validate:"omitempty,enum"`
	Selection        *[]string            `json:"selection,omitempty"`
	IgnoreElements   *[]string            `json:"ignoreElements,omitempty"`
	LimitToSelection *bool                `json:"limitToSelection,omitempty"`
	CustomIcons      *[]any               `json:"customIcons,omitempty"`
	Typeface         *domain.Typeface     `json:"typeface,omitempty" validate:"omitempty,enum"`
	ColorMode        *domain.ColorMode    `json:"colorMode,omitempty" validate:"omitempty,enum"`
	StyleMode        *domain.StyleMode    `json:"styleMode,omitempty" validate:"omitempty,enum"`
	Direction        *domain.Direction    `json:"direction,omitempty" validate:"omitempty,enum"`
	Title            *string              `json:"title,omitempty"`
}

// FileOptions controls the file created for a prompt render.
type FileOptions struct {
	Create     *bool              `json:"create,omitempty"`
	LinkAccess *domain.LinkAccess `json:"linkAccess,omitempty" validate:"omitempty,enum"`
}

func (FileOptions) objectMode() objectMode { return strictObject }

func (FileOptions) JSONSchemaExtend(s *jsonschema.Schema) {
	s.AdditionalProperties = jsonschema.FalseSchema
}

// RenderPromptInput asks the renderer to generate a diagram from natural language.
// DiagramType and Mode are hints in the renderer's vocabulary and are not
// restricted to domain.DiagramType.
type RenderPromptInput struct {
	Text           string       `json:"text"`
	ReturnFile     *bool        `json:"returnFile,omitempty"`
	DiagramType    *string      `json:"diagramType,omitempty"`
	Mode           *string      `json:"mode,omitempty"`
	PriorRequestID *string      `json:"priorRequestId,omitempty"`
	Attachments    *[]any       `json:"attachments,omitempty"`
	ContextID      *string      `json:"contextId,omitempty"`
	Git            any          `json:"git,omitempty"`
	FileOptions    *FileOptions `json:"fileOptions,omitempty"`
	RenderOptions

	Extras Extras `json:"-"`
}

func (*RenderPromptInput) isInput()               {}
func (*RenderPromptInput) objectMode() objectMode { return openObject }
func (in *RenderPromptInput) extras() *Extras     { return &in.Extras }

func (RenderPromptInput) JSONSchemaExtend(s *jsonschema.Schema) {
	s.AdditionalProperties = jsonschema.TrueSchema
}

func (in RenderPromptInput) MarshalJSON() ([]byte, error) {
	type plain RenderPromptInput
	return marshalWithExtras(plain(in), in.Extras)
}

// DiagramElement is one diagram placed on the canvas of an elements render.
type DiagramElement struct {
	Type        string             `json:"type" validate:"eq=diagram"`
	DiagramType domain.DiagramType `json:"diagramType" validate:"enum"`
	Code        string             `json:"code"`
	X           *float64           `json:"x,omitempty"`
	Y           *float64           `json:"y,omitempty"`
}

func (DiagramElement) objectMode() objectMode { return closedObject }

func (DiagramElement) JSONSchemaExtend(s *jsonschema.Schema) {
	if p, ok := s.Properties.Get("type"); ok {
		p.Const = elementType
	}
}

const elementType = "diagram"

// RenderElementsInput renders diagrams whose code the caller already has.
type RenderElementsInput struct {
	Elements       []DiagramElement `json:"elements" validate:"min=1,dive" jsonschema:"minItems=1"`
	ReturnFile     *bool            `json:"returnFile,omitempty"`
	FileName       *string          `json:"fileName,omitempty"`
	TeamID         *string          `json:"teamId,omitempty"`
	ReturnElements *bool            `json:"returnElements,omitempty"`
	SkipCache      *bool            `json:"skipCache,omitempty"`
	RenderOptions

	Extras Extras `json:"-"`
}

func (*RenderElementsInput) isInput()               {}
func (*RenderElementsInput) objectMode() objectMode { return openObject }
func (in *RenderElementsInput) extras() *Extras     { return &in.Extras }

func (RenderElementsInput) JSONSchemaExtend(s *jsonschema.Schema) {
	s.AdditionalProperties = jsonschema.TrueSchema
}

func (in RenderElementsInput) MarshalJSON() ([]byte, error) {
	type plain RenderElementsInput
	return marshalWithExtras(plain(in), in.Extras)
}

// SingleDiagramInput is the narrow input of the one-diagram-type tools.
type SingleDiagramInput struct {
	Code         string               `json:"code" jsonschema_description:"The diagram code in Eraser syntax"`
	Theme        *domain.Theme        `json:"theme,omitempty" validate:"omitempty,enum"`
	ColorMode    *domain.ColorMode    `json:"colorMode,omitempty" validate:"omitempty,enum"`
	StyleMode    *domain.StyleMode    `json:"styleMode,omitempty" validate:"omitempty,enum"`
	Typeface     *domain.Typeface     `json:"typeface,omitempty" validate:"omitempty,enum"`
	Background   *bool                `json:"background,omitempty" jsonschema_description:"Whether to include a solid background"`
	ImageQuality *domain.ImageQuality `json:"imageQuality,omitempty" validate:"omitempty,enum"`
}

func (*SingleDiagramInput) isInput()               {}
func (*SingleDiagramInput) objectMode() objectMode { return closedObject }

// marshalWithExtras encodes v and adds any extra fields it does not already have.
func marshalWithExtras(v any, extras Extras) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil || len(extras) == 0 {
		return b, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	for k, raw := range extras {
		if _, declared := fields[k]; !declared {
			fields[k] = raw
		}
	}
	return json.Marshal(fields)
}
