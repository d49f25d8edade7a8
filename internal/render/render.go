// Package render defines the collaborator that turns a validated tool input
// into an image. The registry never calls it; the dispatcher does.
package render

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/isaacphi/rendertools/internal/registry"
	"github.com/pkg/errors"
)

// Request is a validated, normalized render call. Exactly one of Prompt and
// Elements is set; single-diagram calls arrive here as Elements.
type Request struct {
	ID       uuid.UUID
	Tool     string
	Prompt   *registry.RenderPromptInput
	Elements *registry.RenderElementsInput
}

// Body returns the JSON payload the renderer receives.
func (r Request) Body() (json.RawMessage, error) {
	switch {
	case r.Prompt != nil:
		return json.Marshal(r.Prompt)
	case r.Elements != nil:
		return json.Marshal(r.Elements)
	}
	return nil, errors.New("render request has no input")
}

// Result is what a renderer produced. Data is the raw image when the
// renderer returned one inline.
type Result struct {
	RequestID uuid.UUID `json:"requestId"`
	Text      string    `json:"text,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"`
	Data      []byte    `json:"-"`
	FileURL   string    `json:"fileUrl,omitempty"`
}

type Renderer interface {
	Render(ctx context.Context, req Request) (*Result, error)
}
