package mcp

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/isaacphi/rendertools/internal/domain"
	"github.com/isaacphi/rendertools/internal/registry"
	"github.com/isaacphi/rendertools/internal/render"
	"github.com/isaacphi/rendertools/internal/repository"
	"github.com/pkg/errors"
)

// Server dispatches tool calls: it validates arguments against the
// registry, normalizes them, and forwards them to a Renderer.
type Server struct {
	registry *registry.Registry
	renderer render.Renderer
	history  repository.CallRepository
	logger   *slog.Logger
}

// New creates a Server. history may be nil, in which case calls are not
// recorded.
func New(reg *registry.Registry, renderer render.Renderer, history repository.CallRepository, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		registry: reg,
		renderer: renderer,
		history:  history,
		logger:   logger,
	}
}

// Call validates raw against the named tool and renders it. Rejections are
// returned unwrapped as *domain.UnknownToolError or *domain.InvalidInputError.
func (s *Server) Call(ctx context.Context, name string, raw json.RawMessage) (*render.Result, error) {
	id := uuid.New()
	start := time.Now()
	logger := s.logger.With("tool", name, "requestId", id)
	logger.Debug("tool call received")

	in, err := s.registry.Validate(name, raw)
	if err != nil {
		logger.Warn("tool call rejected", "error", err)
		s.record(ctx, &domain.Call{
			ID:         id,
			Tool:       name,
			Outcome:    outcomeOf(err),
			Arguments:  string(raw),
			Violations: violationsOf(err),
			Duration:   time.Since(start),
		})
		return nil, err
	}

	req, err := s.request(id, name, in)
	if err != nil {
		return nil, err
	}

	call := &domain.Call{ID: id, Tool: name}
	if body, err := req.Body(); err == nil {
		call.Arguments = string(body)
	}

	res, err := s.renderer.Render(ctx, req)
	call.Duration = time.Since(start)
	if err != nil {
		logger.Error("render failed", "error", err)
		call.Outcome = domain.OutcomeFailed
		s.record(ctx, call)
		return nil, errors.Wrapf(err, "failed to render %s", name)
	}

	logger.Debug("tool call rendered", "duration", call.Duration)
	call.Outcome = domain.OutcomeRendered
	s.record(ctx, call)
	return res, nil
}

func (s *Server) request(id uuid.UUID, name string, in registry.Input) (render.Request, error) {
	req := render.Request{ID: id, Tool: name}
	switch v := in.(type) {
	case *registry.RenderPromptInput:
		req.Prompt = v
	case *registry.RenderElementsInput:
		req.Elements = v
	case *registry.SingleDiagramInput:
		elements, err := s.registry.ToElements(name, v)
		if err != nil {
			return req, err
		}
		req.Elements = elements
	default:
		return req, errors.Errorf("unexpected input type %T", in)
	}
	return req, nil
}

func (s *Server) record(ctx context.Context, call *domain.Call) {
	if s.history == nil {
		return
	}
	// History is best effort; a failed write never fails the call.
	if err := s.history.Record(context.WithoutCancel(ctx), call); err != nil {
		s.logger.Warn("failed to record call", "requestId", call.ID, "error", err)
	}
}

func outcomeOf(err error) domain.Outcome {
	if domain.IsUnknownTool(err) {
		return domain.OutcomeUnknownTool
	}
	return domain.OutcomeInvalid
}

func violationsOf(err error) string {
	var invalid *domain.InvalidInputError
	if !errors.As(err, &invalid) {
		return ""
	}
	lines := make([]string, len(invalid.Violations))
	for i, v := range invalid.Violations {
		lines[i] = v.String()
	}
	return strings.Join(lines, "\n")
}
