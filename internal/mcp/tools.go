package mcp

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"os"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/isaacphi/rendertools/internal/registry"
	"github.com/isaacphi/rendertools/internal/render"
	mcp_golang "github.com/metoro-io/mcp-golang"
	"github.com/metoro-io/mcp-golang/transport/stdio"
	"github.com/pkg/errors"
)

// toolArguments keeps a call's arguments as raw JSON so that the registry,
// not the protocol library, decides what is valid. Its schema is the tool's
// JSON Schema mirror.
type toolArguments[T any] struct {
	raw json.RawMessage
}

func (a *toolArguments[T]) UnmarshalJSON(b []byte) error {
	a.raw = append(a.raw[:0], b...)
	return nil
}

func (toolArguments[T]) JSONSchema() *jsonschema.Schema {
	return registry.SchemaFor[T]()
}

// Register adds every registry tool to srv in registry order.
func (s *Server) Register(ctx context.Context, srv *mcp_golang.Server) error {
	for _, def := range s.registry.Tools() {
		var err error
		switch def.Kind {
		case registry.KindPrompt:
			err = registerTool[registry.RenderPromptInput](ctx, s, srv, def)
		case registry.KindElements:
			err = registerTool[registry.RenderElementsInput](ctx, s, srv, def)
		case registry.KindSingleDiagram:
			err = registerTool[registry.SingleDiagramInput](ctx, s, srv, def)
		default:
			err = errors.Errorf("tool %s has unsupported kind %s", def.Name, def.Kind)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to register tool %s", def.Name)
		}
	}
	return nil
}

func registerTool[T any](ctx context.Context, s *Server, srv *mcp_golang.Server, def registry.ToolDefinition) error {
	name := def.Name
	return srv.RegisterTool(name, def.Description, func(args toolArguments[T]) (*mcp_golang.ToolResponse, error) {
		res, err := s.Call(ctx, name, args.raw)
		if err != nil {
			return nil, err
		}
		return toolResponse(res), nil
	})
}

func toolResponse(res *render.Result) *mcp_golang.ToolResponse {
	var content []*mcp_golang.Content
	if len(res.Data) > 0 {
		content = append(content, mcp_golang.NewImageContent(base64.StdEncoding.EncodeToString(res.Data), res.MimeType))
	}
	if res.FileURL != "" {
		content = append(content, mcp_golang.NewTextContent(res.FileURL))
	}
	if res.Text != "" {
		content = append(content, mcp_golang.NewTextContent(res.Text))
	}
	return mcp_golang.NewToolResponse(content...)
}

// Serve registers the tools on an MCP server over stdin and stdout and
// blocks until ctx is done or the client closes stdin.
func (s *Server) Serve(ctx context.Context) error {
	return s.serve(ctx, os.Stdin, os.Stdout)
}

func (s *Server) serve(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The stdio transport stops reading at EOF without reporting it.
	in = &closeNotifyReader{r: in, onClose: cancel}
	srv := mcp_golang.NewServer(stdio.NewStdioServerTransportWithIO(in, out))
	if err := s.Register(ctx, srv); err != nil {
		return err
	}
	if err := srv.Serve(); err != nil {
		return errors.Wrap(err, "failed to start MCP server")
	}
	s.logger.Info("serving tools over stdio", "tools", len(s.registry.Names()))
	<-ctx.Done()
	s.logger.Info("MCP server stopped")
	return nil
}

// closeNotifyReader calls onClose once, the first time a read from r fails.
type closeNotifyReader struct {
	r       io.Reader
	once    sync.Once
	onClose func()
}

func (c *closeNotifyReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if err != nil {
		c.once.Do(c.onClose)
	}
	return n, err
}
