package render

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/pkg/errors"
)

// DryRun is a Renderer that renders nothing. It answers every request with
// the normalized JSON body it would have sent.
type DryRun struct{}

func (DryRun) Render(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	body, err := req.Body()
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, body, "", "  "); err != nil {
		return nil, errors.Wrap(err, "failed to format render request")
	}
	return &Result{
		RequestID: req.ID,
		Text:      out.String(),
		MimeType:  "application/json",
	}, nil
}
