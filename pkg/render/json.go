package render

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONRenderer emits the View as indented JSON for API consumers and
// client-side renderers.
type JSONRenderer struct{}

var _ Renderer = JSONRenderer{}

// Name reports the renderer identifier.
func (JSONRenderer) Name() string { return "json" }

// ContentType reports the payload media type.
func (JSONRenderer) ContentType() string { return "application/json" }

// Render marshals view.
func (JSONRenderer) Render(ctx context.Context, view View) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	payload, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("render: marshal view: %w", err)
	}
	return payload, nil
}
