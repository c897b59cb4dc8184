package render

import (
	"context"

	"github.com/goliatone/go-accountform/pkg/model"
)

// Renderer converts a FormModel plus the current session state into a byte
// representation (HTML for the browser front end).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form model.FormModel, options RenderOptions) ([]byte, error)
}
