package render

import (
	"context"

	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// Renderer turns the current state of a form into a byte representation
// (HTML, terminal output, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form *validator.Instance, options RenderOptions) ([]byte, error)
}
