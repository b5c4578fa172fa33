package httpform

import (
	"context"
	"net/http"

	"github.com/goliatone/go-formvalidator/pkg/render"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// DefaultMaxBodyBytes caps request bodies read by the handler.
const DefaultMaxBodyBytes int64 = 1 << 20

// Factory builds the validator instance for one request. Instances hold
// per-form state, so the factory should return a fresh one each time.
type Factory func(r *http.Request) (*validator.Instance, error)

// SuccessFunc runs after a submission passes validation. Returning
// FieldErrors re-renders the form with those errors and status 422; any
// other error becomes a 500 unless it is a StatusError.
type SuccessFunc func(ctx context.Context, values map[string]string) error

// HiddenFunc supplies per-request hidden fields such as a CSRF token.
type HiddenFunc func(r *http.Request) []render.HiddenField

// Option configures the handler.
type Option func(*Handler)

// WithRenderer replaces the HTML renderer.
func WithRenderer(renderer render.Renderer) Option {
	return func(h *Handler) {
		if renderer != nil {
			h.renderer = renderer
		}
	}
}

// WithRenderOptions sets the base options used for every render. Values,
// Errors and FormErrors are filled per request.
func WithRenderOptions(opts render.RenderOptions) Option {
	return func(h *Handler) {
		h.base = opts
	}
}

// WithOnSuccess registers the callback invoked for valid submissions.
func WithOnSuccess(fn SuccessFunc) Option {
	return func(h *Handler) {
		h.onSuccess = fn
	}
}

// WithRedirect answers valid browser submissions with 303 See Other to
// location instead of a 200 confirmation.
func WithRedirect(location string) Option {
	return func(h *Handler) {
		h.redirect = location
	}
}

// WithHidden registers a hidden field provider.
func WithHidden(fn HiddenFunc) Option {
	return func(h *Handler) {
		h.hidden = fn
	}
}

// WithMaxBodyBytes overrides DefaultMaxBodyBytes. Non-positive values keep
// the default.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBodyBytes = n
		}
	}
}
