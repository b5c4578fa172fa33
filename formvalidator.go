// Package formvalidator validates form fields against declarative rules and
// renders accessible forms for them. Rules come from YAML/JSON rule files,
// standalone JSON Schema documents or OpenAPI request bodies; the pkg/ subpackages hold the individual
// stages and this package exposes the common entry points.
package formvalidator

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
	"github.com/goliatone/go-formvalidator/pkg/render"
	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/source"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// RenderOptions describes per-request overrides renderers use to prefill
// values or surface server-side validation errors.
type RenderOptions = render.RenderOptions

// Definition is a compiled rule set with its field descriptors.
type Definition = ruleset.Definition

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// LoadDefinition loads and decodes the rule file at src.
func LoadDefinition(ctx context.Context, src source.Source, options ...orchestrator.Option) (Definition, error) {
	return orchestrator.New(options...).Definition(ctx, orchestrator.Request{Rules: src})
}

// FromOpenAPI derives a definition from the request body of operationID.
func FromOpenAPI(ctx context.Context, src source.Source, operationID string, options ...orchestrator.Option) (Definition, error) {
	return orchestrator.New(options...).Definition(ctx, orchestrator.Request{
		Source:      src,
		OperationID: operationID,
	})
}

// FromJSONSchema derives a definition from a standalone JSON Schema document.
func FromJSONSchema(ctx context.Context, src source.Source, options ...orchestrator.Option) (Definition, error) {
	return orchestrator.New(options...).Definition(ctx, orchestrator.Request{Schema: src})
}

// NewForm loads the rule file at src and returns a validator instance for it.
func NewForm(ctx context.Context, src source.Source, onSubmit validator.SubmitFunc, options ...orchestrator.Option) (*validator.Instance, error) {
	return orchestrator.New(options...).Form(ctx, orchestrator.Request{
		Rules:    src,
		OnSubmit: onSubmit,
	})
}

// GenerateHTML renders the form for the rule file at src with the HTML
// renderer.
func GenerateHTML(ctx context.Context, src source.Source, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Rules:         src,
		RenderOptions: opts,
	})
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme and variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}

// WithThemeFallbacks forwards fallback partials used when deriving renderer
// configuration from a theme selection.
func WithThemeFallbacks(fallbacks map[string]string) orchestrator.Option {
	return orchestrator.WithThemeFallbacks(fallbacks)
}
