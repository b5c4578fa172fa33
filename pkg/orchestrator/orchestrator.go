package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	internalLoader "github.com/goliatone/go-formvalidator/internal/loader"
	internalParser "github.com/goliatone/go-formvalidator/internal/openapi/parser"
	"github.com/goliatone/go-formvalidator/pkg/jsonschema"
	pkgopenapi "github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/render"
	"github.com/goliatone/go-formvalidator/pkg/renderers/html"
	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/source"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

const defaultRendererName = html.Name

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithLoader injects a custom source loader.
func WithLoader(loader source.Loader) Option {
	return func(o *Orchestrator) {
		o.loader = loader
	}
}

// WithParser injects a custom OpenAPI parser.
func WithParser(parser pkgopenapi.Parser) Option {
	return func(o *Orchestrator) {
		o.parser = parser
	}
}

// WithSchemaParser injects a custom JSON Schema parser.
func WithSchemaParser(parser jsonschema.Parser) Option {
	return func(o *Orchestrator) {
		o.schemaParser = parser
	}
}

// WithBuilder injects a custom OpenAPI definition builder.
func WithBuilder(builder ruleset.Builder) Option {
	return func(o *Orchestrator) {
		o.builder = builder
	}
}

// WithCustoms sets the custom rule registry used by rule files and, unless a
// builder is injected, by OpenAPI extensions.
func WithCustoms(customs *ruleset.CustomRegistry) Option {
	return func(o *Orchestrator) {
		o.customs = customs
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithTransformer registers transformers run in order against every
// definition.
func WithTransformer(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithThemeSelector resolves Request.ThemeName and ThemeVariant into the
// renderer theme configuration.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
	}
}

// WithThemeFallbacks seeds the partials of every resolved theme.
func WithThemeFallbacks(fallbacks map[string]string) Option {
	return func(o *Orchestrator) {
		o.themeFallbacks = fallbacks
	}
}

// Orchestrator coordinates the pipeline from a rule file, JSON Schema or
// OpenAPI document to a validator instance and its rendered form.
type Orchestrator struct {
	loader          source.Loader
	parser          pkgopenapi.Parser
	schemaParser    jsonschema.Parser
	builder         ruleset.Builder
	customs         *ruleset.CustomRegistry
	registry        *render.Registry
	defaultRenderer string
	transformers    []Transformer
	themeSelector   theme.ThemeSelector
	themeFallbacks  map[string]string
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{defaultRenderer: defaultRendererName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes where a form's rules come from and how to render it.
// Sources are tried in order: a rule file (Rules or RulesDocument), a JSON
// Schema (Schema or SchemaDocument), then an OpenAPI operation (Source or
// Document plus OperationID).
type Request struct {
	Rules         source.Source
	RulesDocument *source.Document

	Schema         source.Source
	SchemaDocument *source.Document

	Source      source.Source
	Document    *source.Document
	OperationID string

	// Renderer names the renderer to use. Empty selects the default.
	Renderer      string
	RenderOptions render.RenderOptions

	// ThemeName and ThemeVariant are passed to the theme selector when
	// RenderOptions.Theme is unset.
	ThemeName    string
	ThemeVariant string

	// OnSubmit and ValidatorOptions configure the created instance.
	OnSubmit         validator.SubmitFunc
	ValidatorOptions []validator.Option
}

// Definition loads and compiles the rules named by req and runs the
// transformers.
func (o *Orchestrator) Definition(ctx context.Context, req Request) (ruleset.Definition, error) {
	if ctx == nil {
		return ruleset.Definition{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return ruleset.Definition{}, err
	}
	if err := o.initialiseErr; err != nil {
		return ruleset.Definition{}, err
	}

	var (
		def ruleset.Definition
		err error
	)
	switch {
	case req.Rules != nil || req.RulesDocument != nil:
		def, err = o.definitionFromRules(ctx, req)
	case req.Schema != nil || req.SchemaDocument != nil:
		def, err = o.definitionFromSchema(ctx, req)
	default:
		def, err = o.definitionFromOpenAPI(ctx, req)
	}
	if err != nil {
		return ruleset.Definition{}, err
	}

	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		if err := transformer.Transform(ctx, &def); err != nil {
			return ruleset.Definition{}, fmt.Errorf("orchestrator: transform definition: %w", err)
		}
	}
	return def, nil
}

// Form returns a fresh validator instance for req.
func (o *Orchestrator) Form(ctx context.Context, req Request) (*validator.Instance, error) {
	def, err := o.Definition(ctx, req)
	if err != nil {
		return nil, err
	}
	form, err := def.Validator(req.OnSubmit, req.ValidatorOptions...)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: create validator: %w", err)
	}
	return form, nil
}

// Generate builds the form for req and renders it.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	form, err := o.Form(ctx, req)
	if err != nil {
		return nil, err
	}
	return o.Render(ctx, form, req)
}

// Render renders an existing instance with the renderer and theme named by
// req.
func (o *Orchestrator) Render(ctx context.Context, form *validator.Instance, req Request) ([]byte, error) {
	renderer, err := o.rendererFor(req.Renderer)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		cfg, err := o.resolveTheme(req.ThemeName, req.ThemeVariant)
		if err != nil {
			return nil, err
		}
		opts.Theme = cfg
	}

	output, err := renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Registry exposes the renderer registry.
func (o *Orchestrator) Registry() *render.Registry {
	return o.registry
}

func (o *Orchestrator) definitionFromRules(ctx context.Context, req Request) (ruleset.Definition, error) {
	doc, err := o.resolveDocument(ctx, req.RulesDocument, req.Rules)
	if err != nil {
		return ruleset.Definition{}, err
	}
	def, err := ruleset.Decode(doc, ruleset.WithCustoms(o.customs))
	if err != nil {
		return ruleset.Definition{}, fmt.Errorf("orchestrator: decode rules: %w", err)
	}
	return def, nil
}

func (o *Orchestrator) definitionFromSchema(ctx context.Context, req Request) (ruleset.Definition, error) {
	doc, err := o.resolveDocument(ctx, req.SchemaDocument, req.Schema)
	if err != nil {
		return ruleset.Definition{}, err
	}
	op, err := o.schemaParser.Operation(ctx, doc)
	if err != nil {
		return ruleset.Definition{}, fmt.Errorf("orchestrator: parse schema: %w", err)
	}
	def, err := o.builder.Build(op)
	if err != nil {
		return ruleset.Definition{}, fmt.Errorf("orchestrator: build definition: %w", err)
	}
	return def, nil
}

func (o *Orchestrator) definitionFromOpenAPI(ctx context.Context, req Request) (ruleset.Definition, error) {
	if req.OperationID == "" {
		return ruleset.Definition{}, errors.New("orchestrator: operation id is required")
	}
	doc, err := o.resolveDocument(ctx, req.Document, req.Source)
	if err != nil {
		return ruleset.Definition{}, err
	}

	operations, err := o.parser.Operations(ctx, doc)
	if err != nil {
		return ruleset.Definition{}, fmt.Errorf("orchestrator: parse operations: %w", err)
	}
	op, ok := operations[req.OperationID]
	if !ok {
		return ruleset.Definition{}, fmt.Errorf("orchestrator: operation %q not found", req.OperationID)
	}

	def, err := o.builder.Build(op)
	if err != nil {
		return ruleset.Definition{}, fmt.Errorf("orchestrator: build definition: %w", err)
	}
	return def, nil
}

func (o *Orchestrator) resolveDocument(ctx context.Context, doc *source.Document, src source.Source) (source.Document, error) {
	if doc != nil {
		return *doc, nil
	}
	if src == nil {
		return source.Document{}, errors.New("orchestrator: source or document is required")
	}
	loaded, err := o.loader.Load(ctx, src)
	if err != nil {
		return source.Document{}, fmt.Errorf("orchestrator: load document: %w", err)
	}
	return loaded, nil
}

func (o *Orchestrator) rendererFor(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.loader == nil {
		o.loader = internalLoader.New(source.NewLoaderOptions())
	}
	if o.parser == nil {
		o.parser = internalParser.New(pkgopenapi.NewParserOptions())
	}
	if o.schemaParser == nil {
		o.schemaParser = jsonschema.NewParser()
	}
	if o.builder == nil {
		o.builder = ruleset.NewBuilder(ruleset.WithBuilderCustoms(o.customs))
	}
	if o.registry == nil {
		renderer, err := html.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		registry, err := render.NewRegistry(renderer)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default registry: %w", err)
			return
		}
		o.registry = registry
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
}
