package html

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formvalidator/pkg/render"
	rendertemplate "github.com/goliatone/go-formvalidator/pkg/render/template"
	gotemplate "github.com/goliatone/go-formvalidator/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// Name is the registry name of the HTML renderer.
const Name = "html"

const formTemplate = "templates/form.tmpl"

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	templateRenderer rendertemplate.TemplateRenderer
	stylesheet       string
	inlineStyles     bool
}

// WithTemplatesFS supplies an alternate template bundle. It must provide
// templates/form.tmpl.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk. Templates
// missing from the directory fall back to the bundle.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		cfg.templateDir = strings.TrimSpace(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithStylesheet links an external stylesheet ahead of the form.
func WithStylesheet(href string) Option {
	return func(cfg *config) {
		cfg.stylesheet = strings.TrimSpace(href)
	}
}

// WithDefaultStyles inlines the embedded stylesheet.
func WithDefaultStyles() Option {
	return func(cfg *config) {
		cfg.inlineStyles = true
	}
}

// Renderer renders accessible HTML forms. Messages and help texts may carry
// simple inline markup; anything else is escaped.
type Renderer struct {
	templates    rendertemplate.TemplateRenderer
	stylesheet   string
	inlineStyles string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(
			gotemplate.WithBaseDir(cfg.templateDir),
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}

	r := &Renderer{templates: templates, stylesheet: cfg.stylesheet}
	if cfg.inlineStyles {
		r.inlineStyles = defaultStylesheet()
	}
	return r, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render writes the form markup for the current state of form.
func (r *Renderer) Render(_ context.Context, form *validator.Instance, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("html renderer: template renderer is nil")
	}
	if form == nil {
		return nil, fmt.Errorf("html renderer: form is nil")
	}

	view := render.BuildView(form, options)
	formMethod := strings.ToLower(view.Method)
	if view.Method != "GET" && view.Method != "POST" {
		// Browsers only submit GET and POST; the real verb travels in _method.
		formMethod = "post"
		view.Hidden = render.SortedHiddenFields(render.MergeHiddenFields(options.Hidden, render.Hidden("_method", view.Method)))
	}

	view.FormErrors = sanitizeAll(view.FormErrors)
	for i := range view.Fields {
		view.Fields[i].Errors = sanitizeAll(view.Fields[i].Errors)
		view.Fields[i].Help = sanitizeMarkup(view.Fields[i].Help)
	}

	themeCtx := buildThemeContext(options.Theme)
	stylesheet := r.stylesheet
	if stylesheet == "" {
		stylesheet = themeCtx.Stylesheet
	}

	result, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"form":         view,
		"formMethod":   formMethod,
		"theme":        themeCtx,
		"stylesheet":   stylesheet,
		"inlineStyles": r.inlineStyles,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render template: %w", err)
	}
	return []byte(result), nil
}

type rendererTheme struct {
	Name         string `json:"name,omitempty"`
	Variant      string `json:"variant,omitempty"`
	CSSVarsStyle string `json:"cssVarsStyle,omitempty"`
	Stylesheet   string `json:"stylesheet,omitempty"`
}

// buildThemeContext turns theme tokens into --fv-<token> variables. Explicit
// CSS variables win over tokens of the same name.
func buildThemeContext(cfg *theme.RendererConfig) rendererTheme {
	if cfg == nil {
		return rendererTheme{}
	}
	vars := make(map[string]string, len(cfg.Tokens)+len(cfg.CSSVars))
	for token, value := range cfg.Tokens {
		if token = strings.TrimSpace(token); token != "" {
			vars["--fv-"+token] = value
		}
	}
	for key, value := range cfg.CSSVars {
		vars[key] = value
	}

	ctx := rendererTheme{
		Name:         cfg.Theme,
		Variant:      cfg.Variant,
		CSSVarsStyle: cssVarsStyle(vars),
	}
	if cfg.AssetURL != nil {
		ctx.Stylesheet = cfg.AssetURL(StylesheetName)
	}
	return ctx
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(".fv-form {\n")
	for _, key := range keys {
		value := strings.NewReplacer("<", "", ">", "", ";", "", "}", "").Replace(vars[key])
		fmt.Fprintf(&b, "  %s: %s;\n", key, value)
	}
	b.WriteString("}")
	return b.String()
}
