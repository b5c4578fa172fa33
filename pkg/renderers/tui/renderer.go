package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/render"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// Name identifies the renderer in a render.Registry.
const Name = "tui"

const passwordMask = "********"

// Renderer implements render.Renderer for terminal sessions. Render asks for
// every registered field, validates each answer the way a blur would and
// returns the submitted values serialized in the configured format.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	confirmSubmit     bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme(),
		maxAttempts:  DefaultMaxAttempts,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unknown output format %q", r.outputFormat)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return Name
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render runs the prompt session for form. Values in opts prefill answers and
// opts.Errors are shown before the matching prompt. The returned payload holds
// the submitted values plus opts.Hidden.
func (r *Renderer) Render(ctx context.Context, form *validator.Instance, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if form == nil {
		return nil, errors.New("tui: form instance is nil")
	}

	if title := strings.TrimSpace(opts.Title); title != "" {
		if err := r.info(ctx, title); err != nil {
			return nil, err
		}
	}
	for _, msg := range opts.FormErrors {
		if err := r.fail(ctx, msg); err != nil {
			return nil, err
		}
	}

	fields := form.Fields()
	values := make(map[string]string, len(fields))
	for _, field := range fields {
		value, err := r.promptField(ctx, form, field, opts.Values[field.Name], opts.Errors[field.Name])
		if err != nil {
			return nil, err
		}
		values[field.Name] = value
	}

	if r.confirmSubmit {
		label := strings.TrimSpace(opts.SubmitLabel)
		if label == "" {
			label = render.DefaultSubmitLabel
		}
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label + "?", Default: true})
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrAborted
		}
	}

	result := form.HandleSubmit(values)
	if !result.Submitted {
		for _, name := range result.Errors.Fields() {
			for _, msg := range result.Errors.Get(name) {
				if err := r.fail(ctx, name+": "+msg); err != nil {
					return nil, err
				}
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalid, strings.Join(result.Errors.Fields(), ", "))
	}

	out := make(map[string]string, len(values)+len(opts.Hidden))
	for name, value := range opts.Hidden {
		out[name] = value
	}
	for name, value := range values {
		out[name] = value
	}
	if r.submitTransformer != nil {
		var err error
		out, err = r.submitTransformer(out)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(fields, out)
}

func (r *Renderer) promptField(ctx context.Context, form *validator.Instance, field validator.FieldDescriptor, current string, serverErrs []string) (string, error) {
	for _, msg := range serverErrs {
		if err := r.fail(ctx, msg); err != nil {
			return "", err
		}
	}

	value := current
	for attempt := 1; ; attempt++ {
		answer, err := r.ask(ctx, form, field, value)
		if err != nil {
			return "", err
		}
		value = answer

		form.HandleChange(field.Name, value)
		messages := form.HandleBlur(field.Name, value).Get(field.Name)
		if len(messages) == 0 {
			return value, nil
		}
		for _, msg := range messages {
			if err := r.fail(ctx, msg); err != nil {
				return "", err
			}
		}
		if attempt >= r.maxAttempts {
			return value, nil
		}
	}
}

func (r *Renderer) ask(ctx context.Context, form *validator.Instance, field validator.FieldDescriptor, current string) (string, error) {
	message := r.theme.PromptPrefix + field.DisplayLabel()
	if form.Attributes(field.Name).Required {
		message += " *"
	}

	switch field.Input() {
	case validator.InputPassword:
		return r.driver.Password(ctx, InputConfig{Message: message, Help: field.Help})
	case validator.InputTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: field.Help})
	default:
		return r.driver.Input(ctx, InputConfig{
			Message:     message,
			Default:     current,
			Help:        field.Help,
			Placeholder: field.Placeholder,
		})
	}
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) serialize(fields []validator.FieldDescriptor, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(formEncode(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(fields, values)), nil
	default:
		return json.Marshal(nest(values))
	}
}

func formEncode(values map[string]string) string {
	encoded := url.Values{}
	for name, value := range values {
		encoded.Set(name, value)
	}
	return encoded.Encode()
}

// nest expands dotted names into nested objects. A name that collides with
// an existing leaf keeps its flat key.
func nest(values map[string]string) map[string]any {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	root := make(map[string]any, len(values))
	for _, name := range names {
		if !setPath(root, strings.Split(name, "."), values[name]) {
			root[name] = values[name]
		}
	}
	return root
}

func setPath(root map[string]any, segments []string, value string) bool {
	node := root
	for _, segment := range segments[:len(segments)-1] {
		next, exists := node[segment]
		if !exists {
			child := make(map[string]any)
			node[segment] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return false
		}
		node = child
	}
	last := segments[len(segments)-1]
	if _, exists := node[last]; exists {
		return false
	}
	node[last] = value
	return true
}

func prettyPrint(fields []validator.FieldDescriptor, values map[string]string) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		seen[field.Name] = struct{}{}
		value, ok := values[field.Name]
		if !ok {
			continue
		}
		if field.Input() == validator.InputPassword && value != "" {
			value = passwordMask
		}
		fmt.Fprintf(&b, "%s: %s\n", field.DisplayLabel(), value)
	}

	var extra []string
	for name := range values {
		if _, ok := seen[name]; !ok {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		fmt.Fprintf(&b, "%s: %s\n", name, values[name])
	}
	return b.String()
}
