package ruleset

import (
	internalruleset "github.com/goliatone/go-formvalidator/internal/ruleset"
	pkgopenapi "github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/source"
)

type decodeOptions struct {
	customs *CustomRegistry
}

// DecodeOption configures Decode.
type DecodeOption func(*decodeOptions)

// WithCustoms resolves `custom` names against reg instead of the built-ins.
func WithCustoms(reg *CustomRegistry) DecodeOption {
	return func(opts *decodeOptions) {
		opts.customs = reg
	}
}

// Decode parses a rule document.
func Decode(doc source.Document, options ...DecodeOption) (Definition, error) {
	return DecodeBytes(doc.Raw(), doc.Location(), options...)
}

// DecodeBytes parses an in-memory rule document; name only appears in errors.
func DecodeBytes(raw []byte, name string, options ...DecodeOption) (Definition, error) {
	cfg := decodeOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return internalruleset.Decode(raw, name, cfg.customs)
}

// Builder derives Definitions from OpenAPI operations.
type Builder interface {
	Build(op pkgopenapi.Operation) (Definition, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler func(string) string
	customs *CustomRegistry
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithBuilderCustoms resolves `custom` extension values against reg.
func WithBuilderCustoms(reg *CustomRegistry) BuilderOption {
	return func(opts *builderOptions) {
		opts.customs = reg
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return internalruleset.New(internalruleset.Options{
		Labeler: cfg.labeler,
		Customs: cfg.customs,
	})
}
