// Package jsonschema reads standalone JSON Schema documents as a rule source.
// The root schema becomes the request body of a synthetic operation, so the
// rule builder treats it exactly like an OpenAPI request body.
package jsonschema

import (
	"context"

	internaljsonschema "github.com/goliatone/go-formvalidator/internal/jsonschema"
	"github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/source"
)

// DefaultOperationID is used when the schema carries no title.
const DefaultOperationID = internaljsonschema.DefaultOperationID

// Parser decodes a JSON Schema document into an operation.
type Parser interface {
	Operation(ctx context.Context, doc source.Document) (openapi.Operation, error)
}

type parserOptions struct {
	maxRefDepth int
}

// Option configures NewParser.
type Option func(*parserOptions)

// WithMaxRefDepth caps nested local $ref expansion.
func WithMaxRefDepth(depth int) Option {
	return func(opts *parserOptions) {
		opts.maxRefDepth = depth
	}
}

// NewParser returns the default Parser.
func NewParser(options ...Option) Parser {
	cfg := parserOptions{maxRefDepth: internaljsonschema.DefaultMaxRefDepth}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return internaljsonschema.New(cfg.maxRefDepth)
}
