package formvalidator

import (
	internalLoader "github.com/goliatone/go-formvalidator/internal/loader"
	internalParser "github.com/goliatone/go-formvalidator/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/source"
)

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(options ...source.LoaderOption) source.Loader {
	return internalLoader.New(source.NewLoaderOptions(options...))
}

// NewParser constructs an OpenAPI parser backed by the internal implementation.
func NewParser(options ...pkgopenapi.ParserOption) pkgopenapi.Parser {
	return internalParser.New(pkgopenapi.NewParserOptions(options...))
}

// NewBuilder constructs the OpenAPI definition builder.
func NewBuilder(options ...ruleset.BuilderOption) ruleset.Builder {
	return ruleset.NewBuilder(options...)
}
