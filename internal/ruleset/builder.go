package ruleset

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	pkgopenapi "github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// ExtensionNamespace is the vendor extension carrying validation overrides on
// schema properties.
const ExtensionNamespace = "x-formvalidator"

// Builder derives Definitions from OpenAPI request bodies.
type Builder struct {
	opts Options
}

// New creates a Builder with the supplied options.
func New(options Options) *Builder {
	opts := defaultOptions()
	if options.Labeler != nil {
		opts.Labeler = options.Labeler
	}
	if options.Customs != nil {
		opts.Customs = options.Customs
	}
	return &Builder{opts: opts}
}

// Build flattens the operation's request body into a Definition. Nested
// object properties become dotted names; a nested field is required only when
// every object on its path is required too. Arrays and unresolved references
// produce no fields.
func (b *Builder) Build(op pkgopenapi.Operation) (Definition, error) {
	if op.ID == "" {
		return Definition{}, errors.New("ruleset: operation id is required")
	}

	specs := b.specsFromSchema("", op.RequestBody, true, nil)
	if len(specs) == 0 {
		return Definition{}, fmt.Errorf("ruleset: operation %q has no form fields", op.ID)
	}

	def := Definition{
		Rules:   make(rules.RuleSet, len(specs)),
		Options: validator.DefaultOptions(),
	}
	for _, item := range specs {
		desc, field, err := Compile(item.name, item.spec, b.opts.Customs)
		if err != nil {
			return Definition{}, fmt.Errorf("ruleset: operation %q: %w", op.ID, err)
		}
		def.Rules[item.name] = desc
		def.Fields = append(def.Fields, field)
	}
	return def, nil
}

type namedSpec struct {
	name string
	spec FieldSpec
}

func (b *Builder) specsFromSchema(name string, schema pkgopenapi.Schema, required bool, out []namedSpec) []namedSpec {
	if schema.Ref != "" && schema.Type == "" && len(schema.Properties) == 0 {
		return out
	}

	switch schema.Type {
	case "object", "":
		if len(schema.Properties) == 0 {
			if name == "" || schema.Type == "object" {
				return out
			}
			return append(out, namedSpec{name: name, spec: b.primitiveSpec(name, schema, required)})
		}
		props := make([]string, 0, len(schema.Properties))
		for prop := range schema.Properties {
			props = append(props, prop)
		}
		sort.Strings(props)
		for _, prop := range props {
			child := prop
			if name != "" {
				child = name + "." + prop
			}
			out = b.specsFromSchema(child, schema.Properties[prop], required && schema.IsRequired(prop), out)
		}
		return out
	case "array":
		return out
	default:
		if name == "" {
			return out
		}
		return append(out, namedSpec{name: name, spec: b.primitiveSpec(name, schema, required)})
	}
}

func (b *Builder) primitiveSpec(name string, schema pkgopenapi.Schema, required bool) FieldSpec {
	spec := FieldSpec{
		Label:    b.opts.Labeler(name),
		Help:     schema.Description,
		Required: required,
		Type:     string(typeForFormat(schema.Format)),
		Pattern:  schema.Pattern,
	}
	if schema.MinLength != nil {
		spec.MinLength = *schema.MinLength
	}
	applyExtensions(&spec, schema.Extensions)
	return spec
}

func typeForFormat(format string) rules.TypeName {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "email", "idn-email":
		return rules.TypeEmail
	case "uri", "url", "iri":
		return rules.TypeURL
	case "password":
		return rules.TypePassword
	case "phone", "tel":
		return rules.TypePhone
	default:
		return ""
	}
}

// applyExtensions overlays x-formvalidator values, given either as a nested
// map or as flat "x-formvalidator-<key>" entries.
func applyExtensions(spec *FieldSpec, ext map[string]any) {
	for key, value := range ExtensionValues(ext) {
		switch key {
		case "minLength":
			if n, ok := toInt(value); ok {
				spec.MinLength = n
			}
			continue
		case "required":
			if flag, ok := value.(bool); ok {
				spec.Required = flag
			}
			continue
		}
		str, ok := value.(string)
		if !ok {
			continue
		}
		switch key {
		case "label":
			spec.Label = str
		case "input":
			spec.Input = str
		case "placeholder":
			spec.Placeholder = str
		case "help":
			spec.Help = str
		case "type":
			spec.Type = str
		case "typeMessage":
			spec.TypeMessage = str
		case "requiredMessage":
			spec.RequiredMessage = str
		case "pattern":
			spec.Pattern = str
		case "message":
			spec.Message = str
		case "custom":
			spec.Custom = str
		}
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
