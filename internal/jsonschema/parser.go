// Package jsonschema turns standalone JSON Schema documents into the
// operation model consumed by the rule builder.
package jsonschema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalidator/internal/openapi/parser"
	pkgopenapi "github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/source"
)

// DefaultMaxRefDepth caps nested local $ref expansion.
const DefaultMaxRefDepth = 32

// DefaultOperationID names the operation when the schema has no title.
const DefaultOperationID = "schema"

var metaKeys = []string{"$schema", "$id", "$defs", "definitions", "$comment", "$anchor"}

// Parser decodes JSON Schema documents. Local references ("#/...") are
// inlined; remote ones stay bare references, which the builder skips.
type Parser struct {
	maxDepth int
}

// New constructs a Parser. A non-positive depth falls back to
// DefaultMaxRefDepth.
func New(maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxRefDepth
	}
	return &Parser{maxDepth: maxDepth}
}

// Operation decodes doc (JSON or YAML) and wraps its root schema as the
// request body of a synthetic POST operation.
func (p *Parser) Operation(ctx context.Context, doc source.Document) (pkgopenapi.Operation, error) {
	if err := ctx.Err(); err != nil {
		return pkgopenapi.Operation{}, err
	}
	raw := doc.Raw()
	if len(raw) == 0 {
		return pkgopenapi.Operation{}, errors.New("jsonschema: document payload is empty")
	}

	var decoded any
	if err := yaml.Unmarshal(raw, &decoded); err != nil {
		return pkgopenapi.Operation{}, fmt.Errorf("jsonschema: decode %s: %w", doc.Location(), err)
	}
	root, ok := normalize(decoded).(map[string]any)
	if !ok {
		return pkgopenapi.Operation{}, fmt.Errorf("jsonschema: %s: root must be an object", doc.Location())
	}

	expanded, err := p.expand(root, root, nil)
	if err != nil {
		return pkgopenapi.Operation{}, fmt.Errorf("jsonschema: %s: %w", doc.Location(), err)
	}

	payload, err := json.Marshal(expanded)
	if err != nil {
		return pkgopenapi.Operation{}, fmt.Errorf("jsonschema: encode: %w", err)
	}
	var schema openapi3.Schema
	if err := json.Unmarshal(payload, &schema); err != nil {
		return pkgopenapi.Operation{}, fmt.Errorf("jsonschema: %s: %w", doc.Location(), err)
	}

	id := strings.TrimSpace(schema.Title)
	if id == "" {
		id = DefaultOperationID
	}
	return pkgopenapi.Operation{
		ID:          id,
		Method:      "POST",
		Summary:     schema.Title,
		Description: schema.Description,
		RequestBody: parser.ConvertSchema(&openapi3.SchemaRef{Value: &schema}),
	}, nil
}

// expand inlines local references below node and rewrites keywords the
// OpenAPI schema model cannot hold. stack holds the references being expanded
// on the current path; a repeated one is left in place.
func (p *Parser) expand(root map[string]any, node any, stack []string) (any, error) {
	switch value := node.(type) {
	case map[string]any:
		if ref, ok := value["$ref"].(string); ok && strings.HasPrefix(ref, "#") {
			return p.expandRef(root, value, ref, stack)
		}
		out := make(map[string]any, len(value))
		for key, child := range value {
			if isMetaKey(key) {
				continue
			}
			expanded, err := p.expand(root, child, stack)
			if err != nil {
				return nil, err
			}
			out[key] = expanded
		}
		rewriteKeywords(out)
		return out, nil
	case []any:
		out := make([]any, len(value))
		for i, child := range value {
			expanded, err := p.expand(root, child, stack)
			if err != nil {
				return nil, err
			}
			out[i] = expanded
		}
		return out, nil
	default:
		return node, nil
	}
}

func (p *Parser) expandRef(root, node map[string]any, ref string, stack []string) (any, error) {
	for _, seen := range stack {
		if seen == ref {
			return map[string]any{"$ref": ref}, nil
		}
	}
	if len(stack) >= p.maxDepth {
		return nil, fmt.Errorf("reference depth exceeds %d at %q", p.maxDepth, ref)
	}
	target, err := lookupPointer(root, ref)
	if err != nil {
		return nil, err
	}
	targetMap, ok := target.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("reference %q does not point at a schema", ref)
	}

	merged := make(map[string]any, len(targetMap)+len(node))
	for key, val := range targetMap {
		merged[key] = val
	}
	for key, val := range node {
		if key != "$ref" {
			merged[key] = val
		}
	}
	next := append(append([]string(nil), stack...), ref)
	return p.expand(root, merged, next)
}

// lookupPointer resolves a "#/a/b" JSON pointer against root.
func lookupPointer(root map[string]any, ref string) (any, error) {
	pointer := strings.TrimPrefix(ref, "#")
	if pointer == "" {
		return root, nil
	}
	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("unsupported reference %q", ref)
	}
	var current any = root
	for _, token := range strings.Split(pointer[1:], "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[token]
			if !ok {
				return nil, fmt.Errorf("unresolved reference %q", ref)
			}
			current = next
		case []any:
			index, err := strconv.Atoi(token)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("unresolved reference %q", ref)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("unresolved reference %q", ref)
		}
	}
	return current, nil
}

// rewriteKeywords folds newer keyword shapes into the ones kin-openapi
// decodes: a type list keeps its first non-null entry and numeric exclusive
// bounds are dropped.
func rewriteKeywords(node map[string]any) {
	if types, ok := node["type"].([]any); ok {
		delete(node, "type")
		for _, entry := range types {
			if name, ok := entry.(string); ok && name != "null" {
				node["type"] = name
				break
			}
		}
	}
	for _, key := range []string{"exclusiveMinimum", "exclusiveMaximum"} {
		if _, present := node[key]; !present {
			continue
		}
		if _, ok := node[key].(bool); !ok {
			delete(node, key)
		}
	}
}

func isMetaKey(key string) bool {
	for _, meta := range metaKeys {
		if key == meta {
			return true
		}
	}
	return false
}

// normalize converts YAML mappings with non-string keys so the tree can be
// re-encoded as JSON.
func normalize(value any) any {
	switch node := value.(type) {
	case map[string]any:
		for key, child := range node {
			node[key] = normalize(child)
		}
		return node
	case map[any]any:
		out := make(map[string]any, len(node))
		for key, child := range node {
			out[fmt.Sprint(key)] = normalize(child)
		}
		return out
	case []any:
		for i, child := range node {
			node[i] = normalize(child)
		}
		return node
	default:
		return value
	}
}
