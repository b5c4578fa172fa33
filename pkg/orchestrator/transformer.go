package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// Transformer mutates a Definition after it is decoded or built and before a
// validator is created from it.
type Transformer interface {
	Transform(ctx context.Context, def *ruleset.Definition) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, def *ruleset.Definition) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, def *ruleset.Definition) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, def)
}

// PresetTransformer applies presentation overrides to field descriptors,
// typically to relabel fields derived from an OpenAPI schema. The document is
// YAML or JSON:
//
//	fields:
//	  email:
//	    label: Work email
//	    placeholder: you@company.com
//	order: [email, name]
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Fields map[string]fieldPatch `yaml:"fields"`
	Order  []string              `yaml:"order"`
}

type fieldPatch struct {
	Label       string `yaml:"label"`
	Input       string `yaml:"input"`
	Placeholder string `yaml:"placeholder"`
	Help        string `yaml:"help"`
}

// NewPresetTransformer parses a preset document.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform patches matching descriptors and applies the field order. Fields
// missing from the order keep their relative position after the listed ones.
// Patches for unknown fields are errors.
func (t *PresetTransformer) Transform(_ context.Context, def *ruleset.Definition) error {
	if t == nil || def == nil {
		return nil
	}

	index := make(map[string]int, len(def.Fields))
	for i, field := range def.Fields {
		index[field.Name] = i
	}

	for name, patch := range t.document.Fields {
		i, ok := index[name]
		if !ok {
			return fmt.Errorf("preset transformer: unknown field %q", name)
		}
		field := &def.Fields[i]
		if patch.Label != "" {
			field.Label = patch.Label
		}
		if patch.Input != "" {
			field.InputType = patch.Input
		}
		if patch.Placeholder != "" {
			field.Placeholder = patch.Placeholder
		}
		if patch.Help != "" {
			field.Help = patch.Help
		}
	}

	if len(t.document.Order) == 0 {
		return nil
	}
	placed := make(map[string]bool, len(t.document.Order))
	ordered := make([]int, 0, len(def.Fields))
	for _, name := range t.document.Order {
		i, ok := index[name]
		if !ok {
			return fmt.Errorf("preset transformer: unknown field %q in order", name)
		}
		if placed[name] {
			continue
		}
		placed[name] = true
		ordered = append(ordered, i)
	}
	for i, field := range def.Fields {
		if !placed[field.Name] {
			ordered = append(ordered, i)
		}
	}
	fields := make([]validator.FieldDescriptor, 0, len(ordered))
	for _, i := range ordered {
		fields = append(fields, def.Fields[i])
	}
	def.Fields = fields
	return nil
}
