package ruleset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

type documentFile struct {
	Options *optionsFile `yaml:"options"`
	Fields  yaml.Node    `yaml:"fields"`
}

type optionsFile struct {
	ValidateOnChange *bool `yaml:"validateOnChange"`
	ValidateOnBlur   *bool `yaml:"validateOnBlur"`
}

// Decode parses a YAML or JSON rule document. Fields keep the order in which
// the document lists them. location is only used in error messages.
func Decode(raw []byte, location string, customs *CustomRegistry) (Definition, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return Definition{}, fmt.Errorf("ruleset: %s is empty", location)
	}
	if customs == nil {
		customs = NewCustomRegistry()
	}

	var doc documentFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Definition{}, fmt.Errorf("ruleset: %s is empty", location)
		}
		return Definition{}, fmt.Errorf("ruleset: parse %s: %w", location, err)
	}

	def := Definition{
		Rules:   make(rules.RuleSet),
		Options: validator.DefaultOptions(),
	}
	if doc.Options != nil {
		if doc.Options.ValidateOnChange != nil {
			def.Options.ValidateOnChange = *doc.Options.ValidateOnChange
		}
		if doc.Options.ValidateOnBlur != nil {
			def.Options.ValidateOnBlur = *doc.Options.ValidateOnBlur
		}
	}

	fields := &doc.Fields
	if fields.Kind == 0 || isNull(fields) {
		return Definition{}, fmt.Errorf("ruleset: %s defines no fields", location)
	}
	if fields.Kind != yaml.MappingNode {
		return Definition{}, fmt.Errorf("ruleset: %s:%d: fields must be a mapping", location, fields.Line)
	}

	for i := 0; i+1 < len(fields.Content); i += 2 {
		keyNode, valueNode := fields.Content[i], fields.Content[i+1]
		name := strings.TrimSpace(keyNode.Value)
		if name == "" {
			return Definition{}, fmt.Errorf("ruleset: %s:%d: field name is empty", location, keyNode.Line)
		}
		if _, exists := def.Rules[name]; exists {
			return Definition{}, fmt.Errorf("ruleset: %s:%d: field %q is defined twice", location, keyNode.Line, name)
		}

		spec, err := decodeFieldSpec(valueNode)
		if err != nil {
			return Definition{}, fmt.Errorf("ruleset: %s:%d: field %q: %w", location, valueNode.Line, name, err)
		}
		desc, field, err := Compile(name, spec, customs)
		if err != nil {
			return Definition{}, fmt.Errorf("ruleset: %s:%d: %w", location, valueNode.Line, err)
		}
		def.Rules[name] = desc
		def.Fields = append(def.Fields, field)
	}

	return def, nil
}

func decodeFieldSpec(node *yaml.Node) (FieldSpec, error) {
	var spec FieldSpec
	if isNull(node) {
		return spec, nil
	}
	if node.Kind != yaml.MappingNode {
		return spec, errors.New("expected a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if _, ok := fieldSpecKeys[key]; !ok {
			return spec, fmt.Errorf("unknown key %q", key)
		}
	}
	if err := node.Decode(&spec); err != nil {
		return spec, err
	}
	return spec, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == yaml.ScalarNode && node.Tag == "!!null"
}
