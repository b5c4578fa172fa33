package ruleset

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalidator/internal/labels"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

type exportOptions struct {
	ValidateOnChange *bool `yaml:"validateOnChange,omitempty"`
	ValidateOnBlur   *bool `yaml:"validateOnBlur,omitempty"`
}

type exportSpec struct {
	Label           string `yaml:"label,omitempty"`
	Input           string `yaml:"input,omitempty"`
	Placeholder     string `yaml:"placeholder,omitempty"`
	Help            string `yaml:"help,omitempty"`
	Required        bool   `yaml:"required,omitempty"`
	RequiredMessage string `yaml:"requiredMessage,omitempty"`
	Type            string `yaml:"type,omitempty"`
	TypeMessage     string `yaml:"typeMessage,omitempty"`
	Pattern         string `yaml:"pattern,omitempty"`
	Message         string `yaml:"message,omitempty"`
	MinLength       int    `yaml:"minLength,omitempty"`
	Custom          string `yaml:"custom,omitempty"`
}

// Export writes d as a YAML rule document that Decode reads back to the same
// definition. Labels and input types equal to their derived defaults are
// omitted, as are default trigger options.
func Export(d Definition) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	defaults := validator.DefaultOptions()
	var opts exportOptions
	if d.Options.ValidateOnChange != defaults.ValidateOnChange {
		value := d.Options.ValidateOnChange
		opts.ValidateOnChange = &value
	}
	if d.Options.ValidateOnBlur != defaults.ValidateOnBlur {
		value := d.Options.ValidateOnBlur
		opts.ValidateOnBlur = &value
	}
	if opts.ValidateOnChange != nil || opts.ValidateOnBlur != nil {
		if err := appendPair(root, "options", opts); err != nil {
			return nil, err
		}
	}

	fields := &yaml.Node{Kind: yaml.MappingNode}
	for _, field := range d.Fields {
		if err := appendPair(fields, field.Name, exportField(d, field)); err != nil {
			return nil, err
		}
	}
	root.Content = append(root.Content, scalar("fields"), fields)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("ruleset: export: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("ruleset: export: %w", err)
	}
	return buf.Bytes(), nil
}

func exportField(d Definition, field validator.FieldDescriptor) exportSpec {
	desc := d.Rules[field.Name]
	spec := exportSpec{
		Placeholder:     field.Placeholder,
		Help:            field.Help,
		Required:        desc.Required,
		RequiredMessage: desc.RequiredMessage,
		Type:            string(desc.Type),
		TypeMessage:     desc.TypeMessage,
		Message:         desc.Message,
		MinLength:       desc.MinLength,
		Custom:          desc.CustomName,
	}
	if field.Label != labels.FromName(field.Name) {
		spec.Label = field.Label
	}
	if field.InputType != validator.InputTypeFor(desc.Type) {
		spec.Input = field.InputType
	}
	if desc.Pattern != nil {
		spec.Pattern = desc.Pattern.String()
	}
	return spec
}

func appendPair(mapping *yaml.Node, key string, value any) error {
	node := &yaml.Node{}
	if err := node.Encode(value); err != nil {
		return fmt.Errorf("ruleset: export %q: %w", key, err)
	}
	mapping.Content = append(mapping.Content, scalar(key), node)
	return nil
}

func scalar(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}
