package ruleset

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formvalidator/internal/labels"
	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// Compile turns spec into the rule descriptor and field descriptor for name.
// Patterns are compiled here, so an invalid regular expression fails the whole
// definition instead of surfacing at validation time.
func Compile(name string, spec FieldSpec, customs *CustomRegistry) (rules.RuleDescriptor, validator.FieldDescriptor, error) {
	desc := rules.RuleDescriptor{
		Required:        spec.Required,
		RequiredMessage: spec.RequiredMessage,
		TypeMessage:     spec.TypeMessage,
		Message:         spec.Message,
	}

	// Unknown type names are kept; the evaluator skips them.
	if typ := strings.TrimSpace(spec.Type); typ != "" {
		desc.Type = rules.TypeName(strings.ToLower(typ))
	}

	if spec.Pattern != "" {
		re, err := regexp.Compile(spec.Pattern)
		if err != nil {
			return rules.RuleDescriptor{}, validator.FieldDescriptor{}, fmt.Errorf("field %q: invalid pattern: %w", name, err)
		}
		desc.Pattern = re
	}

	if spec.MinLength < 0 {
		return rules.RuleDescriptor{}, validator.FieldDescriptor{}, fmt.Errorf("field %q: minLength must not be negative", name)
	}
	desc.MinLength = spec.MinLength

	custom, err := customs.resolve(spec.Custom)
	if err != nil {
		return rules.RuleDescriptor{}, validator.FieldDescriptor{}, fmt.Errorf("field %q: %w", name, err)
	}
	desc.Custom = custom
	if custom != nil {
		desc.CustomName = strings.TrimSpace(spec.Custom)
	}

	field := validator.FieldDescriptor{
		Name:        name,
		Label:       spec.Label,
		InputType:   spec.Input,
		Placeholder: spec.Placeholder,
		Help:        spec.Help,
	}
	if field.Label == "" {
		field.Label = labels.FromName(name)
	}
	if field.InputType == "" {
		field.InputType = validator.InputTypeFor(desc.Type)
	}
	return desc, field, nil
}
