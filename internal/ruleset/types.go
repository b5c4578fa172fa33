package ruleset

import (
	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// Definition is a compiled form: the rule set, the field descriptors in
// document order and the validation triggers.
type Definition struct {
	Rules   rules.RuleSet
	Fields  []validator.FieldDescriptor
	Options validator.Options
}

// Validator builds an Instance for the definition. Extra options apply after
// the definition's own.
func (d Definition) Validator(onSubmit validator.SubmitFunc, options ...validator.Option) (*validator.Instance, error) {
	opts := []validator.Option{
		validator.WithOptions(d.Options),
		validator.WithFields(d.Fields...),
	}
	return validator.NewWithError(d.Rules, onSubmit, append(opts, options...)...)
}

// FieldSpec is the declarative form of one field, as written in rule files
// or derived from an OpenAPI schema.
type FieldSpec struct {
	Label           string `json:"label,omitempty" yaml:"label"`
	Input           string `json:"input,omitempty" yaml:"input"`
	Placeholder     string `json:"placeholder,omitempty" yaml:"placeholder"`
	Help            string `json:"help,omitempty" yaml:"help"`
	Required        bool   `json:"required,omitempty" yaml:"required"`
	RequiredMessage string `json:"requiredMessage,omitempty" yaml:"requiredMessage"`
	Type            string `json:"type,omitempty" yaml:"type"`
	TypeMessage     string `json:"typeMessage,omitempty" yaml:"typeMessage"`
	Pattern         string `json:"pattern,omitempty" yaml:"pattern"`
	Message         string `json:"message,omitempty" yaml:"message"`
	MinLength       int    `json:"minLength,omitempty" yaml:"minLength"`
	Custom          string `json:"custom,omitempty" yaml:"custom"`
}

var fieldSpecKeys = map[string]struct{}{
	"label": {}, "input": {}, "placeholder": {}, "help": {},
	"required": {}, "requiredMessage": {},
	"type": {}, "typeMessage": {},
	"pattern": {}, "message": {},
	"minLength": {}, "custom": {},
}
