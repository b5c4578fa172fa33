package validator

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-formvalidator/internal/labels"
	"github.com/goliatone/go-formvalidator/pkg/rules"
)

// Input types understood by the bundled renderers.
const (
	InputText     = "text"
	InputEmail    = "email"
	InputPassword = "password"
	InputTel      = "tel"
	InputURL      = "url"
	InputTextArea = "textarea"
)

var (
	// ErrFieldName is returned when a descriptor has no name.
	ErrFieldName = errors.New("validator: field name is required")
	// ErrFieldExists is returned when a name is registered twice.
	ErrFieldExists = errors.New("validator: field already registered")
)

// FieldDescriptor declares an input the host UI renders and reports events
// for. Only Name is required; renderers fall back to derived labels and a
// text input.
type FieldDescriptor struct {
	Name        string `json:"name" yaml:"name"`
	Label       string `json:"label,omitempty" yaml:"label,omitempty"`
	InputType   string `json:"inputType,omitempty" yaml:"input,omitempty"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Help        string `json:"help,omitempty" yaml:"help,omitempty"`
}

// DisplayLabel returns Label or a label derived from Name.
func (f FieldDescriptor) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return labels.FromName(f.Name)
}

// Input returns InputType or InputText.
func (f FieldDescriptor) Input() string {
	if input := strings.TrimSpace(f.InputType); input != "" {
		return input
	}
	return InputText
}

// Registry keeps field descriptors in registration order.
type Registry struct {
	mu     sync.RWMutex
	fields []FieldDescriptor
	index  map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds descriptors. Registration stops at the first invalid or
// duplicate name.
func (r *Registry) Register(fields ...FieldDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.index == nil {
		r.index = make(map[string]int)
	}
	for _, field := range fields {
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return ErrFieldName
		}
		if _, exists := r.index[field.Name]; exists {
			return fmt.Errorf("%w: %q", ErrFieldExists, field.Name)
		}
		r.index[field.Name] = len(r.fields)
		r.fields = append(r.fields, field)
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(fields ...FieldDescriptor) {
	if err := r.Register(fields...); err != nil {
		panic(err)
	}
}

// Lookup returns the descriptor for name.
func (r *Registry) Lookup(name string) (FieldDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.index[name]
	if !ok {
		return FieldDescriptor{}, false
	}
	return r.fields[idx], true
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Fields returns the descriptors in registration order.
func (r *Registry) Fields() []FieldDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]FieldDescriptor(nil), r.fields...)
}

// Names returns the registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.fields))
	for _, field := range r.fields {
		names = append(names, field.Name)
	}
	return names
}

// Len reports the number of registered fields.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.fields)
}

// FieldsFromRules derives descriptors for every field of a rule set, sorted by
// name, with labels derived from names and input types from the type rule.
func FieldsFromRules(set rules.RuleSet) []FieldDescriptor {
	names := set.Names()
	fields := make([]FieldDescriptor, 0, len(names))
	for _, name := range names {
		desc := set[name]
		fields = append(fields, FieldDescriptor{
			Name:      name,
			Label:     labels.FromName(name),
			InputType: InputTypeFor(desc.Type),
		})
	}
	return fields
}

// InputTypeFor maps a named type onto an HTML input type.
func InputTypeFor(typ rules.TypeName) string {
	switch rules.TypeName(strings.ToLower(string(typ))) {
	case rules.TypeEmail:
		return InputEmail
	case rules.TypePassword:
		return InputPassword
	case rules.TypePhone:
		return InputTel
	case rules.TypeURL:
		return InputURL
	default:
		return InputText
	}
}
