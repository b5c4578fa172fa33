package ruleset

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/goliatone/go-formvalidator/pkg/rules"
)

// ErrUnknownCustom is returned when a field names a custom validator that is
// not registered.
var ErrUnknownCustom = errors.New("ruleset: unknown custom validator")

// Built-in custom validator names.
const (
	CustomNoWhitespace = "no-whitespace"
	CustomTrimmed      = "trimmed"
)

// CustomRegistry resolves the custom validator names used in rule files.
type CustomRegistry struct {
	mu    sync.RWMutex
	funcs map[string]rules.CustomFunc
}

// NewCustomRegistry returns a registry preloaded with the built-in validators.
func NewCustomRegistry() *CustomRegistry {
	reg := &CustomRegistry{funcs: make(map[string]rules.CustomFunc)}
	reg.funcs[CustomNoWhitespace] = noWhitespace
	reg.funcs[CustomTrimmed] = trimmed
	return reg
}

// Register adds or replaces a named validator.
func (r *CustomRegistry) Register(name string, fn rules.CustomFunc) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("ruleset: custom validator name is required")
	}
	if fn == nil {
		return fmt.Errorf("ruleset: custom validator %q is nil", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[name] = fn
	return nil
}

// Lookup returns the validator registered under name.
func (r *CustomRegistry) Lookup(name string) (rules.CustomFunc, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.funcs[strings.TrimSpace(name)]
	return fn, ok
}

// Names lists registered validators alphabetically.
func (r *CustomRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *CustomRegistry) resolve(name string) (rules.CustomFunc, error) {
	if strings.TrimSpace(name) == "" {
		return nil, nil
	}
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCustom, name)
	}
	return fn, nil
}

func noWhitespace(value string) string {
	if strings.IndexFunc(value, unicode.IsSpace) >= 0 {
		return "Must not contain whitespace"
	}
	return ""
}

func trimmed(value string) string {
	if strings.TrimSpace(value) != value {
		return "Must not start or end with whitespace"
	}
	return ""
}
