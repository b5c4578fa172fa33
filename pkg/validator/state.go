package validator

import (
	"sort"

	"github.com/goliatone/go-formvalidator/pkg/rules"
)

// TouchedSet records the fields the user interacted with (blur or submit).
type TouchedSet map[string]struct{}

// NewTouchedSet seeds a set with names.
func NewTouchedSet(names ...string) TouchedSet {
	set := make(TouchedSet, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		set[name] = struct{}{}
	}
	return set
}

// Has reports whether name was touched.
func (s TouchedSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the touched names in lexical order.
func (s TouchedSet) Names() []string {
	if len(s) == 0 {
		return nil
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone copies the set.
func (s TouchedSet) Clone() TouchedSet {
	out := make(TouchedSet, len(s))
	for name := range s {
		out[name] = struct{}{}
	}
	return out
}

// State is the validation state of one form. Values are never mutated in
// place; every update method returns a new State.
type State struct {
	errors  rules.ErrorMap
	touched TouchedSet
}

// NewState builds a State from existing errors and touched names.
func NewState(errs rules.ErrorMap, touched ...string) State {
	return State{
		errors:  errs.Clone(),
		touched: NewTouchedSet(touched...),
	}
}

// Errors returns a copy of the error map.
func (s State) Errors() rules.ErrorMap {
	return s.errors.Clone()
}

// Touched returns a copy of the touched set.
func (s State) Touched() TouchedSet {
	return s.touched.Clone()
}

// IsTouched reports whether name was touched.
func (s State) IsTouched(name string) bool {
	return s.touched.Has(name)
}

// FieldErrors returns a copy of the messages recorded for name.
func (s State) FieldErrors(name string) []string {
	messages := s.errors.Get(name)
	if len(messages) == 0 {
		return nil
	}
	return append([]string(nil), messages...)
}

// VisibleErrors returns the errors of touched fields only.
func (s State) VisibleErrors() rules.ErrorMap {
	return s.errors.Filter(s.touched.Has)
}

// WithFieldErrors replaces the entry of a single field.
func (s State) WithFieldErrors(name string, messages []string) State {
	return State{
		errors:  s.errors.With(name, messages),
		touched: s.touched.Clone(),
	}
}

// WithErrors replaces the whole error map.
func (s State) WithErrors(errs rules.ErrorMap) State {
	return State{
		errors:  errs.Clone(),
		touched: s.touched.Clone(),
	}
}

// Touch marks names as touched.
func (s State) Touch(names ...string) State {
	touched := s.touched.Clone()
	for _, name := range names {
		if name == "" {
			continue
		}
		touched[name] = struct{}{}
	}
	return State{
		errors:  s.errors.Clone(),
		touched: touched,
	}
}
