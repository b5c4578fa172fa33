package validator

import (
	"fmt"
	"sync"

	"github.com/goliatone/go-formvalidator/pkg/rules"
)

// SubmitResult is the outcome of HandleSubmit.
type SubmitResult struct {
	Errors    rules.ErrorMap
	Submitted bool
}

// Instance validates one active form. Handlers are synchronous; each one
// swaps in a freshly computed State.
type Instance struct {
	rules    rules.RuleSet
	onSubmit SubmitFunc
	options  Options
	registry *Registry

	mu    sync.Mutex
	state State
}

// New creates an Instance for set. onSubmit may be nil. Duplicate or unnamed
// descriptors passed through WithFields cause a panic, as they are wiring
// mistakes; use NewWithError to handle them.
func New(set rules.RuleSet, onSubmit SubmitFunc, options ...Option) *Instance {
	inst, err := NewWithError(set, onSubmit, options...)
	if err != nil {
		panic(err)
	}
	return inst
}

// NewWithError is New returning registration errors instead of panicking.
func NewWithError(set rules.RuleSet, onSubmit SubmitFunc, options ...Option) (*Instance, error) {
	cfg := config{options: DefaultOptions()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	fields := cfg.fields
	if len(fields) == 0 {
		fields = FieldsFromRules(set)
	}
	registry := NewRegistry()
	if err := registry.Register(fields...); err != nil {
		return nil, fmt.Errorf("validator: register fields: %w", err)
	}

	inst := &Instance{
		rules:    set.Clone(),
		onSubmit: onSubmit,
		options:  cfg.options,
		registry: registry,
		state:    NewState(nil),
	}
	if cfg.state != nil {
		inst.state = *cfg.state
	}
	return inst, nil
}

// HandleChange re-validates name when validation on change is enabled and
// returns the resulting error map.
func (i *Instance) HandleChange(name, value string) rules.ErrorMap {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.options.ValidateOnChange {
		i.state = ApplyChange(i.state, i.rules, name, value)
	}
	return i.state.Errors()
}

// HandleBlur marks name touched, re-validates it when validation on blur is
// enabled and returns the resulting error map.
func (i *Instance) HandleBlur(name, value string) rules.ErrorMap {
	i.mu.Lock()
	defer i.mu.Unlock()

	next := i.state.Touch(name)
	if i.options.ValidateOnBlur {
		next = ApplyChange(next, i.rules, name, value)
	}
	i.state = next
	return i.state.Errors()
}

// HandleSubmit validates the whole submission. Registered fields missing from
// values are validated as empty, so a caller passing a subset of the form
// fails on every required field it left out; use rules.ValidateAll to check
// only the given values. When nothing fails, the success callback receives a
// copy of values.
func (i *Instance) HandleSubmit(values map[string]string) SubmitResult {
	i.mu.Lock()
	next, submitted := ApplySubmit(i.state, i.rules, i.registry.Names(), values)
	i.state = next
	errs := next.Errors()
	onSubmit := i.onSubmit
	i.mu.Unlock()

	if submitted && onSubmit != nil {
		onSubmit(cloneValues(values))
	}
	return SubmitResult{Errors: errs, Submitted: submitted}
}

// State returns the current state.
func (i *Instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Errors returns the current error map.
func (i *Instance) Errors() rules.ErrorMap {
	return i.State().Errors()
}

// VisibleErrors returns the errors of touched fields.
func (i *Instance) VisibleErrors() rules.ErrorMap {
	return i.State().VisibleErrors()
}

// Reset clears errors and touched fields.
func (i *Instance) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.state = NewState(nil)
}

// Rules returns a copy of the rule set.
func (i *Instance) Rules() rules.RuleSet {
	return i.rules.Clone()
}

// Options returns the trigger configuration.
func (i *Instance) Options() Options {
	return i.options
}

// Fields returns the registered descriptors in order.
func (i *Instance) Fields() []FieldDescriptor {
	return i.registry.Fields()
}

// Field returns the descriptor registered for name.
func (i *Instance) Field(name string) (FieldDescriptor, bool) {
	return i.registry.Lookup(name)
}

// ApplyChange returns state with name's entry recomputed from value.
func ApplyChange(state State, set rules.RuleSet, name, value string) State {
	return state.WithFieldErrors(name, rules.Evaluate(set, name, value))
}

// ApplySubmit returns state after a submission together with whether it
// passed. Every submitted and registered field becomes touched.
func ApplySubmit(state State, set rules.RuleSet, registered []string, values map[string]string) (State, bool) {
	walked := cloneValues(values)
	for _, name := range registered {
		if _, ok := walked[name]; !ok {
			walked[name] = ""
		}
	}

	errs, hasErrors := rules.ValidateAll(set, walked)

	touched := make([]string, 0, len(walked))
	for name := range walked {
		touched = append(touched, name)
	}
	return state.WithErrors(errs).Touch(touched...), !hasErrors
}

func cloneValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for key, value := range values {
		out[key] = value
	}
	return out
}
