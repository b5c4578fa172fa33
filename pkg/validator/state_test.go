package validator

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/rules"
)

func TestState_UpdatesDoNotMutate(t *testing.T) {
	base := NewState(rules.ErrorMap{"name": {"required"}}, "name")

	next := base.WithFieldErrors("email", []string{"invalid"}).Touch("email")

	if diff := cmp.Diff(rules.ErrorMap{"name": {"required"}}, base.Errors()); diff != "" {
		t.Fatalf("base errors mutated (-want +got):\n%s", diff)
	}
	if base.IsTouched("email") {
		t.Fatalf("base touched set mutated")
	}
	want := rules.ErrorMap{"name": {"required"}, "email": {"invalid"}}
	if diff := cmp.Diff(want, next.Errors()); diff != "" {
		t.Fatalf("next errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"email", "name"}, next.Touched().Names()); diff != "" {
		t.Fatalf("touched mismatch (-want +got):\n%s", diff)
	}
}

func TestState_ZeroValue(t *testing.T) {
	var state State
	if state.IsTouched("x") || len(state.Errors()) != 0 || len(state.VisibleErrors()) != 0 {
		t.Fatalf("zero state should be empty")
	}
	if got := state.FieldErrors("x"); got != nil {
		t.Fatalf("expected nil field errors, got %v", got)
	}
}

func TestApplySubmit(t *testing.T) {
	set := rules.RuleSet{
		"name":  {Required: true},
		"phone": {Type: rules.TypePhone},
	}

	next, ok := ApplySubmit(State{}, set, []string{"name", "phone"}, map[string]string{"phone": "123"})
	if ok {
		t.Fatalf("expected failure")
	}
	want := rules.ErrorMap{
		"name":  {rules.DefaultRequiredMessage},
		"phone": {"Invalid phone format"},
	}
	if diff := cmp.Diff(want, next.Errors()); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"name", "phone"}, next.Touched().Names()); diff != "" {
		t.Fatalf("touched mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(FieldDescriptor{Name: "b"}, FieldDescriptor{Name: " a "})

	if diff := cmp.Diff([]string{"b", "a"}, reg.Names()); diff != "" {
		t.Fatalf("registration order mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("a") || reg.Len() != 2 {
		t.Fatalf("expected trimmed name to be registered")
	}
	field, ok := reg.Lookup("b")
	if !ok || field.DisplayLabel() != "B" || field.Input() != InputText {
		t.Fatalf("unexpected descriptor defaults: %+v", field)
	}
}
