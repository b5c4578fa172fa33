package ruleset_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/testsupport"
)

func TestDecode_Document(t *testing.T) {
	doc := testsupport.InlineDocument(t, "contact.yaml", "fields:\n  name:\n    required: true\n  email:\n    type: email\n")

	def, err := ruleset.Decode(doc)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	inst, err := def.Validator(nil)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	result := inst.HandleSubmit(map[string]string{"email": "nope"})
	want := rules.ErrorMap{
		"name":  {rules.DefaultRequiredMessage},
		"email": {"Invalid email format"},
	}
	if diff := cmp.Diff(want, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_WithCustoms(t *testing.T) {
	reg := ruleset.NewCustomRegistry()
	_ = reg.Register("even-length", func(value string) string {
		if len(value)%2 != 0 {
			return "Length must be even"
		}
		return ""
	})

	raw := []byte("fields:\n  code:\n    custom: even-length\n")
	if _, err := ruleset.DecodeBytes(raw, "inline"); !errors.Is(err, ruleset.ErrUnknownCustom) {
		t.Fatalf("expected ErrUnknownCustom without registry, got %v", err)
	}
	def, err := ruleset.DecodeBytes(raw, "inline", ruleset.WithCustoms(reg))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := rules.Evaluate(def.Rules, "code", "abc"); !cmp.Equal(got, []string{"Length must be even"}) {
		t.Fatalf("unexpected errors: %v", got)
	}
}
