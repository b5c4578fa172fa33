package rules_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/rules"
)

func TestErrorMap_WithReplacesSingleEntry(t *testing.T) {
	base := rules.ErrorMap{
		"name":  {"This field is required"},
		"email": {"Invalid email"},
	}

	updated := base.With("email", nil)
	if diff := cmp.Diff(rules.ErrorMap{"name": {"This field is required"}}, updated); diff != "" {
		t.Fatalf("with(nil) mismatch (-want +got):\n%s", diff)
	}
	if !base.Has("email") {
		t.Fatalf("original map must not be mutated")
	}

	updated = base.With("name", []string{"Too short"})
	want := rules.ErrorMap{
		"name":  {"Too short"},
		"email": {"Invalid email"},
	}
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("with(messages) mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorMap_CloneIsDeep(t *testing.T) {
	base := rules.ErrorMap{"name": {"a"}, "empty": nil}
	clone := base.Clone()
	clone["name"][0] = "b"

	if base["name"][0] != "a" {
		t.Fatalf("clone shares message slices")
	}
	if _, ok := clone["empty"]; ok {
		t.Fatalf("clone should drop empty entries")
	}
}

func TestErrorMap_FieldsAndFilter(t *testing.T) {
	errs := rules.ErrorMap{
		"zip":   {"Invalid"},
		"email": {"Invalid"},
		"name":  {},
	}

	if diff := cmp.Diff([]string{"email", "zip"}, errs.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if !errs.HasErrors() {
		t.Fatalf("expected HasErrors")
	}
	if (rules.ErrorMap{"name": nil}).HasErrors() {
		t.Fatalf("empty entries do not count as errors")
	}

	filtered := errs.Filter(func(field string) bool { return field == "zip" })
	if diff := cmp.Diff(rules.ErrorMap{"zip": {"Invalid"}}, filtered); diff != "" {
		t.Fatalf("filter mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupType(t *testing.T) {
	for _, name := range rules.KnownTypes() {
		if _, ok := rules.LookupType(name); !ok {
			t.Fatalf("expected %q to resolve", name)
		}
	}
	if _, ok := rules.LookupType("EMAIL"); !ok {
		t.Fatalf("expected case-insensitive lookup")
	}
	if _, ok := rules.LookupType("zipcode"); ok {
		t.Fatalf("unknown type should not resolve")
	}
	if _, ok := rules.LookupType(""); ok {
		t.Fatalf("empty type should not resolve")
	}
}
