package ruleset

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	pkgopenapi "github.com/goliatone/go-formvalidator/pkg/openapi"
)

func TestExport_RoundTrip(t *testing.T) {
	def, err := Decode([]byte(signupRules), "signup.yaml", nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	exported, err := Export(def)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	text := string(exported)
	for _, fragment := range []string{
		"options:\n  validateOnChange: false\n",
		"  email:\n    label: Email address\n",
		"    custom: no-whitespace\n",
		"  nickname: {}\n",
	} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected %q in export:\n%s", fragment, text)
		}
	}
	if strings.Contains(text, "label: Username") || strings.Contains(text, "input:") {
		t.Fatalf("derived labels and input types should be omitted:\n%s", text)
	}

	again, err := Decode(exported, "exported.yaml", nil)
	if err != nil {
		t.Fatalf("decode export: %v\n%s", err, text)
	}
	if diff := cmp.Diff(def.Fields, again.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(def.Options, again.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	second, err := Export(again)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if diff := cmp.Diff(text, string(second)); diff != "" {
		t.Fatalf("export is not stable (-first +second):\n%s", diff)
	}
}

func TestExport_BuiltDefinition(t *testing.T) {
	minLength := 2
	op := pkgopenapi.MustNewOperation("createNote", "POST", "/notes", pkgopenapi.Schema{
		Type:     "object",
		Required: []string{"title"},
		Properties: map[string]pkgopenapi.Schema{
			"title": {Type: "string", MinLength: &minLength, Description: "Short summary"},
			"body": {Type: "string", Extensions: map[string]any{
				ExtensionNamespace + "-input": "textarea",
			}},
		},
	})
	def, err := New(Options{}).Build(op)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	exported, err := Export(def)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	want := "fields:\n  body:\n    input: textarea\n  title:\n    help: Short summary\n    required: true\n    minLength: 2\n"
	if diff := cmp.Diff(want, string(exported)); diff != "" {
		t.Fatalf("export mismatch (-want +got):\n%s", diff)
	}
}
