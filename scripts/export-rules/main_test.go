package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-formvalidator/pkg/ruleset"
	"github.com/goliatone/go-formvalidator/pkg/testsupport"
)

func TestExport_JSONSchema(t *testing.T) {
	out, err := export(testsupport.Context(), filepath.Join("..", "..", "testdata", "contact.schema.json"), "", "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	text := string(out)
	for _, fragment := range []string{"  email:\n    required: true\n    type: email\n", "  phone:\n    type: phone\n"} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("expected %q in:\n%s", fragment, text)
		}
	}
	if _, err := ruleset.DecodeBytes(out, "exported.yaml"); err != nil {
		t.Fatalf("exported rules do not decode: %v", err)
	}
}

func TestExport_OpenAPI(t *testing.T) {
	out, err := export(testsupport.Context(), "", filepath.Join("..", "..", "testdata", "signup.openapi.yaml"), "createAccount")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(string(out), "  address.postalCode:\n") {
		t.Fatalf("expected nested field in:\n%s", out)
	}
}

func TestExport_FlagErrors(t *testing.T) {
	ctx := testsupport.Context()
	if _, err := export(ctx, "", "", ""); err == nil {
		t.Fatalf("expected missing source error")
	}
	if _, err := export(ctx, "a.json", "b.yaml", "op"); err == nil {
		t.Fatalf("expected exclusive flags error")
	}
}
