package ruleset

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

const signupRules = `
options:
  validateOnChange: false
fields:
  username:
    required: true
    minLength: 3
    pattern: '^[a-z0-9_]+$'
    message: Use lowercase letters, digits or underscores
    custom: no-whitespace
  email:
    label: Email address
    required: true
    requiredMessage: Email is required
    type: email
  phone:
    type: phone
    typeMessage: Enter a phone number
  nickname:
`

func TestDecode_FieldOrderAndDescriptors(t *testing.T) {
	def, err := Decode([]byte(signupRules), "signup.yaml", nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	want := []validator.FieldDescriptor{
		{Name: "username", Label: "Username", InputType: validator.InputText},
		{Name: "email", Label: "Email address", InputType: validator.InputEmail},
		{Name: "phone", Label: "Phone", InputType: validator.InputTel},
		{Name: "nickname", Label: "Nickname", InputType: validator.InputText},
	}
	if diff := cmp.Diff(want, def.Fields); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
	if def.Options.ValidateOnChange || !def.Options.ValidateOnBlur {
		t.Fatalf("unexpected options: %+v", def.Options)
	}

	username := def.Rules["username"]
	if !username.Required || username.MinLength != 3 || username.Pattern == nil || username.Custom == nil {
		t.Fatalf("unexpected username descriptor: %+v", username)
	}
	if got := rules.Evaluate(def.Rules, "username", "a!"); len(got) != 2 {
		t.Fatalf("expected minLength and pattern failures, got %v", got)
	}
	if got := rules.Evaluate(def.Rules, "username", "jane doe"); !cmp.Equal(got, []string{"Use lowercase letters, digits or underscores", "Must not contain whitespace"}) {
		t.Fatalf("unexpected username errors: %v", got)
	}
	if got := rules.Evaluate(def.Rules, "email", ""); !cmp.Equal(got, []string{"Email is required"}) {
		t.Fatalf("unexpected email errors: %v", got)
	}
	if got := rules.Evaluate(def.Rules, "phone", "12"); !cmp.Equal(got, []string{"Enter a phone number"}) {
		t.Fatalf("unexpected phone errors: %v", got)
	}
	if _, ok := def.Rules["nickname"]; !ok {
		t.Fatalf("field without rules should still be registered")
	}
}

func TestDecode_JSON(t *testing.T) {
	def, err := Decode([]byte(`{"fields": {"b": {"required": true}, "a": {"type": "url"}}}`), "rules.json", nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff([]string{"b", "a"}, []string{def.Fields[0].Name, def.Fields[1].Name}); diff != "" {
		t.Fatalf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestDecode_Errors(t *testing.T) {
	cases := map[string]struct {
		doc  string
		want string
	}{
		"empty":          {doc: "  ", want: "is empty"},
		"no fields":      {doc: "options: {}\n", want: "defines no fields"},
		"fields list":    {doc: "fields: [a, b]\n", want: "must be a mapping"},
		"invalid regex":  {doc: "fields:\n  a:\n    pattern: '(['\n", want: "invalid pattern"},
		"negative min":   {doc: "fields:\n  a:\n    minLength: -1\n", want: "must not be negative"},
		"unknown key":    {doc: "fields:\n  a:\n    requried: true\n", want: `unknown key "requried"`},
		"unknown top":    {doc: "feilds: {}\n", want: "parse"},
		"duplicate name": {doc: "fields:\n  a: {}\n  ' a': {}\n", want: "defined twice"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc), "rules.yaml", nil)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestDecode_UnknownCustom(t *testing.T) {
	_, err := Decode([]byte("fields:\n  a:\n    custom: not-admin\n"), "rules.yaml", nil)
	if !errors.Is(err, ErrUnknownCustom) {
		t.Fatalf("expected ErrUnknownCustom, got %v", err)
	}

	customs := NewCustomRegistry()
	if err := customs.Register("not-admin", func(value string) string {
		if value == "admin" {
			return "Reserved name"
		}
		return ""
	}); err != nil {
		t.Fatalf("register: %v", err)
	}
	def, err := Decode([]byte("fields:\n  a:\n    custom: not-admin\n"), "rules.yaml", customs)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := rules.Evaluate(def.Rules, "a", "admin"); !cmp.Equal(got, []string{"Reserved name"}) {
		t.Fatalf("unexpected custom errors: %v", got)
	}
}

func TestCustomRegistry_Builtins(t *testing.T) {
	reg := NewCustomRegistry()
	if diff := cmp.Diff([]string{CustomNoWhitespace, CustomTrimmed}, reg.Names()); diff != "" {
		t.Fatalf("builtins mismatch (-want +got):\n%s", diff)
	}
	trim, _ := reg.Lookup(CustomTrimmed)
	if trim(" x") == "" || trim("x y") != "" {
		t.Fatalf("trimmed validator misbehaves")
	}
	if err := reg.Register(" ", trim); err == nil {
		t.Fatalf("expected error for blank name")
	}
}

func TestDefinition_Validator(t *testing.T) {
	def, err := Decode([]byte(signupRules), "signup.yaml", nil)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	inst, err := def.Validator(nil)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	if inst.Options().ValidateOnChange {
		t.Fatalf("definition options should carry over")
	}
	if errs := inst.HandleChange("username", "x"); len(errs) != 0 {
		t.Fatalf("change validation should be off, got %v", errs)
	}
	result := inst.HandleSubmit(map[string]string{"username": "jane_doe"})
	if diff := cmp.Diff(rules.ErrorMap{"email": {"Email is required"}}, result.Errors); diff != "" {
		t.Fatalf("submit errors mismatch (-want +got):\n%s", diff)
	}
}
