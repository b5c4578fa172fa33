package validator_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

func contactRules() rules.RuleSet {
	return rules.RuleSet{
		"name":  {Required: true},
		"email": {Pattern: regexp.MustCompile(`^\S+@\S+$`), Message: "Invalid email format"},
	}
}

func TestHandleSubmit_ValidSubmissionCallsSuccess(t *testing.T) {
	var received map[string]string
	calls := 0
	inst := validator.New(contactRules(), func(values map[string]string) {
		calls++
		received = values
	})

	values := map[string]string{"name": "Jane Doe", "email": "jane@example.com"}
	result := inst.HandleSubmit(values)

	if !result.Submitted {
		t.Fatalf("expected submission to pass, got errors %v", result.Errors)
	}
	if len(result.Errors) != 0 {
		t.Fatalf("expected no errors, got %v", result.Errors)
	}
	if calls != 1 {
		t.Fatalf("expected success callback once, got %d", calls)
	}
	if diff := cmp.Diff(map[string]string{"name": "Jane Doe", "email": "jane@example.com"}, received); diff != "" {
		t.Fatalf("callback payload mismatch (-want +got):\n%s", diff)
	}
}

func TestHandleSubmit_InvalidSubmissionSkipsSuccess(t *testing.T) {
	called := false
	set := rules.RuleSet{
		"email": {Pattern: regexp.MustCompile(`^\S+@\S+$`), Message: "Invalid email format"},
	}
	inst := validator.New(set, func(map[string]string) { called = true })

	result := inst.HandleSubmit(map[string]string{"email": "invalid-email"})

	if result.Submitted {
		t.Fatalf("expected submission to fail")
	}
	if called {
		t.Fatalf("success callback must not run on failure")
	}
	if diff := cmp.Diff(rules.ErrorMap{"email": {"Invalid email format"}}, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if !inst.State().IsTouched("email") {
		t.Fatalf("submitted fields should be touched")
	}
}

func TestHandleSubmit_RegisteredFieldsMissingFromValues(t *testing.T) {
	var received map[string]string
	inst := validator.New(contactRules(), func(values map[string]string) { received = values },
		validator.WithFields(
			validator.FieldDescriptor{Name: "name"},
			validator.FieldDescriptor{Name: "email", InputType: validator.InputEmail},
		),
	)

	result := inst.HandleSubmit(map[string]string{"email": "jane@example.com"})
	if result.Submitted {
		t.Fatalf("missing required registered field should fail")
	}
	if diff := cmp.Diff(rules.ErrorMap{"name": {rules.DefaultRequiredMessage}}, result.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if received != nil {
		t.Fatalf("callback must not run")
	}

	result = inst.HandleSubmit(map[string]string{"name": "Jane"})
	if !result.Submitted {
		t.Fatalf("optional missing field should pass, got %v", result.Errors)
	}
	if diff := cmp.Diff(map[string]string{"name": "Jane"}, received); diff != "" {
		t.Fatalf("callback should receive only the submitted values (-want +got):\n%s", diff)
	}
}

func TestHandleSubmit_ReplacesPreviousErrors(t *testing.T) {
	inst := validator.New(contactRules(), nil)

	inst.HandleSubmit(map[string]string{"name": "", "email": "bad"})
	result := inst.HandleSubmit(map[string]string{"name": "Jane", "email": "jane@example.com"})

	if !result.Submitted || len(inst.Errors()) != 0 {
		t.Fatalf("expected clean state after valid resubmission, got %v", inst.Errors())
	}
}

func TestHandleChange(t *testing.T) {
	inst := validator.New(contactRules(), nil)

	errs := inst.HandleChange("email", "bad")
	if diff := cmp.Diff(rules.ErrorMap{"email": {"Invalid email format"}}, errs); diff != "" {
		t.Fatalf("change errors mismatch (-want +got):\n%s", diff)
	}
	if inst.State().IsTouched("email") {
		t.Fatalf("change must not mark the field touched")
	}

	errs = inst.HandleChange("name", "")
	want := rules.ErrorMap{
		"email": {"Invalid email format"},
		"name":  {rules.DefaultRequiredMessage},
	}
	if diff := cmp.Diff(want, errs); diff != "" {
		t.Fatalf("other field entries must survive (-want +got):\n%s", diff)
	}

	errs = inst.HandleChange("email", "jane@example.com")
	if diff := cmp.Diff(rules.ErrorMap{"name": {rules.DefaultRequiredMessage}}, errs); diff != "" {
		t.Fatalf("fixed field should be cleared (-want +got):\n%s", diff)
	}
}

func TestHandleChange_Disabled(t *testing.T) {
	inst := validator.New(contactRules(), nil, validator.WithValidateOnChange(false))

	if errs := inst.HandleChange("email", "bad"); len(errs) != 0 {
		t.Fatalf("expected no validation on change, got %v", errs)
	}
}

func TestHandleBlur(t *testing.T) {
	inst := validator.New(contactRules(), nil)

	errs := inst.HandleBlur("name", "")
	if diff := cmp.Diff(rules.ErrorMap{"name": {rules.DefaultRequiredMessage}}, errs); diff != "" {
		t.Fatalf("blur errors mismatch (-want +got):\n%s", diff)
	}
	if !inst.State().IsTouched("name") {
		t.Fatalf("blur should mark the field touched")
	}
}

func TestHandleBlur_DisabledStillTouches(t *testing.T) {
	inst := validator.New(contactRules(), nil, validator.WithValidateOnBlur(false))

	if errs := inst.HandleBlur("name", ""); len(errs) != 0 {
		t.Fatalf("expected no validation on blur, got %v", errs)
	}
	if !inst.State().IsTouched("name") {
		t.Fatalf("blur should mark the field touched even without validation")
	}
}

func TestVisibleErrorsAndAttributes(t *testing.T) {
	inst := validator.New(contactRules(), nil)

	inst.HandleChange("name", "")
	if len(inst.VisibleErrors()) != 0 {
		t.Fatalf("untouched errors must stay hidden, got %v", inst.VisibleErrors())
	}
	attrs := inst.Attributes("name")
	if attrs.Invalid || attrs.AriaInvalid() != "false" {
		t.Fatalf("untouched field should not be flagged invalid: %+v", attrs)
	}
	if !attrs.Required || attrs.AriaRequired() != "true" {
		t.Fatalf("required field should report aria-required: %+v", attrs)
	}

	inst.HandleBlur("name", "")
	if diff := cmp.Diff(rules.ErrorMap{"name": {rules.DefaultRequiredMessage}}, inst.VisibleErrors()); diff != "" {
		t.Fatalf("visible errors mismatch (-want +got):\n%s", diff)
	}
	attrs = inst.Attributes("name")
	want := validator.FieldAttributes{Invalid: true, Required: true, DescribedBy: "name-error"}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Fatalf("attributes mismatch (-want +got):\n%s", diff)
	}

	inst.Reset()
	if len(inst.Errors()) != 0 || inst.State().IsTouched("name") {
		t.Fatalf("reset should clear state")
	}
}

func TestFieldsDerivedFromRules(t *testing.T) {
	set := rules.RuleSet{
		"email":     {Type: rules.TypeEmail},
		"firstName": {Required: true},
		"password":  {Type: rules.TypePassword},
	}
	inst := validator.New(set, nil)

	want := []validator.FieldDescriptor{
		{Name: "email", Label: "Email", InputType: validator.InputEmail},
		{Name: "firstName", Label: "First Name", InputType: validator.InputText},
		{Name: "password", Label: "Password", InputType: validator.InputPassword},
	}
	if diff := cmp.Diff(want, inst.Fields()); diff != "" {
		t.Fatalf("derived fields mismatch (-want +got):\n%s", diff)
	}
}

func TestNewWithError_DuplicateFields(t *testing.T) {
	_, err := validator.NewWithError(contactRules(), nil, validator.WithFields(
		validator.FieldDescriptor{Name: "name"},
		validator.FieldDescriptor{Name: "name"},
	))
	if !errors.Is(err, validator.ErrFieldExists) {
		t.Fatalf("expected ErrFieldExists, got %v", err)
	}

	_, err = validator.NewWithError(contactRules(), nil, validator.WithFields(validator.FieldDescriptor{Name: " "}))
	if !errors.Is(err, validator.ErrFieldName) {
		t.Fatalf("expected ErrFieldName, got %v", err)
	}
}

func TestWithInitialState(t *testing.T) {
	seed := validator.NewState(rules.ErrorMap{"email": {"Already taken"}}, "email")
	inst := validator.New(contactRules(), nil, validator.WithInitialState(seed))

	if diff := cmp.Diff(rules.ErrorMap{"email": {"Already taken"}}, inst.VisibleErrors()); diff != "" {
		t.Fatalf("initial state mismatch (-want +got):\n%s", diff)
	}
}

func TestErrorID(t *testing.T) {
	cases := map[string]string{
		"email":          "email-error",
		"billing.street": "billing-street-error",
		"tags[0]":        "tags-0-error",
	}
	for input, want := range cases {
		if got := validator.ErrorID(input); got != want {
			t.Fatalf("ErrorID(%q) = %q, want %q", input, got, want)
		}
	}
}
