package httpform_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formvalidator/pkg/httpform"
	"github.com/goliatone/go-formvalidator/pkg/render"
	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

func signupFactory(*http.Request) (*validator.Instance, error) {
	set := rules.RuleSet{
		"email":        {Required: true, Type: rules.TypeEmail, TypeMessage: "Enter a valid email"},
		"address.city": {Required: true},
	}
	return validator.New(set, nil, validator.WithFields(
		validator.FieldDescriptor{Name: "email", InputType: validator.InputEmail},
		validator.FieldDescriptor{Name: "address.city", Label: "City"},
	)), nil
}

func newHandler(t *testing.T, opts ...httpform.Option) *httpform.Handler {
	t.Helper()
	handler, err := httpform.New(signupFactory, opts...)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	return handler
}

func postForm(handler http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func postJSON(handler http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHandler_GetRendersPristineForm(t *testing.T) {
	handler := newHandler(t,
		httpform.WithRenderOptions(render.RenderOptions{Title: "Sign up"}),
		httpform.WithHidden(func(*http.Request) []render.HiddenField {
			return []render.HiddenField{render.CSRFToken("", "tok-1")}
		}),
	)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/signup", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type %q", ct)
	}
	body := rec.Body.String()
	for _, fragment := range []string{
		`action="/signup"`,
		`<h2 class="fv-title">Sign up</h2>`,
		`value="tok-1"`,
		`name="address.city"`,
	} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in body:\n%s", fragment, body)
		}
	}
	if strings.Contains(body, `aria-invalid="true"`) {
		t.Fatalf("pristine form must not show errors:\n%s", body)
	}
}

func TestHandler_HeadWritesNoBody(t *testing.T) {
	rec := httptest.NewRecorder()
	newHandler(t).ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/signup", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
		t.Fatalf("unexpected HEAD response: %d %q", rec.Code, rec.Body.String())
	}
}

func TestHandler_InvalidSubmissionRerendersWith422(t *testing.T) {
	called := false
	handler := newHandler(t, httpform.WithOnSuccess(func(context.Context, map[string]string) error {
		called = true
		return nil
	}))

	rec := postForm(handler, url.Values{"email": {"not-an-email"}})

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	if called {
		t.Fatalf("success callback must not run")
	}
	body := rec.Body.String()
	for _, fragment := range []string{
		`value="not-an-email"`,
		`<p>Enter a valid email</p>`,
		`<p>` + rules.DefaultRequiredMessage + `</p>`,
		`aria-describedby="address-city-error"`,
	} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in body:\n%s", fragment, body)
		}
	}
}

func TestHandler_ValidSubmissionRedirects(t *testing.T) {
	var received map[string]string
	handler := newHandler(t,
		httpform.WithOnSuccess(func(_ context.Context, values map[string]string) error {
			received = values
			return nil
		}),
		httpform.WithRedirect("/welcome"),
	)

	rec := postForm(handler, url.Values{
		"email":        {"jane@example.com"},
		"address.city": {"Lisbon"},
		"_csrf":        {"tok-1"},
	})

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if loc := rec.Header().Get("Location"); loc != "/welcome" {
		t.Fatalf("unexpected redirect %q", loc)
	}
	want := map[string]string{"email": "jane@example.com", "address.city": "Lisbon"}
	if diff := cmp.Diff(want, received); diff != "" {
		t.Fatalf("callback values mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_JSONSubmission(t *testing.T) {
	handler := newHandler(t)

	rec := postJSON(handler, `{"email":"jane@example.com","address":{"city":"Lisbon"}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var ok struct {
		Values map[string]string `json:"values"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &ok); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"email": "jane@example.com", "address.city": "Lisbon"}, ok.Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}

	rec = postJSON(handler, `{"email":"jane@example.com","address":{"city":null}}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var failed struct {
		Errors rules.ErrorMap `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &failed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if diff := cmp.Diff(rules.ErrorMap{"address.city": {rules.DefaultRequiredMessage}}, failed.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_SuccessCallbackRejection(t *testing.T) {
	handler := newHandler(t, httpform.WithOnSuccess(func(context.Context, map[string]string) error {
		return httpform.FieldErrors{
			"/body/email": {"Already registered"},
			"quota":       {"Too many signups today"},
		}
	}))

	rec := postForm(handler, url.Values{"email": {"jane@example.com"}, "address.city": {"Lisbon"}})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, fragment := range []string{
		`<p>Already registered</p>`,
		`<p>Too many signups today</p>`,
		`aria-describedby="email-error"`,
	} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("expected %q in body:\n%s", fragment, body)
		}
	}

	rec = postJSON(handler, `{"email":"jane@example.com","address":{"city":"Lisbon"}}`)
	var failed struct {
		Errors     rules.ErrorMap `json:"errors"`
		FormErrors []string       `json:"formErrors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &failed); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if diff := cmp.Diff(rules.ErrorMap{"email": {"Already registered"}}, failed.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Too many signups today"}, failed.FormErrors); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestHandler_CallbackFailureStatus(t *testing.T) {
	handler := newHandler(t, httpform.WithOnSuccess(func(context.Context, map[string]string) error {
		return httpform.StatusError{Code: http.StatusConflict, Err: errors.New("duplicate")}
	}))

	rec := postForm(handler, url.Values{"email": {"jane@example.com"}, "address.city": {"Lisbon"}})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHandler_RejectsRequests(t *testing.T) {
	handler := newHandler(t, httpform.WithMaxBodyBytes(16))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/signup", nil))
	if rec.Code != http.StatusMethodNotAllowed || rec.Header().Get("Allow") == "" {
		t.Fatalf("expected 405 with Allow header, got %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader("<xml/>"))
	req.Header.Set("Content-Type", "application/xml")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}

	rec = postJSON(handler, `{"email":"a-very-long-address@example.com"}`)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rec.Code)
	}

	rec = postJSON(newHandler(t), `["not","an","object"]`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestNew_RequiresFactory(t *testing.T) {
	if _, err := httpform.New(nil); !errors.Is(err, httpform.ErrNoFactory) {
		t.Fatalf("expected ErrNoFactory, got %v", err)
	}
}
