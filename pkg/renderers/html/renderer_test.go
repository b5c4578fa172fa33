package html_test

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formvalidator/pkg/render"
	"github.com/goliatone/go-formvalidator/pkg/renderers/html"
	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/testsupport"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

func signupForm() *validator.Instance {
	return validator.New(rules.RuleSet{
		"username": {Required: true, MinLength: 3, Pattern: regexp.MustCompile(`^[a-z_]+$`), Message: "Use <strong>lowercase</strong> letters<script>alert(1)</script>"},
		"email":    {Type: rules.TypeEmail},
		"bio":      {},
	}, nil, validator.WithFields(
		validator.FieldDescriptor{Name: "username", Placeholder: "jane_doe"},
		validator.FieldDescriptor{Name: "email", InputType: validator.InputEmail, Help: "We never share it <em>ever</em>"},
		validator.FieldDescriptor{Name: "bio", InputType: validator.InputTextArea},
	))
}

func renderForm(t *testing.T, r *html.Renderer, form *validator.Instance, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(testsupport.Context(), form, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func assertContains(t *testing.T, output string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(output, fragment) {
			t.Fatalf("output missing %q\n%s", fragment, output)
		}
	}
}

func TestRenderer_PristineForm(t *testing.T) {
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.Name() != "html" || !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("unexpected renderer metadata")
	}

	output := renderForm(t, r, signupForm(), render.RenderOptions{Action: "/signup", Title: "Sign up"})

	assertContains(t, output,
		`<form class="fv-form" action="/signup" method="post" novalidate>`,
		`<h2 class="fv-title">Sign up</h2>`,
		`<input id="username" name="username" type="text" value="" placeholder="jane_doe" required minlength="3" aria-invalid="false" aria-required="true">`,
		`aria-describedby="email-help"`,
		`<p class="fv-help" id="email-help">We never share it <em>ever</em></p>`,
		`<textarea id="bio" name="bio" aria-invalid="false" aria-required="false"></textarea>`,
		`<div class="fv-errors" id="username-error" role="alert" aria-live="polite"></div>`,
		`<button type="submit">Submit</button>`,
	)
	if strings.Contains(output, "data-invalid") {
		t.Fatalf("pristine form should not be flagged invalid")
	}
}

func TestRenderer_ErrorsAreVisibleAndSanitized(t *testing.T) {
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	form := signupForm()
	form.HandleSubmit(map[string]string{"username": "A!", "email": `"><script>`})

	output := renderForm(t, r, form, render.RenderOptions{
		Values:     map[string]string{"username": "A!", "email": `"><script>`},
		FormErrors: []string{"Could not save, price < 5"},
	})

	assertContains(t, output,
		`data-invalid="true"`,
		`<div class="fv-form-errors" role="alert">`,
		`<p>Could not save, price &lt; 5</p>`,
		`aria-invalid="true"`,
		`aria-describedby="username-error"`,
		`<p>Minimum 3 characters required</p><p>Use <strong>lowercase</strong> letters</p>`,
		`value="&quot;&gt;&lt;script&gt;"`,
		`<p>Invalid email format</p>`,
	)
	if strings.Contains(output, "alert(1)") {
		t.Fatalf("script content must be stripped:\n%s", output)
	}
}

func TestRenderer_MethodOverrideAndHidden(t *testing.T) {
	r, err := html.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output := renderForm(t, r, signupForm(), render.RenderOptions{
		Method: "patch",
		Hidden: render.MergeHiddenFields(nil, render.CSRFToken("_csrf", "tok")),
	})
	assertContains(t, output,
		`method="post"`,
		`<input type="hidden" name="_csrf" value="tok">`,
		`<input type="hidden" name="_method" value="PATCH">`,
	)
}

func TestRenderer_Theme(t *testing.T) {
	r, err := html.New(html.WithDefaultStyles())
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	output := renderForm(t, r, signupForm(), render.RenderOptions{Theme: &theme.RendererConfig{
		Theme:   "acme",
		Variant: "dark",
		Tokens:  map[string]string{"brand": "#123456"},
		CSSVars: map[string]string{"--fv-radius": "0"},
		AssetURL: func(key string) string {
			return "/themes/acme/" + key
		},
	}})

	assertContains(t, output,
		`<style data-formvalidator-theme="acme">`,
		"  --fv-brand: #123456;\n  --fv-radius: 0;\n",
		`<link rel="stylesheet" href="/themes/acme/formvalidator.css">`,
		`data-theme="acme" data-theme-variant="dark"`,
		`.fv-field--invalid input`,
	)
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"templates/form.tmpl": {Data: []byte(`{% for field in form.fields %}[{{ field.name }}:{{ field.ariaRequired }}]{% endfor %}`)},
	}
	r, err := html.New(html.WithTemplatesFS(files))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	if got := renderForm(t, r, signupForm(), render.RenderOptions{}); got != "[username:true][email:false][bio:false]" {
		t.Fatalf("custom template output = %q", got)
	}
}

func TestRenderer_TemplatesDirOverridesBundle(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	tmpl := `{% for field in form.fields %}<{{ field.name }}>{% endfor %}`
	if err := os.WriteFile(filepath.Join(dir, "templates", "form.tmpl"), []byte(tmpl), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	r, err := html.New(html.WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if got := renderForm(t, r, signupForm(), render.RenderOptions{}); got != "<username><email><bio>" {
		t.Fatalf("directory template output = %q", got)
	}
}
