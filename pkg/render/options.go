package render

import theme "github.com/goliatone/go-theme"

// RenderOptions describe per-request data renderers use to customise their
// output without touching the validator state.
type RenderOptions struct {
	// Action and Method populate the form element. Method defaults to POST.
	Action string
	Method string
	// Title is rendered as the form heading when set.
	Title       string
	SubmitLabel string
	// Values pre-populates controls by field name.
	Values map[string]string
	// Errors carries server-side feedback keyed by field name. Entries are
	// shown as visible errors regardless of the touched set; run raw payloads
	// through MapErrorPayload first.
	Errors map[string][]string
	// FormErrors are messages not tied to a single field.
	FormErrors []string
	// Hidden fields are emitted as hidden inputs, for example a CSRF token.
	Hidden map[string]string
	// Theme supplies CSS variables, tokens and asset URLs.
	Theme *theme.RendererConfig
}
