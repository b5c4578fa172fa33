package httpform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goliatone/go-formvalidator/pkg/render"
	"github.com/goliatone/go-formvalidator/pkg/renderers/html"
	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

// Handler serves one form.
type Handler struct {
	factory      Factory
	renderer     render.Renderer
	base         render.RenderOptions
	onSuccess    SuccessFunc
	redirect     string
	hidden       HiddenFunc
	maxBodyBytes int64
}

var _ http.Handler = (*Handler)(nil)

type errorResponse struct {
	Errors     rules.ErrorMap `json:"errors"`
	FormErrors []string       `json:"formErrors,omitempty"`
}

type successResponse struct {
	Values map[string]string `json:"values"`
}

// New returns a handler building a fresh instance per request through
// factory. The HTML renderer is used unless WithRenderer says otherwise.
func New(factory Factory, options ...Option) (*Handler, error) {
	if factory == nil {
		return nil, ErrNoFactory
	}
	h := &Handler{factory: factory, maxBodyBytes: DefaultMaxBodyBytes}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(h)
	}
	if h.renderer == nil {
		renderer, err := html.New()
		if err != nil {
			return nil, fmt.Errorf("httpform: default renderer: %w", err)
		}
		h.renderer = renderer
	}
	return h, nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.serveForm(w, r)
	case http.MethodPost:
		h.serveSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, HEAD, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *Handler) serveForm(w http.ResponseWriter, r *http.Request) {
	form, err := h.factory(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.write(w, r, form, h.options(r), http.StatusOK)
}

func (h *Handler) serveSubmit(w http.ResponseWriter, r *http.Request) {
	form, err := h.factory(r)
	if err != nil {
		writeError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	names := fieldNames(form)
	values, err := decodeValues(r, names)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = StatusError{Code: http.StatusRequestEntityTooLarge, Err: err}
		}
		writeError(w, err)
		return
	}

	result := form.HandleSubmit(values)
	if !result.Submitted {
		h.reject(w, r, form, values, render.ErrorMapping{})
		return
	}

	if h.onSuccess != nil {
		if err := h.onSuccess(r.Context(), values); err != nil {
			var rejected FieldErrors
			if errors.As(err, &rejected) {
				h.reject(w, r, form, values, render.MapErrorPayload(names, rejected))
				return
			}
			writeError(w, err)
			return
		}
	}

	if isJSON(r) {
		writeJSON(w, http.StatusOK, successResponse{Values: values})
		return
	}
	if h.redirect != "" {
		http.Redirect(w, r, h.redirect, http.StatusSeeOther)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Submitted\n"))
}

// reject answers a failed submission with 422. mapping carries errors raised
// after validation passed.
func (h *Handler) reject(w http.ResponseWriter, r *http.Request, form *validator.Instance, values map[string]string, mapping render.ErrorMapping) {
	if isJSON(r) {
		errs := form.Errors()
		for field, messages := range mapping.Fields {
			errs = errs.With(field, append(errs.Get(field), messages...))
		}
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Errors: errs, FormErrors: mapping.Form})
		return
	}

	// Submission touched every field, so the instance errors are already
	// visible; only the callback's errors travel through the options.
	opts := h.options(r)
	opts.Values = values
	opts.Errors = mapping.Fields
	opts.FormErrors = render.MergeFormErrors(opts.FormErrors, mapping.Form...)
	h.write(w, r, form, opts, http.StatusUnprocessableEntity)
}

func (h *Handler) options(r *http.Request) render.RenderOptions {
	opts := h.base
	if opts.Action == "" {
		opts.Action = r.URL.Path
	}
	if h.hidden != nil {
		opts.Hidden = render.MergeHiddenFields(h.base.Hidden, h.hidden(r)...)
	}
	return opts
}

func (h *Handler) write(w http.ResponseWriter, r *http.Request, form *validator.Instance, opts render.RenderOptions, status int) {
	body, err := h.render(r.Context(), form, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", h.renderer.ContentType())
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(body)
}

func (h *Handler) render(ctx context.Context, form *validator.Instance, opts render.RenderOptions) ([]byte, error) {
	body, err := h.renderer.Render(ctx, form, opts)
	if err != nil {
		return nil, fmt.Errorf("httpform: render %s: %w", h.renderer.Name(), err)
	}
	return body, nil
}

func fieldNames(form *validator.Instance) []string {
	fields := form.Fields()
	names := make([]string, 0, len(fields))
	for _, field := range fields {
		names = append(names, field.Name)
	}
	return names
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	code := statusOf(err, http.StatusInternalServerError)
	msg := http.StatusText(code)
	if code < http.StatusInternalServerError {
		msg = err.Error()
	}
	http.Error(w, msg, code)
}
