package httpform

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// ErrNoFactory is returned by New when the form factory is nil.
var ErrNoFactory = errors.New("httpform: form factory is required")

// FieldErrors lets a success callback reject a submission after validation
// passed, for example when a username is already taken. Keys follow the
// payload conventions understood by render.MapErrorPayload.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for key := range e {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return "httpform: submission rejected: " + strings.Join(keys, ", ")
}

// StatusError carries the status code written for an error.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

// StatusCode returns Code, defaulting to 500.
func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

func statusOf(err error, fallback int) int {
	var status StatusError
	if errors.As(err, &status) {
		return status.StatusCode()
	}
	return fallback
}
