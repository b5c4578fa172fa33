package httpform

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
)

const (
	contentTypeJSON      = "application/json"
	contentTypeForm      = "application/x-www-form-urlencoded"
	contentTypeMultipart = "multipart/form-data"
)

func isJSON(r *http.Request) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return mediaType == contentTypeJSON
}

// decodeValues reads the submitted values for the registered names. Names
// absent from the body are left out so the validator can tell missing from
// empty.
func decodeValues(r *http.Request, names []string) (map[string]string, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil && r.Header.Get("Content-Type") != "" {
		return nil, StatusError{Code: http.StatusUnsupportedMediaType, Err: fmt.Errorf("httpform: content type: %w", err)}
	}

	var raw map[string]string
	switch mediaType {
	case contentTypeJSON:
		raw, err = decodeJSON(r)
	case contentTypeMultipart:
		err = r.ParseMultipartForm(32 << 10)
		raw = firstValues(r)
	case contentTypeForm, "":
		err = r.ParseForm()
		raw = firstValues(r)
	default:
		return nil, StatusError{Code: http.StatusUnsupportedMediaType, Err: fmt.Errorf("httpform: unsupported content type %q", mediaType)}
	}
	if err != nil {
		return nil, StatusError{Code: http.StatusBadRequest, Err: err}
	}

	values := make(map[string]string, len(names))
	for _, name := range names {
		if value, ok := raw[name]; ok {
			values[name] = value
		}
	}
	return values, nil
}

func firstValues(r *http.Request) map[string]string {
	out := make(map[string]string, len(r.PostForm))
	for key, values := range r.PostForm {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}

func decodeJSON(r *http.Request) (map[string]string, error) {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()

	var payload any
	if err := decoder.Decode(&payload); err != nil {
		return nil, fmt.Errorf("httpform: decode json: %w", err)
	}
	object, ok := payload.(map[string]any)
	if !ok {
		return nil, errors.New("httpform: json body must be an object")
	}
	out := make(map[string]string)
	flatten("", object, out)
	return out, nil
}

func flatten(prefix string, value any, out map[string]string) {
	switch v := value.(type) {
	case map[string]any:
		for key, child := range v {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			flatten(next, child, out)
		}
	case []any:
		for idx, child := range v {
			flatten(prefix+"["+strconv.Itoa(idx)+"]", child, out)
		}
	case nil:
		out[prefix] = ""
	case string:
		out[prefix] = v
	case json.Number:
		out[prefix] = v.String()
	case bool:
		out[prefix] = strconv.FormatBool(v)
	}
}
