package render

import (
	"strconv"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/rules"
)

// ErrorMapping splits a server error payload into field-level and form-level
// messages.
type ErrorMapping struct {
	Fields rules.ErrorMap
	Form   []string
}

// MergeFormErrors concatenates form-level messages, trimming whitespace and
// dropping blanks and duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrorPayload attaches payload entries to the given field names. Keys may
// be dotted paths, slash separated JSON pointers ("/body/email") or JSONPath
// style ("$.data.tags[0]"); leading request wrappers and array indexes are
// ignored when matching. Keys that match no field become form-level messages.
func MapErrorPayload(fields []string, payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{Fields: make(rules.ErrorMap)}
	if len(payload) == 0 {
		return mapping
	}

	known := make(map[string]struct{}, len(fields))
	for _, name := range fields {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			known[trimmed] = struct{}{}
		}
	}

	for raw, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		if field := matchField(raw, known); field != "" {
			mapping.Fields[field] = normalizeMessages(append(mapping.Fields[field], normalized...))
			continue
		}
		mapping.Form = append(mapping.Form, normalized...)
	}

	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var wrapperSegments = map[string]struct{}{
	"body":       {},
	"request":    {},
	"payload":    {},
	"data":       {},
	"attributes": {},
}

func matchField(raw string, known map[string]struct{}) string {
	if isFormLevelKey(raw) {
		return ""
	}
	segments := splitPath(raw)

	// Try the path as given first, then without wrappers and indexes.
	candidates := [][]string{segments}
	stripped := make([]string, 0, len(segments))
	leading := true
	for _, segment := range segments {
		if _, ok := wrapperSegments[strings.ToLower(segment)]; ok && leading {
			continue
		}
		leading = false
		if _, err := strconv.Atoi(segment); err == nil {
			continue
		}
		stripped = append(stripped, segment)
	}
	candidates = append(candidates, stripped)

	best := ""
	for _, candidate := range candidates {
		for end := len(candidate); end > 0; end-- {
			name := strings.Join(candidate[:end], ".")
			if _, ok := known[name]; ok {
				if best == "" || strings.Count(name, ".") > strings.Count(best, ".") {
					best = name
				}
				break
			}
		}
	}
	return best
}

func splitPath(raw string) []string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimLeft(clean, "#$./")
	clean = strings.NewReplacer("[", ".", "]", "").Replace(clean)

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
