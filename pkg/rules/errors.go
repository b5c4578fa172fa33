package rules

import "sort"

// ErrorMap holds the messages produced by one validation pass keyed by field
// name. Fields without messages are absent.
type ErrorMap map[string][]string

// Has reports whether field carries at least one message.
func (m ErrorMap) Has(field string) bool {
	return len(m[field]) > 0
}

// Get returns the messages recorded for field.
func (m ErrorMap) Get(field string) []string {
	if m == nil {
		return nil
	}
	return m[field]
}

// HasErrors reports whether any field carries a message.
func (m ErrorMap) HasErrors() bool {
	for _, messages := range m {
		if len(messages) > 0 {
			return true
		}
	}
	return false
}

// Fields returns the names with messages in lexical order.
func (m ErrorMap) Fields() []string {
	if len(m) == 0 {
		return nil
	}
	names := make([]string, 0, len(m))
	for name, messages := range m {
		if len(messages) == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy so callers can hand the map out without sharing
// message slices.
func (m ErrorMap) Clone() ErrorMap {
	out := make(ErrorMap, len(m))
	for name, messages := range m {
		if len(messages) == 0 {
			continue
		}
		out[name] = append([]string(nil), messages...)
	}
	return out
}

// With returns a copy of m where field's entry is replaced by messages. An
// empty messages slice removes the entry. Other entries are untouched.
func (m ErrorMap) With(field string, messages []string) ErrorMap {
	out := m.Clone()
	if len(messages) == 0 {
		delete(out, field)
		return out
	}
	out[field] = append([]string(nil), messages...)
	return out
}

// Filter returns the entries whose field name satisfies keep.
func (m ErrorMap) Filter(keep func(field string) bool) ErrorMap {
	out := make(ErrorMap)
	for name, messages := range m {
		if len(messages) == 0 || keep == nil || !keep(name) {
			continue
		}
		out[name] = append([]string(nil), messages...)
	}
	return out
}
