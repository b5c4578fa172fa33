package rules

import (
	"regexp"
	"sort"
)

// TypeName identifies one of the named value formats checked by the Type rule.
type TypeName string

const (
	TypeEmail    TypeName = "email"
	TypePhone    TypeName = "phone"
	TypePassword TypeName = "password"
	TypeURL      TypeName = "url"
)

// Default messages used when a descriptor leaves the matching message empty.
const (
	DefaultRequiredMessage = "This field is required"
	DefaultPatternMessage  = "Invalid format"
	typeMessageFormat      = "Invalid %s format"
	minLengthMessageFormat = "Minimum %d characters required"
)

// CustomFunc validates a non-empty value and returns an error message, or an
// empty string when the value is acceptable.
type CustomFunc func(value string) string

// RuleDescriptor configures the checks applied to a single field. Zero values
// disable a check: an empty Type, a nil Pattern, a MinLength of zero and a nil
// Custom are all skipped. Descriptors are treated as read-only once handed to
// the evaluator.
type RuleDescriptor struct {
	Required        bool
	RequiredMessage string
	Type            TypeName
	TypeMessage     string
	Pattern         *regexp.Regexp
	Message         string
	// MinLength counts Unicode code points, not bytes or UTF-16 code units,
	// so "😀" is one character.
	MinLength       int
	Custom          CustomFunc
	// CustomName records the registry name Custom was resolved from.
	CustomName      string
}

// RuleSet maps field names to their descriptors.
type RuleSet map[string]RuleDescriptor

// Lookup returns the descriptor registered for name.
func (s RuleSet) Lookup(name string) (RuleDescriptor, bool) {
	if s == nil {
		return RuleDescriptor{}, false
	}
	desc, ok := s[name]
	return desc, ok
}

// Names returns the configured field names in lexical order.
func (s RuleSet) Names() []string {
	if len(s) == 0 {
		return nil
	}
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy of the set. Descriptors are values, so the copy
// can be extended without touching the original map.
func (s RuleSet) Clone() RuleSet {
	if s == nil {
		return nil
	}
	out := make(RuleSet, len(s))
	for name, desc := range s {
		out[name] = desc
	}
	return out
}
