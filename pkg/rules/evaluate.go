package rules

import (
	"fmt"
	"unicode/utf8"
)

// Evaluate runs the descriptor registered for field against value. A field
// without a descriptor has no rules and always yields nil.
func Evaluate(set RuleSet, field, value string) []string {
	desc, ok := set.Lookup(field)
	if !ok {
		return nil
	}
	return desc.Evaluate(value)
}

// Evaluate applies every configured check to value and returns the messages in
// check order: required, type, minimum length, pattern, custom. Checks other
// than required only run for non-empty values. The result is nil when the
// value passes.
func (d RuleDescriptor) Evaluate(value string) []string {
	var messages []string

	if value == "" {
		if d.Required {
			messages = append(messages, messageOr(d.RequiredMessage, DefaultRequiredMessage))
		}
		return messages
	}

	if d.Type != "" {
		if match, ok := LookupType(d.Type); ok && !match(value) {
			messages = append(messages, messageOr(d.TypeMessage, fmt.Sprintf(typeMessageFormat, d.Type)))
		}
	}

	if d.MinLength > 0 && utf8.RuneCountInString(value) < d.MinLength {
		messages = append(messages, fmt.Sprintf(minLengthMessageFormat, d.MinLength))
	}

	if d.Pattern != nil && !d.Pattern.MatchString(value) {
		messages = append(messages, messageOr(d.Message, DefaultPatternMessage))
	}

	if d.Custom != nil {
		if msg := d.Custom(value); msg != "" {
			messages = append(messages, msg)
		}
	}

	return messages
}

// ValidateAll evaluates every submitted field and collects the failures into a
// fresh ErrorMap. hasErrors reports whether any field produced a message.
func ValidateAll(set RuleSet, values map[string]string) (ErrorMap, bool) {
	errs := make(ErrorMap)
	for field, value := range values {
		if messages := Evaluate(set, field, value); len(messages) > 0 {
			errs[field] = messages
		}
	}
	return errs, len(errs) > 0
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
