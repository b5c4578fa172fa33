package validator

import "strings"

// FieldAttributes carries the accessibility state renderers apply to an
// input.
type FieldAttributes struct {
	Invalid     bool
	Required    bool
	DescribedBy string
}

// AriaInvalid renders Invalid as the aria-invalid attribute value.
func (a FieldAttributes) AriaInvalid() string {
	if a.Invalid {
		return "true"
	}
	return "false"
}

// AriaRequired renders Required as the aria-required attribute value.
func (a FieldAttributes) AriaRequired() string {
	if a.Required {
		return "true"
	}
	return "false"
}

// Attributes reports the accessibility state of name. A field is invalid only
// once it is touched and carries errors; DescribedBy then points at the error
// container rendered for it.
func (i *Instance) Attributes(name string) FieldAttributes {
	state := i.State()
	desc, _ := i.rules.Lookup(name)
	attrs := FieldAttributes{
		Invalid:  state.IsTouched(name) && len(state.FieldErrors(name)) > 0,
		Required: desc.Required,
	}
	if attrs.Invalid {
		attrs.DescribedBy = ErrorID(name)
	}
	return attrs
}

// ErrorID returns the element id used for a field's error container.
func ErrorID(name string) string {
	replacer := strings.NewReplacer(".", "-", "[", "-", "]", "", " ", "-")
	return replacer.Replace(strings.TrimSpace(name)) + "-error"
}
