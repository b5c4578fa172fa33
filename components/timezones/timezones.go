package timezones

import (
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/goliatone/go-formvalidator/pkg/rules"
	"github.com/goliatone/go-formvalidator/pkg/ruleset"
)

// CustomName is the name rule files use to reference the validator.
const CustomName = "timezone"

// DefaultMessage is reported for unknown zones.
const DefaultMessage = "Unknown timezone"

type options struct {
	message  string
	allowUTC bool
	name     string
}

// Option configures the validator.
type Option func(*options)

// WithMessage overrides DefaultMessage.
func WithMessage(message string) Option {
	return func(o *options) {
		if strings.TrimSpace(message) != "" {
			o.message = message
		}
	}
}

// WithoutUTC rejects "UTC" and "Local", leaving only region zones.
func WithoutUTC() Option {
	return func(o *options) {
		o.allowUTC = false
	}
}

// WithName registers the validator under a different name.
func WithName(name string) Option {
	return func(o *options) {
		if strings.TrimSpace(name) != "" {
			o.name = strings.TrimSpace(name)
		}
	}
}

func newOptions(fns []Option) options {
	opts := options{message: DefaultMessage, allowUTC: true, name: CustomName}
	for _, fn := range fns {
		if fn != nil {
			fn(&opts)
		}
	}
	return opts
}

// Validator returns the custom validator. Empty values pass; pair it with
// required when a zone must be given.
func Validator(fns ...Option) rules.CustomFunc {
	opts := newOptions(fns)
	return func(value string) string {
		if value == "" {
			return ""
		}
		if !Valid(value) {
			return opts.message
		}
		if !opts.allowUTC && !strings.Contains(value, "/") {
			return opts.message
		}
		return ""
	}
}

// Valid reports whether name is a loadable IANA zone. "Local" is rejected
// since it depends on the host.
func Valid(name string) bool {
	if name == "" || name == "Local" || strings.TrimSpace(name) != name {
		return false
	}
	_, err := time.LoadLocation(name)
	return err == nil
}

// Register adds the validator to reg.
func Register(reg *ruleset.CustomRegistry, fns ...Option) error {
	opts := newOptions(fns)
	return reg.Register(opts.name, Validator(fns...))
}
