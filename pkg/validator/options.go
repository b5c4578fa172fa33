package validator

// SubmitFunc receives the submitted field values after a submission passes.
type SubmitFunc func(values map[string]string)

// Options toggles which events trigger validation. Submission always
// validates.
type Options struct {
	ValidateOnChange bool
	ValidateOnBlur   bool
}

// DefaultOptions enables validation on change and on blur.
func DefaultOptions() Options {
	return Options{
		ValidateOnChange: true,
		ValidateOnBlur:   true,
	}
}

type config struct {
	options Options
	fields  []FieldDescriptor
	state   *State
}

// Option configures an Instance.
type Option func(*config)

// WithValidateOnChange toggles validation inside HandleChange.
func WithValidateOnChange(enabled bool) Option {
	return func(cfg *config) {
		cfg.options.ValidateOnChange = enabled
	}
}

// WithValidateOnBlur toggles validation inside HandleBlur. Blur still marks
// the field touched when disabled.
func WithValidateOnBlur(enabled bool) Option {
	return func(cfg *config) {
		cfg.options.ValidateOnBlur = enabled
	}
}

// WithOptions replaces both trigger toggles.
func WithOptions(opts Options) Option {
	return func(cfg *config) {
		cfg.options = opts
	}
}

// WithFields registers field descriptors. Without them the instance derives
// descriptors from the rule set.
func WithFields(fields ...FieldDescriptor) Option {
	return func(cfg *config) {
		cfg.fields = append(cfg.fields, fields...)
	}
}

// WithInitialState seeds the instance, for example with server-side errors
// that should show on first render.
func WithInitialState(state State) Option {
	return func(cfg *config) {
		cfg.state = &state
	}
}
