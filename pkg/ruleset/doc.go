// Package ruleset loads form definitions: a rule set plus the ordered field
// descriptors and trigger options a validator.Instance needs. Definitions come
// from YAML or JSON rule files:
//
//	options:
//	  validateOnChange: true
//	  validateOnBlur: true
//	fields:
//	  email:
//	    label: Email
//	    input: email
//	    required: true
//	    requiredMessage: Email is required
//	    type: email
//	    typeMessage: Enter a valid email
//	    pattern: '^\S+@\S+$'
//	    message: Invalid email
//	    minLength: 6
//	    custom: no-whitespace
//
// or from OpenAPI request bodies through a Builder. Property-level overrides
// use the `x-formvalidator` extension, either as a nested map or as flat
// `x-formvalidator-<key>` entries.
package ruleset
