// Package rules holds the field rule evaluator and the form walker. A
// RuleDescriptor configures one field (required, named type, minimum length,
// regex pattern, custom function); Evaluate runs every applicable check in a
// fixed order and returns the accumulated messages, and ValidateAll folds the
// per-field results for a submitted value map into an ErrorMap.
//
// Evaluation is pure: the same rule set, field name and value always produce
// the same messages, and no field's evaluation observes another field's
// entry. Validation failures are data, never Go errors.
package rules
