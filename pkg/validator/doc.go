// Package validator binds a rules.RuleSet to the interaction events of one
// form. An Instance keeps the current ErrorMap and TouchedSet inside an
// immutable State value; HandleChange, HandleBlur and HandleSubmit compute a
// new State with pure update functions and replace the old one wholesale.
//
// Fields are declared through an explicit Registry of FieldDescriptor values
// instead of being discovered from UI nodes. Hosts call the handlers from their
// own event code and compose them with any logic of their own.
package validator
