// Package orchestrator wires the loader → rules (rule file decoder or OpenAPI
// parser plus builder) → validator → renderer pipeline behind a single entry
// point, with every stage replaceable through options.
package orchestrator
