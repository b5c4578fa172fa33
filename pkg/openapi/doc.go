// Package openapi exposes the operation and schema wrappers the rule builder
// consumes, together with the Parser contract. The kin-openapi backed
// implementation lives under internal/openapi so consumers never import it.
package openapi
