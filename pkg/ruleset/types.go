package ruleset

import internalruleset "github.com/goliatone/go-formvalidator/internal/ruleset"

type Definition = internalruleset.Definition
type FieldSpec = internalruleset.FieldSpec
type CustomRegistry = internalruleset.CustomRegistry

// ErrUnknownCustom re-exports the internal sentinel.
var ErrUnknownCustom = internalruleset.ErrUnknownCustom

const (
	CustomNoWhitespace = internalruleset.CustomNoWhitespace
	CustomTrimmed      = internalruleset.CustomTrimmed

	ExtensionNamespace = internalruleset.ExtensionNamespace
)

// NewCustomRegistry returns a registry preloaded with the built-in custom
// validators.
func NewCustomRegistry() *CustomRegistry {
	return internalruleset.NewCustomRegistry()
}

// ExtensionKeys lists the keys understood inside the x-formvalidator
// extension.
func ExtensionKeys() []string {
	return internalruleset.ExtensionKeys()
}

// ExtensionValues merges the nested and flat x-formvalidator extension keys
// found in ext.
func ExtensionValues(ext map[string]any) map[string]any {
	return internalruleset.ExtensionValues(ext)
}

// CheckExtension reports why value is unusable for an extension key. A nil
// registry checks `custom` against the built-ins.
func CheckExtension(key string, value any, customs *CustomRegistry) error {
	return internalruleset.CheckExtension(key, value, customs)
}

// Export renders d as a YAML rule document. Decoding the result yields the
// same definition, so OpenAPI or JSON Schema derived forms can be frozen into
// editable rule files.
func Export(d Definition) ([]byte, error) {
	return internalruleset.Export(d)
}
