package ruleset

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-formvalidator/pkg/rules"
)

var extensionKinds = map[string]string{
	"label":           "string",
	"input":           "string",
	"placeholder":     "string",
	"help":            "string",
	"type":            "string",
	"typeMessage":     "string",
	"required":        "bool",
	"requiredMessage": "string",
	"pattern":         "string",
	"message":         "string",
	"minLength":       "int",
	"custom":          "string",
}

// ExtensionKeys lists the keys understood inside the extension namespace.
func ExtensionKeys() []string {
	keys := make([]string, 0, len(extensionKinds))
	for key := range extensionKinds {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ExtensionValues merges the nested namespace object and the flat
// namespace-prefixed keys of ext. Flat keys win.
func ExtensionValues(ext map[string]any) map[string]any {
	values := make(map[string]any)
	if nested, ok := ext[ExtensionNamespace].(map[string]any); ok {
		for key, value := range nested {
			values[key] = value
		}
	}
	prefix := ExtensionNamespace + "-"
	for key, value := range ext {
		if strings.HasPrefix(key, prefix) {
			values[strings.TrimPrefix(key, prefix)] = value
		}
	}
	return values
}

// CheckExtension reports why value cannot be used for key. The builder
// silently ignores such values; linters surface them.
func CheckExtension(key string, value any, customs *CustomRegistry) error {
	kind, ok := extensionKinds[key]
	if !ok {
		return fmt.Errorf("unsupported extension key %q (supported: %s)", key, strings.Join(ExtensionKeys(), ", "))
	}

	switch kind {
	case "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("value for %q must be a boolean (got %T)", key, value)
		}
		return nil
	case "int":
		n, ok := toInt(value)
		if !ok {
			return fmt.Errorf("value for %q must be an integer (got %T)", key, value)
		}
		if n < 0 {
			return fmt.Errorf("value for %q must not be negative", key)
		}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("value for %q must be a string (got %T)", key, value)
	}
	switch key {
	case "pattern":
		if _, err := regexp.Compile(str); err != nil {
			return fmt.Errorf("invalid pattern: %w", err)
		}
	case "type":
		if _, ok := rules.LookupType(rules.TypeName(str)); !ok {
			return fmt.Errorf("unknown type %q", str)
		}
	case "custom":
		if customs == nil {
			customs = NewCustomRegistry()
		}
		if _, err := customs.resolve(str); err != nil {
			return err
		}
	}
	return nil
}
