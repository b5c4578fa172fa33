package orchestrator

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// resolveTheme returns nil when no selector is configured.
func (o *Orchestrator) resolveTheme(name, variant string) (*theme.RendererConfig, error) {
	if o.themeSelector == nil {
		return nil, nil
	}
	selection, err := o.themeSelector.Select(name, variant)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	if selection == nil {
		return nil, nil
	}
	return rendererConfig(selection, o.themeFallbacks), nil
}

// rendererConfig flattens a selection: variant tokens, templates and asset
// files override the manifest's.
func rendererConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	cfg := &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: mergeStrings(nil, fallbacks),
		Tokens:   map[string]string{},
		CSSVars:  map[string]string{},
	}

	prefix := ""
	files := map[string]string{}
	if manifest := selection.Manifest; manifest != nil {
		cfg.Tokens = mergeStrings(cfg.Tokens, manifest.Tokens)
		cfg.Partials = mergeStrings(cfg.Partials, manifest.Templates)
		prefix = manifest.Assets.Prefix
		files = mergeStrings(files, manifest.Assets.Files)

		if v, ok := manifest.Variants[selection.Variant]; ok {
			cfg.Tokens = mergeStrings(cfg.Tokens, v.Tokens)
			cfg.Partials = mergeStrings(cfg.Partials, v.Templates)
			files = mergeStrings(files, v.Assets.Files)
			if v.Assets.Prefix != "" {
				prefix = v.Assets.Prefix
			}
		}
	}

	cfg.AssetURL = func(key string) string {
		file, ok := files[key]
		if !ok || file == "" {
			return ""
		}
		if prefix == "" || strings.Contains(file, "://") || strings.HasPrefix(file, "/") {
			return file
		}
		return strings.TrimSuffix(prefix, "/") + "/" + file
	}
	return cfg
}

func mergeStrings(dst, src map[string]string) map[string]string {
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
