package html

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// DefaultThemeName names the bundled manifest.
const DefaultThemeName = "intake"

// DefaultManifest returns the bundled theme with a light base and a dark
// variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"color-primary": "#1d4ed8",
			"color-error":   "#b91c1c",
			"color-success": "#15803d",
			"color-surface": "#ffffff",
			"color-text":    "#1f2937",
			"color-muted":   "#6b7280",
			"radius":        "6px",
		},
		Assets: theme.Assets{
			Prefix: "/assets/intake",
			Files: map[string]string{
				"stylesheet": StylesheetName,
			},
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"color-surface": "#111827",
					"color-text":    "#f9fafb",
					"color-muted":   "#9ca3af",
				},
			},
		},
	}
}

// ThemeFallbacks lists the template partials the renderer resolves through a
// theme selection, keyed by partial name.
func ThemeFallbacks() map[string]string {
	return map[string]string{
		PageTemplateKey: formTemplate,
	}
}

// ThemeConfig registers manifest with a go-theme registry and resolves the
// variant through a theme.Selector.
func ThemeConfig(manifest *theme.Manifest, variant string) (*theme.RendererConfig, error) {
	if manifest == nil {
		return nil, errors.New("html renderer: theme manifest is nil")
	}
	registry := theme.NewRegistry()
	if err := registry.Register(manifest); err != nil {
		return nil, fmt.Errorf("html renderer: register theme %q: %w", manifest.Name, err)
	}
	return SelectTheme(theme.Selector{Registry: registry, DefaultTheme: manifest.Name}, manifest.Name, variant)
}

// SelectTheme resolves name and variant with selector. A variant the selected
// manifest does not declare is an error rather than a silent fallback to the
// base tokens.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.RendererConfig, error) {
	if selector == nil {
		return nil, errors.New("html renderer: theme selector is nil")
	}
	selection, err := selector.Select(name, strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("html renderer: select theme %q: %w", name, err)
	}
	if selection.Variant != "" {
		if selection.Manifest == nil {
			return nil, fmt.Errorf("html renderer: theme %q has no manifest", selection.Theme)
		}
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("html renderer: theme %q has no variant %q", selection.Theme, selection.Variant)
		}
	}

	cfg := selection.RendererTheme(ThemeFallbacks())
	return &cfg, nil
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString("; ")
	}
	return strings.TrimSpace(b.String())
}
