package formstate

import (
	"fmt"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/renderers/vanilla"
)

// DefaultThemeName is the name of the built-in manifest.
const DefaultThemeName = "formstate"

// DefaultThemeManifest returns the built-in theme with a light and a dark
// variant. Callers may register their own manifests instead.
func DefaultThemeManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"brand":       "#2563eb",
			"surface":     "#ffffff",
			"text":        "#111827",
			"error":       "#b91c1c",
			"class.form":  "fs-form",
			"class.error": "fs-error",
		},
		Assets: theme.Assets{
			Prefix: "/assets/formstate",
			Files: map[string]string{
				"vanilla.stylesheet": "formstate.css",
			},
		},
		Variants: map[string]theme.Variant{
			"light": {},
			"dark": {
				Tokens: map[string]string{
					"surface": "#111827",
					"text":    "#f9fafb",
				},
				Assets: theme.Assets{
					Files: map[string]string{
						"vanilla.stylesheet": "formstate-dark.css",
					},
				},
			},
		},
	}
}

// NewThemeRegistry returns a go-theme registry holding the built-in manifest
// and any extra manifests. Extras with the built-in name and a higher version
// replace it.
func NewThemeRegistry(manifests ...*theme.Manifest) (*theme.MemoryRegistry, error) {
	themes := theme.NewRegistry()
	if err := themes.Register(DefaultThemeManifest()); err != nil {
		return nil, fmt.Errorf("formstate: register %s theme: %w", DefaultThemeName, err)
	}
	for _, manifest := range manifests {
		if err := themes.Register(manifest); err != nil {
			return nil, fmt.Errorf("formstate: register theme: %w", err)
		}
	}
	return themes, nil
}

// LoadThemeDir reads the manifest (theme.json, theme.yaml, manifest.yaml, ...)
// stored in dir.
func LoadThemeDir(dir string) (*theme.Manifest, error) {
	manifest, err := theme.LoadDir(os.DirFS(dir), ".")
	if err != nil {
		return nil, fmt.Errorf("formstate: load theme %s: %w", dir, err)
	}
	return manifest, nil
}

// SelectTheme resolves name and variant through selector. Variants the
// manifest does not declare are rejected.
func SelectTheme(selector theme.ThemeSelector, name, variant string) (*theme.Selection, error) {
	if selector == nil {
		return nil, fmt.Errorf("formstate: theme selector is nil")
	}
	selection, err := selector.Select(name, strings.TrimSpace(variant))
	if err != nil {
		return nil, fmt.Errorf("formstate: %w", err)
	}
	if selection.Manifest == nil {
		return nil, fmt.Errorf("formstate: theme %q has no manifest", selection.Theme)
	}
	if selection.Variant != "" {
		if _, ok := selection.Manifest.Variants[selection.Variant]; !ok {
			return nil, fmt.Errorf("formstate: theme %q has no variant %q", selection.Theme, selection.Variant)
		}
	}
	return selection, nil
}

// ThemeConfig builds the vanilla renderer configuration for selection. Nil
// fallbacks use the vanilla renderer's embedded partials. Class tokens stay
// out of the CSS variables.
func ThemeConfig(selection *theme.Selection, fallbacks map[string]string) *theme.RendererConfig {
	if selection == nil {
		return nil
	}
	if fallbacks == nil {
		fallbacks = vanilla.DefaultPartials()
	}
	cfg := selection.RendererTheme(fallbacks)
	for key := range cfg.CSSVars {
		if strings.HasPrefix(key, "--class.") {
			delete(cfg.CSSVars, key)
		}
	}
	return &cfg
}
