package vanilla

import (
	"embed"
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/registry"
)

//go:embed templates/*.tmpl templates/fields/*.tmpl
var embeddedTemplates embed.FS

// Template names resolved against the template bundle. Theme partials with
// the matching "forms.*" key replace the field templates.
const (
	TemplateForm      = "templates/form.tmpl"
	TemplateTheme     = "templates/theme.tmpl"
	TemplateInput     = "templates/fields/input.tmpl"
	TemplateCheckbox  = "templates/fields/checkbox.tmpl"
	TemplateSelect    = "templates/fields/select.tmpl"
	TemplateRadio     = "templates/fields/radio.tmpl"
	TemplateComposite = "templates/fields/composite.tmpl"

	// StylesheetAsset is the asset key looked up through the theme resolver.
	StylesheetAsset = "vanilla.stylesheet"
)

// TemplatesFS exposes the embedded template bundle for callers that want to
// extend or copy it.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

var partialKeys = map[registry.Control]string{
	registry.ControlText:      "forms.input",
	registry.ControlCheckbox:  "forms.checkbox",
	registry.ControlSelect:    "forms.select",
	registry.ControlRadio:     "forms.radio",
	registry.ControlComposite: "forms.composite",
}

// DefaultPartials maps each theme partial key to its embedded template. Pass
// it as the fallbacks of theme.Selection.RendererTheme.
func DefaultPartials() map[string]string {
	return map[string]string{
		"forms.input":     TemplateInput,
		"forms.checkbox":  TemplateCheckbox,
		"forms.select":    TemplateSelect,
		"forms.radio":     TemplateRadio,
		"forms.composite": TemplateComposite,
	}
}
