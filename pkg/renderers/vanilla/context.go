package vanilla

import (
	"sort"
	"strconv"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/render"
)

// Attrs consumed by the templates themselves, never echoed as raw attributes.
var reservedAttrs = map[string]struct{}{
	"type":    {},
	"options": {},
	"widget":  {},
	"value":   {},
	"name":    {},
	"id":      {},
	"checked": {},
	"class":   {},
}

var defaultClasses = map[string]string{
	"form":   "fs-form",
	"field":  "fs-field",
	"error":  "fs-error",
	"submit": "fs-submit",
}

func fieldContext(field render.FieldView, prefix string) map[string]any {
	id := prefix + field.Name
	ctx := map[string]any{
		"name":    field.Name,
		"id":      id,
		"errorId": id + "-error",
		"label":   field.Label,
		"control": string(field.Control),
		"type":    inputType(field),
		"value":   field.Value,
		"error":   field.Error,
		"checked": field.Checked,
		"status":  field.Status.String(),
		"widget":  field.Attrs["widget"],
		"attrs":   attrList(field.Attrs),
	}

	switch field.Control {
	case registry.ControlCheckbox:
		value := field.Attrs["value"]
		if value == "" {
			value = "true"
		}
		if field.Checked && field.Value != "" {
			value = field.Value
		}
		ctx["checkboxValue"] = value
	case registry.ControlRadio, registry.ControlSelect:
		options := make([]map[string]any, 0, len(field.Options))
		for _, option := range field.Options {
			options = append(options, map[string]any{
				"value":    option,
				"selected": option == field.Value,
			})
		}
		ctx["options"] = options
	}
	return ctx
}

func inputType(field render.FieldView) string {
	if field.Control != registry.ControlText {
		return "text"
	}
	kind := strings.ToLower(strings.TrimSpace(field.Attrs["type"]))
	if kind == "" || !inputTypes.MatchString(kind) {
		return "text"
	}
	return kind
}

func attrList(attrs map[string]string) []map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		if _, reserved := reservedAttrs[strings.ToLower(key)]; reserved {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]map[string]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, map[string]string{"name": key, "value": attrs[key]})
	}
	return out
}

func formContext(view render.View) map[string]any {
	hidden := make([]map[string]string, 0, len(view.Hidden))
	for _, field := range view.Hidden {
		hidden = append(hidden, map[string]string{"name": field.Name, "value": field.Value})
	}
	return map[string]any{
		"action":         view.Action,
		"method":         view.Method,
		"hidden":         hidden,
		"dirty":          strconv.FormatBool(view.Dirty),
		"submitDisabled": view.SubmitDisabled,
	}
}

func classContext(cfg *theme.RendererConfig) map[string]string {
	classes := make(map[string]string, len(defaultClasses))
	for key, value := range defaultClasses {
		classes[key] = value
	}
	if cfg == nil {
		return classes
	}
	for key := range defaultClasses {
		if value := strings.TrimSpace(cfg.Tokens["class."+key]); value != "" {
			classes[key] = value
		}
	}
	return classes
}

func themeContext(cfg *theme.RendererConfig, formClass string) map[string]any {
	if cfg == nil {
		return map[string]any{}
	}
	ctx := map[string]any{
		"name":    cfg.Theme,
		"variant": cfg.Variant,
	}
	if cfg.AssetURL != nil {
		ctx["stylesheet"] = cfg.AssetURL(StylesheetAsset)
	}
	if style := cssVarsStyle(cfg.CSSVars); style != "" {
		ctx["style"] = "." + formClass + "{" + style + "}"
	}
	return ctx
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		if strings.HasPrefix(key, "--") {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		b.WriteString(key)
		b.WriteByte(':')
		b.WriteString(vars[key])
		b.WriteByte(';')
	}
	return b.String()
}

func partialFor(cfg *theme.RendererConfig, control registry.Control) string {
	key, ok := partialKeys[control]
	if !ok {
		key = partialKeys[registry.ControlText]
	}
	if cfg != nil {
		if override := strings.TrimSpace(cfg.Partials[key]); override != "" {
			return override
		}
	}
	return DefaultPartials()[key]
}
