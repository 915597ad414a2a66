package vanilla

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	formPolicyOnce sync.Once
	formPolicy     *bluemonday.Policy
)

var inputTypes = regexp.MustCompile(`^(?i:text|email|password|tel|url|number|search|date|datetime-local|time|month|week|color|checkbox|radio|hidden)$`)

// formSanitizer allows the markup the field templates emit and nothing else.
// Event handler attributes and scripts supplied through field attrs are
// dropped.
func formSanitizer() *bluemonday.Policy {
	formPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("form", "div", "p", "span", "label", "input", "select", "option", "textarea", "button")
		policy.AllowDataAttributes()
		policy.AllowRelativeURLs(true)
		policy.AllowURLSchemes("http", "https")

		policy.AllowAttrs("class", "id", "role", "aria-label", "aria-hidden").Globally()
		policy.AllowAttrs("action", "method", "novalidate", "autocomplete").OnElements("form")
		policy.AllowAttrs("for").OnElements("label")
		policy.AllowAttrs("type").Matching(inputTypes).OnElements("input")
		policy.AllowAttrs("type").Matching(regexp.MustCompile(`^(?i:submit|reset|button)$`)).OnElements("button")
		policy.AllowAttrs("disabled").OnElements("button", "input", "select", "textarea")
		policy.AllowAttrs(
			"name", "value", "checked", "required", "readonly", "placeholder",
			"maxlength", "minlength", "autocomplete", "inputmode", "pattern",
			"aria-invalid", "aria-describedby", "min", "max", "step", "size",
		).OnElements("input", "select", "textarea")
		policy.AllowAttrs("rows", "cols").OnElements("textarea")
		policy.AllowAttrs("value", "selected").OnElements("option")

		formPolicy = policy
	})
	return formPolicy
}
