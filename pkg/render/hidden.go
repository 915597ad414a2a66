package render

import (
	"fmt"
	"sort"
	"strings"
)

// HiddenField is an extra input sent with the submit payload, e.g. a CSRF
// token. Hidden fields never shadow a registered field: Build drops any whose
// name is in the registry.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Hidden formats value with fmt.Sprint.
func Hidden(name string, value any) HiddenField {
	return HiddenField{Name: strings.TrimSpace(name), Value: fmt.Sprint(value)}
}

// CSRFToken is Hidden for the token input the backend checks, e.g. "_csrf".
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// hiddenSet holds hidden values by name. The last write for a name wins.
type hiddenSet map[string]string

func (s hiddenSet) with(fields ...HiddenField) hiddenSet {
	for _, field := range fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			continue
		}
		if s == nil {
			s = hiddenSet{}
		}
		s[name] = field.Value
	}
	return s
}

// list returns the fields sorted by name, leaving out names for which skip
// reports true. It returns nil when nothing is left.
func (s hiddenSet) list(skip func(name string) bool) []HiddenField {
	var out []HiddenField
	for name, value := range s {
		if skip != nil && skip(name) {
			continue
		}
		out = append(out, HiddenField{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
