package pongo

import (
	"encoding/json"
	"strings"

	"github.com/flosch/pongo2/v6"
)

// toContext turns template data into a pongo2.Context. Anything other than a
// map is round-tripped through JSON, so templates address struct fields by
// their json names and typed values become plain maps and slices.
func toContext(data any) (pongo2.Context, error) {
	var raw map[string]any
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		raw = v
	case map[string]any:
		raw = v
	default:
		if err := viaJSON(v, &raw); err != nil {
			return nil, err
		}
	}

	ctx := make(pongo2.Context, len(raw))
	for key, value := range raw {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		plain, err := plainValue(value)
		if err != nil {
			return nil, err
		}
		ctx[key] = plain
	}
	return ctx, nil
}

func plainValue(value any) (any, error) {
	switch value.(type) {
	case nil, string, bool, int, float64, map[string]any, []any:
		return value, nil
	}
	var out any
	if err := viaJSON(value, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func viaJSON(in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, out)
}
