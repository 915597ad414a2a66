package registry

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Definition pairs a registry with the default values declared alongside it.
type Definition struct {
	Registry *Registry
	Defaults map[string]string
	Source   string
}

type documentFile struct {
	Fields   []FieldSpec       `json:"fields" yaml:"fields"`
	Defaults map[string]string `json:"defaults" yaml:"defaults"`
}

// LoadFile reads a JSON or YAML registry document from disk.
func LoadFile(path string, options ...Option) (Definition, error) {
	if strings.TrimSpace(path) == "" {
		return Definition{}, fmt.Errorf("registry: file path is required")
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Definition{}, fmt.Errorf("registry: read %s: %w", path, err)
	}
	return Parse(data, path, options...)
}

// LoadFS reads a JSON or YAML registry document from fsys.
func LoadFS(fsys fs.FS, name string, options ...Option) (Definition, error) {
	if fsys == nil {
		return Definition{}, fmt.Errorf("registry: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Definition{}, fmt.Errorf("registry: read %s: %w", name, err)
	}
	return Parse(data, name, options...)
}

// Parse decodes a registry document. JSON is attempted first, then YAML.
func Parse(data []byte, source string, options ...Option) (Definition, error) {
	doc, err := parseDocument(data, source)
	if err != nil {
		return Definition{}, err
	}

	reg, err := New(doc.Fields, options...)
	if err != nil {
		return Definition{}, fmt.Errorf("registry: build %s: %w", source, err)
	}

	return Definition{
		Registry: reg,
		Defaults: cleanDefaults(doc.Defaults),
		Source:   source,
	}, nil
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("registry: file %s is empty", source)
	}

	if err := decode(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("registry: parse %s: %w", source, err)
	}
	return doc, nil
}

// decode reads a JSON object when data starts with "{" and YAML otherwise, so
// JSON syntax errors keep their offsets.
func decode(data []byte, v any) error {
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		if err := json.Unmarshal(data, v); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}
	return nil
}

func cleanDefaults(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			out[trimmed] = value
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// LoadValues reads a flat JSON or YAML mapping of field name to value, as used
// for default values supplied separately from the registry document.
func LoadValues(path string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("registry: read values %s: %w", path, err)
	}
	var raw map[string]any
	if err := decode(data, &raw); err != nil {
		return nil, fmt.Errorf("registry: parse values %s: %w", path, err)
	}
	out := make(map[string]string, len(raw))
	for key, value := range raw {
		if value == nil {
			continue
		}
		out[key] = fmt.Sprint(value)
	}
	return cleanDefaults(out), nil
}
