package payload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-fixgen/pkg/fixture"
)

// ParseOverrides decodes a YAML (or JSON, as a YAML subset) document into a
// top-level override set. Only scalar-keyed mappings are accepted since
// overrides address fields by name.
func ParseOverrides(data []byte) (fixture.Overrides, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("payload: parse overrides: %w", err)
	}
	if len(decoded) == 0 {
		return nil, nil
	}

	overrides := make(fixture.Overrides, len(decoded))
	for name, value := range decoded {
		overrides[name] = normalizeYAML(value)
	}
	return overrides, nil
}

// LoadOverrides reads an override file from disk and parses it.
func LoadOverrides(path string) (fixture.Overrides, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("payload: read overrides: %w", err)
	}
	return ParseOverrides(data)
}

// normalizeYAML rewrites yaml.v3 decoding artefacts into the dynamic value
// convention: string-keyed maps stay map[string]any for nested records, ints
// stay as-is for the merger to widen, and sequences become []any.
func normalizeYAML(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = normalizeYAML(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[fmt.Sprint(key)] = normalizeYAML(item)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = normalizeYAML(item)
		}
		return out
	default:
		return v
	}
}
