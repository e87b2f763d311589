package jsonene

import (
	"gopkg.in/yaml.v3"

	"github.com/nikhil-rupanawar/jsonene/i18n"
	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
)

// FromYAML parses a single YAML document into a raw value and binds a fresh
// Instance of the given field. YAML map keys are folded into JSON-like
// map[string]any form. Like FromJSON, parsing never validates.
func FromYAML(f Field, data []byte) (*Instance, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, Issues{{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, map[string]string{"detail": err.Error()})}}
	}
	return f.Bind(jsonval.Normalize(v)), nil
}
