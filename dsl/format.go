package dsl

import (
	"context"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	"github.com/nikhil-rupanawar/jsonene/formats"
	"github.com/nikhil-rupanawar/jsonene/i18n"
	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
	js "github.com/nikhil-rupanawar/jsonene/jsonschema"
)

// Format returns a field checked against a named predicate from the format
// registry. Formats are only evaluated when the caller opts in via
// ValidateOpt.CheckFormats; without the opt-in a Format field reports
// nothing. Unknown format names and non-string values are vacuously valid,
// mirroring draft-07 semantics.
func Format(name string) *FormatField { return &FormatField{name: name} }

// FormatField delegates to the formats registry.
type FormatField struct{ name string }

func (f *FormatField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(f, jsonval.Normalize(raw))
}

func (f *FormatField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	if !opt.CheckFormats {
		return nil
	}
	sv, ok := v.(string)
	if !ok {
		return nil
	}
	if valid, known := formats.Check(f.name, sv); known && !valid {
		return jsonene.Issues{{
			Path: "/", Code: jsonene.CodeFormat,
			Message: i18n.T(jsonene.CodeFormat, map[string]string{
				"value": jsonval.Render(sv), "format": f.name,
			}),
			Params: map[string]any{"format": f.name, "got": sv},
		}}
	}
	return nil
}

func (f *FormatField) JSONSchema(ex *js.Exporter) *js.Schema {
	return &js.Schema{Format: formats.Token(f.name)}
}
