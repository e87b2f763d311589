package dsl

import (
	"context"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	"github.com/nikhil-rupanawar/jsonene/i18n"
	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
	js "github.com/nikhil-rupanawar/jsonene/jsonschema"
)

// Const returns a field that accepts exactly one value, compared by value
// equality (2 matches 2.0).
func Const(value any) *ConstField {
	return &ConstField{value: jsonval.Normalize(value)}
}

// ConstField validates single-value equality.
type ConstField struct{ value any }

func (c *ConstField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(c, jsonval.Normalize(raw))
}

func (c *ConstField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	if jsonval.Equal(v, c.value) {
		return nil
	}
	return jsonene.Issues{{
		Path: "/", Code: jsonene.CodeConstMismatch,
		Message: i18n.T(jsonene.CodeConstMismatch, map[string]string{
			"value": jsonval.Render(v), "want": jsonval.Render(c.value),
		}),
		Params: map[string]any{"want": c.value, "got": v},
	}}
}

func (c *ConstField) JSONSchema(ex *js.Exporter) *js.Schema {
	v := c.value
	return &js.Schema{Const: &v}
}

// Enum returns a field that accepts any member of a fixed set of literals,
// compared by value equality.
func Enum(values ...any) *EnumField {
	vs := make([]any, 0, len(values))
	for _, v := range values {
		vs = append(vs, jsonval.Normalize(v))
	}
	return &EnumField{values: vs}
}

// EnumOf adapts an externally defined set of comparable literals (for
// example, values produced by a named-enumeration type) into an Enum field.
func EnumOf[T comparable](values ...T) *EnumField {
	vs := make([]any, 0, len(values))
	for _, v := range values {
		vs = append(vs, jsonval.Normalize(v))
	}
	return &EnumField{values: vs}
}

// EnumField validates set membership.
type EnumField struct{ values []any }

func (e *EnumField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(e, jsonval.Normalize(raw))
}

func (e *EnumField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	for _, allowed := range e.values {
		if jsonval.Equal(v, allowed) {
			return nil
		}
	}
	return jsonene.Issues{{
		Path: "/", Code: jsonene.CodeEnumMembership,
		Message: i18n.T(jsonene.CodeEnumMembership, map[string]string{
			"value": jsonval.Render(v), "allowed": jsonval.Render(e.values),
		}),
		Params: map[string]any{"allowed": e.values, "got": v},
	}}
}

func (e *EnumField) JSONSchema(ex *js.Exporter) *js.Schema {
	return &js.Schema{Enum: append([]any{}, e.values...)}
}
