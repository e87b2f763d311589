package dsl

import (
	"context"
	"math"
	"regexp"
	"strconv"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	"github.com/nikhil-rupanawar/jsonene/i18n"
	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
	js "github.com/nikhil-rupanawar/jsonene/jsonschema"
)

// String returns a string field. Constraints chain on the returned value.
func String() *StringField { return &StringField{minLen: -1, maxLen: -1} }

// StringField validates string values with optional length bounds and a
// pattern.
type StringField struct {
	minLen, maxLen int
	pattern        *regexp.Regexp
	patternSrc     string
}

// MinLen sets the minimum length in runes.
func (s *StringField) MinLen(n int) *StringField { s.minLen = n; return s }

// MaxLen sets the maximum length in runes.
func (s *StringField) MaxLen(n int) *StringField { s.maxLen = n; return s }

// Pattern sets a regular expression the value must match. An invalid
// expression is a definition error and panics immediately.
func (s *StringField) Pattern(expr string) *StringField {
	s.pattern = regexp.MustCompile(expr)
	s.patternSrc = expr
	return s
}

func (s *StringField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(s, jsonval.Normalize(raw))
}

func (s *StringField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	sv, ok := v.(string)
	if !ok {
		return jsonene.Issues{typeMismatch(v, "string")}
	}
	var iss jsonene.Issues
	n := len([]rune(sv))
	if s.minLen >= 0 && n < s.minLen {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeLength,
			Message: i18n.T(jsonene.CodeLength, map[string]string{"value": jsonval.Render(sv), "op": "min"}),
			Params:  map[string]any{"min": s.minLen, "got": n},
		})
	}
	if s.maxLen >= 0 && n > s.maxLen {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeLength,
			Message: i18n.T(jsonene.CodeLength, map[string]string{"value": jsonval.Render(sv), "op": "max"}),
			Params:  map[string]any{"max": s.maxLen, "got": n},
		})
	}
	if s.pattern != nil && !s.pattern.MatchString(sv) {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodePattern,
			Message: i18n.T(jsonene.CodePattern, map[string]string{"value": jsonval.Render(sv), "pattern": s.patternSrc}),
			Params:  map[string]any{"pattern": s.patternSrc},
		})
	}
	return iss
}

func (s *StringField) JSONSchema(ex *js.Exporter) *js.Schema {
	out := &js.Schema{Type: "string"}
	if s.minLen >= 0 {
		out.MinLength = iptr(s.minLen)
	}
	if s.maxLen >= 0 {
		out.MaxLength = iptr(s.maxLen)
	}
	if s.patternSrc != "" {
		out.Pattern = s.patternSrc
	}
	return out
}

// Number returns a numeric field accepting any numeric representation.
func Number() *NumberField { return &NumberField{} }

// Int returns a numeric field that additionally rejects non-integral values.
func Int() *NumberField { return &NumberField{integer: true} }

// NumberField validates numeric values with optional range bounds.
type NumberField struct {
	integer                bool
	min, max, xmin, xmax   *float64
	multipleOf             *float64
}

// Min sets the inclusive minimum.
func (n *NumberField) Min(v float64) *NumberField { n.min = fptr(v); return n }

// Max sets the inclusive maximum.
func (n *NumberField) Max(v float64) *NumberField { n.max = fptr(v); return n }

// ExclusiveMin sets the exclusive minimum.
func (n *NumberField) ExclusiveMin(v float64) *NumberField { n.xmin = fptr(v); return n }

// ExclusiveMax sets the exclusive maximum.
func (n *NumberField) ExclusiveMax(v float64) *NumberField { n.xmax = fptr(v); return n }

// MultipleOf requires the value to be a multiple of v.
func (n *NumberField) MultipleOf(v float64) *NumberField { n.multipleOf = fptr(v); return n }

func (n *NumberField) kindName() string {
	if n.integer {
		return "integer"
	}
	return "number"
}

func (n *NumberField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(n, jsonval.Normalize(raw))
}

func (n *NumberField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	f, ok := jsonval.AsNumber(v)
	if !ok || (n.integer && !jsonval.IsIntegral(v)) {
		return jsonene.Issues{typeMismatch(v, n.kindName())}
	}
	var iss jsonene.Issues
	rangeIssue := func(op string, bound float64) jsonene.Issue {
		return jsonene.Issue{
			Path: "/", Code: jsonene.CodeRange,
			Message: i18n.T(jsonene.CodeRange, map[string]string{
				"value": jsonval.Render(v), "op": op,
				"bound": strconv.FormatFloat(bound, 'g', -1, 64),
			}),
			Params: map[string]any{"op": op, "bound": bound, "got": f},
		}
	}
	if n.min != nil && f < *n.min {
		iss = jsonene.AppendIssues(iss, rangeIssue("min", *n.min))
	}
	if n.max != nil && f > *n.max {
		iss = jsonene.AppendIssues(iss, rangeIssue("max", *n.max))
	}
	if n.xmin != nil && f <= *n.xmin {
		iss = jsonene.AppendIssues(iss, rangeIssue("xmin", *n.xmin))
	}
	if n.xmax != nil && f >= *n.xmax {
		iss = jsonene.AppendIssues(iss, rangeIssue("xmax", *n.xmax))
	}
	if n.multipleOf != nil && *n.multipleOf != 0 {
		if r := math.Abs(math.Mod(f, *n.multipleOf)); r > 1e-9 && math.Abs(r-*n.multipleOf) > 1e-9 {
			iss = jsonene.AppendIssues(iss, rangeIssue("multiple", *n.multipleOf))
		}
	}
	return iss
}

func (n *NumberField) JSONSchema(ex *js.Exporter) *js.Schema {
	out := &js.Schema{Type: n.kindName()}
	out.Minimum = n.min
	out.Maximum = n.max
	out.ExclusiveMinimum = n.xmin
	out.ExclusiveMaximum = n.xmax
	out.MultipleOf = n.multipleOf
	return out
}

// Bool returns a boolean field (exact-kind check only).
func Bool() *BoolField { return &BoolField{} }

// BoolField validates boolean values.
type BoolField struct{}

func (b *BoolField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(b, jsonval.Normalize(raw))
}

func (b *BoolField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	if _, ok := v.(bool); !ok {
		return jsonene.Issues{typeMismatch(v, "boolean")}
	}
	return nil
}

func (b *BoolField) JSONSchema(ex *js.Exporter) *js.Schema { return &js.Schema{Type: "boolean"} }

// Null returns a field that only accepts null.
func Null() *NullField { return &NullField{} }

// NullField validates null values.
type NullField struct{}

func (n *NullField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(n, jsonval.Normalize(raw))
}

func (n *NullField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	if v != nil {
		return jsonene.Issues{typeMismatch(v, "null")}
	}
	return nil
}

func (n *NullField) JSONSchema(ex *js.Exporter) *js.Schema { return &js.Schema{Type: "null"} }

// typeMismatch builds the shared type error entry.
func typeMismatch(v any, want string) jsonene.Issue {
	return jsonene.Issue{
		Path: "/", Code: jsonene.CodeTypeMismatch,
		Message: i18n.T(jsonene.CodeTypeMismatch, map[string]string{"value": jsonval.Render(v), "want": want}),
		Params:  map[string]any{"want": want, "got": jsonval.Kind(v)},
	}
}
