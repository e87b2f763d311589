package dsl

import (
	"context"
	"strconv"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	"github.com/nikhil-rupanawar/jsonene/i18n"
	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
	js "github.com/nikhil-rupanawar/jsonene/jsonschema"
)

// AllOf requires the value to satisfy every candidate. Issues from all
// failing candidates are aggregated.
func AllOf(candidates ...jsonene.Field) *AllOfField {
	return &AllOfField{candidates: candidates}
}

type AllOfField struct {
	candidates []jsonene.Field
}

func (a *AllOfField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(a, jsonval.Normalize(raw))
}

func (a *AllOfField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	var iss jsonene.Issues
	for _, c := range a.candidates {
		iss = jsonene.AppendIssues(iss, c.Validate(ctx, v, opt)...)
	}
	return iss
}

func (a *AllOfField) JSONSchema(ex *js.Exporter) *js.Schema {
	out := &js.Schema{}
	for _, c := range a.candidates {
		out.AllOf = append(out.AllOf, c.JSONSchema(ex))
	}
	return out
}

// AnyOf accepts the value when at least one candidate does. A matching
// candidate is adopted so attribute access flows through its shape.
func AnyOf(candidates ...jsonene.Field) *AnyOfField {
	return &AnyOfField{candidates: candidates, strategy: jsonene.FewestErrors}
}

// AnyOfValues accepts any value from the given literal set, as a union of
// const candidates.
func AnyOfValues(values ...any) *AnyOfField {
	cs := make([]jsonene.Field, 0, len(values))
	for _, v := range values {
		cs = append(cs, Const(v))
	}
	return AnyOf(cs...)
}

type AnyOfField struct {
	candidates []jsonene.Field
	strategy   jsonene.MatchStrategy
}

// FailWith selects which candidate's issues are reported when no candidate
// matches. The default reports the candidate with the fewest issues.
func (a *AnyOfField) FailWith(s jsonene.MatchStrategy) *AnyOfField {
	a.strategy = s
	return a
}

func (a *AnyOfField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(a, jsonval.Normalize(raw))
}

func (a *AnyOfField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	if len(a.candidates) == 0 {
		return nil
	}
	all := make([]jsonene.Issues, len(a.candidates))
	for idx, c := range a.candidates {
		all[idx] = c.Validate(ctx, v, opt)
		if len(all[idx]) == 0 {
			return nil
		}
	}
	pick := 0
	if a.strategy == jsonene.FewestErrors {
		for idx := 1; idx < len(all); idx++ {
			if len(all[idx]) < len(all[pick]) {
				pick = idx
			}
		}
	}
	return all[pick]
}

// Match returns the first declared candidate that accepts the value.
func (a *AnyOfField) Match(ctx context.Context, v any) jsonene.Field {
	for _, c := range a.candidates {
		if len(c.Validate(ctx, v, jsonene.ValidateOpt{})) == 0 {
			return c
		}
	}
	return nil
}

func (a *AnyOfField) JSONSchema(ex *js.Exporter) *js.Schema {
	out := &js.Schema{}
	for _, c := range a.candidates {
		out.AnyOf = append(out.AnyOf, c.JSONSchema(ex))
	}
	return out
}

// OneOf requires exactly one candidate to accept the value.
func OneOf(candidates ...jsonene.Field) *OneOfField {
	return &OneOfField{candidates: candidates}
}

type OneOfField struct {
	candidates []jsonene.Field
}

func (o *OneOfField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(o, jsonval.Normalize(raw))
}

func (o *OneOfField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	matches := 0
	for _, c := range o.candidates {
		if len(c.Validate(ctx, v, opt)) == 0 {
			matches++
		}
	}
	switch {
	case matches == 1:
		return nil
	case matches == 0:
		return jsonene.Issues{{
			Path: "/", Code: jsonene.CodeNoMatch,
			Message: i18n.T(jsonene.CodeNoMatch, map[string]string{"value": jsonval.Render(v)}),
			Params:  map[string]any{"candidates": len(o.candidates)},
		}}
	default:
		return jsonene.Issues{{
			Path: "/", Code: jsonene.CodeAmbiguousMatch,
			Message: i18n.T(jsonene.CodeAmbiguousMatch, map[string]string{
				"value": jsonval.Render(v), "count": strconv.Itoa(matches),
			}),
			Params: map[string]any{"matched": matches},
		}}
	}
}

// Match returns the single accepting candidate, or nil when zero or several
// accept.
func (o *OneOfField) Match(ctx context.Context, v any) jsonene.Field {
	var found jsonene.Field
	for _, c := range o.candidates {
		if len(c.Validate(ctx, v, jsonene.ValidateOpt{})) == 0 {
			if found != nil {
				return nil
			}
			found = c
		}
	}
	return found
}

func (o *OneOfField) JSONSchema(ex *js.Exporter) *js.Schema {
	out := &js.Schema{}
	for _, c := range o.candidates {
		out.OneOf = append(out.OneOf, c.JSONSchema(ex))
	}
	return out
}

// Not accepts exactly the values its operand rejects.
func Not(operand jsonene.Field) *NotField { return &NotField{operand: operand} }

type NotField struct {
	operand jsonene.Field
}

func (n *NotField) Bind(raw any) *jsonene.Instance {
	return jsonene.NewScalar(n, jsonval.Normalize(raw))
}

func (n *NotField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	if len(n.operand.Validate(ctx, v, opt)) > 0 {
		return nil
	}
	return jsonene.Issues{{
		Path: "/", Code: jsonene.CodeNotAllowed,
		Message: i18n.T(jsonene.CodeNotAllowed, map[string]string{"value": jsonval.Render(v)}),
	}}
}

func (n *NotField) JSONSchema(ex *js.Exporter) *js.Schema {
	return &js.Schema{Not: n.operand.JSONSchema(ex)}
}
