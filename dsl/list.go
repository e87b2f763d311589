package dsl

import (
	"context"
	"strconv"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	"github.com/nikhil-rupanawar/jsonene/i18n"
	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
	js "github.com/nikhil-rupanawar/jsonene/jsonschema"
)

// List returns a sequence field. With a single item type every element is
// validated against it; with several types the sequence is positional
// (element i must satisfy type i and the length must equal the declared
// arity); with none the sequence is generic and never fails element checks.
func List(itemTypes ...jsonene.Field) *ListField {
	return &ListField{
		types:       itemTypes,
		minItems:    -1,
		maxItems:    -1,
		minContains: -1,
		maxContains: -1,
	}
}

// GenericList returns a sequence field that accepts any elements and never
// errors, while still supporting element access and mutation.
func GenericList() *ListField { return List() }

// ListField validates homogeneous, positional and generic sequences.
type ListField struct {
	types []jsonene.Field // empty: generic; 1: homogeneous; n: positional

	minItems, maxItems int
	unique             bool

	contains                 jsonene.Field
	minContains, maxContains int
}

// MinItems sets the minimum element count.
func (l *ListField) MinItems(n int) *ListField { l.minItems = n; return l }

// MaxItems sets the maximum element count.
func (l *ListField) MaxItems(n int) *ListField { l.maxItems = n; return l }

// UniqueItems requires pairwise-distinct elements, checked at validation
// time only.
func (l *ListField) UniqueItems() *ListField { l.unique = true; return l }

// Contains requires at least one element (or MinContains/MaxContains many)
// to satisfy f.
func (l *ListField) Contains(f jsonene.Field) *ListField { l.contains = f; return l }

// MinContains sets the minimum number of elements matching the Contains
// field.
func (l *ListField) MinContains(n int) *ListField { l.minContains = n; return l }

// MaxContains sets the maximum number of elements matching the Contains
// field.
func (l *ListField) MaxContains(n int) *ListField { l.maxContains = n; return l }

func (l *ListField) itemField(idx int) jsonene.Field {
	switch {
	case len(l.types) == 1:
		return l.types[0]
	case len(l.types) > 1 && idx < len(l.types):
		return l.types[idx]
	default:
		return jsonene.Any()
	}
}

func (l *ListField) Bind(raw any) *jsonene.Instance {
	arr, ok := jsonval.AsSlice(raw)
	if !ok {
		// Let validation flag the kind mismatch.
		return jsonene.NewScalar(l, jsonval.Normalize(raw))
	}
	items := make([]*jsonene.Instance, 0, len(arr))
	for idx, e := range arr {
		items = append(items, l.itemField(idx).Bind(e))
	}
	return jsonene.NewSequence(l, items)
}

// BindItem implements the sequence binding hook used by Instance mutation.
func (l *ListField) BindItem(idx int, v any) *jsonene.Instance {
	return l.itemField(idx).Bind(v)
}

func (l *ListField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	arr, ok := jsonval.AsSlice(v)
	if !ok {
		return jsonene.Issues{typeMismatch(v, "array")}
	}
	var iss jsonene.Issues

	switch {
	case len(l.types) > 1:
		if len(arr) != len(l.types) {
			iss = jsonene.AppendIssues(iss, jsonene.Issue{
				Path: "/", Code: jsonene.CodeArity,
				Message: i18n.T(jsonene.CodeArity, map[string]string{
					"want": strconv.Itoa(len(l.types)), "got": strconv.Itoa(len(arr)),
				}),
				Params: map[string]any{"want": len(l.types), "got": len(arr)},
			})
		}
		for idx := 0; idx < len(arr) && idx < len(l.types); idx++ {
			child := l.types[idx].Validate(ctx, arr[idx], opt)
			iss = jsonene.AppendIssues(iss, jsonene.Rebase("/"+strconv.Itoa(idx), child)...)
		}
	case len(l.types) == 1:
		for idx, e := range arr {
			child := l.types[0].Validate(ctx, e, opt)
			iss = jsonene.AppendIssues(iss, jsonene.Rebase("/"+strconv.Itoa(idx), child)...)
		}
	}

	if l.minItems >= 0 && len(arr) < l.minItems {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeLength,
			Message: i18n.T(jsonene.CodeLength, map[string]string{"value": jsonval.Render(arr), "op": "min"}),
			Params:  map[string]any{"min": l.minItems, "got": len(arr)},
		})
	}
	if l.maxItems >= 0 && len(arr) > l.maxItems {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeLength,
			Message: i18n.T(jsonene.CodeLength, map[string]string{"value": jsonval.Render(arr), "op": "max"}),
			Params:  map[string]any{"max": l.maxItems, "got": len(arr)},
		})
	}
	if l.unique && hasDuplicates(arr) {
		// One aggregate error naming the full offending value.
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeUniqueness,
			Message: i18n.T(jsonene.CodeUniqueness, map[string]string{"value": jsonval.Render(arr)}),
			Params:  map[string]any{"value": arr},
		})
	}
	if l.contains != nil {
		iss = jsonene.AppendIssues(iss, l.validateContains(ctx, arr, opt)...)
	}
	return iss
}

func hasDuplicates(arr []any) bool {
	for i := 0; i < len(arr); i++ {
		for j := i + 1; j < len(arr); j++ {
			if jsonval.Equal(arr[i], arr[j]) {
				return true
			}
		}
	}
	return false
}

func (l *ListField) validateContains(ctx context.Context, arr []any, opt jsonene.ValidateOpt) jsonene.Issues {
	count := 0
	for _, e := range arr {
		if len(l.contains.Validate(ctx, e, opt)) == 0 {
			count++
		}
	}
	min := l.minContains
	if min < 0 {
		min = 1
	}
	var iss jsonene.Issues
	if count < min {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeRange,
			Message: i18n.T(jsonene.CodeRange, map[string]string{
				"value": jsonval.Render(arr), "op": "min-contains", "bound": strconv.Itoa(min),
			}),
			Params: map[string]any{"op": "min-contains", "bound": min, "got": count},
		})
	}
	if l.maxContains >= 0 && count > l.maxContains {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeRange,
			Message: i18n.T(jsonene.CodeRange, map[string]string{
				"value": jsonval.Render(arr), "op": "max-contains", "bound": strconv.Itoa(l.maxContains),
			}),
			Params: map[string]any{"op": "max-contains", "bound": l.maxContains, "got": count},
		})
	}
	return iss
}

func (l *ListField) JSONSchema(ex *js.Exporter) *js.Schema {
	out := &js.Schema{Type: "array"}
	switch {
	case len(l.types) == 1:
		out.Items = l.types[0].JSONSchema(ex)
	case len(l.types) > 1:
		items := make([]*js.Schema, 0, len(l.types))
		for _, t := range l.types {
			items = append(items, t.JSONSchema(ex))
		}
		out.Items = items
		out.AdditionalItems = false
	}
	if l.minItems >= 0 {
		out.MinItems = iptr(l.minItems)
	}
	if l.maxItems >= 0 {
		out.MaxItems = iptr(l.maxItems)
	}
	out.UniqueItems = l.unique
	if l.contains != nil {
		out.Contains = l.contains.JSONSchema(ex)
		if l.minContains >= 0 {
			out.MinContains = iptr(l.minContains)
		}
		if l.maxContains >= 0 {
			out.MaxContains = iptr(l.maxContains)
		}
	}
	return out
}
