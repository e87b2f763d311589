package jsonene

import (
	"context"

	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
	js "github.com/nikhil-rupanawar/jsonene/jsonschema"
)

// Field is the contract implemented by every field kind: scalars, containers
// and operators. A Field is an immutable declaration; binding produces a live
// Instance, validation is a pure function of (field, value).
type Field interface {
	// Bind wraps a raw JSON-compatible value into a live Instance. Binding
	// never validates.
	Bind(raw any) *Instance
	// Validate checks value against the declaration and returns path-tagged
	// issues. A failing child never aborts sibling evaluation.
	Validate(ctx context.Context, value any, opt ValidateOpt) Issues
	// JSONSchema emits the draft-07 fragment for this field.
	JSONSchema(ex *js.Exporter) *js.Schema
}

// AttrBinder is implemented by object-shaped fields. The Instance layer uses
// it to resolve identifiers, aliases and defaults without knowing the field's
// concrete type.
type AttrBinder interface {
	// BindAttr binds a raw value for the named attribute. declared reports
	// whether the name is part of the declaration; undeclared names are bound
	// permissively when the schema is open.
	BindAttr(name string, v any) (inst *Instance, declared bool, err error)
	// DefaultFor returns the declared default for the name, if any.
	DefaultFor(name string) (any, bool)
	// StorageKey maps an identifier to its serialized key (alias or the
	// identifier itself); it returns "" for undeclared names.
	StorageKey(name string) string
	// AllowsExtra reports whether undeclared keys are accepted.
	AllowsExtra() bool
}

// ItemBinder is implemented by sequence-shaped fields. index selects the
// element type for positional (tuple) sequences.
type ItemBinder interface {
	BindItem(index int, v any) *Instance
}

// Matcher is implemented by combinators that adopt a candidate shape
// (AnyOf/OneOf). Match returns the adopted candidate, or nil when no single
// candidate produced zero errors.
type Matcher interface {
	Match(ctx context.Context, v any) Field
}

// ExportSchema renders the field as a draft-07 JSON Schema document,
// deduplicating schemas referenced more than once via a definitions table.
func ExportSchema(f Field) *js.Schema {
	return js.Export(f)
}

// Any returns a permissive field that accepts every JSON-compatible value and
// never reports issues. It backs undeclared keys of open schemas and the
// elements of generic sequences.
func Any() Field { return anyField{} }

type anyField struct{}

func (anyField) Bind(raw any) *Instance {
	v := jsonval.Normalize(raw)
	switch t := v.(type) {
	case map[string]any:
		attrs := make(map[string]*Instance, len(t))
		extra := make(map[string]bool, len(t))
		for k, val := range t {
			attrs[k] = anyField{}.Bind(val)
			extra[k] = true
		}
		return NewObject(anyField{}, attrs, extra)
	case []any:
		items := make([]*Instance, 0, len(t))
		for _, e := range t {
			items = append(items, anyField{}.Bind(e))
		}
		return NewSequence(anyField{}, items)
	default:
		return NewScalar(anyField{}, v)
	}
}

func (anyField) Validate(ctx context.Context, v any, opt ValidateOpt) Issues { return nil }

func (anyField) JSONSchema(ex *js.Exporter) *js.Schema { return &js.Schema{} }

func (anyField) BindAttr(name string, v any) (*Instance, bool, error) {
	return anyField{}.Bind(v), false, nil
}

func (anyField) DefaultFor(name string) (any, bool) { return nil, false }

func (anyField) StorageKey(name string) string { return "" }

func (anyField) AllowsExtra() bool { return true }

func (anyField) BindItem(index int, v any) *Instance { return anyField{}.Bind(v) }
