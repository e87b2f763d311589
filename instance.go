package jsonene

import (
	"context"
	"fmt"
)

type instanceKind int

const (
	scalarInstance instanceKind = iota
	sequenceInstance
	objectInstance
)

// Instance is a live binding of raw JSON-compatible data to a Field. It owns
// the bound value: reads resolve aliases and defaults, writes mutate the
// owned value in place, and validation is always an explicit call. Instances
// are not safe for concurrent mutation.
type Instance struct {
	field Field
	kind  instanceKind

	value any                  // scalar payload
	items []*Instance          // sequence payload
	attrs map[string]*Instance // object payload, keyed by identifier
	extra map[string]bool      // identifiers bound permissively (undeclared keys)

	// match is the candidate adopted by an AnyOf/OneOf field; matchInst is
	// the payload re-bound through it for attribute access.
	match     Field
	matchInst *Instance
}

// NewScalar wraps a leaf value. Used by field implementations inside Bind.
func NewScalar(f Field, v any) *Instance {
	return &Instance{field: f, kind: scalarInstance, value: v}
}

// NewSequence wraps eagerly bound sequence elements.
func NewSequence(f Field, items []*Instance) *Instance {
	return &Instance{field: f, kind: sequenceInstance, items: items}
}

// NewObject wraps eagerly bound attributes. extra marks identifiers that are
// not part of the declaration (kept for open schemas).
func NewObject(f Field, attrs map[string]*Instance, extra map[string]bool) *Instance {
	if attrs == nil {
		attrs = map[string]*Instance{}
	}
	if extra == nil {
		extra = map[string]bool{}
	}
	return &Instance{field: f, kind: objectInstance, attrs: attrs, extra: extra}
}

// Field returns the declaration this instance is bound to.
func (i *Instance) Field() Field { return i.field }

// Serialize reconstructs the raw JSON-compatible value, applying serialized
// name aliases. Declared defaults are not materialized here; they exist only
// on read access.
func (i *Instance) Serialize() any {
	switch i.kind {
	case sequenceInstance:
		out := make([]any, 0, len(i.items))
		for _, it := range i.items {
			out = append(out, it.Serialize())
		}
		return out
	case objectInstance:
		out := make(map[string]any, len(i.attrs))
		for name, child := range i.attrs {
			out[i.storageKey(name)] = child.Serialize()
		}
		return out
	default:
		if i.matchInst != nil {
			return i.matchInst.Serialize()
		}
		return i.value
	}
}

func (i *Instance) storageKey(name string) string {
	if i.extra[name] {
		return name
	}
	if ab, ok := i.field.(AttrBinder); ok {
		if k := ab.StorageKey(name); k != "" {
			return k
		}
	}
	return name
}

// Validate aggregates all issues for the current value and fails with the
// full Issues set when any exist. Use Errors to inspect without failing.
func (i *Instance) Validate(ctx context.Context, opts ...ValidateOpt) error {
	if iss := i.Errors(ctx, opts...); len(iss) > 0 {
		return iss
	}
	return nil
}

// Errors returns every issue for the current value without raising. The set
// is produced fresh on each call; container evaluation never short-circuits.
func (i *Instance) Errors(ctx context.Context, opts ...ValidateOpt) Issues {
	var opt ValidateOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	v := i.Serialize()
	iss := i.field.Validate(ctx, v, opt)
	i.resolveMatch(ctx, v)
	return iss
}

// resolveMatch adopts the candidate shape of a combinator field, if any.
func (i *Instance) resolveMatch(ctx context.Context, v any) {
	m, ok := i.field.(Matcher)
	if !ok {
		return
	}
	adopted := m.Match(ctx, v)
	if adopted == nil {
		i.match, i.matchInst = nil, nil
		return
	}
	if adopted != i.match || i.matchInst == nil {
		i.match = adopted
		i.matchInst = adopted.Bind(v)
	}
}

// ensureMatch lazily resolves the adopted candidate for access paths that
// run before any validation.
func (i *Instance) ensureMatch() *Instance {
	if i.matchInst != nil {
		return i.matchInst
	}
	if _, ok := i.field.(Matcher); !ok {
		return nil
	}
	i.resolveMatch(context.Background(), i.Serialize())
	return i.matchInst
}

// ---- object access ----

// At returns the bound child instance for the identifier. Absent optional
// fields (even with defaults) have no child instance; use Get for
// default-aware reads.
func (i *Instance) At(name string) (*Instance, error) {
	if i.kind != objectInstance {
		if mi := i.ensureMatch(); mi != nil {
			return mi.At(name)
		}
		return nil, fmt.Errorf("jsonene: %q: not an object instance", name)
	}
	if c, ok := i.attrs[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("jsonene: attribute %q is not set", name)
}

// Get reads an attribute as a raw value, resolving the serialized-name alias
// and supplying the declared default when the attribute is absent.
func (i *Instance) Get(name string) (any, error) {
	if i.kind != objectInstance {
		if mi := i.ensureMatch(); mi != nil {
			return mi.Get(name)
		}
		return nil, fmt.Errorf("jsonene: %q: not an object instance", name)
	}
	if c, ok := i.attrs[name]; ok {
		return c.Serialize(), nil
	}
	if ab, ok := i.field.(AttrBinder); ok {
		if dv, ok := ab.DefaultFor(name); ok {
			return dv, nil
		}
	}
	return nil, fmt.Errorf("jsonene: attribute %q is not set", name)
}

// Set writes an attribute through to the owned value immediately. v may be a
// raw value or an already bound *Instance. Undeclared names are accepted
// only when the schema is open. Set never validates.
func (i *Instance) Set(name string, v any) error {
	if i.kind != objectInstance {
		if mi := i.ensureMatch(); mi != nil {
			return mi.Set(name, v)
		}
		return fmt.Errorf("jsonene: %q: not an object instance", name)
	}
	if child, ok := v.(*Instance); ok {
		i.attrs[name] = child
		if ab, ok := i.field.(AttrBinder); !ok || ab.StorageKey(name) == "" {
			i.extra[name] = true
		} else {
			delete(i.extra, name)
		}
		return nil
	}
	ab, ok := i.field.(AttrBinder)
	if !ok {
		return fmt.Errorf("jsonene: field does not support attribute binding")
	}
	child, declared, err := ab.BindAttr(name, v)
	if err != nil {
		return err
	}
	if !declared {
		if !ab.AllowsExtra() {
			return fmt.Errorf("jsonene: attribute %q is not declared and the schema is closed", name)
		}
		i.extra[name] = true
	} else {
		delete(i.extra, name)
	}
	i.attrs[name] = child
	return nil
}

// Delete removes an attribute from the owned value.
func (i *Instance) Delete(name string) {
	if i.kind != objectInstance {
		return
	}
	delete(i.attrs, name)
	delete(i.extra, name)
}

// ---- sequence access ----

// Len returns the element count for sequence instances, 0 otherwise.
func (i *Instance) Len() int { return len(i.items) }

// Item returns the bound element at index.
func (i *Instance) Item(idx int) (*Instance, error) {
	if i.kind != sequenceInstance {
		return nil, fmt.Errorf("jsonene: not a sequence instance")
	}
	if idx < 0 || idx >= len(i.items) {
		return nil, fmt.Errorf("jsonene: index %d out of range [0,%d)", idx, len(i.items))
	}
	return i.items[idx], nil
}

// SetItem replaces the element at index, mutating the owned sequence.
func (i *Instance) SetItem(idx int, v any) error {
	if i.kind != sequenceInstance {
		return fmt.Errorf("jsonene: not a sequence instance")
	}
	if idx < 0 || idx >= len(i.items) {
		return fmt.Errorf("jsonene: index %d out of range [0,%d)", idx, len(i.items))
	}
	i.items[idx] = i.bindItem(idx, v)
	return nil
}

// Append appends values to the owned sequence. It never validates; a value
// violating the element type surfaces on the next Validate call.
func (i *Instance) Append(vs ...any) error {
	if i.kind != sequenceInstance {
		return fmt.Errorf("jsonene: not a sequence instance")
	}
	for _, v := range vs {
		i.items = append(i.items, i.bindItem(len(i.items), v))
	}
	return nil
}

// Extend appends every element of vs, mirroring sequence extend semantics.
func (i *Instance) Extend(vs []any) error { return i.Append(vs...) }

// SetSlice replaces the elements in [from, to) with the given values. The
// sequence may grow or shrink.
func (i *Instance) SetSlice(from, to int, vs []any) error {
	if i.kind != sequenceInstance {
		return fmt.Errorf("jsonene: not a sequence instance")
	}
	if from < 0 || to < from || to > len(i.items) {
		return fmt.Errorf("jsonene: slice bounds [%d:%d] out of range [0,%d]", from, to, len(i.items))
	}
	repl := make([]*Instance, 0, len(vs))
	for n, v := range vs {
		repl = append(repl, i.bindItem(from+n, v))
	}
	tail := append([]*Instance{}, i.items[to:]...)
	i.items = append(append(i.items[:from], repl...), tail...)
	return nil
}

// Slice returns a new instance over a shallow copy of [from, to).
func (i *Instance) Slice(from, to int) (*Instance, error) {
	if i.kind != sequenceInstance {
		return nil, fmt.Errorf("jsonene: not a sequence instance")
	}
	if from < 0 || to < from || to > len(i.items) {
		return nil, fmt.Errorf("jsonene: slice bounds [%d:%d] out of range [0,%d]", from, to, len(i.items))
	}
	return NewSequence(i.field, append([]*Instance{}, i.items[from:to]...)), nil
}

func (i *Instance) bindItem(idx int, v any) *Instance {
	if child, ok := v.(*Instance); ok {
		return child
	}
	if ib, ok := i.field.(ItemBinder); ok {
		return ib.BindItem(idx, v)
	}
	return Any().Bind(v)
}

// ---- scalar access ----

// Value returns the scalar payload; containers return their serialized form.
func (i *Instance) Value() any {
	if i.kind == scalarInstance && i.matchInst == nil {
		return i.value
	}
	return i.Serialize()
}
