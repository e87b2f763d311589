package dsl

import (
	"context"
	"errors"
	"fmt"
	"sort"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	"github.com/nikhil-rupanawar/jsonene/i18n"
	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
	js "github.com/nikhil-rupanawar/jsonene/jsonschema"
)

// Dependency declares that when Trigger is present, every name in Requires
// must also be present.
type Dependency struct {
	Trigger  string
	Requires []string
}

// RequiredDependency builds a Dependency value for Dependencies().
func RequiredDependency(trigger string, requires ...string) Dependency {
	return Dependency{Trigger: trigger, Requires: requires}
}

type fieldSpec struct {
	name             string
	field            jsonene.Field
	required         bool
	explicitRequired bool
	hasDefault       bool
	def              any
	key              string // serialized name; name when empty
	title            string
	desc             string
	inherited        bool
}

func (s *fieldSpec) storageKey() string {
	if s.key != "" {
		return s.key
	}
	return s.name
}

// ObjectBuilder accumulates an object declaration. Definition errors are
// collected and surfaced at Build; MustBuild panics on them.
type ObjectBuilder struct {
	name     string
	title    string
	desc     string
	specs    []*fieldSpec
	deps     []Dependency
	closed   bool
	minProps int
	maxProps int
	selfs    []*selfField
	errs     []error
}

// Object starts a new object declaration. name identifies the schema in
// exports; anonymous objects pass "".
func Object(name string) *ObjectBuilder {
	return &ObjectBuilder{name: name, minProps: -1, maxProps: -1}
}

// Extend starts a declaration that inherits every field, dependency and
// option of parent. Redeclaring an inherited field overrides it; the
// inherited declaration order is preserved.
func Extend(parent *ObjectField, name string) *ObjectBuilder {
	b := Object(name)
	if parent == nil {
		b.errs = append(b.errs, errors.New("dsl: Extend: nil parent"))
		return b
	}
	for _, s := range parent.specs {
		cp := *s
		cp.inherited = true
		b.specs = append(b.specs, &cp)
	}
	b.deps = append(b.deps, parent.deps...)
	b.closed = parent.closed
	b.minProps = parent.minProps
	b.maxProps = parent.maxProps
	return b
}

// GenericObject returns an anonymous open object with no declared fields. It
// accepts any JSON object and reports issues only for non-object values.
func GenericObject() *ObjectField {
	return Object("").MustBuild()
}

// Title sets the exported schema title.
func (b *ObjectBuilder) Title(t string) *ObjectBuilder { b.title = t; return b }

// Describe sets the exported schema description.
func (b *ObjectBuilder) Describe(d string) *ObjectBuilder { b.desc = d; return b }

// Field declares an attribute. Fields are required unless Optional or
// Default is applied.
func (b *ObjectBuilder) Field(name string, f jsonene.Field) *FieldStep {
	spec := &fieldSpec{name: name, field: f, required: true}
	replaced := false
	for idx, s := range b.specs {
		if s.name != name {
			continue
		}
		if !s.inherited {
			b.errs = append(b.errs, fmt.Errorf("dsl: field %q declared twice", name))
		}
		b.specs[idx] = spec
		replaced = true
		break
	}
	if !replaced {
		b.specs = append(b.specs, spec)
	}
	if f == nil {
		b.errs = append(b.errs, fmt.Errorf("dsl: field %q has a nil type", name))
		spec.field = jsonene.Any()
	}
	return &FieldStep{b: b, spec: spec}
}

// Closed rejects keys that are not declared.
func (b *ObjectBuilder) Closed() *ObjectBuilder { b.closed = true; return b }

// DependsOn records that deps become required whenever trigger is present.
func (b *ObjectBuilder) DependsOn(trigger string, deps ...string) *ObjectBuilder {
	b.deps = append(b.deps, Dependency{Trigger: trigger, Requires: deps})
	return b
}

// Dependencies records several dependency rules at once.
func (b *ObjectBuilder) Dependencies(deps ...Dependency) *ObjectBuilder {
	b.deps = append(b.deps, deps...)
	return b
}

// MinProperties sets the minimum key count.
func (b *ObjectBuilder) MinProperties(n int) *ObjectBuilder { b.minProps = n; return b }

// MaxProperties sets the maximum key count.
func (b *ObjectBuilder) MaxProperties(n int) *ObjectBuilder { b.maxProps = n; return b }

// Self returns a placeholder for the object being declared, enabling
// recursive declarations like trees. The placeholder resolves at Build.
func (b *ObjectBuilder) Self() jsonene.Field {
	sf := &selfField{}
	b.selfs = append(b.selfs, sf)
	return sf
}

// Build finalizes the declaration. All definition errors accumulated on the
// builder surface here.
func (b *ObjectBuilder) Build() (*ObjectField, error) {
	errs := append([]error{}, b.errs...)

	keys := map[string]string{}
	for _, s := range b.specs {
		k := s.storageKey()
		if prev, dup := keys[k]; dup {
			errs = append(errs, fmt.Errorf("dsl: fields %q and %q share the serialized name %q", prev, s.name, k))
		}
		keys[k] = s.name
		if s.explicitRequired && s.hasDefault {
			errs = append(errs, fmt.Errorf("dsl: field %q cannot be both required and defaulted", s.name))
		}
	}

	declared := map[string]bool{}
	for _, s := range b.specs {
		declared[s.name] = true
	}
	for _, d := range b.deps {
		if !declared[d.Trigger] {
			errs = append(errs, fmt.Errorf("dsl: dependency trigger %q is not a declared field", d.Trigger))
		}
		seen := map[string]bool{}
		for _, r := range d.Requires {
			if !declared[r] {
				errs = append(errs, fmt.Errorf("dsl: dependency target %q is not a declared field", r))
			}
			if seen[r] {
				errs = append(errs, fmt.Errorf("dsl: dependency target %q listed twice for %q", r, d.Trigger))
			}
			seen[r] = true
		}
	}

	if b.minProps >= 0 && b.maxProps >= 0 && b.minProps > b.maxProps {
		errs = append(errs, fmt.Errorf("dsl: minProperties %d exceeds maxProperties %d", b.minProps, b.maxProps))
	}

	f := &ObjectField{
		name:     b.name,
		title:    b.title,
		desc:     b.desc,
		specs:    b.specs,
		deps:     b.deps,
		closed:   b.closed,
		minProps: b.minProps,
		maxProps: b.maxProps,
	}
	for _, sf := range b.selfs {
		sf.resolved = f
	}

	for _, s := range b.specs {
		if !s.hasDefault {
			continue
		}
		if iss := s.field.Validate(context.Background(), s.def, jsonene.ValidateOpt{}); len(iss) > 0 {
			errs = append(errs, fmt.Errorf("dsl: default for field %q is invalid: %w", s.name, iss))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return f, nil
}

// MustBuild is Build that panics on definition errors.
func (b *ObjectBuilder) MustBuild() *ObjectField {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}

// FieldStep refines the most recently declared field. It exposes the builder
// methods as passthroughs so declarations chain naturally.
type FieldStep struct {
	b    *ObjectBuilder
	spec *fieldSpec
}

// Required marks the field required explicitly. Fields are required by
// default, so this matters only to assert the intent alongside Default,
// which is a definition error.
func (fs *FieldStep) Required() *FieldStep {
	fs.spec.required = true
	fs.spec.explicitRequired = true
	return fs
}

// Optional marks the field optional.
func (fs *FieldStep) Optional() *FieldStep {
	fs.spec.required = false
	fs.spec.explicitRequired = false
	return fs
}

// Default sets the value supplied on read when the field is absent. A
// defaulted field is implicitly optional.
func (fs *FieldStep) Default(v any) *FieldStep {
	fs.spec.hasDefault = true
	fs.spec.def = jsonval.Normalize(v)
	if !fs.spec.explicitRequired {
		fs.spec.required = false
	}
	return fs
}

// Key sets the serialized name used in raw data, letting the in-code
// identifier stay a clean Go name (for example "dateOfBirth" stored as
// "date-of-birth").
func (fs *FieldStep) Key(serialized string) *FieldStep {
	fs.spec.key = serialized
	return fs
}

// Title annotates the exported property schema.
func (fs *FieldStep) Title(t string) *FieldStep { fs.spec.title = t; return fs }

// Describe annotates the exported property schema.
func (fs *FieldStep) Describe(d string) *FieldStep { fs.spec.desc = d; return fs }

// Field declares the next attribute on the underlying builder.
func (fs *FieldStep) Field(name string, f jsonene.Field) *FieldStep { return fs.b.Field(name, f) }

// Closed passes through to the builder.
func (fs *FieldStep) Closed() *ObjectBuilder { return fs.b.Closed() }

// DependsOn passes through to the builder.
func (fs *FieldStep) DependsOn(trigger string, deps ...string) *ObjectBuilder {
	return fs.b.DependsOn(trigger, deps...)
}

// MinProperties passes through to the builder.
func (fs *FieldStep) MinProperties(n int) *ObjectBuilder { return fs.b.MinProperties(n) }

// MaxProperties passes through to the builder.
func (fs *FieldStep) MaxProperties(n int) *ObjectBuilder { return fs.b.MaxProperties(n) }

// Self passes through to the builder.
func (fs *FieldStep) Self() jsonene.Field { return fs.b.Self() }

// Build passes through to the builder.
func (fs *FieldStep) Build() (*ObjectField, error) { return fs.b.Build() }

// MustBuild passes through to the builder.
func (fs *FieldStep) MustBuild() *ObjectField { return fs.b.MustBuild() }

// ObjectField validates JSON objects against a declared set of attributes.
type ObjectField struct {
	name     string
	title    string
	desc     string
	specs    []*fieldSpec
	deps     []Dependency
	closed   bool
	minProps int
	maxProps int
}

func (o *ObjectField) specFor(name string) *fieldSpec {
	for _, s := range o.specs {
		if s.name == name {
			return s
		}
	}
	return nil
}

func (o *ObjectField) specForKey(key string) *fieldSpec {
	for _, s := range o.specs {
		if s.storageKey() == key {
			return s
		}
	}
	return nil
}

func (o *ObjectField) Bind(raw any) *jsonene.Instance {
	m, ok := jsonval.AsMap(raw)
	if !ok {
		return jsonene.NewScalar(o, jsonval.Normalize(raw))
	}
	attrs := map[string]*jsonene.Instance{}
	extra := map[string]bool{}
	bound := map[string]bool{}
	for _, s := range o.specs {
		k := s.storageKey()
		if v, present := m[k]; present {
			attrs[s.name] = s.field.Bind(v)
			bound[k] = true
		}
	}
	for k, v := range m {
		if bound[k] {
			continue
		}
		attrs[k] = jsonene.Any().Bind(v)
		extra[k] = true
	}
	return jsonene.NewObject(o, attrs, extra)
}

// BindAttr implements attribute binding for Instance.Set.
func (o *ObjectField) BindAttr(name string, v any) (*jsonene.Instance, bool, error) {
	if s := o.specFor(name); s != nil {
		return s.field.Bind(v), true, nil
	}
	return jsonene.Any().Bind(v), false, nil
}

// DefaultFor reports the declared default read in place of an absent
// attribute.
func (o *ObjectField) DefaultFor(name string) (any, bool) {
	if s := o.specFor(name); s != nil && s.hasDefault {
		return s.def, true
	}
	return nil, false
}

// StorageKey maps an identifier to its serialized name.
func (o *ObjectField) StorageKey(name string) string {
	if s := o.specFor(name); s != nil {
		return s.storageKey()
	}
	return ""
}

// AllowsExtra reports whether undeclared keys are accepted.
func (o *ObjectField) AllowsExtra() bool { return !o.closed }

func (o *ObjectField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	m, ok := jsonval.AsMap(v)
	if !ok {
		return jsonene.Issues{typeMismatch(v, "object")}
	}
	var iss jsonene.Issues

	for _, s := range o.specs {
		k := s.storageKey()
		raw, present := m[k]
		switch {
		case present:
			child := s.field.Validate(ctx, raw, opt)
			iss = jsonene.AppendIssues(iss, jsonene.Rebase("/"+jsonene.EscapeToken(k), child)...)
		case s.hasDefault:
			child := s.field.Validate(ctx, s.def, opt)
			iss = jsonene.AppendIssues(iss, jsonene.Rebase("/"+jsonene.EscapeToken(k), child)...)
		case s.required:
			iss = jsonene.AppendIssues(iss, jsonene.Issue{
				Path: "/" + jsonene.EscapeToken(k), Code: jsonene.CodeRequired,
				Message: i18n.T(jsonene.CodeRequired, map[string]string{"name": k}),
				Params:  map[string]any{"name": k},
			})
		}
	}

	if o.closed {
		var unknown []string
		for k := range m {
			if o.specForKey(k) == nil {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		for _, k := range unknown {
			iss = jsonene.AppendIssues(iss, jsonene.Issue{
				Path: "/", Code: jsonene.CodeUnknownKey,
				Message: i18n.T(jsonene.CodeUnknownKey, map[string]string{"key": k}),
				Params:  map[string]any{"key": k},
			})
		}
	}

	if o.minProps >= 0 && len(m) < o.minProps {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeRange,
			Message: i18n.T(jsonene.CodeRange, map[string]string{"value": jsonval.Render(m), "op": "min-properties"}),
			Params:  map[string]any{"op": "min-properties", "bound": o.minProps, "got": len(m)},
		})
	}
	if o.maxProps >= 0 && len(m) > o.maxProps {
		iss = jsonene.AppendIssues(iss, jsonene.Issue{
			Path: "/", Code: jsonene.CodeRange,
			Message: i18n.T(jsonene.CodeRange, map[string]string{"value": jsonval.Render(m), "op": "max-properties"}),
			Params:  map[string]any{"op": "max-properties", "bound": o.maxProps, "got": len(m)},
		})
	}

	for _, d := range o.deps {
		ts := o.specFor(d.Trigger)
		if ts == nil {
			continue
		}
		if _, present := m[ts.storageKey()]; !present {
			continue
		}
		for _, r := range d.Requires {
			rs := o.specFor(r)
			if rs == nil {
				continue
			}
			rk := rs.storageKey()
			if _, present := m[rk]; present {
				continue
			}
			iss = jsonene.AppendIssues(iss, jsonene.Issue{
				Path: "/", Code: jsonene.CodeDependency,
				Message: i18n.T(jsonene.CodeDependency, map[string]string{
					"dependent": rk, "trigger": ts.storageKey(),
				}),
				Params: map[string]any{"dependent": rk, "trigger": ts.storageKey()},
			})
		}
	}
	return iss
}

func (o *ObjectField) JSONSchema(ex *js.Exporter) *js.Schema {
	if o.name == "" {
		return o.buildSchema(ex)
	}
	return ex.Named(o.name, func() *js.Schema { return o.buildSchema(ex) })
}

func (o *ObjectField) buildSchema(ex *js.Exporter) *js.Schema {
	out := &js.Schema{Type: "object", Title: o.title, Description: o.desc}
	if len(o.specs) > 0 {
		out.Properties = map[string]*js.Schema{}
	}
	for _, s := range o.specs {
		child := s.field.JSONSchema(ex)
		if s.title != "" || s.desc != "" || s.hasDefault {
			cp := *child
			if s.title != "" {
				cp.Title = s.title
			}
			if s.desc != "" {
				cp.Description = s.desc
			}
			if s.hasDefault {
				cp.Default = s.def
			}
			child = &cp
		}
		out.Properties[s.storageKey()] = child
		if s.required {
			out.Required = append(out.Required, s.storageKey())
		}
	}
	if o.closed {
		out.AdditionalProperties = false
	}
	if o.minProps >= 0 {
		out.MinProperties = iptr(o.minProps)
	}
	if o.maxProps >= 0 {
		out.MaxProperties = iptr(o.maxProps)
	}
	if len(o.deps) > 0 {
		out.Dependencies = map[string][]string{}
		for _, d := range o.deps {
			ts := o.specFor(d.Trigger)
			if ts == nil {
				continue
			}
			var targets []string
			for _, r := range d.Requires {
				if rs := o.specFor(r); rs != nil {
					targets = append(targets, rs.storageKey())
				}
			}
			out.Dependencies[ts.storageKey()] = append(out.Dependencies[ts.storageKey()], targets...)
		}
	}
	return out
}

// selfField is the placeholder returned by ObjectBuilder.Self. It resolves
// to the built object.
type selfField struct {
	resolved jsonene.Field
}

func (s *selfField) target() jsonene.Field {
	if s.resolved == nil {
		panic("dsl: Self placeholder used before Build")
	}
	return s.resolved
}

func (s *selfField) Bind(raw any) *jsonene.Instance { return s.target().Bind(raw) }

func (s *selfField) Validate(ctx context.Context, v any, opt jsonene.ValidateOpt) jsonene.Issues {
	return s.target().Validate(ctx, v, opt)
}

func (s *selfField) JSONSchema(ex *js.Exporter) *js.Schema { return s.target().JSONSchema(ex) }
