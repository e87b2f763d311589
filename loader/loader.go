// Package loader compiles declarative schema documents, written in YAML or
// JSON with draft-07 style keywords, into runnable field declarations.
package loader

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	"github.com/nikhil-rupanawar/jsonene/dsl"
	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
)

// Load parses one schema document and compiles it. YAML is a superset of
// JSON, so both serializations are accepted.
func Load(data []byte) (jsonene.Field, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("loader: parse: %w", err)
	}
	m, ok := jsonval.AsMap(jsonval.Normalize(doc))
	if !ok {
		return nil, fmt.Errorf("loader: document root must be a mapping")
	}
	return Compile(m)
}

// Compile turns an already decoded schema document into a field. The
// document may carry a definitions table; definitions may reference each
// other and themselves.
func Compile(doc map[string]any) (jsonene.Field, error) {
	c := &compiler{
		defs:     map[string]any{},
		compiled: map[string]jsonene.Field{},
		building: map[string]bool{},
	}
	if raw, ok := doc["definitions"]; ok {
		defs, ok := jsonval.AsMap(raw)
		if !ok {
			return nil, fmt.Errorf("loader: definitions must be a mapping")
		}
		c.defs = defs
	}
	return c.compile(doc, "/")
}

type compiler struct {
	defs     map[string]any
	compiled map[string]jsonene.Field
	building map[string]bool
}

func (c *compiler) compile(raw any, at string) (jsonene.Field, error) {
	m, ok := jsonval.AsMap(raw)
	if !ok {
		return nil, fmt.Errorf("loader: %s: schema must be a mapping", at)
	}
	if ref, ok := m["$ref"].(string); ok {
		return c.resolveRef(ref, at)
	}
	if v, ok := m["const"]; ok {
		return dsl.Const(v), nil
	}
	if raw, ok := m["enum"]; ok {
		vs, ok := jsonval.AsSlice(raw)
		if !ok || len(vs) == 0 {
			return nil, fmt.Errorf("loader: %s: enum must be a non-empty sequence", at)
		}
		return dsl.Enum(vs...), nil
	}
	for _, op := range []string{"anyOf", "allOf", "oneOf"} {
		if raw, ok := m[op]; ok {
			return c.compileOperator(op, raw, at)
		}
	}
	if raw, ok := m["not"]; ok {
		inner, err := c.compile(raw, at+"not/")
		if err != nil {
			return nil, err
		}
		return dsl.Not(inner), nil
	}

	typ, _ := m["type"].(string)
	switch typ {
	case "string":
		return c.compileString(m, at)
	case "number", "integer":
		return c.compileNumber(m, typ == "integer")
	case "boolean":
		return dsl.Bool(), nil
	case "null":
		return dsl.Null(), nil
	case "array":
		return c.compileArray(m, at)
	case "object":
		return c.compileObject(m, at)
	case "", "any":
		return jsonene.Any(), nil
	default:
		return nil, fmt.Errorf("loader: %s: unknown type %q", at, typ)
	}
}

func (c *compiler) resolveRef(ref, at string) (jsonene.Field, error) {
	name := strings.TrimPrefix(ref, "#/definitions/")
	body, ok := c.defs[name]
	if !ok {
		return nil, fmt.Errorf("loader: %s: unresolved reference %q", at, ref)
	}
	if f, done := c.compiled[name]; done {
		return f, nil
	}
	if c.building[name] {
		// Recursive reference; resolve after the definition finishes.
		return dsl.Lazy(func() jsonene.Field { return c.compiled[name] }), nil
	}
	c.building[name] = true
	f, err := c.compile(body, "/definitions/"+name+"/")
	delete(c.building, name)
	if err != nil {
		return nil, err
	}
	c.compiled[name] = f
	return f, nil
}

func (c *compiler) compileOperator(op string, raw any, at string) (jsonene.Field, error) {
	entries, ok := jsonval.AsSlice(raw)
	if !ok || len(entries) == 0 {
		return nil, fmt.Errorf("loader: %s: %s must be a non-empty sequence", at, op)
	}
	fields := make([]jsonene.Field, 0, len(entries))
	for idx, e := range entries {
		f, err := c.compile(e, fmt.Sprintf("%s%s/%d/", at, op, idx))
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	switch op {
	case "anyOf":
		return dsl.AnyOf(fields...), nil
	case "oneOf":
		return dsl.OneOf(fields...), nil
	default:
		return dsl.AllOf(fields...), nil
	}
}

func (c *compiler) compileString(m map[string]any, at string) (jsonene.Field, error) {
	if fn, ok := m["format"].(string); ok {
		return dsl.Format(fn), nil
	}
	f := dsl.String()
	if n, ok := intOpt(m, "minLength"); ok {
		f = f.MinLen(n)
	}
	if n, ok := intOpt(m, "maxLength"); ok {
		f = f.MaxLen(n)
	}
	if p, ok := m["pattern"].(string); ok {
		f = f.Pattern(p)
	}
	return f, nil
}

func (c *compiler) compileNumber(m map[string]any, integer bool) (jsonene.Field, error) {
	f := dsl.Number()
	if integer {
		f = dsl.Int()
	}
	if v, ok := floatOpt(m, "minimum"); ok {
		f = f.Min(v)
	}
	if v, ok := floatOpt(m, "maximum"); ok {
		f = f.Max(v)
	}
	if v, ok := floatOpt(m, "exclusiveMinimum"); ok {
		f = f.ExclusiveMin(v)
	}
	if v, ok := floatOpt(m, "exclusiveMaximum"); ok {
		f = f.ExclusiveMax(v)
	}
	if v, ok := floatOpt(m, "multipleOf"); ok {
		f = f.MultipleOf(v)
	}
	return f, nil
}

func (c *compiler) compileArray(m map[string]any, at string) (jsonene.Field, error) {
	var f *dsl.ListField
	switch items := m["items"].(type) {
	case nil:
		f = dsl.GenericList()
	case []any:
		// A sequence of schemas declares a positional tuple.
		types := make([]jsonene.Field, 0, len(items))
		for idx, e := range items {
			t, err := c.compile(e, fmt.Sprintf("%sitems/%d/", at, idx))
			if err != nil {
				return nil, err
			}
			types = append(types, t)
		}
		f = dsl.List(types...)
	default:
		t, err := c.compile(items, at+"items/")
		if err != nil {
			return nil, err
		}
		f = dsl.List(t)
	}
	if n, ok := intOpt(m, "minItems"); ok {
		f = f.MinItems(n)
	}
	if n, ok := intOpt(m, "maxItems"); ok {
		f = f.MaxItems(n)
	}
	if u, ok := m["uniqueItems"].(bool); ok && u {
		f = f.UniqueItems()
	}
	if raw, ok := m["contains"]; ok {
		inner, err := c.compile(raw, at+"contains/")
		if err != nil {
			return nil, err
		}
		f = f.Contains(inner)
		if n, ok := intOpt(m, "minContains"); ok {
			f = f.MinContains(n)
		}
		if n, ok := intOpt(m, "maxContains"); ok {
			f = f.MaxContains(n)
		}
	}
	return f, nil
}

func (c *compiler) compileObject(m map[string]any, at string) (jsonene.Field, error) {
	name, _ := m["title"].(string)
	b := dsl.Object(name)

	requiredSet := map[string]bool{}
	if raw, ok := m["required"]; ok {
		names, ok := jsonval.AsSlice(raw)
		if !ok {
			return nil, fmt.Errorf("loader: %s: required must be a sequence", at)
		}
		for _, n := range names {
			s, ok := n.(string)
			if !ok {
				return nil, fmt.Errorf("loader: %s: required entries must be strings", at)
			}
			requiredSet[s] = true
		}
	}

	if raw, ok := m["properties"]; ok {
		props, ok := jsonval.AsMap(raw)
		if !ok {
			return nil, fmt.Errorf("loader: %s: properties must be a mapping", at)
		}
		for _, key := range sortedKeys(props) {
			body := props[key]
			pf, err := c.compile(body, at+"properties/"+key+"/")
			if err != nil {
				return nil, err
			}
			step := b.Field(key, pf)
			pm, _ := jsonval.AsMap(body)
			if dv, ok := pm["default"]; ok {
				step.Default(dv)
			} else if !requiredSet[key] {
				step.Optional()
			}
			if t, ok := pm["title"].(string); ok {
				step.Title(t)
			}
			if d, ok := pm["description"].(string); ok {
				step.Describe(d)
			}
		}
	}

	if ap, ok := m["additionalProperties"].(bool); ok && !ap {
		b.Closed()
	}
	if n, ok := intOpt(m, "minProperties"); ok {
		b.MinProperties(n)
	}
	if n, ok := intOpt(m, "maxProperties"); ok {
		b.MaxProperties(n)
	}
	if raw, ok := m["dependencies"]; ok {
		deps, ok := jsonval.AsMap(raw)
		if !ok {
			return nil, fmt.Errorf("loader: %s: dependencies must be a mapping", at)
		}
		for _, trigger := range sortedKeys(deps) {
			targets, ok := jsonval.AsSlice(deps[trigger])
			if !ok {
				return nil, fmt.Errorf("loader: %s: dependency %q must list property names", at, trigger)
			}
			names := make([]string, 0, len(targets))
			for _, t := range targets {
				s, ok := t.(string)
				if !ok {
					return nil, fmt.Errorf("loader: %s: dependency %q entries must be strings", at, trigger)
				}
				names = append(names, s)
			}
			b.DependsOn(trigger, names...)
		}
	}

	f, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("loader: %s: %w", at, err)
	}
	return f, nil
}

func sortedKeys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func intOpt(m map[string]any, key string) (int, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	f, ok := jsonval.AsNumber(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func floatOpt(m map[string]any, key string) (float64, bool) {
	v, ok := m[key]
	if !ok {
		return 0, false
	}
	return jsonval.AsNumber(v)
}
