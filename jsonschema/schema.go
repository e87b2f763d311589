// Package jsonschema holds the draft-07-subset document representation this
// engine exports, plus the Exporter that deduplicates reused schemas into a
// definitions table.
package jsonschema

// Schema is the JSON Schema representation used for export. Only the
// keywords the field set emits are modeled.
type Schema struct {
	// Core
	Ref         string  `json:"$ref,omitempty"`
	Type        string  `json:"type,omitempty"`
	Title       string  `json:"title,omitempty"`
	Description string  `json:"description,omitempty"`
	Default     any     `json:"default,omitempty"`
	Const       *any    `json:"const,omitempty"`
	Enum        []any   `json:"enum,omitempty"`
	Format      string  `json:"format,omitempty"`

	// String
	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`

	// Number
	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	// Object
	Properties           map[string]*Schema  `json:"properties,omitempty"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties any                 `json:"additionalProperties,omitempty"`
	MinProperties        *int                `json:"minProperties,omitempty"`
	MaxProperties        *int                `json:"maxProperties,omitempty"`
	Dependencies         map[string][]string `json:"dependencies,omitempty"`

	// Array. Items is either *Schema (homogeneous) or []*Schema (positional).
	Items           any     `json:"items,omitempty"`
	AdditionalItems any     `json:"additionalItems,omitempty"`
	MinItems        *int    `json:"minItems,omitempty"`
	MaxItems        *int    `json:"maxItems,omitempty"`
	UniqueItems     bool    `json:"uniqueItems,omitempty"`
	Contains        *Schema `json:"contains,omitempty"`
	MinContains     *int    `json:"minContains,omitempty"`
	MaxContains     *int    `json:"maxContains,omitempty"`

	// Combinators
	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	Not   *Schema   `json:"not,omitempty"`

	Definitions map[string]*Schema `json:"definitions,omitempty"`
}

// Node is anything that can emit a schema fragment. The engine's Field
// interface satisfies it.
type Node interface {
	JSONSchema(ex *Exporter) *Schema
}

type exportMode int

const (
	modeDiscover exportMode = iota
	modeEmit
)

// Exporter tracks named schemas across an export so that a schema referenced
// more than once (including self-reference via cycles) is emitted exactly
// once under definitions and referenced via $ref everywhere else.
type Exporter struct {
	mode   exportMode
	counts map[string]int
	seen   map[string]bool
	defs   map[string]*Schema
}

// Named wraps the body of a named schema. build produces the schema body;
// Named decides whether to inline it or route it through the definitions
// table. Anonymous schemas must not call Named.
func (ex *Exporter) Named(name string, build func() *Schema) *Schema {
	if ex == nil || name == "" {
		return build()
	}
	switch ex.mode {
	case modeDiscover:
		ex.counts[name]++
		if ex.seen[name] {
			return &Schema{}
		}
		ex.seen[name] = true
		build()
		return &Schema{}
	default: // modeEmit
		if ex.counts[name] < 2 {
			return build()
		}
		if _, ok := ex.defs[name]; !ok {
			// Placeholder first so a cyclic body resolves to the $ref.
			ex.defs[name] = &Schema{}
			*ex.defs[name] = *build()
		}
		return &Schema{Ref: "#/definitions/" + name}
	}
}

// Export renders a node as a standalone document. It walks the tree twice:
// a discovery pass counts named-schema occurrences, the emit pass routes
// multiply-referenced names through definitions.
func Export(n Node) *Schema {
	ex := &Exporter{mode: modeDiscover, counts: map[string]int{}, seen: map[string]bool{}}
	n.JSONSchema(ex)
	ex.mode = modeEmit
	ex.defs = map[string]*Schema{}
	root := n.JSONSchema(ex)
	if len(ex.defs) > 0 {
		root.Definitions = ex.defs
	}
	return root
}
