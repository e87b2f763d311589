// Package jsonene is a schema definition and validation engine for
// JSON-compatible data.
//
// Schemas are declared once from composable fields (see the dsl package),
// raw data is bound into a live Instance, and validation is an explicit,
// non-short-circuiting walk that aggregates path-tagged issues. The same
// field tree exports itself as a draft-07-subset JSON Schema document,
// deduplicating reused and recursive schemas through a definitions table.
//
//	person := dsl.Object("Person").
//		Field("name", dsl.String().MinLen(3)).
//		Field("emails", dsl.List(dsl.Format(formats.Email)).UniqueItems()).
//		Field("contact", dsl.String()).Optional().
//		DependsOn("emails", "contact").
//		MustBuild()
//
//	inst, _ := jsonene.FromJSON(person, doc)
//	if err := inst.Validate(ctx); err != nil { ... }
//
// Mutation through an Instance (Set, Append, SetSlice, ...) writes through
// to the owned raw value immediately and never re-validates implicitly.
package jsonene
