// Package dsl provides the schema-building surface of jsonene: scalar
// fields (String, Number, Int, Bool, Null), literal fields (Const, Enum,
// Format), containers (List, GenericList, Object, GenericObject), logical
// combinators (AllOf, AnyOf, OneOf, Not) and forward references for
// recursive schemas (Lazy, ObjectBuilder.Self).
//
// Declaration is a one-time setup phase; definition errors (duplicate
// identifiers, alias collisions, conflicting dependency rules, a Default on
// an explicitly Required field) surface at Build, never at validation time.
package dsl
