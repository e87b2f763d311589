package dsl_test

import (
	"context"
	"strings"
	"testing"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	j "github.com/nikhil-rupanawar/jsonene/dsl"
)

func personField(t *testing.T) *j.ObjectField {
	t.Helper()
	return j.Object("Person").
		Field("name", j.String()).
		Field("age", j.Int()).Optional().
		Field("country", j.String()).Default("India").
		Field("dateOfBirth", j.Format("date")).Key("date-of-birth").Optional().
		MustBuild()
}

func TestObject_RequiredByDefault(t *testing.T) {
	p := personField(t)
	ctx := context.Background()

	iss := p.Validate(ctx, map[string]any{"age": 30}, jsonene.ValidateOpt{})
	if len(iss) != 1 || iss[0].Code != jsonene.CodeRequired {
		t.Fatalf("expected required issue, got %v", iss)
	}
	if iss[0].Path != "/name" {
		t.Fatalf("expected path /name, got %q", iss[0].Path)
	}
	if got := iss[0].Message; got != "'name' is a required property" {
		t.Fatalf("unexpected message: %q", got)
	}

	if iss := p.Validate(ctx, map[string]any{"name": "Nikhil"}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("optional fields may be absent, got %v", iss)
	}
}

func TestObject_DefaultOnRead(t *testing.T) {
	p := personField(t)
	inst := p.Bind(map[string]any{"name": "Nikhil"})

	got, err := inst.Get("country")
	if err != nil || got != "India" {
		t.Fatalf("expected default on read, got %v err=%v", got, err)
	}

	// Defaults are never written back into the value.
	raw, ok := inst.Serialize().(map[string]any)
	if !ok {
		t.Fatalf("expected object serialization")
	}
	if _, present := raw["country"]; present {
		t.Fatalf("default must not materialize: %v", raw)
	}

	// At only sees bound children.
	if _, err := inst.At("country"); err == nil {
		t.Fatalf("At must not synthesize a default instance")
	}
}

func TestObject_SerializedNameAlias(t *testing.T) {
	p := personField(t)
	ctx := context.Background()

	inst := p.Bind(map[string]any{"name": "Nikhil", "date-of-birth": "1989-09-11"})
	got, err := inst.Get("dateOfBirth")
	if err != nil || got != "1989-09-11" {
		t.Fatalf("alias read failed: %v err=%v", got, err)
	}

	if err := inst.Set("dateOfBirth", "1990-01-01"); err != nil {
		t.Fatalf("alias write failed: %v", err)
	}
	raw := inst.Serialize().(map[string]any)
	if raw["date-of-birth"] != "1990-01-01" {
		t.Fatalf("expected serialized key, got %v", raw)
	}
	if _, present := raw["dateOfBirth"]; present {
		t.Fatalf("identifier must not leak into serialization: %v", raw)
	}

	// Validation addresses the serialized key.
	iss := p.Validate(ctx, map[string]any{"name": "n", "date-of-birth": "nope"}, jsonene.ValidateOpt{CheckFormats: true})
	if len(iss) != 1 || iss[0].Path != "/date-of-birth" {
		t.Fatalf("expected issue at /date-of-birth, got %v", iss)
	}
}

func TestObject_Dependencies(t *testing.T) {
	o := j.Object("Profile").
		Field("contact", j.String()).Optional().
		Field("emails", j.List(j.Format("email"))).Optional().
		DependsOn("emails", "contact").
		MustBuild()
	ctx := context.Background()

	iss := o.Validate(ctx, map[string]any{"emails": []any{"a@b.c"}}, jsonene.ValidateOpt{})
	if len(iss) != 1 || iss[0].Code != jsonene.CodeDependency {
		t.Fatalf("expected dependency issue, got %v", iss)
	}
	if got := iss[0].Message; got != "'contact' is a dependency of 'emails'" {
		t.Fatalf("unexpected message: %q", got)
	}

	if iss := o.Validate(ctx, map[string]any{}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("absent trigger imposes nothing, got %v", iss)
	}
	if iss := o.Validate(ctx, map[string]any{"emails": []any{"a@b.c"}, "contact": "x"}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("satisfied dependency, got %v", iss)
	}
}

func TestObject_ClosedAndOpen(t *testing.T) {
	ctx := context.Background()

	open := j.Object("").Field("a", j.String()).MustBuild()
	if iss := open.Validate(ctx, map[string]any{"a": "x", "b": 1}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("open schemas keep unknown keys, got %v", iss)
	}

	cf, err := j.Object("").Field("a", j.String()).Closed().Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	iss := cf.Validate(ctx, map[string]any{"a": "x", "z": 1, "b": 2}, jsonene.ValidateOpt{})
	if len(iss) != 2 || iss[0].Code != jsonene.CodeUnknownKey {
		t.Fatalf("expected unknown_key issues, got %v", iss)
	}
	// Deterministic ordering by key.
	if iss[0].Params["key"] != "b" || iss[1].Params["key"] != "z" {
		t.Fatalf("expected sorted unknown keys, got %v", iss)
	}

	inst := cf.Bind(map[string]any{"a": "x"})
	if err := inst.Set("nope", 1); err == nil {
		t.Fatalf("closed schema must reject undeclared Set")
	}
}

func TestObject_PropertyCounts(t *testing.T) {
	o := j.Object("").MinProperties(1).MaxProperties(2).MustBuild()
	ctx := context.Background()

	if iss := o.Validate(ctx, map[string]any{}, jsonene.ValidateOpt{}); len(iss) != 1 || iss[0].Code != jsonene.CodeRange {
		t.Fatalf("expected min-properties issue, got %v", iss)
	}
	if iss := o.Validate(ctx, map[string]any{"a": 1, "b": 2, "c": 3}, jsonene.ValidateOpt{}); len(iss) != 1 || iss[0].Code != jsonene.CodeRange {
		t.Fatalf("expected max-properties issue, got %v", iss)
	}
}

func TestObject_Extend(t *testing.T) {
	parent := j.Object("Base").
		Field("id", j.Int()).
		Field("note", j.String()).Optional().
		MustBuild()

	child := j.Extend(parent, "Derived").
		Field("note", j.String().MinLen(3)).Optional().
		Field("extra", j.Bool()).
		MustBuild()
	ctx := context.Background()

	// Inherited field stays required; the override tightens note.
	iss := child.Validate(ctx, map[string]any{"note": "ab", "extra": true}, jsonene.ValidateOpt{})
	var codes []string
	for _, it := range iss {
		codes = append(codes, it.Code)
	}
	if len(iss) != 2 {
		t.Fatalf("expected id required and note length, got %v", codes)
	}
}

func TestObject_DefinitionErrors(t *testing.T) {
	_, err := j.Object("").
		Field("a", j.String()).Required().Default("x").
		Build()
	if err == nil || !strings.Contains(err.Error(), "required and defaulted") {
		t.Fatalf("expected required/default conflict, got %v", err)
	}

	_, err = j.Object("").
		Field("a", j.String()).
		Field("b", j.String()).Key("a").
		Build()
	if err == nil {
		t.Fatalf("expected serialized-name collision")
	}

	_, err = j.Object("").
		Field("a", j.String()).Optional().
		DependsOn("a", "missing").
		Build()
	if err == nil {
		t.Fatalf("expected unknown dependency target")
	}

	_, err = j.Object("").
		Field("n", j.Int()).Default("not-a-number").
		Build()
	if err == nil {
		t.Fatalf("expected invalid default")
	}
}

func TestObject_SelfRecursion(t *testing.T) {
	b := j.Object("Tree")
	tree := b.
		Field("value", j.Int()).
		Field("children", j.List(b.Self())).Optional().
		MustBuild()
	ctx := context.Background()

	doc := map[string]any{
		"value": 1,
		"children": []any{
			map[string]any{"value": 2},
			map[string]any{"value": "bad"},
		},
	}
	iss := tree.Validate(ctx, doc, jsonene.ValidateOpt{})
	if len(iss) != 1 || iss[0].Path != "/children/1/value" {
		t.Fatalf("expected nested issue at /children/1/value, got %v", iss)
	}
}

func TestGenericObject(t *testing.T) {
	g := j.GenericObject()
	ctx := context.Background()

	if iss := g.Validate(ctx, map[string]any{"anything": []any{1, "x"}}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("expected ok, got %v", iss)
	}
	if iss := g.Validate(ctx, 42, jsonene.ValidateOpt{}); len(iss) != 1 || iss[0].Code != jsonene.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch, got %v", iss)
	}
}
