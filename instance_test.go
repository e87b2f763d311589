package jsonene_test

import (
	"context"
	"testing"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	j "github.com/nikhil-rupanawar/jsonene/dsl"
)

func TestInstance_MutationThenValidate(t *testing.T) {
	person := j.Object("Person").
		Field("name", j.String()).
		Field("age", j.Int()).Optional().
		MustBuild()
	ctx := context.Background()

	inst := person.Bind(map[string]any{"name": "Nikhil"})
	if err := inst.Validate(ctx); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	// Writing a bad value never raises; the next Validate reports it.
	if err := inst.Set("age", "thirty"); err != nil {
		t.Fatalf("set must not validate: %v", err)
	}
	err := inst.Validate(ctx)
	iss, ok := jsonene.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Path != "/age" {
		t.Fatalf("expected issue at /age, got %v", err)
	}

	if err := inst.Set("age", 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := inst.Validate(ctx); err != nil {
		t.Fatalf("expected valid after repair, got %v", err)
	}

	inst.Delete("age")
	if err := inst.Validate(ctx); err != nil {
		t.Fatalf("optional deletion keeps validity, got %v", err)
	}
}

func TestInstance_SequenceOps(t *testing.T) {
	l := j.List(j.Int())
	ctx := context.Background()

	inst := l.Bind([]any{1, 2, 3})
	if err := inst.Append(4, "five"); err != nil {
		t.Fatalf("append must not validate: %v", err)
	}
	if inst.Len() != 5 {
		t.Fatalf("expected 5 items, got %d", inst.Len())
	}
	err := inst.Validate(ctx)
	iss, ok := jsonene.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Path != "/4" {
		t.Fatalf("expected issue at /4, got %v", err)
	}

	if err := inst.SetItem(4, 5); err != nil {
		t.Fatalf("set item: %v", err)
	}
	if err := inst.Validate(ctx); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	if err := inst.SetSlice(1, 3, []any{20}); err != nil {
		t.Fatalf("set slice: %v", err)
	}
	got := inst.Serialize().([]any)
	if len(got) != 4 {
		t.Fatalf("splice shrinks the sequence, got %v", got)
	}

	sub, err := inst.Slice(1, 3)
	if err != nil || sub.Len() != 2 {
		t.Fatalf("slice failed: %v err=%v", sub, err)
	}
	// Replacing an element of the slice leaves the source untouched.
	if err := sub.SetItem(0, 99); err != nil {
		t.Fatalf("set item on slice: %v", err)
	}
	if inst.Serialize().([]any)[1] == sub.Serialize().([]any)[0] {
		t.Fatalf("slice must be an independent view after replacement")
	}
}

func TestInstance_ExtendAndBounds(t *testing.T) {
	l := j.GenericList()
	inst := l.Bind([]any{})

	if err := inst.Extend([]any{1, 2}); err != nil {
		t.Fatalf("extend: %v", err)
	}
	if inst.Len() != 2 {
		t.Fatalf("expected 2 items, got %d", inst.Len())
	}
	if err := inst.SetItem(5, 1); err == nil {
		t.Fatalf("expected out-of-range error")
	}
	if _, err := inst.Slice(1, 9); err == nil {
		t.Fatalf("expected bounds error")
	}
}

func TestFromJSON_RoundTrip(t *testing.T) {
	person := j.Object("Person").
		Field("name", j.String()).
		Field("emails", j.List(j.Format("email")).UniqueItems()).Optional().
		MustBuild()
	ctx := context.Background()
	opt := jsonene.ValidateOpt{CheckFormats: true}

	doc := []byte(`{"name": "Nikhil", "emails": ["testtest.com", "testtest.com"]}`)
	inst, err := jsonene.FromJSON(person, doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	first, _ := jsonene.AsIssues(inst.Validate(ctx, opt))

	out, err := inst.ToJSON()
	if err != nil {
		t.Fatalf("to json: %v", err)
	}
	again, err := jsonene.FromJSON(person, out)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	second, _ := jsonene.AsIssues(again.Validate(ctx, opt))

	if len(first) != len(second) {
		t.Fatalf("round trip must preserve issues: %v vs %v", first, second)
	}
	for i := range first {
		if first[i].Code != second[i].Code || first[i].Path != second[i].Path {
			t.Fatalf("issue %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestFromJSON_ParseError(t *testing.T) {
	_, err := jsonene.FromJSON(j.String(), []byte(`{"unterminated`))
	iss, ok := jsonene.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != jsonene.CodeParseError {
		t.Fatalf("expected parse_error issues, got %v", err)
	}
}

func TestFromJSON_IntegerFidelity(t *testing.T) {
	ctx := context.Background()

	inst, err := jsonene.FromJSON(j.Int(), []byte(`5`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := inst.Validate(ctx); err != nil {
		t.Fatalf("5 is an integer, got %v", err)
	}

	inst, err = jsonene.FromJSON(j.Int(), []byte(`5.5`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := inst.Validate(ctx); err == nil {
		t.Fatalf("5.5 must fail the integer check")
	}
}

func TestFromYAML_Binding(t *testing.T) {
	person := j.Object("Person").
		Field("name", j.String()).
		Field("tags", j.List(j.String())).Optional().
		MustBuild()
	ctx := context.Background()

	doc := []byte("name: Nikhil\ntags:\n  - a\n  - b\n")
	inst, err := jsonene.FromYAML(person, doc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := inst.Validate(ctx); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	got, err := inst.Get("name")
	if err != nil || got != "Nikhil" {
		t.Fatalf("get: %v err=%v", got, err)
	}
}

func TestAny_BindsDeeply(t *testing.T) {
	ctx := context.Background()

	inst := jsonene.Any().Bind(map[string]any{"a": []any{1, map[string]any{"b": true}}})
	if err := inst.Validate(ctx); err != nil {
		t.Fatalf("any accepts everything, got %v", err)
	}
	child, err := inst.At("a")
	if err != nil || child.Len() != 2 {
		t.Fatalf("deep binding failed: %v err=%v", child, err)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := jsonene.Issues{
		{Path: "/a", Code: jsonene.CodeRequired, Message: "m1"},
		{Path: "/b", Code: jsonene.CodeRange, Message: "m2"},
		{Path: "/c", Code: jsonene.CodeLength, Message: "m3"},
		{Path: "/d", Code: jsonene.CodePattern, Message: "m4"},
	}
	got := iss.Error()
	want := "required at /a; range at /b; length at /c; ... (total 4)"
	if got != want {
		t.Fatalf("summary mismatch:\n got %q\nwant %q", got, want)
	}
	if ms := iss.Messages(); len(ms) != 4 || ms[0] != "m1" {
		t.Fatalf("messages mismatch: %v", ms)
	}
}
