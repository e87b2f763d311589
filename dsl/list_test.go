package dsl_test

import (
	"context"
	"testing"

	jsonene "github.com/nikhil-rupanawar/jsonene"
	j "github.com/nikhil-rupanawar/jsonene/dsl"
)

func TestList_Homogeneous(t *testing.T) {
	l := j.List(j.String())
	ctx := context.Background()

	if iss := l.Validate(ctx, []any{"a", "b"}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("expected ok, got %v", iss)
	}

	iss := l.Validate(ctx, []any{"ok", 5}, jsonene.ValidateOpt{})
	if len(iss) != 1 {
		t.Fatalf("expected one issue, got %v", iss)
	}
	if iss[0].Path != "/1" || iss[0].Code != jsonene.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch at /1, got %+v", iss[0])
	}
	if got := iss[0].Message; got != "5 is not of type 'string'" {
		t.Fatalf("unexpected message: %q", got)
	}

	if iss := l.Validate(ctx, "not-a-list", jsonene.ValidateOpt{}); len(iss) != 1 || iss[0].Code != jsonene.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch for non-array, got %v", iss)
	}
}

func TestList_Tuple(t *testing.T) {
	l := j.List(j.Number(), j.String(), j.String())
	ctx := context.Background()

	if iss := l.Validate(ctx, []any{1, "a", "b"}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("expected ok, got %v", iss)
	}

	// Wrong arity reports once; declared positions still validate.
	iss := l.Validate(ctx, []any{"oops", "a"}, jsonene.ValidateOpt{})
	var arity, mismatch int
	for _, it := range iss {
		switch it.Code {
		case jsonene.CodeArity:
			arity++
		case jsonene.CodeTypeMismatch:
			mismatch++
			if it.Path != "/0" {
				t.Fatalf("expected mismatch at /0, got %+v", it)
			}
		}
	}
	if arity != 1 || mismatch != 1 {
		t.Fatalf("expected one arity and one type issue, got %v", iss)
	}
}

func TestList_Unique(t *testing.T) {
	l := j.List(j.Format("email")).UniqueItems()
	ctx := context.Background()

	iss := l.Validate(ctx, []any{"testtest.com", "testtest.com"}, jsonene.ValidateOpt{})
	if len(iss) != 1 || iss[0].Code != jsonene.CodeUniqueness {
		t.Fatalf("expected a single uniqueness issue, got %v", iss)
	}
	if got := iss[0].Message; got != "['testtest.com', 'testtest.com'] has non-unique elements" {
		t.Fatalf("unexpected message: %q", got)
	}

	// 2 and 2.0 are the same element.
	if iss := l.Validate(ctx, []any{2, 2.0}, jsonene.ValidateOpt{}); len(iss) != 1 || iss[0].Code != jsonene.CodeUniqueness {
		t.Fatalf("numeric duplicates expected, got %v", iss)
	}
}

func TestList_Bounds(t *testing.T) {
	l := j.GenericList().MinItems(1).MaxItems(2)
	ctx := context.Background()

	if iss := l.Validate(ctx, []any{}, jsonene.ValidateOpt{}); len(iss) != 1 || iss[0].Code != jsonene.CodeLength {
		t.Fatalf("expected length issue, got %v", iss)
	}
	if iss := l.Validate(ctx, []any{1, 2, 3}, jsonene.ValidateOpt{}); len(iss) != 1 || iss[0].Code != jsonene.CodeLength {
		t.Fatalf("expected length issue, got %v", iss)
	}
	if iss := l.Validate(ctx, []any{1, "mixed"}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("generic list accepts anything, got %v", iss)
	}
}

func TestList_Contains(t *testing.T) {
	l := j.GenericList().Contains(j.Int()).MinContains(2)
	ctx := context.Background()

	if iss := l.Validate(ctx, []any{"a", 1, 2}, jsonene.ValidateOpt{}); len(iss) != 0 {
		t.Fatalf("expected ok, got %v", iss)
	}
	iss := l.Validate(ctx, []any{"a", 1}, jsonene.ValidateOpt{})
	if len(iss) != 1 || iss[0].Code != jsonene.CodeRange {
		t.Fatalf("expected min-contains issue, got %v", iss)
	}

	m := j.GenericList().Contains(j.Int()).MaxContains(1)
	if iss := m.Validate(ctx, []any{1, 2}, jsonene.ValidateOpt{}); len(iss) != 1 || iss[0].Code != jsonene.CodeRange {
		t.Fatalf("expected max-contains issue, got %v", iss)
	}
}
