package jsonval_test

import (
	"encoding/json"
	"testing"

	"github.com/nikhil-rupanawar/jsonene/internal/jsonval"
)

func TestNormalize_FoldsGoValues(t *testing.T) {
	got, ok := jsonval.AsSlice([]string{"a", "b"})
	if !ok || len(got) != 2 || got[0] != "a" {
		t.Fatalf("slice folding failed: %v", got)
	}
	m, ok := jsonval.AsMap(map[string]int{"x": 1})
	if !ok || m["x"] != 1 {
		t.Fatalf("map folding failed: %v", m)
	}

	type flag bool
	if jsonval.Kind(flag(true)) != "boolean" {
		t.Fatalf("defined bool types fold to boolean")
	}
}

func TestEqual_NumericNormalization(t *testing.T) {
	if !jsonval.Equal(2, 2.0) {
		t.Fatalf("2 must equal 2.0")
	}
	if !jsonval.Equal(json.Number("2"), 2) {
		t.Fatalf("json.Number(2) must equal 2")
	}
	if jsonval.Equal(2, "2") {
		t.Fatalf("numbers never equal strings")
	}
	if !jsonval.Equal([]any{1, map[string]any{"a": 2}}, []any{1.0, map[string]any{"a": json.Number("2")}}) {
		t.Fatalf("deep numeric equality failed")
	}
	if jsonval.Equal(true, 1) {
		t.Fatalf("booleans are not numbers")
	}
}

func TestKind(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{nil, "null"},
		{true, "boolean"},
		{"s", "string"},
		{[]any{}, "array"},
		{map[string]any{}, "object"},
		{5, "integer"},
		{5.0, "integer"},
		{5.5, "number"},
		{json.Number("7"), "integer"},
	}
	for _, tc := range cases {
		if got := jsonval.Kind(tc.v); got != tc.want {
			t.Fatalf("Kind(%v): got %q want %q", tc.v, got, tc.want)
		}
	}
}

func TestRender(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{"x", "'x'"},
		{60, "60"},
		{2.5, "2.5"},
		{nil, "null"},
		{[]any{"a", 1}, "['a', 1]"},
		{map[string]any{"b": 2, "a": 1}, "{'a': 1, 'b': 2}"},
	}
	for _, tc := range cases {
		if got := jsonval.Render(tc.v); got != tc.want {
			t.Fatalf("Render(%v): got %q want %q", tc.v, got, tc.want)
		}
	}
}

func TestIsIntegral(t *testing.T) {
	if !jsonval.IsIntegral(5) || !jsonval.IsIntegral(5.0) || !jsonval.IsIntegral(json.Number("5")) {
		t.Fatalf("integral values misreported")
	}
	if jsonval.IsIntegral(5.5) || jsonval.IsIntegral("5") || jsonval.IsIntegral(true) {
		t.Fatalf("non-integral values misreported")
	}
}
