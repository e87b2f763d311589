// Package jsonval provides helpers over raw JSON-compatible value trees:
// canonicalization, numeric-aware equality, kind naming and literal
// rendering for messages.
package jsonval

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Normalize canonicalizes a value tree: every map becomes map[string]any,
// every slice becomes []any, and scalars pass through. YAML decoders and
// user-built Go values (e.g. []string, map[string]int) are folded into the
// same shape the JSON decoder produces.
func Normalize(v any) any {
	switch t := v.(type) {
	case nil, bool, string, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, json.Number:
		return v
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Normalize(e)
		}
		return out
	case []any:
		out := make([]any, 0, len(t))
		for _, e := range t {
			out = append(out, Normalize(e))
		}
		return out
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out = append(out, Normalize(rv.Index(i).Interface()))
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			out[fmt.Sprint(k.Interface())] = Normalize(rv.MapIndex(k).Interface())
		}
		return out
	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return nil
		}
		return Normalize(rv.Elem().Interface())
	case reflect.Bool:
		return rv.Bool()
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return v
}

// AsMap returns the value as a canonical object.
func AsMap(v any) (map[string]any, bool) {
	m, ok := Normalize(v).(map[string]any)
	return m, ok
}

// AsSlice returns the value as a canonical sequence.
func AsSlice(v any) ([]any, bool) {
	s, ok := Normalize(v).([]any)
	return s, ok
}

// AsNumber reports whether v is numeric and returns its float64 value.
// bool is never a number.
func AsNumber(v any) (float64, bool) {
	switch t := Normalize(v).(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int8:
		return float64(t), true
	case int16:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint:
		return float64(t), true
	case uint8:
		return float64(t), true
	case uint16:
		return float64(t), true
	case uint32:
		return float64(t), true
	case uint64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// IsIntegral reports whether v is a numeric value with no fractional part.
func IsIntegral(v any) bool {
	if n, ok := v.(json.Number); ok {
		if _, err := n.Int64(); err == nil {
			return true
		}
	}
	f, ok := AsNumber(v)
	if !ok {
		return false
	}
	return f == math.Trunc(f) && !math.IsInf(f, 0)
}

// Equal compares two value trees by value: numerics compare numerically
// (2 == 2.0 == json.Number("2")), objects keywise, sequences elementwise.
func Equal(a, b any) bool {
	an, aok := AsNumber(a)
	bn, bok := AsNumber(b)
	if aok || bok {
		return aok && bok && an == bn
	}
	switch at := Normalize(a).(type) {
	case nil:
		return Normalize(b) == nil
	case bool:
		bt, ok := Normalize(b).(bool)
		return ok && at == bt
	case string:
		bt, ok := Normalize(b).(string)
		return ok && at == bt
	case []any:
		bt, ok := Normalize(b).([]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for i := range at {
			if !Equal(at[i], bt[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bt, ok := Normalize(b).(map[string]any)
		if !ok || len(at) != len(bt) {
			return false
		}
		for k, av := range at {
			bv, ok := bt[k]
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	}
	return false
}

// Kind names the JSON kind of v: null, boolean, number, integer, string,
// array or object. Unknown Go values are reported by their Go type.
func Kind(v any) string {
	switch Normalize(v).(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	if IsIntegral(v) {
		return "integer"
	}
	if _, ok := AsNumber(v); ok {
		return "number"
	}
	return fmt.Sprintf("%T", v)
}

// Render formats a value as a compact literal for error messages: strings in
// single quotes, sequences bracketed, object keys sorted for determinism.
func Render(v any) string {
	b := &strings.Builder{}
	render(b, Normalize(v))
	return b.String()
}

func render(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("null")
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case string:
		b.WriteByte('\'')
		b.WriteString(t)
		b.WriteByte('\'')
	case json.Number:
		b.WriteString(t.String())
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			render(b, e)
		}
		b.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteByte('\'')
			b.WriteString(k)
			b.WriteString("': ")
			render(b, t[k])
		}
		b.WriteByte('}')
	default:
		if f, ok := AsNumber(v); ok {
			b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
			return
		}
		fmt.Fprintf(b, "%v", v)
	}
}
