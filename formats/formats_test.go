package formats_test

import (
	"strings"
	"testing"

	"github.com/nikhil-rupanawar/jsonene/formats"
)

func TestBuiltins(t *testing.T) {
	cases := []struct {
		format string
		value  string
		valid  bool
	}{
		{formats.Email, "test@test.com", true},
		{formats.Email, "testtest.com", false},
		{formats.Date, "1989-09-11", true},
		{formats.Date, "1989-13-01", false},
		{formats.DateTime, "2023-01-02T03:04:05Z", true},
		{formats.DateTime, "2023-01-02", false},
		{formats.Time, "03:04:05", true},
		{formats.Time, "25:00:00", false},
		{formats.Duration, "P1DT2H", true},
		{formats.Duration, "P", false},
		{formats.Duration, "P1DT", false},
		{formats.Hostname, "example.com", true},
		{formats.Hostname, "-bad-.com", false},
		{formats.IPv4, "192.168.0.1", true},
		{formats.IPv4, "::1", false},
		{formats.IPv6, "::1", true},
		{formats.IPv6, "192.168.0.1", false},
		{formats.URI, "https://example.com/x", true},
		{formats.URI, "not a uri", false},
		{formats.URIReference, "/relative/path", true},
		{formats.UUID, "123e4567-e89b-12d3-a456-426614174000", true},
		{formats.UUID, "123e4567", false},
		{formats.JSONPointer, "/a/b~0c", true},
		{formats.JSONPointer, "a/b", false},
		{formats.JSONPointer, "/bad~2", false},
		{formats.Regex, "^[a-z]+$", true},
		{formats.Regex, "([", false},
	}
	for _, tc := range cases {
		valid, known := formats.Check(tc.format, tc.value)
		if !known {
			t.Fatalf("%s: expected a registered format", tc.format)
		}
		if valid != tc.valid {
			t.Fatalf("%s(%q): expected valid=%v", tc.format, tc.value, tc.valid)
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	valid, known := formats.Check("no-such", "anything")
	if known || !valid {
		t.Fatalf("unknown formats are vacuously valid, got valid=%v known=%v", valid, known)
	}
	if tok := formats.Token("no-such"); tok != "no-such" {
		t.Fatalf("token defaults to the name, got %q", tok)
	}
}

func TestRegisterCustom(t *testing.T) {
	formats.Register("upper", func(s string) bool { return s == strings.ToUpper(s) })

	valid, known := formats.Check("upper", "ABC")
	if !known || !valid {
		t.Fatalf("custom format lookup failed")
	}
	if valid, _ := formats.Check("upper", "abc"); valid {
		t.Fatalf("custom format must reject lowercase")
	}
}
