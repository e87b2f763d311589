package jsonene

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeTypeMismatch   = "type_mismatch"
	CodeRequired       = "required"
	CodeRange          = "range"
	CodeLength         = "length"
	CodePattern        = "pattern"
	CodeFormat         = "format"
	CodeDependency     = "dependency"
	CodeUniqueness     = "uniqueness"
	CodeConstMismatch  = "const_mismatch"
	CodeEnumMembership = "enum_membership"
	CodeArity          = "arity"
	CodeUnknownKey     = "unknown_key"
	CodeNoMatch        = "no_match"
	CodeAmbiguousMatch = "ambiguous_match"
	CodeNotAllowed     = "not_allowed"
	CodeParseError     = "parse_error"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer from the validation root (for example: /emails/2).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, candidate names, etc.
	// Params carries structured parameters (e.g., {"min":1, "got":42})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. type_mismatch at /address/0
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Messages flattens the issues into their message strings, in order.
func (iss Issues) Messages() []string {
	out := make([]string, 0, len(iss))
	for _, it := range iss {
		out = append(out, it.Message)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Rebase prefixes every issue path with base so child issues surface under
// their parent's location. base must itself be a pointer fragment ("/name",
// "/2", ...).
func Rebase(base string, iss Issues) Issues {
	if len(iss) == 0 {
		return nil
	}
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		p := it.Path
		switch {
		case p == "" || p == "/":
			p = base
		case strings.HasPrefix(p, "/"):
			p = base + p
		default:
			p = base + "/" + p
		}
		it.Path = p
		out = append(out, it)
	}
	return out
}

// EscapeToken escapes a single JSON Pointer reference token per RFC 6901.
func EscapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}
