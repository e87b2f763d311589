// Package formats is the process-wide registry of named string-format
// predicates and their JSON Schema format tokens. Register new formats
// before any schema referencing them is validated; the registry is not
// meant for concurrent mutation during active validation.
package formats

import (
	"net"
	"net/mail"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// Built-in format names. The name doubles as the JSON Schema token unless a
// format is registered with an explicit token.
const (
	Email        = "email"
	IDNEmail     = "idn-email"
	Date         = "date"
	DateTime     = "date-time"
	Time         = "time"
	Duration     = "duration"
	Hostname     = "hostname"
	IPv4         = "ipv4"
	IPv6         = "ipv6"
	URI          = "uri"
	URIReference = "uri-reference"
	IRI          = "iri"
	IRIReference = "iri-reference"
	UUID         = "uuid"
	JSONPointer  = "json-pointer"
	URITemplate  = "uri-template"
	Regex        = "regex"
)

// Checker reports whether a string satisfies the format.
type Checker func(string) bool

type entry struct {
	check Checker
	token string
}

var registry = map[string]entry{}

// Register adds or replaces a format under the given name, exported with the
// same token.
func Register(name string, check Checker) { RegisterWithToken(name, name, check) }

// RegisterWithToken adds or replaces a format whose JSON Schema token
// differs from its registry name.
func RegisterWithToken(name, token string, check Checker) {
	registry[name] = entry{check: check, token: token}
}

// Lookup returns the checker and schema token for a name.
func Lookup(name string) (Checker, string, bool) {
	e, ok := registry[name]
	return e.check, e.token, ok
}

// Token returns the JSON Schema token for a name, defaulting to the name
// itself when the format is unknown.
func Token(name string) string {
	if _, tok, ok := Lookup(name); ok {
		return tok
	}
	return name
}

// Check evaluates the named format. known is false for unregistered names,
// which callers treat as vacuously valid.
func Check(name, value string) (valid, known bool) {
	e, ok := registry[name]
	if !ok {
		return true, false
	}
	return e.check(value), true
}

var (
	hostnameRE    = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]{0,61}[A-Za-z0-9])?)*$`)
	uuidRE        = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
	uriTemplateRE = regexp.MustCompile(`^([^{}]|\{[^{}]+\})*$`)
	durationRE    = regexp.MustCompile(`^P(\d+Y)?(\d+M)?(\d+W)?(\d+D)?(T(\d+H)?(\d+M)?(\d+(\.\d+)?S)?)?$`)
)

func checkEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	return err == nil && a.Address == s
}

func checkDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func checkDateTime(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
}

func checkTime(s string) bool {
	if _, err := time.Parse("15:04:05Z07:00", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}

func checkDuration(s string) bool {
	if s == "P" || strings.HasSuffix(s, "T") {
		return false
	}
	return durationRE.MatchString(s)
}

func checkHostname(s string) bool {
	return len(s) <= 253 && hostnameRE.MatchString(s)
}

func checkIPv4(s string) bool {
	ip := net.ParseIP(s)
	return ip != nil && ip.To4() != nil && !strings.Contains(s, ":")
}

func checkIPv6(s string) bool {
	return net.ParseIP(s) != nil && strings.Contains(s, ":")
}

func checkURI(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs()
}

func checkURIReference(s string) bool {
	_, err := url.Parse(s)
	return err == nil
}

func checkUUID(s string) bool { return uuidRE.MatchString(s) }

func checkJSONPointer(s string) bool {
	if s == "" {
		return true
	}
	if !strings.HasPrefix(s, "/") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] != '~' {
			continue
		}
		if i+1 >= len(s) || (s[i+1] != '0' && s[i+1] != '1') {
			return false
		}
	}
	return true
}

func checkURITemplate(s string) bool { return uriTemplateRE.MatchString(s) }

func checkRegex(s string) bool {
	_, err := regexp.Compile(s)
	return err == nil
}

func init() {
	Register(Email, checkEmail)
	Register(IDNEmail, checkEmail)
	Register(Date, checkDate)
	Register(DateTime, checkDateTime)
	Register(Time, checkTime)
	Register(Duration, checkDuration)
	Register(Hostname, checkHostname)
	Register(IPv4, checkIPv4)
	Register(IPv6, checkIPv6)
	Register(URI, checkURI)
	Register(URIReference, checkURIReference)
	Register(IRI, checkURI)
	Register(IRIReference, checkURIReference)
	Register(UUID, checkUUID)
	Register(JSONPointer, checkJSONPointer)
	Register(URITemplate, checkURITemplate)
	Register(Regex, checkRegex)
}
