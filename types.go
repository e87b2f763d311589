package jsonene

// ValidateOpt bundles validation options.
type ValidateOpt struct {
	// CheckFormats enables Format field evaluation. Format checks can be
	// environment-dependent, so they are opt-in; leaving this false never
	// suppresses any other check.
	CheckFormats bool
}

// MatchStrategy selects how AnyOf reports failure when no candidate matches.
type MatchStrategy int

const (
	FewestErrors  MatchStrategy = iota // Report the candidate with the fewest errors (ties: declaration order).
	FirstDeclared                      // Always report the first declared candidate.
)
