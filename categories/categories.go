// Package categories resolves user-supplied category tokens (display names or
// direct URLs) to fetchable category page URLs.
package categories

import (
	"fmt"
	"strings"
)

// ResolvedCategory is a category token converted to a concrete URL. Name is
// empty when the token was already a URL.
type ResolvedCategory struct {
	Name string
	URL  string
}

// Label returns the human-readable identifier for the category: its display
// name when known, otherwise its URL.
func (c ResolvedCategory) Label() string {
	if c.Name != "" {
		return c.Name
	}
	return c.URL
}

// IsURL reports whether a token should be treated as a direct URL rather
// than a display name to look up on the homepage.
func IsURL(token string) bool {
	return strings.HasPrefix(strings.ToLower(token), "http")
}

// ResolutionError records a name token that matched no homepage anchor. It
// never aborts a run; callers log it and move on.
type ResolutionError struct {
	Token string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no homepage link matches category %q", e.Token)
}
