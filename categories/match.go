package categories

import "strings"

// Anchor is one homepage link: its visible text and destination.
type Anchor struct {
	Text string
	Href string
}

// MatchAnchor finds the first anchor whose visible text matches the category
// name. Matching is case-insensitive substring containment in either
// direction, so "Brasil" matches "Brasil | Notícias" and vice versa. Anchors
// with empty text or empty href never match. The first match wins.
func MatchAnchor(name string, anchors []Anchor) (Anchor, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Anchor{}, false
	}

	for _, a := range anchors {
		text := strings.ToLower(strings.TrimSpace(a.Text))
		if text == "" || a.Href == "" {
			continue
		}
		if strings.Contains(text, needle) || strings.Contains(needle, text) {
			return a, true
		}
	}

	return Anchor{}, false
}
