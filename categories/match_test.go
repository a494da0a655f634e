package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMatchAnchor_TokenInsideLinkText verifies a short token matches a longer
// anchor label.
func TestMatchAnchor_TokenInsideLinkText(t *testing.T) {
	anchors := []Anchor{
		{Text: "Home", Href: "https://example.com/"},
		{Text: "Brasil | Notícias", Href: "https://example.com/brasil"},
	}

	anchor, ok := MatchAnchor("Brasil", anchors)

	require.True(t, ok)
	assert.Equal(t, "https://example.com/brasil", anchor.Href)
}

// TestMatchAnchor_LinkTextInsideToken verifies containment works in the other
// direction too.
func TestMatchAnchor_LinkTextInsideToken(t *testing.T) {
	anchors := []Anchor{
		{Text: "Esportes", Href: "https://example.com/esportes"},
	}

	anchor, ok := MatchAnchor("Esportes e mais", anchors)

	require.True(t, ok)
	assert.Equal(t, "https://example.com/esportes", anchor.Href)
}

// TestMatchAnchor_CaseInsensitive verifies matching ignores case.
func TestMatchAnchor_CaseInsensitive(t *testing.T) {
	anchors := []Anchor{
		{Text: "MUNDO", Href: "https://example.com/mundo"},
	}

	_, ok := MatchAnchor("mundo", anchors)
	assert.True(t, ok)
}

// TestMatchAnchor_FirstMatchWins verifies the first matching anchor is
// returned, not a later or better one.
func TestMatchAnchor_FirstMatchWins(t *testing.T) {
	anchors := []Anchor{
		{Text: "Saúde em dia", Href: "https://example.com/first"},
		{Text: "Saúde", Href: "https://example.com/exact"},
	}

	anchor, ok := MatchAnchor("Saúde", anchors)

	require.True(t, ok)
	assert.Equal(t, "https://example.com/first", anchor.Href)
}

// TestMatchAnchor_NoMatch verifies an unmatched token reports no match.
func TestMatchAnchor_NoMatch(t *testing.T) {
	anchors := []Anchor{
		{Text: "Brasil", Href: "https://example.com/brasil"},
	}

	_, ok := MatchAnchor("NonexistentCategoryXYZ", anchors)
	assert.False(t, ok)
}

// TestMatchAnchor_SkipsEmptyTextAndHref verifies anchors with no visible text
// or no destination never match, even though an empty string is a substring
// of everything.
func TestMatchAnchor_SkipsEmptyTextAndHref(t *testing.T) {
	anchors := []Anchor{
		{Text: "", Href: "https://example.com/icon"},
		{Text: "Ciência", Href: ""},
		{Text: "Ciência", Href: "https://example.com/ciencia"},
	}

	anchor, ok := MatchAnchor("Ciência", anchors)

	require.True(t, ok)
	assert.Equal(t, "https://example.com/ciencia", anchor.Href)
}

// TestMatchAnchor_EmptyToken verifies a blank token matches nothing.
func TestMatchAnchor_EmptyToken(t *testing.T) {
	anchors := []Anchor{
		{Text: "Brasil", Href: "https://example.com/brasil"},
	}

	_, ok := MatchAnchor("   ", anchors)
	assert.False(t, ok)
}
