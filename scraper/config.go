// Package scraper holds the selector configuration that drives article
// extraction. News pages vary wildly, so the selectors are data rather than
// constants baked into the extractor.
package scraper

// Selectors defines where article containers and summaries are found on a
// page.
type Selectors struct {
	// Container is the primary article container selector.
	Container string `yaml:"container"`
	// HeadingLinks is the fallback selector for anchors wrapping headings,
	// scoped to the main content area.
	HeadingLinks string `yaml:"heading_links"`
	// MinLinkTextLen is the minimum visible text length for the
	// last-resort bare-anchor fallback.
	MinLinkTextLen int `yaml:"min_link_text_len"`
	// SummaryParagraphs are tried in order when visiting an article page
	// for its first paragraph.
	SummaryParagraphs []string `yaml:"summary_paragraphs"`
	// SummaryMaxLen caps a fetched summary, in runes.
	SummaryMaxLen int `yaml:"summary_max_len"`
}

// DefaultSelectors returns the selector set that matches common news page
// markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Container:      "article",
		HeadingLinks:   "main a:has(h1), main a:has(h2), main a:has(h3)",
		MinLinkTextLen: 20,
		SummaryParagraphs: []string{
			"article p",
			".entry-content p",
			".post-content p",
			"main p",
			"p",
		},
		SummaryMaxLen: 1000,
	}
}
