package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StaticSession is a Session served from an in-memory map of URL → HTML. It
// exists for tests and offline experimentation; navigation to an unknown URL
// fails the way a dead page would.
type StaticSession struct {
	pages      map[string]string
	currentURL string
	// NavigationCount tracks how many loads were attempted, including
	// failed ones.
	NavigationCount int
}

// NewStaticSession builds a session over the given URL → HTML fixture map.
func NewStaticSession(pages map[string]string) *StaticSession {
	return &StaticSession{pages: pages}
}

// Navigate returns the fixture document for the URL, or an error if no
// fixture exists.
func (s *StaticSession) Navigate(_ context.Context, url string) (*goquery.Document, error) {
	s.NavigationCount++

	html, ok := s.pages[url]
	if !ok {
		return nil, fmt.Errorf("failed to load %s: no such page", url)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	s.currentURL = url
	return doc, nil
}

// CurrentURL returns the URL of the last successfully loaded page.
func (s *StaticSession) CurrentURL() string {
	return s.currentURL
}

// Close is a no-op for static sessions.
func (s *StaticSession) Close() error {
	return nil
}
