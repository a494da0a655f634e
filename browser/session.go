// Package browser provides the page-fetch capability the resolver and
// extractor are built against: a navigable session that loads a URL and hands
// back a DOM snapshot. The real implementation drives a browser through
// playwright; tests use a static in-memory session.
package browser

import (
	"context"
	"errors"
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Session is a single navigable browser session. It is not safe for
// concurrent navigation; callers load one page at a time.
type Session interface {
	// Navigate loads the given URL and returns a snapshot of the rendered
	// document. The returned document is detached from the live page.
	Navigate(ctx context.Context, url string) (*goquery.Document, error)
	// CurrentURL returns the URL of the last successfully loaded page.
	CurrentURL() string
	// Close releases the session and any underlying browser resources.
	Close() error
}

// ErrSessionClosed is returned when navigating a closed session.
var ErrSessionClosed = errors.New("browser session closed")

// SetupError indicates the browser or its driver could not be started. It is
// the only error class that aborts a run.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("browser setup failed: %v", e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }
