// Package articles extracts bounded, deduplicated article records from
// category pages.
package articles

import "fmt"

// Record is one extracted article. Link doubles as the deduplication key
// within a single category.
type Record struct {
	Title   string
	Summary string
	Link    string
}

// ExtractionError indicates a category page could not be loaded at all. The
// category yields zero records and the run continues.
type ExtractionError struct {
	Category string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract category %s: %v", e.Category, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
