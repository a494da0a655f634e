package articles

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vectorwade/newsgrab/logger"
)

// enrichSummaries visits each record's article page and replaces its summary
// with the page's first paragraph when one is found. A page that fails to
// load or has no paragraph leaves the record's container summary in place.
func (e *Extractor) enrichSummaries(ctx context.Context, records []Record) {
	for i := range records {
		if ctx.Err() != nil {
			return
		}

		doc, err := e.session.Navigate(ctx, records[i].Link)
		if err != nil {
			e.log.Debug("could not load article for summary",
				logger.String("link", records[i].Link),
				logger.Error(err))
			continue
		}

		if summary := e.firstParagraph(doc); summary != "" {
			records[i].Summary = summary
		}
	}
}

// firstParagraph tries each paragraph selector tier in order and returns the
// first line of the first non-empty match, capped at SummaryMaxLen runes.
func (e *Extractor) firstParagraph(doc *goquery.Document) string {
	for _, sel := range e.selectors.SummaryParagraphs {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text == "" {
			continue
		}

		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			text = text[:idx]
		}
		text = cleanText(text)

		if max := e.selectors.SummaryMaxLen; max > 0 {
			runes := []rune(text)
			if len(runes) > max {
				text = string(runes[:max])
			}
		}
		return text
	}
	return ""
}
