package articles

import (
	"context"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/vectorwade/newsgrab/browser"
	"github.com/vectorwade/newsgrab/categories"
	"github.com/vectorwade/newsgrab/logger"
	"github.com/vectorwade/newsgrab/scraper"
)

// FeedFallback discovers and reads an alternate feed for a category page. It
// is consulted only when the DOM scan produced nothing.
type FeedFallback interface {
	Extract(ctx context.Context, doc *goquery.Document, pageURL string, limit int) ([]Record, error)
}

// Extractor pulls article records out of category pages via a browser
// session.
type Extractor struct {
	session   browser.Session
	selectors scraper.Selectors
	log       logger.Logger

	// FollowLinks visits each accepted article to fetch a first-paragraph
	// summary from the article page itself.
	FollowLinks bool
	// Feeds, when non-nil, is tried after a DOM scan that found nothing.
	Feeds FeedFallback
}

// NewExtractor creates an extractor over the given session and selectors.
func NewExtractor(session browser.Session, selectors scraper.Selectors, log logger.Logger) *Extractor {
	if log == nil {
		log = logger.Nop()
	}
	return &Extractor{
		session:   session,
		selectors: selectors,
		log:       log,
	}
}

// candidate is a container that made it through the scan, before link
// validation and deduplication.
type candidate struct {
	title   string
	href    string
	summary string
}

// Extract returns up to limit records from the category page, deduplicated
// by link in page order. A limit of zero or less returns nil without loading
// the page. A page that loads but contains no usable containers yields an
// empty result, not an error.
func (e *Extractor) Extract(ctx context.Context, category categories.ResolvedCategory, limit int) ([]Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	doc, err := e.session.Navigate(ctx, category.URL)
	if err != nil {
		return nil, &ExtractionError{Category: category.Label(), Err: err}
	}

	records := e.accept(category.URL, e.candidates(doc), limit)

	if len(records) == 0 && e.Feeds != nil {
		fromFeed, err := e.Feeds.Extract(ctx, doc, category.URL, limit)
		if err != nil {
			e.log.Warn("feed fallback failed",
				logger.String("category", category.Label()),
				logger.Error(err))
		} else {
			records = fromFeed
		}
	}

	if e.FollowLinks {
		e.enrichSummaries(ctx, records)
	}

	return records, nil
}

// candidates scans container tiers in document order: article containers
// first, then heading links in the main content, then any anchor with
// reasonably long text.
func (e *Extractor) candidates(doc *goquery.Document) []candidate {
	var out []candidate

	doc.Find(e.selectors.Container).Each(func(_ int, art *goquery.Selection) {
		link := art.Find("a[href]").First()
		if link.Length() == 0 {
			return
		}
		href, _ := link.Attr("href")

		title := cleanText(link.Text())
		if title == "" {
			title = cleanText(art.Find("h1, h2, h3").First().Text())
		}

		out = append(out, candidate{
			title:   title,
			href:    href,
			summary: cleanText(art.Find("p").First().Text()),
		})
	})
	if len(out) > 0 {
		return out
	}

	doc.Find(e.selectors.HeadingLinks).Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		out = append(out, candidate{
			title: cleanText(link.Text()),
			href:  href,
		})
	})
	if len(out) > 0 {
		return out
	}

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		text := cleanText(link.Text())
		if utf8.RuneCountInString(text) <= e.selectors.MinLinkTextLen {
			return
		}
		href, _ := link.Attr("href")
		out = append(out, candidate{title: text, href: href})
	})

	return out
}

// accept validates candidates in order: title and a resolvable absolute link
// are required, duplicate links are dropped (first occurrence wins), and the
// result never exceeds limit. Malformed candidates are expected
// page-structure variance and skipped without logging.
func (e *Extractor) accept(pageURL string, cands []candidate, limit int) []Record {
	seen := make(map[string]struct{})

	var records []Record
	for _, c := range cands {
		if len(records) >= limit {
			break
		}
		if c.title == "" {
			continue
		}

		link, ok := absoluteLink(c.href, pageURL)
		if !ok {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}

		records = append(records, Record{
			Title:   c.title,
			Summary: c.summary,
			Link:    link,
		})
	}

	return records
}

// absoluteLink resolves href against the category page URL and accepts only
// http(s) results with a host.
func absoluteLink(href, pageURL string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", false
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	if !ref.IsAbs() {
		base, err := url.Parse(pageURL)
		if err != nil {
			return "", false
		}
		ref = base.ResolveReference(ref)
	}

	if ref.Scheme != "http" && ref.Scheme != "https" {
		return "", false
	}
	if ref.Host == "" {
		return "", false
	}

	return ref.String(), true
}

// cleanText collapses all runs of whitespace to single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
