// Package feeds provides the RSS/Atom fallback used when a category page
// yields no articles through the DOM scan. Many news category pages
// advertise an alternate feed; its items carry the same title/summary/link
// shape the extractor produces.
package feeds

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/vectorwade/newsgrab/articles"
)

// Parser reads alternate feeds for category pages. The gofeed library
// detects and handles both RSS and Atom formats.
type Parser struct {
	fp *gofeed.Parser
}

// NewParser creates a feed parser.
func NewParser() *Parser {
	return &Parser{fp: gofeed.NewParser()}
}

// Extract finds the page's advertised feed and maps up to limit of its items
// to records, deduplicated by link in feed order. A page that advertises no
// feed returns an empty result, not an error.
func (p *Parser) Extract(ctx context.Context, doc *goquery.Document, pageURL string, limit int) ([]articles.Record, error) {
	if limit <= 0 {
		return nil, nil
	}

	feedURL, ok := DiscoverFeedURL(doc, pageURL)
	if !ok {
		return nil, nil
	}

	feed, err := p.fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", feedURL, err)
	}

	return ItemsToRecords(feed.Items, limit), nil
}

// DiscoverFeedURL returns the page's first RSS or Atom alternate link,
// resolved against the page URL.
func DiscoverFeedURL(doc *goquery.Document, pageURL string) (string, bool) {
	var feedURL string

	doc.Find(`link[rel="alternate"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		linkType, _ := s.Attr("type")
		switch strings.ToLower(strings.TrimSpace(linkType)) {
		case "application/rss+xml", "application/atom+xml":
		default:
			return true
		}

		href, ok := s.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		feedURL = resolveAgainst(strings.TrimSpace(href), pageURL)
		return false
	})

	return feedURL, feedURL != ""
}

// ItemsToRecords maps feed items to article records: title and link are
// required, the item description becomes the summary. Duplicate links are
// dropped, first occurrence wins, never more than limit records.
func ItemsToRecords(items []*gofeed.Item, limit int) []articles.Record {
	seen := make(map[string]struct{})

	var records []articles.Record
	for _, item := range items {
		if len(records) >= limit {
			break
		}
		if item == nil {
			continue
		}

		title := strings.Join(strings.Fields(item.Title), " ")
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}
		if _, dup := seen[link]; dup {
			continue
		}
		seen[link] = struct{}{}

		records = append(records, articles.Record{
			Title:   title,
			Summary: strings.TrimSpace(item.Description),
			Link:    link,
		})
	}

	return records
}

func resolveAgainst(href, pageURL string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		return href
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return base.ResolveReference(ref).String()
}
