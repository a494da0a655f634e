package categories

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/vectorwade/newsgrab/browser"
	"github.com/vectorwade/newsgrab/logger"
)

// Resolver turns category tokens into category URLs, scanning the homepage
// at most once per run.
type Resolver struct {
	session  browser.Session
	homepage string
	log      logger.Logger

	anchors []Anchor
	fetched bool
}

// NewResolver creates a resolver over the given session and homepage URL.
func NewResolver(session browser.Session, homepage string, log logger.Logger) *Resolver {
	if log == nil {
		log = logger.Nop()
	}
	return &Resolver{
		session:  session,
		homepage: homepage,
		log:      log,
	}
}

// Resolve maps tokens to resolved categories in input order. URL-like tokens
// are wrapped directly with no verification and no homepage fetch. Name-like
// tokens are matched against homepage anchor text; an unmatched name is
// returned in skipped rather than failing the run. A non-nil error means the
// homepage itself could not be loaded while at least one name token needed
// it, which is fatal.
func (r *Resolver) Resolve(ctx context.Context, tokens []string) (resolved []ResolvedCategory, skipped []*ResolutionError, err error) {
	for _, token := range tokens {
		if IsURL(token) {
			resolved = append(resolved, ResolvedCategory{URL: token})
			continue
		}

		anchors, err := r.homepageAnchors(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("homepage unreachable: %w", err)
		}

		anchor, ok := MatchAnchor(token, anchors)
		if !ok {
			skip := &ResolutionError{Token: token}
			r.log.Warn("category not found on homepage, skipping",
				logger.String("category", token))
			skipped = append(skipped, skip)
			continue
		}

		resolved = append(resolved, ResolvedCategory{Name: token, URL: anchor.Href})
	}

	return resolved, skipped, nil
}

// homepageAnchors loads the homepage on first use and caches its anchor
// list for the rest of the run.
func (r *Resolver) homepageAnchors(ctx context.Context) ([]Anchor, error) {
	if r.fetched {
		return r.anchors, nil
	}

	doc, err := r.session.Navigate(ctx, r.homepage)
	if err != nil {
		return nil, err
	}

	r.anchors = CollectAnchors(doc, r.homepage)
	r.fetched = true
	return r.anchors, nil
}

// CollectAnchors gathers every anchor on the page in document order,
// resolving relative hrefs against the page URL.
func CollectAnchors(doc *goquery.Document, pageURL string) []Anchor {
	base, baseErr := url.Parse(pageURL)

	var anchors []Anchor
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}

		if baseErr == nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}

		anchors = append(anchors, Anchor{
			Text: strings.TrimSpace(s.Text()),
			Href: href,
		})
	})

	return anchors
}
