package articles

import (
	"context"
	"fmt"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vectorwade/newsgrab/browser"
	"github.com/vectorwade/newsgrab/categories"
	"github.com/vectorwade/newsgrab/scraper"
)

const categoryURL = "https://news.example.com/cat/brasil"

// Seven valid containers with two malformed ones (no link, no title)
// interleaved, plus one duplicate link.
const categoryHTML = `
<html><body>
	<article><a href="/a1">Primeira notícia do dia</a><p>Resumo um</p></article>
	<article><span>sem link nenhum</span></article>
	<article><a href="https://news.example.com/a2">Segunda notícia</a></article>
	<article><a href="/a3"><img src="x.png"></a></article>
	<article><a href="/a4">Quarta notícia</a><p>Resumo quatro</p></article>
	<article><a href="/a1">Primeira notícia repetida</a></article>
	<article><a href="/a5">Quinta notícia</a></article>
	<article><a href="/a6">Sexta notícia</a></article>
	<article><a href="/a7">Sétima notícia</a></article>
	<article><a href="/a8">Oitava notícia</a></article>
</body></html>`

func testCategory() categories.ResolvedCategory {
	return categories.ResolvedCategory{Name: "Brasil", URL: categoryURL}
}

func newTestExtractor(pages map[string]string) (*Extractor, *browser.StaticSession) {
	session := browser.NewStaticSession(pages)
	return NewExtractor(session, scraper.DefaultSelectors(), nil), session
}

// TestExtract_LimitIsHardCeiling verifies the 7-valid/2-malformed page at
// limit 5: exactly five records, malformed containers silently skipped, page
// order preserved.
func TestExtract_LimitIsHardCeiling(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{categoryURL: categoryHTML})

	records, err := extractor.Extract(context.Background(), testCategory(), 5)

	require.NoError(t, err)
	require.Len(t, records, 5)

	assert.Equal(t, "Primeira notícia do dia", records[0].Title)
	assert.Equal(t, "https://news.example.com/a1", records[0].Link,
		"relative links resolve against the category page")
	assert.Equal(t, "Resumo um", records[0].Summary)

	assert.Equal(t, "Segunda notícia", records[1].Title)
	assert.Equal(t, "", records[1].Summary, "missing summary becomes empty string")

	// The no-link and no-title containers and the duplicate /a1 were all
	// skipped, so page order continues with a4 and a5.
	assert.Equal(t, "https://news.example.com/a4", records[2].Link)
	assert.Equal(t, "https://news.example.com/a5", records[3].Link)
	assert.Equal(t, "https://news.example.com/a6", records[4].Link)
}

// TestExtract_NoDuplicateLinks verifies per-category dedup with first
// occurrence winning.
func TestExtract_NoDuplicateLinks(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{categoryURL: categoryHTML})

	records, err := extractor.Extract(context.Background(), testCategory(), 50)

	require.NoError(t, err)
	seen := make(map[string]bool)
	for _, record := range records {
		assert.False(t, seen[record.Link], "duplicate link %s", record.Link)
		seen[record.Link] = true
	}
	assert.Equal(t, "Primeira notícia do dia", records[0].Title,
		"first occurrence of a duplicated link wins")
}

// TestExtract_ZeroLimitSkipsNavigation verifies limit 0 returns nothing and
// never loads the page.
func TestExtract_ZeroLimitSkipsNavigation(t *testing.T) {
	extractor, session := newTestExtractor(map[string]string{categoryURL: categoryHTML})

	records, err := extractor.Extract(context.Background(), testCategory(), 0)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, session.NavigationCount)
}

// TestExtract_PageLoadFailure verifies an unloadable page yields a typed
// extraction error scoped to the category.
func TestExtract_PageLoadFailure(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{})

	records, err := extractor.Extract(context.Background(), testCategory(), 5)

	assert.Nil(t, records)
	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Equal(t, "Brasil", extractionErr.Category)
}

// TestExtract_EmptyPageIsNotAnError verifies a page with no containers
// yields zero records without failing.
func TestExtract_EmptyPageIsNotAnError(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{
		categoryURL: `<html><body><div>nada aqui</div></body></html>`,
	})

	records, err := extractor.Extract(context.Background(), testCategory(), 5)

	require.NoError(t, err)
	assert.Empty(t, records)
}

// TestExtract_TitleFromHeadingInsideContainer verifies the heading fallback
// when the link itself has no text.
func TestExtract_TitleFromHeadingInsideContainer(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{
		categoryURL: `
			<html><body>
			<article>
				<a href="/a1"><img src="thumb.png"></a>
				<h2>Título vindo do heading</h2>
			</article>
			</body></html>`,
	})

	records, err := extractor.Extract(context.Background(), testCategory(), 5)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Título vindo do heading", records[0].Title)
}

// TestExtract_HeadingLinkFallback verifies the second tier: anchors wrapping
// headings inside main, used when no article containers exist.
func TestExtract_HeadingLinkFallback(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{
		categoryURL: `
			<html><body><main>
			<a href="/h1"><h2>Manchete principal da página</h2></a>
			<a href="/h2"><h3>Outra manchete</h3></a>
			</main></body></html>`,
	})

	records, err := extractor.Extract(context.Background(), testCategory(), 5)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Manchete principal da página", records[0].Title)
	assert.Equal(t, "https://news.example.com/h1", records[0].Link)
}

// TestExtract_LongTextAnchorFallback verifies the last tier: bare anchors
// with reasonably long text, short ones ignored.
func TestExtract_LongTextAnchorFallback(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{
		categoryURL: `
			<html><body>
			<a href="/menu">Menu</a>
			<a href="/long">Uma chamada de matéria suficientemente longa</a>
			</body></html>`,
	})

	records, err := extractor.Extract(context.Background(), testCategory(), 5)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://news.example.com/long", records[0].Link)
}

// TestExtract_Idempotent verifies re-running over an unchanged page yields
// the same ordered sequence.
func TestExtract_Idempotent(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{categoryURL: categoryHTML})

	first, err := extractor.Extract(context.Background(), testCategory(), 5)
	require.NoError(t, err)
	second, err := extractor.Extract(context.Background(), testCategory(), 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestExtract_NonHTTPLinksRejected verifies javascript: and mailto: style
// hrefs are treated as malformed.
func TestExtract_NonHTTPLinksRejected(t *testing.T) {
	extractor, _ := newTestExtractor(map[string]string{
		categoryURL: `
			<html><body>
			<article><a href="javascript:void(0)">Falso link de matéria</a></article>
			<article><a href="/real">Matéria real</a></article>
			</body></html>`,
	})

	records, err := extractor.Extract(context.Background(), testCategory(), 5)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "https://news.example.com/real", records[0].Link)
}

type fakeFeedFallback struct {
	records []Record
	calls   int
}

func (f *fakeFeedFallback) Extract(_ context.Context, _ *goquery.Document, _ string, limit int) ([]Record, error) {
	f.calls++
	if len(f.records) > limit {
		return f.records[:limit], nil
	}
	return f.records, nil
}

// TestExtract_FeedFallbackOnlyWhenDOMEmpty verifies the feed fallback is
// consulted for an empty page and left alone otherwise.
func TestExtract_FeedFallbackOnlyWhenDOMEmpty(t *testing.T) {
	fallback := &fakeFeedFallback{records: []Record{
		{Title: "Do feed", Link: "https://news.example.com/feed-item"},
	}}

	extractor, _ := newTestExtractor(map[string]string{
		categoryURL: `<html><body><div>nada</div></body></html>`,
	})
	extractor.Feeds = fallback

	records, err := extractor.Extract(context.Background(), testCategory(), 5)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Do feed", records[0].Title)
	assert.Equal(t, 1, fallback.calls)

	// A page with DOM articles never consults the fallback.
	extractor2, _ := newTestExtractor(map[string]string{categoryURL: categoryHTML})
	extractor2.Feeds = fallback

	_, err = extractor2.Extract(context.Background(), testCategory(), 5)
	require.NoError(t, err)
	assert.Equal(t, 1, fallback.calls)
}

// TestExtract_FollowLinksFetchesFirstParagraph verifies summary enrichment
// visits article pages and keeps the container summary when the visit fails.
func TestExtract_FollowLinksFetchesFirstParagraph(t *testing.T) {
	pages := map[string]string{
		categoryURL: `
			<html><body>
			<article><a href="/a1">Notícia com página</a><p>resumo do container</p></article>
			<article><a href="/a2">Notícia sem página</a><p>resumo que fica</p></article>
			</body></html>`,
		"https://news.example.com/a1": fmt.Sprintf(
			`<html><body><article><p>%s</p></article></body></html>`,
			"Primeiro parágrafo da matéria completa."),
	}

	extractor, _ := newTestExtractor(pages)
	extractor.FollowLinks = true

	records, err := extractor.Extract(context.Background(), testCategory(), 5)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Primeiro parágrafo da matéria completa.", records[0].Summary)
	assert.Equal(t, "resumo que fica", records[1].Summary)
}
