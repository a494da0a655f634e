package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
)

// Config holds the settings for launching a real browser session.
type Config struct {
	// Browser is "chrome" or "firefox".
	Browser string
	// Headless runs the browser without a visible window.
	Headless bool
	// NavTimeout bounds each page load. Zero means DefaultNavTimeout.
	NavTimeout time.Duration
}

// DefaultNavTimeout bounds a single page load.
const DefaultNavTimeout = 30 * time.Second

// PlaywrightSession is a Session backed by a playwright-driven browser.
type PlaywrightSession struct {
	pw         *playwright.Playwright
	browser    playwright.Browser
	page       playwright.Page
	navTimeout time.Duration
	currentURL string
	closed     bool
}

// Install downloads the driver and browser binaries for the given browser
// name. Safe to call repeatedly; already-installed binaries are reused.
func Install(name string) error {
	opts := &playwright.RunOptions{
		Browsers: []string{browserType(name)},
	}
	if err := playwright.Install(opts); err != nil {
		return &SetupError{Err: fmt.Errorf("failed to install %s: %w", name, err)}
	}
	return nil
}

func browserType(name string) string {
	if strings.EqualFold(name, "firefox") {
		return "firefox"
	}
	return "chromium"
}

// Launch starts a browser session. The caller must Close it on every exit
// path.
func Launch(cfg Config) (*PlaywrightSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, &SetupError{Err: fmt.Errorf("failed to start driver: %w", err)}
	}

	bt := pw.Chromium
	if browserType(cfg.Browser) == "firefox" {
		bt = pw.Firefox
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, &SetupError{Err: fmt.Errorf("failed to launch %s: %w", cfg.Browser, err)}
	}

	page, err := b.NewPage()
	if err != nil {
		_ = b.Close()
		_ = pw.Stop()
		return nil, &SetupError{Err: fmt.Errorf("failed to open page: %w", err)}
	}

	timeout := cfg.NavTimeout
	if timeout <= 0 {
		timeout = DefaultNavTimeout
	}

	return &PlaywrightSession{
		pw:         pw,
		browser:    b,
		page:       page,
		navTimeout: timeout,
	}, nil
}

// Navigate loads the URL, waits for the document to be ready, and returns a
// parsed snapshot of its HTML.
func (s *PlaywrightSession) Navigate(ctx context.Context, url string) (*goquery.Document, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := s.navTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}

	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", url, err)
	}

	html, err := s.page.Content()
	if err != nil {
		return nil, fmt.Errorf("failed to read page content: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	s.currentURL = s.page.URL()
	return doc, nil
}

// CurrentURL returns the URL of the last successfully loaded page.
func (s *PlaywrightSession) CurrentURL() string {
	return s.currentURL
}

// Close shuts down the page, browser, and driver.
func (s *PlaywrightSession) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if err := s.browser.Close(); err != nil {
		firstErr = err
	}
	if err := s.pw.Stop(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
