// Package config loads the optional YAML run configuration. Flags override
// anything set here; the zero configuration works out of the box.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vectorwade/newsgrab/scraper"
)

// Config is the full run configuration.
type Config struct {
	// Homepage is the news site scanned for category links.
	Homepage string `yaml:"homepage"`
	// Browser selects and tunes the browser session.
	Browser Browser `yaml:"browser"`
	// Limit caps extracted articles per category.
	Limit int `yaml:"limit"`
	// Categories are the default tokens when no flag supplies any.
	Categories []string `yaml:"categories"`
	// Output is the CSV path.
	Output string `yaml:"output"`
	// History, when set, is the path of the SQLite run-history database.
	History string `yaml:"history"`
	// FollowLinks visits each article page for a first-paragraph summary.
	FollowLinks bool `yaml:"follow_links"`
	// FeedFallback tries a page's RSS/Atom feed when the DOM scan is empty.
	FeedFallback bool `yaml:"feed_fallback"`
	// Selectors override the extraction selector set.
	Selectors scraper.Selectors `yaml:"selectors"`
	// LogLevel is debug, info, warn, or error.
	LogLevel string `yaml:"log_level"`
}

// Browser holds browser session settings.
type Browser struct {
	// Name is "chrome" or "firefox".
	Name string `yaml:"name"`
	// Headless runs without a visible window.
	Headless bool `yaml:"headless"`
	// NavTimeoutSec bounds each page load, in seconds.
	NavTimeoutSec int `yaml:"nav_timeout_sec"`
}

// NavTimeout returns the page-load timeout as a duration.
func (b Browser) NavTimeout() time.Duration {
	return time.Duration(b.NavTimeoutSec) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Homepage: "https://www.metropoles.com/",
		Browser: Browser{
			Name:          "chrome",
			NavTimeoutSec: 30,
		},
		Limit:     5,
		Output:    "output.csv",
		Selectors: scraper.DefaultSelectors(),
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values no run could use.
func (c Config) Validate() error {
	switch c.Browser.Name {
	case "chrome", "firefox":
	default:
		return fmt.Errorf("invalid browser %q: must be chrome or firefox", c.Browser.Name)
	}

	if c.Limit < 0 {
		return fmt.Errorf("invalid limit %d: must be zero or positive", c.Limit)
	}
	if c.Homepage == "" {
		return fmt.Errorf("homepage must not be empty")
	}
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}

	return nil
}
