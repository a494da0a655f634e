// Command newsgrab scrapes a news site's category pages and aggregates the
// top articles of each into a CSV file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vectorwade/newsgrab/categories"
	"github.com/vectorwade/newsgrab/config"
	"github.com/vectorwade/newsgrab/logger"
)

var flags struct {
	configFile      string
	browser         string
	headless        bool
	limit           int
	categoriesStr   string
	categoriesFile  string
	output          string
	homepage        string
	history         string
	followLinks     bool
	feedFallback    bool
	timeoutSec      int
	logLevel        string
	installBrowsers bool
}

var rootCmd = &cobra.Command{
	Use:   "newsgrab",
	Short: "Scrape news categories into a CSV",
	Long: `newsgrab visits a news site's homepage, resolves category names or
URLs to category pages, extracts the top articles of each, and writes
title, summary, and link for every article to a CSV file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute runs the CLI. A non-nil return means an unrecoverable setup
// failure; per-category failures are logged and do not surface here.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.configFile, "config", "", "path to YAML config file")
	f.StringVar(&flags.browser, "browser", "chrome", "browser to use: chrome or firefox")
	f.BoolVar(&flags.headless, "headless", false, "run the browser in headless mode")
	f.IntVar(&flags.limit, "limit", 5, "max articles per category")
	f.StringVar(&flags.categoriesStr, "categories", "", "comma-separated category names or URLs")
	f.StringVar(&flags.categoriesFile, "categories-file", "", "file with one category name or URL per line")
	f.StringVar(&flags.output, "output", "", "output CSV path (default output.csv)")
	f.StringVar(&flags.homepage, "homepage", "", "news site homepage to scan for category links")
	f.StringVar(&flags.history, "history", "", "record runs in this SQLite database")
	f.BoolVar(&flags.followLinks, "follow-links", false, "visit each article page for a first-paragraph summary")
	f.BoolVar(&flags.feedFallback, "feed-fallback", false, "fall back to RSS/Atom feeds for empty category pages")
	f.IntVar(&flags.timeoutSec, "timeout", 0, "page load timeout in seconds (default 30)")
	f.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVar(&flags.installBrowsers, "install-browsers", false, "download browser binaries before running")

	rootCmd.AddCommand(historyCmd)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	tokens, err := gatherTokens(cmd, cfg)
	if err != nil {
		return err
	}

	return run(cmd.Context(), cfg, tokens, flags.installBrowsers, log)
}

// buildConfig loads the config file (or defaults) and lays changed flags
// over it.
func buildConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flags.configFile)
	if err != nil {
		return config.Config{}, err
	}

	set := cmd.Flags().Changed
	if set("browser") {
		cfg.Browser.Name = flags.browser
	}
	if set("headless") {
		cfg.Browser.Headless = flags.headless
	}
	if set("timeout") {
		cfg.Browser.NavTimeoutSec = flags.timeoutSec
	}
	if set("limit") {
		cfg.Limit = flags.limit
	}
	if set("output") {
		cfg.Output = flags.output
	}
	if set("homepage") {
		cfg.Homepage = flags.homepage
	}
	if set("history") {
		cfg.History = flags.history
	}
	if set("follow-links") {
		cfg.FollowLinks = flags.followLinks
	}
	if set("feed-fallback") {
		cfg.FeedFallback = flags.feedFallback
	}
	if set("log-level") {
		cfg.LogLevel = flags.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// gatherTokens combines the --categories and --categories-file inputs, then
// falls back to configured and finally built-in defaults.
func gatherTokens(cmd *cobra.Command, cfg config.Config) ([]string, error) {
	var tokens []string

	if flags.categoriesStr != "" {
		tokens = append(tokens, categories.TokensFromString(flags.categoriesStr)...)
	}
	if flags.categoriesFile != "" {
		fromFile, err := categories.TokensFromFile(flags.categoriesFile)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, fromFile...)
	}

	// If either flag was given, use exactly what it produced, even when
	// that is nothing.
	if cmd.Flags().Changed("categories") || cmd.Flags().Changed("categories-file") {
		return tokens, nil
	}

	if len(cfg.Categories) > 0 {
		return cfg.Categories, nil
	}
	return categories.DefaultTokens(), nil
}
