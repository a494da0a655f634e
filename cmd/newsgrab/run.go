package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vectorwade/newsgrab/articles"
	"github.com/vectorwade/newsgrab/browser"
	"github.com/vectorwade/newsgrab/categories"
	"github.com/vectorwade/newsgrab/config"
	"github.com/vectorwade/newsgrab/feeds"
	"github.com/vectorwade/newsgrab/history"
	"github.com/vectorwade/newsgrab/logger"
	"github.com/vectorwade/newsgrab/report"
)

// run executes one full scrape: launch, resolve, extract per category,
// aggregate, write. Per-category failures are logged and skipped; only setup
// failures (browser launch, unreachable homepage) return an error.
func run(ctx context.Context, cfg config.Config, tokens []string, install bool, log logger.Logger) error {
	startedAt := time.Now()

	if install {
		if err := browser.Install(cfg.Browser.Name); err != nil {
			return err
		}
	}

	session, err := browser.Launch(browser.Config{
		Browser:    cfg.Browser.Name,
		Headless:   cfg.Browser.Headless,
		NavTimeout: cfg.Browser.NavTimeout(),
	})
	if err != nil {
		return err
	}
	defer session.Close()

	resolver := categories.NewResolver(session, cfg.Homepage, log)
	resolved, skipped, err := resolver.Resolve(ctx, tokens)
	if err != nil {
		return err
	}
	for _, skip := range skipped {
		log.Warn("skipped category", logger.String("category", skip.Token))
	}

	extractor := articles.NewExtractor(session, cfg.Selectors, log)
	extractor.FollowLinks = cfg.FollowLinks
	if cfg.FeedFallback {
		extractor.Feeds = feeds.NewParser()
	}

	var results []report.CategoryResult
	for _, category := range resolved {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Info("processing category", logger.String("category", category.Label()))

		records, err := extractor.Extract(ctx, category, cfg.Limit)
		if err != nil {
			log.Warn("category page failed, skipping",
				logger.String("category", category.Label()),
				logger.Error(err))
			continue
		}

		log.Info("extracted articles",
			logger.String("category", category.Label()),
			logger.Int("count", len(records)))
		results = append(results, report.CategoryResult{Category: category, Records: records})
	}

	rows := report.Aggregate(results)
	if err := report.WriteCSVFile(cfg.Output, rows); err != nil {
		return err
	}
	log.Info("wrote output",
		logger.String("path", cfg.Output),
		logger.Int("rows", len(rows)))

	if cfg.History != "" {
		if err := recordRun(cfg.History, startedAt, rows); err != nil {
			log.Warn("failed to record run history", logger.Error(err))
		}
	}

	return nil
}

func recordRun(path string, startedAt time.Time, rows []report.Row) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordRun(history.Run{
		RunID:      uuid.New(),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		RowCount:   len(rows),
	}, rows)
}
