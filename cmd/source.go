package main

import (
	"context"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/opsvantage/triage-cli/internal/cache"
	"github.com/opsvantage/triage-cli/internal/model"
	"github.com/opsvantage/triage-cli/internal/reconcile"
	"github.com/opsvantage/triage-cli/internal/workbook"
)

// resolveSource turns the --file flag (a path or an http(s) URL) into a
// workbook source, falling back to the configured default path.
func resolveSource(ctx context.Context, file string) (workbook.Source, error) {
	if file == "" {
		file = cfg.Source.Path
	}
	if file == "" {
		return workbook.Source{}, eris.New("no workbook source: pass --file or set source.path in config")
	}

	if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
		fetcher := workbook.NewFetcher(workbook.FetchOptions{
			UserAgent:  cfg.Fetch.UserAgent,
			Timeout:    time.Duration(cfg.Fetch.TimeoutSecs) * time.Second,
			MaxRetries: cfg.Fetch.MaxRetries,
			Limiter:    rate.NewLimiter(rate.Limit(cfg.Fetch.RatePerSec), 1),
		})
		return fetcher.Fetch(ctx, file)
	}

	return workbook.FromPath(file), nil
}

// resolveRegion parses the --region flag, falling back to the configured
// default region.
func resolveRegion(region string) (model.Region, error) {
	if region == "" {
		region = cfg.Source.Region
	}
	return model.ParseRegion(region)
}

// newMemoizer builds the cached engine from config.
func newMemoizer() *cache.Memoizer {
	return cache.NewMemoizer(
		reconcile.NewEngine(),
		cache.New(cfg.Cache.MaxEntries, cfg.Cache.TTL()),
	)
}
