// ABOUTME: Main entry point for the grant scraper
// ABOUTME: Wires configuration, fetch backend, catalog store and sources, then runs one scrape

package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"grant-scraper/core/interfaces"
	"grant-scraper/core/pipeline"
	"grant-scraper/core/sources"
	"grant-scraper/infrastructure/cache/memory"
	"grant-scraper/infrastructure/cache/redis"
	"grant-scraper/infrastructure/http/cached"
	"grant-scraper/infrastructure/http/collector"
	stdhttp "grant-scraper/infrastructure/http/standard"
	logruslogger "grant-scraper/infrastructure/logger/logrus"
	"grant-scraper/infrastructure/storage/cachestore"
	"grant-scraper/infrastructure/storage/file"
	"grant-scraper/pkg/config"
	"grant-scraper/pkg/featureflags"
)

const (
	exitRunFailed   = 1
	exitConfigError = 2
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		os.Exit(exitConfigError)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Printf("Invalid configuration: %v", err)
		os.Exit(exitConfigError)
	}

	logger := logruslogger.New(logruslogger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	flags := featureflags.NewEnvManager("FEATURE_")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(cfg)
	if err != nil {
		logger.Error("Failed to open catalog store", map[string]interface{}{
			"backend": cfg.Storage.Backend,
			"error":   err.Error(),
		})
		os.Exit(exitRunFailed)
	}
	defer closeStore()

	deps := interfaces.Dependencies{
		HTTPClient: newHTTPClient(ctx, cfg, flags, logger),
		Logger:     logger,
		Store:      store,
	}

	srcs := enabledSources(ctx, cfg, flags, deps)
	logger.Info("Starting grant scraper", map[string]interface{}{
		"sources":       len(srcs),
		"fetch_backend": cfg.Fetch.Backend,
		"store":         cfg.Storage.Backend,
		"max_pages":     cfg.Fetch.MaxPages,
	})

	policy := pipeline.Policy{
		Keywords:        cfg.Policy.Keywords(),
		Rules:           cfg.Policy.Rules(),
		ExcludedRegions: cfg.Policy.ExcludedRegionPatterns,
	}

	result, err := pipeline.New(deps, srcs, policy).Run(ctx)
	if err != nil {
		logger.Error("Scrape failed", map[string]interface{}{
			"error": err.Error(),
		})
		closeStore()
		os.Exit(exitRunFailed)
	}

	logger.Info("Scrape finished", map[string]interface{}{
		"collected": result.Collected,
		"unique":    result.Unique,
		"kept":      result.Kept,
		"new":       result.New,
	})
	fmt.Printf("%d grants published (%d new)\n", result.Kept, result.New)
}

// newStore opens the configured catalog backend
func newStore(cfg *config.Config) (interfaces.CatalogStore, func(), error) {
	switch cfg.Storage.Backend {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Storage.Redis)
		if err != nil {
			return nil, nil, err
		}
		return cachestore.NewStore(redisCache, cfg.Storage.CatalogKey), func() { redisCache.Close() }, nil
	default:
		return file.NewStore(cfg.Storage.DataDir), func() {}, nil
	}
}

// newHTTPClient builds the fetch backend, memoized when the fetch cache is enabled
func newHTTPClient(ctx context.Context, cfg *config.Config, flags featureflags.Manager, logger interfaces.Logger) interfaces.HTTPClient {
	var client interfaces.HTTPClient
	switch cfg.Fetch.Backend {
	case "colly":
		client = collector.NewClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	default:
		client = stdhttp.NewStandardHTTPClient(cfg.Fetch.Timeout, cfg.Fetch.UserAgent)
	}

	if flags.IsEnabled(ctx, featureflags.FetchCache) {
		client = cached.NewClient(client, memory.NewMemoryCache(), cfg.Fetch.CacheTTL, logger)
	}
	return client
}

// enabledSources returns the switched-on sources in their fixed run order
func enabledSources(ctx context.Context, cfg *config.Config, flags featureflags.Manager, deps interfaces.Dependencies) []sources.Source {
	var srcs []sources.Source
	if flags.IsEnabled(ctx, featureflags.SourceCANPAN) {
		srcs = append(srcs, sources.NewCANPAN(deps, sources.Options{
			URL:      cfg.Sources.CANPANBaseURL,
			MaxPages: cfg.Fetch.MaxPages,
			Delay:    cfg.Fetch.Delay,
		}))
	}
	if flags.IsEnabled(ctx, featureflags.SourceNPOWEB) {
		srcs = append(srcs, sources.NewNPOWEB(deps, sources.Options{
			URL:   cfg.Sources.NPOWEBFeedURL,
			Delay: cfg.Fetch.Delay,
		}))
	}
	if flags.IsEnabled(ctx, featureflags.SourceJFC) {
		srcs = append(srcs, sources.NewJFC(deps, sources.Options{
			URL:   cfg.Sources.JFCURL,
			Delay: cfg.Fetch.Delay,
		}))
	}
	return srcs
}
