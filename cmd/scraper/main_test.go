package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grant-scraper/core/interfaces"
	"grant-scraper/infrastructure/http/cached"
	"grant-scraper/infrastructure/http/collector"
	stdhttp "grant-scraper/infrastructure/http/standard"
	logruslogger "grant-scraper/infrastructure/logger/logrus"
	"grant-scraper/infrastructure/storage/file"
	"grant-scraper/pkg/config"
	"grant-scraper/pkg/featureflags"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("DATA_DIR", t.TempDir())
	cfg, err := config.LoadFromEnv()
	require.NoError(t, err)
	return cfg
}

func TestEnabledSources_FixedOrder(t *testing.T) {
	cfg := testConfig(t)
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.SourceCANPAN: true,
		featureflags.SourceNPOWEB: true,
		featureflags.SourceJFC:    true,
	})

	srcs := enabledSources(context.Background(), cfg, flags, interfaces.Dependencies{})

	require.Len(t, srcs, 3)
	assert.Equal(t, "canpan", srcs[0].Tag())
	assert.Equal(t, "npoweb", srcs[1].Tag())
	assert.Equal(t, "jfc", srcs[2].Tag())
}

func TestEnabledSources_Disabled(t *testing.T) {
	cfg := testConfig(t)
	flags := featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.SourceJFC: true,
	})

	srcs := enabledSources(context.Background(), cfg, flags, interfaces.Dependencies{})

	require.Len(t, srcs, 1)
	assert.Equal(t, "jfc", srcs[0].Tag())
}

func TestNewHTTPClient(t *testing.T) {
	cfg := testConfig(t)
	logger := logruslogger.New(logruslogger.Options{})
	ctx := context.Background()

	plain := newHTTPClient(ctx, cfg, featureflags.NewStaticManager(nil), logger)
	assert.IsType(t, &stdhttp.StandardHTTPClient{}, plain)

	cfg.Fetch.Backend = "colly"
	colly := newHTTPClient(ctx, cfg, featureflags.NewStaticManager(nil), logger)
	assert.IsType(t, &collector.Client{}, colly)

	memoized := newHTTPClient(ctx, cfg, featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.FetchCache: true,
	}), logger)
	assert.IsType(t, &cached.Client{}, memoized)
}

func TestNewStore_File(t *testing.T) {
	cfg := testConfig(t)

	store, closeStore, err := newStore(cfg)
	require.NoError(t, err)
	defer closeStore()

	assert.IsType(t, &file.Store{}, store)
}

func TestNewStore_RedisUnreachable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.Backend = "redis"
	cfg.Storage.Redis.Address = "127.0.0.1:1"

	_, _, err := newStore(cfg)
	assert.Error(t, err)
}
