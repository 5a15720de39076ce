// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: In-memory cache backed by patrickmn/go-cache
// - cache/redis: Redis cache backed by go-redis
// - http/standard: net/http client with charset decoding
// - http/collector: colly-based client with charset detection
// - http/cached: Decorator memoizing fetched pages in a Cache
// - logger/logrus: Structured logger backed by logrus
// - storage/file: grants.json on the local disk
// - storage/cachestore: The catalog document under one Cache key
//
// # HTTP Client
//
// Every client performs exactly one attempt and reports non-2xx statuses as
// *errors.FetchError:
//
//	client := standard.NewStandardHTTPClient(30*time.Second, "")
//	resp, err := client.Get(ctx, "https://fields.canpan.info/grant/search?page=1&sort=1")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Catalog Storage
//
//	store := file.NewStore("data")
//	catalog, err := store.Load(ctx)
//
// Redis-backed:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//	store := cachestore.NewStore(cache, "grants:catalog")
package infrastructure
