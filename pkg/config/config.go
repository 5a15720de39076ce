// ABOUTME: Configuration management for the scraper with environment variable support
// ABOUTME: Defines storage, fetch, source, policy and logging settings and validates them

package config

import (
	"errors"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	coreerrors "grant-scraper/core/errors"
)

// Config holds all application configuration
type Config struct {
	// Storage selects where the catalog document lives
	Storage StorageConfig

	// Fetch configures the outbound HTTP capability
	Fetch FetchConfig

	// Sources holds the endpoint of every source
	Sources SourcesConfig

	// Policy is the keyword and threshold policy
	Policy Policy

	// Log configures the logger
	Log LogConfig
}

// StorageConfig holds catalog persistence configuration
type StorageConfig struct {
	// Backend is "file" or "redis"
	Backend string

	// DataDir is the directory holding grants.json for the file backend
	DataDir string

	// CatalogKey is the key of the catalog document for the redis backend
	CatalogKey string

	// Redis contains Redis-specific configuration
	Redis RedisConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// FetchConfig holds HTTP fetch configuration
type FetchConfig struct {
	// Backend is "standard" or "colly"
	Backend string

	UserAgent string

	// Timeout bounds every single request
	Timeout time.Duration

	// Delay is the pause between consecutive requests to the same source
	Delay time.Duration

	// CacheTTL bounds how long a fetched page is reused within a run
	CacheTTL time.Duration

	// MaxPages caps CANPAN listing pagination
	MaxPages int
}

// SourcesConfig holds source endpoints
type SourcesConfig struct {
	CANPANBaseURL string
	NPOWEBFeedURL string
	JFCURL        string
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is "text" or "json"
	Format string
}

// LoadFromEnv loads configuration from environment variables.
// A .env file in the working directory is read first when present.
func LoadFromEnv() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &coreerrors.ConfigError{Key: ".env", Message: err.Error()}
	}

	policy := DefaultPolicy()
	if path := os.Getenv("POLICY_FILE"); path != "" {
		p, err := LoadPolicyFile(path, policy)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	l := &loader{}
	cfg := &Config{
		Storage: StorageConfig{
			Backend:    getEnvOrDefault("CATALOG_BACKEND", "file"),
			DataDir:    getEnvOrDefault("DATA_DIR", "data"),
			CatalogKey: getEnvOrDefault("CATALOG_KEY", "grants:catalog"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       l.getInt("REDIS_DB", 0),
			},
		},
		Fetch: FetchConfig{
			Backend:   getEnvOrDefault("FETCH_BACKEND", "standard"),
			UserAgent: getEnvOrDefault("USER_AGENT", defaultUserAgent),
			Timeout:   l.getDuration("REQUEST_TIMEOUT", 30*time.Second),
			Delay:     l.getDuration("REQUEST_DELAY", time.Second),
			CacheTTL:  l.getDuration("FETCH_CACHE_TTL", 10*time.Minute),
			MaxPages:  l.getInt("MAX_PAGES", 10),
		},
		Sources: SourcesConfig{
			CANPANBaseURL: getEnvOrDefault("CANPAN_BASE_URL", "https://fields.canpan.info/grant/search"),
			NPOWEBFeedURL: getEnvOrDefault("NPOWEB_RSS_URL", "https://www.npoweb.jp/feed"),
			JFCURL:        getEnvOrDefault("JFC_URL", "https://jyosei-navi.jfc.or.jp/"),
		},
		Policy: policy,
		Log: LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	cfg.Policy.ScoreThreshold = l.getInt("SCORE_THRESHOLD", cfg.Policy.ScoreThreshold)
	cfg.Policy.AmountThreshold = l.getInt64("AMOUNT_THRESHOLD", cfg.Policy.AmountThreshold)

	if l.err != nil {
		return nil, l.err
	}
	return cfg, nil
}

const defaultUserAgent = "Mozilla/5.0 (compatible; grant-scraper/1.0)"

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// loader parses typed environment values and keeps the first error.
// Unlike plain string settings, a malformed number has no safe default.
type loader struct {
	err error
}

func (l *loader) fail(key, value, msg string) {
	if l.err == nil {
		l.err = &coreerrors.ConfigError{Key: key, Value: value, Message: msg}
	}
}

func (l *loader) getInt(key string, defaultValue int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		l.fail(key, value, "must be an integer")
		return defaultValue
	}
	return n
}

func (l *loader) getInt64(key string, defaultValue int64) int64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		l.fail(key, value, "must be an integer")
		return defaultValue
	}
	return n
}

// getDuration accepts Go durations ("1500ms") or plain seconds ("1.5")
func (l *loader) getDuration(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	secs, err := strconv.ParseFloat(value, 64)
	if err != nil {
		l.fail(key, value, "must be a duration or a number of seconds")
		return defaultValue
	}
	return time.Duration(secs * float64(time.Second))
}

// LoadPolicyFile reads a YAML policy file on top of base.
// Keys missing from the file keep the value from base.
func LoadPolicyFile(path string, base Policy) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, &coreerrors.ConfigError{Key: "POLICY_FILE", Value: path, Message: err.Error()}
	}

	policy := base
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return base, &coreerrors.ConfigError{Key: "POLICY_FILE", Value: path, Message: err.Error()}
	}
	return policy, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case "file":
		if c.Storage.DataDir == "" {
			return configError("DATA_DIR", "", "cannot be empty when using the file backend")
		}
	case "redis":
		if c.Storage.Redis.Address == "" {
			return configError("REDIS_ADDRESS", "", "cannot be empty when using the redis backend")
		}
		if c.Storage.CatalogKey == "" {
			return configError("CATALOG_KEY", "", "cannot be empty when using the redis backend")
		}
	default:
		return configError("CATALOG_BACKEND", c.Storage.Backend, "must be 'file' or 'redis'")
	}

	if c.Fetch.Backend != "standard" && c.Fetch.Backend != "colly" {
		return configError("FETCH_BACKEND", c.Fetch.Backend, "must be 'standard' or 'colly'")
	}
	if c.Fetch.Timeout <= 0 {
		return configError("REQUEST_TIMEOUT", c.Fetch.Timeout.String(), "must be positive")
	}
	if c.Fetch.Delay < 0 {
		return configError("REQUEST_DELAY", c.Fetch.Delay.String(), "cannot be negative")
	}
	if c.Fetch.MaxPages < 1 {
		return configError("MAX_PAGES", strconv.Itoa(c.Fetch.MaxPages), "must be at least 1")
	}

	endpoints := []struct{ key, raw string }{
		{"CANPAN_BASE_URL", c.Sources.CANPANBaseURL},
		{"NPOWEB_RSS_URL", c.Sources.NPOWEBFeedURL},
		{"JFC_URL", c.Sources.JFCURL},
	}
	for _, e := range endpoints {
		u, err := url.Parse(e.raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return configError(e.key, e.raw, "must be an absolute URL")
		}
	}

	return c.Policy.Validate()
}

func configError(key, value, msg string) error {
	return &coreerrors.ConfigError{Key: key, Value: value, Message: msg}
}
