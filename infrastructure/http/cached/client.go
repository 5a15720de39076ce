// ABOUTME: HTTPClient decorator that memoizes successful responses in a Cache
// ABOUTME: Keeps repeated fetches of the same page within a run from hitting the network

package cached

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"grant-scraper/core/interfaces"
)

const keyPrefix = "fetch:"

// Client wraps another HTTPClient with a read-through cache.
// Only 2xx bodies are cached; failures always reach the wrapped client.
type Client struct {
	next   interfaces.HTTPClient
	cache  interfaces.Cache
	ttl    time.Duration
	logger interfaces.Logger
}

// NewClient creates a caching decorator around next
func NewClient(next interfaces.HTTPClient, cache interfaces.Cache, ttl time.Duration, logger interfaces.Logger) *Client {
	return &Client{next: next, cache: cache, ttl: ttl, logger: logger}
}

// Get returns the cached body for url when present, otherwise fetches and stores it
func (c *Client) Get(ctx context.Context, url string) (interfaces.Response, error) {
	key := keyPrefix + url

	data, err := c.cache.Get(ctx, key)
	if err == nil {
		c.logger.Debug("Fetch cache hit", map[string]interface{}{"url": url})
		return &cachedResponse{body: data, contentType: http.DetectContentType(data)}, nil
	}
	if !errors.Is(err, interfaces.ErrCacheMiss) {
		c.logger.Warn("Fetch cache read failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}

	resp, err := c.next.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	data, err = io.ReadAll(body)
	body.Close()
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Fetch cache write failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
	}

	return &cachedResponse{
		statusCode:  resp.StatusCode(),
		body:        data,
		contentType: resp.Header("Content-Type"),
	}, nil
}

// cachedResponse serves a buffered body
type cachedResponse struct {
	statusCode  int
	body        []byte
	contentType string
}

func (r *cachedResponse) StatusCode() int {
	if r.statusCode == 0 {
		return http.StatusOK
	}
	return r.statusCode
}

func (r *cachedResponse) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(r.body))
}

func (r *cachedResponse) Header(key string) string {
	if http.CanonicalHeaderKey(key) == "Content-Type" {
		return r.contentType
	}
	return ""
}
