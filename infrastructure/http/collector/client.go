// ABOUTME: HTTP client backed by a colly collector
// ABOUTME: Alternate fetch backend with charset detection for pages that omit a declared encoding

package collector

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gocolly/colly"

	coreerrors "grant-scraper/core/errors"
	"grant-scraper/core/interfaces"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; grant-scraper/1.0)"
	maxBodySize      = 10 * 1024 * 1024
)

// Client implements the HTTPClient interface with colly
type Client struct {
	timeout   time.Duration
	userAgent string
}

// NewClient creates a colly-backed client
func NewClient(timeout time.Duration, userAgent string) *Client {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{timeout: timeout, userAgent: userAgent}
}

// Get visits url with a fresh collector and returns the decoded body.
// Colly has no context support, so ctx is only checked around the visit.
func (c *Client) Get(ctx context.Context, url string) (interfaces.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}

	collector := colly.NewCollector(
		colly.UserAgent(c.userAgent),
		colly.MaxBodySize(maxBodySize),
		colly.Async(false),
		colly.AllowURLRevisit(),
		colly.DetectCharset(),
	)
	collector.SetRequestTimeout(c.timeout)

	var (
		result *collyResponse
		status int
	)

	collector.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/rss+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "ja,en;q=0.8")
	})

	collector.OnResponse(func(r *colly.Response) {
		headers := http.Header{}
		if r.Headers != nil {
			headers = *r.Headers
		}
		result = &collyResponse{
			statusCode: r.StatusCode,
			body:       append([]byte(nil), r.Body...),
			headers:    headers,
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
	})

	if err := collector.Visit(url); err != nil {
		if status >= 300 {
			return nil, &coreerrors.FetchError{URL: url, StatusCode: status}
		}
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}

	if err := ctx.Err(); err != nil {
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}

	if result == nil {
		return nil, &coreerrors.FetchError{URL: url, Err: io.ErrUnexpectedEOF}
	}
	if result.statusCode < 200 || result.statusCode > 299 {
		return nil, &coreerrors.FetchError{URL: url, StatusCode: result.statusCode}
	}
	return result, nil
}

// collyResponse implements the Response interface over a buffered body
type collyResponse struct {
	statusCode int
	body       []byte
	headers    http.Header
}

func (r *collyResponse) StatusCode() int {
	return r.statusCode
}

func (r *collyResponse) Body() io.ReadCloser {
	return io.NopCloser(bytes.NewReader(r.body))
}

func (r *collyResponse) Header(key string) string {
	return r.headers.Get(key)
}
