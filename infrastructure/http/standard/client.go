// ABOUTME: Standard HTTP client implementation with timeout and charset decoding
// ABOUTME: Performs a single polite GET per call and reports non-2xx statuses as fetch errors

package standard

import (
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"

	coreerrors "grant-scraper/core/errors"
	"grant-scraper/core/interfaces"
)

const (
	defaultUserAgent = "Mozilla/5.0 (compatible; grant-scraper/1.0)"
	acceptHeader     = "text/html,application/xhtml+xml,application/rss+xml,application/xml;q=0.9,*/*;q=0.8"
)

// StandardHTTPClient implements the HTTPClient interface using standard library
type StandardHTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout.
// An empty userAgent selects the built-in one.
func NewStandardHTTPClient(timeout time.Duration, userAgent string) *StandardHTTPClient {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// Get performs an HTTP GET request. The returned body is UTF-8 regardless of
// the charset the server declared.
func (c *StandardHTTPClient) Get(ctx context.Context, url string) (interfaces.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", "ja,en;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &coreerrors.FetchError{URL: url, StatusCode: resp.StatusCode}
	}

	decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		resp.Body.Close()
		return nil, &coreerrors.FetchError{URL: url, Err: err}
	}

	return &httpResponse{
		statusCode: resp.StatusCode,
		body:       &decodedBody{Reader: decoded, closer: resp.Body},
		headers:    resp.Header,
	}, nil
}

// decodedBody reads the transcoded stream and closes the raw one
type decodedBody struct {
	io.Reader
	closer io.Closer
}

func (b *decodedBody) Close() error {
	return b.closer.Close()
}

// httpResponse implements the Response interface
type httpResponse struct {
	statusCode int
	body       io.ReadCloser
	headers    http.Header
}

// StatusCode returns the HTTP status code
func (r *httpResponse) StatusCode() int {
	return r.statusCode
}

// Body returns the response body
func (r *httpResponse) Body() io.ReadCloser {
	return r.body
}

// Header returns the value of the specified header
func (r *httpResponse) Header(key string) string {
	return r.headers.Get(key)
}
