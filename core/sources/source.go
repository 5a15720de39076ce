// Package sources turns raw pages from the three grant directories into
// partial grant records. Scoring, region checks and filtering happen later.
package sources

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"grant-scraper/core/domain"
	"grant-scraper/core/interfaces"
)

// Source is one grant directory
type Source interface {
	// Tag is the short prefix of record ids ("canpan", "npoweb", "jfc")
	Tag() string

	// Name is the human-readable source written into every record
	Name() string

	// Collect fetches and extracts the source's records. Records carry no
	// score, region or is_new yet. An error means the source produced nothing
	// usable; the caller logs it and moves on to the next source.
	Collect(ctx context.Context) ([]domain.Grant, error)
}

// Options configures a source
type Options struct {
	// URL is the listing page, feed or search endpoint
	URL string

	// MaxPages caps pagination where the source paginates
	MaxPages int

	// Delay is the minimum spacing between requests of this source
	Delay time.Duration
}

// fetcher performs paced GETs on behalf of one source
type fetcher struct {
	client interfaces.HTTPClient
	pacer  *Pacer
}

func newFetcher(client interfaces.HTTPClient, delay time.Duration) *fetcher {
	return &fetcher{client: client, pacer: NewPacer(delay)}
}

// get waits for the pacer, fetches url and returns the whole body
func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	if err := f.pacer.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := f.client.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	body := resp.Body()
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return data, nil
}

// originOf returns scheme://host of raw, or "" when raw is not absolute
func originOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
