package sources

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"grant-scraper/core/domain"
	"grant-scraper/core/identity"
	"grant-scraper/core/interfaces"
	"grant-scraper/core/normalize"
)

const (
	jfcTag  = "jfc"
	jfcName = "助成財団センター"

	minJFCTitleLength = 5
)

var jfcKeywords = []string{"助成", "補助", "奨励", "支援", "基金", "募集"}

// JFC collects program links from the Japan Foundation Center listing page
type JFC struct {
	deps    interfaces.Dependencies
	fetch   *fetcher
	pageURL string
	origin  *url.URL
}

// NewJFC creates the JFC source
func NewJFC(deps interfaces.Dependencies, opts Options) *JFC {
	origin, err := url.Parse(originOf(opts.URL))
	if err != nil {
		origin = &url.URL{}
	}
	return &JFC{
		deps:    deps,
		fetch:   newFetcher(deps.HTTPClient, opts.Delay),
		pageURL: opts.URL,
		origin:  origin,
	}
}

func (s *JFC) Tag() string  { return jfcTag }
func (s *JFC) Name() string { return jfcName }

// Collect fetches the listing page once and turns matching links into records
func (s *JFC) Collect(ctx context.Context) ([]domain.Grant, error) {
	body, err := s.fetch.get(ctx, s.pageURL)
	if err != nil {
		return nil, fmt.Errorf("jfc listing: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("jfc listing: parse %s: %w", s.pageURL, err)
	}

	seen := make(identity.Seen)
	var grants []domain.Grant
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		title := selectionText(a)
		if normalize.Length(title) < minJFCTitleLength || !normalize.ContainsAny(title, jfcKeywords) {
			return
		}

		href, _ := a.Attr("href")
		link, ok := s.resolve(href)
		if !ok || !seen.Add(link) {
			return
		}

		g := domain.NewGrant(identity.MakeID(jfcTag, link), title, link, jfcName)
		g.FullText = title
		grants = append(grants, g)
	})

	return grants, nil
}

// resolve keeps absolute http(s) links and resolves the rest against the site
// origin. Script and mail links are dropped.
func (s *JFC) resolve(href string) (string, bool) {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "http") {
		return href, true
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := s.origin.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	return resolved.String(), true
}
