package sources

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmcdole/gofeed"

	"grant-scraper/core/domain"
	"grant-scraper/core/identity"
	"grant-scraper/core/interfaces"
	"grant-scraper/core/normalize"
)

const (
	npowebTag  = "npoweb"
	npowebName = "NPOWEB"

	feedTextLimit = 500
)

var (
	// Newsletter issues ("No.123 ...") and digest posts ("【新着12件】") are not grants
	newsletterTitle = regexp.MustCompile(`^No\.\d+`)

	fundingKeywords = []string{"助成", "補助", "奨励", "支援金", "基金"}
)

// NPOWEB reads grant announcements from the NPOWEB feed
type NPOWEB struct {
	deps    interfaces.Dependencies
	fetch   *fetcher
	feedURL string
}

// NewNPOWEB creates the NPOWEB source
func NewNPOWEB(deps interfaces.Dependencies, opts Options) *NPOWEB {
	return &NPOWEB{
		deps:    deps,
		fetch:   newFetcher(deps.HTTPClient, opts.Delay),
		feedURL: opts.URL,
	}
}

func (s *NPOWEB) Tag() string  { return npowebTag }
func (s *NPOWEB) Name() string { return npowebName }

// Collect fetches the feed once and keeps the funding-related entries
func (s *NPOWEB) Collect(ctx context.Context) ([]domain.Grant, error) {
	body, err := s.fetch.get(ctx, s.feedURL)
	if err != nil {
		return nil, fmt.Errorf("npoweb feed: %w", err)
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("npoweb feed: parse %s: %w", s.feedURL, err)
	}

	seen := make(identity.Seen)
	var grants []domain.Grant
	for _, item := range feed.Items {
		g, ok := s.fromItem(item)
		if !ok || !seen.Add(g.URL) {
			continue
		}
		grants = append(grants, g)
	}

	s.deps.Logger.Debug("NPOWEB feed parsed", map[string]interface{}{
		"entries": len(feed.Items),
		"kept":    len(grants),
	})
	return grants, nil
}

func (s *NPOWEB) fromItem(item *gofeed.Item) (domain.Grant, bool) {
	title := item.Title
	if newsletterTitle.MatchString(title) || (strings.Contains(title, "新着") && strings.Contains(title, "件")) {
		return domain.Grant{}, false
	}

	raw := item.Description
	if !normalize.ContainsAny(title+raw, fundingKeywords) {
		return domain.Grant{}, false
	}

	link := strings.TrimSpace(item.Link)
	if link == "" {
		s.deps.Logger.Debug("Skipping NPOWEB entry without link", map[string]interface{}{
			"title": title,
		})
		return domain.Grant{}, false
	}

	text := normalize.Truncate(htmlToText(raw), feedTextLimit)

	g := domain.NewGrant(identity.MakeID(npowebTag, link), title, link, npowebName)
	g.Summary = normalize.Truncate(text, summaryLimit)
	g.FullText = text
	g.SetAmount(normalize.ParseAmount(text))
	g.AmountText = normalize.ExtractAmountText(text)
	return g, true
}
