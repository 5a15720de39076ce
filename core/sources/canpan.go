package sources

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"grant-scraper/core/domain"
	"grant-scraper/core/identity"
	"grant-scraper/core/interfaces"
	"grant-scraper/core/normalize"
)

const (
	canpanTag  = "canpan"
	canpanName = "CANPAN"

	fullTextLimit   = 3000
	categoriesLimit = 120
	summaryLimit    = 300
)

var (
	canpanDetailLink = regexp.MustCompile(`/grant/detail/(\d+)`)

	headingSelector = "dt, th, h3, h4, strong"
	valueTags       = map[string]bool{"dd": true, "td": true, "p": true, "div": true, "span": true}

	categorySynonyms = []string{"対象分野"}
	periodSynonyms   = []string{"募集時期", "募集期間"}

	// Checked in this order against the detail page text
	statusMarkers = []string{domain.StatusOpen, domain.StatusUpcoming, domain.StatusClosed}
)

// CANPAN scrapes the paginated CANPAN grant search and its detail pages
type CANPAN struct {
	deps     interfaces.Dependencies
	fetch    *fetcher
	baseURL  string
	origin   string
	maxPages int
}

// NewCANPAN creates the CANPAN source
func NewCANPAN(deps interfaces.Dependencies, opts Options) *CANPAN {
	maxPages := opts.MaxPages
	if maxPages < 1 {
		maxPages = 1
	}
	return &CANPAN{
		deps:     deps,
		fetch:    newFetcher(deps.HTTPClient, opts.Delay),
		baseURL:  opts.URL,
		origin:   originOf(opts.URL),
		maxPages: maxPages,
	}
}

func (s *CANPAN) Tag() string  { return canpanTag }
func (s *CANPAN) Name() string { return canpanName }

// Collect walks the listing pages, then fetches every detail page.
// Fetch failures end pagination or leave a record with default fields; they
// never fail the source.
func (s *CANPAN) Collect(ctx context.Context) ([]domain.Grant, error) {
	seen := make(identity.Seen)
	var grants []domain.Grant

	for page := 1; page <= s.maxPages; page++ {
		pageURL := fmt.Sprintf("%s?page=%d&sort=1", s.baseURL, page)
		s.deps.Logger.Debug("Fetching CANPAN listing page", map[string]interface{}{
			"page": page,
			"url":  pageURL,
		})

		body, err := s.fetch.get(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return grants, ctx.Err()
			}
			s.deps.Logger.Warn("CANPAN listing fetch failed", map[string]interface{}{
				"page":  page,
				"url":   pageURL,
				"error": err.Error(),
			})
			break
		}

		found, links := s.parseListing(body, seen)
		if links == 0 {
			s.deps.Logger.Info("CANPAN listing has no grant links, stopping", map[string]interface{}{
				"page": page,
			})
			break
		}
		grants = append(grants, found...)

		s.deps.Logger.Info("CANPAN listing page collected", map[string]interface{}{
			"page":  page,
			"count": len(found),
		})
	}

	s.deps.Logger.Info("Fetching CANPAN detail pages", map[string]interface{}{
		"count": len(grants),
	})
	for i := range grants {
		body, err := s.fetch.get(ctx, grants[i].URL)
		if err != nil {
			if ctx.Err() != nil {
				return grants, ctx.Err()
			}
			s.deps.Logger.Warn("CANPAN detail fetch failed", map[string]interface{}{
				"url":   grants[i].URL,
				"error": err.Error(),
			})
			continue
		}
		if err := applyCANPANDetail(&grants[i], body); err != nil {
			s.deps.Logger.Warn("CANPAN detail page unreadable", map[string]interface{}{
				"url":   grants[i].URL,
				"error": err.Error(),
			})
		}
	}

	return grants, nil
}

// parseListing extracts records from one listing page. links counts every
// detail link on the page, including ones already seen or skipped.
func (s *CANPAN) parseListing(body []byte, seen identity.Seen) (grants []domain.Grant, links int) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, 0
	}

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		m := canpanDetailLink.FindStringSubmatch(href)
		if m == nil {
			return
		}
		links++

		detailURL := s.origin + "/grant/detail/" + m[1]
		if !seen.Add(detailURL) {
			return
		}

		title := selectionText(a)
		if title == "" {
			return
		}

		container := a.ParentsFiltered("div, li, tr, article, section").First()
		containerText := container.Text()
		if strings.Contains(containerText, domain.StatusClosed) && !strings.Contains(containerText, domain.StatusOpen) {
			return
		}

		g := domain.NewGrant(identity.MakeID(canpanTag, detailURL), title, detailURL, canpanName)
		g.Organization = selectionText(container.Find(`a[href*="/organization/detail/"]`))
		grants = append(grants, g)
	})

	return grants, links
}

// applyCANPANDetail fills the derived fields of g from its detail page
func applyCANPANDetail(g *domain.Grant, body []byte) error {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return err
	}

	text := pageText(doc)
	g.FullText = normalize.Truncate(text, fullTextLimit)

	headings := doc.Find(headingSelector).Nodes
	g.Categories = normalize.Truncate(headingValue(headings, categorySynonyms), categoriesLimit)
	g.Deadline = normalize.DeadlineFromPeriod(headingValue(headings, periodSynonyms))

	g.Status = domain.StatusUnverified
	for _, marker := range statusMarkers {
		if strings.Contains(text, marker) {
			g.Status = marker
			break
		}
	}

	g.SetAmount(normalize.ParseAmount(text))
	g.AmountText = normalize.ExtractAmountText(text)
	g.Summary = normalize.PickSummary(text, summaryLimit)
	return nil
}

// headingValue finds the first heading containing a synonym, trying
// synonyms in order, and returns the text of the value element after it
func headingValue(headings []*html.Node, synonyms []string) string {
	for _, synonym := range synonyms {
		for _, h := range headings {
			if !strings.Contains(allText(h), synonym) {
				continue
			}
			if next := findNextElement(h, valueTags); next != nil {
				return strippedText(next)
			}
			return ""
		}
	}
	return ""
}

// allText is the untrimmed text under n
func allText(n *html.Node) string {
	return strings.Join(collectText(n, nil), "")
}
