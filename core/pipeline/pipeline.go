// ABOUTME: Pipeline runs one scrape: collect, dedupe, score, filter, publish
// ABOUTME: Sources run sequentially in a fixed order and a failing source never aborts the run

package pipeline

import (
	"context"
	"fmt"
	"time"

	"grant-scraper/core/catalog"
	"grant-scraper/core/domain"
	"grant-scraper/core/filter"
	"grant-scraper/core/identity"
	"grant-scraper/core/interfaces"
	"grant-scraper/core/normalize"
	"grant-scraper/core/scoring"
	"grant-scraper/core/sources"
)

// Policy is everything the pipeline needs to judge records
type Policy struct {
	Keywords        scoring.Keywords
	Rules           filter.Rules
	ExcludedRegions []string
}

// Result summarizes a finished run
type Result struct {
	Catalog *domain.Catalog

	// Collected is the number of records returned by all sources
	Collected int

	// Unique is the number left after URL dedup
	Unique int

	// Kept is the number that passed the filter
	Kept int

	// New is the number of kept records absent from the previous catalog
	New int

	// Rejected counts removed records by filter predicate
	Rejected map[string]int
}

// Pipeline wires sources, policy and catalog together
type Pipeline struct {
	deps    interfaces.Dependencies
	sources []sources.Source
	policy  Policy
	catalog *catalog.Service

	// Now is the run clock; tests replace it
	Now func() time.Time
}

// New creates a pipeline. srcs run in the order given.
func New(deps interfaces.Dependencies, srcs []sources.Source, policy Policy) *Pipeline {
	return &Pipeline{
		deps:    deps,
		sources: srcs,
		policy:  policy,
		catalog: catalog.NewService(deps),
		Now:     time.Now,
	}
}

// Run performs one complete scrape and publishes the catalog
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	now := p.Now()
	previous := p.catalog.LoadPrevious(ctx)

	collected, err := p.collect(ctx)
	if err != nil {
		return nil, err
	}

	unique := identity.Dedupe(collected)
	p.deps.Logger.Info("Deduplicated records", map[string]interface{}{
		"collected": len(collected),
		"unique":    len(unique),
	})

	foundDate := normalize.FormatDate(now)
	candidates := make([]filter.Candidate, len(unique))
	for i, g := range unique {
		g.FoundDate = foundDate
		scoring.Annotate(&g, p.policy.Keywords)
		eligible, region := normalize.CheckRegion(g.FullText, p.policy.ExcludedRegions)
		g.Region = region
		candidates[i] = filter.Candidate{Grant: g, Eligible: eligible}
	}

	filtered := filter.Apply(candidates, p.policy.Rules, now)
	p.deps.Logger.Info("Filtered records", map[string]interface{}{
		"kept":     len(filtered.Kept),
		"rejected": filtered.Rejected,
	})

	published, err := p.catalog.Publish(ctx, previous, filtered.Kept, now)
	if err != nil {
		return nil, err
	}

	return &Result{
		Catalog:   published,
		Collected: len(collected),
		Unique:    len(unique),
		Kept:      len(published.Grants),
		New:       catalog.CountNew(published),
		Rejected:  filtered.Rejected,
	}, nil
}

// collect runs every source in order. Source errors are logged and skipped;
// only cancellation stops the run.
func (p *Pipeline) collect(ctx context.Context) ([]domain.Grant, error) {
	var all []domain.Grant
	for _, src := range p.sources {
		start := time.Now()
		grants, err := src.Collect(ctx)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("collect %s: %w", src.Tag(), ctxErr)
		}
		if err != nil {
			p.deps.Logger.Error("Source failed", map[string]interface{}{
				"source": src.Name(),
				"error":  err.Error(),
			})
		}

		all = append(all, grants...)
		p.deps.Logger.Info("Source collected", map[string]interface{}{
			"source":   src.Name(),
			"count":    len(grants),
			"duration": time.Since(start).String(),
		})
	}
	return all, nil
}
