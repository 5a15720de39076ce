// Package core contains the business logic of the grant scraper.
// Nothing under core talks to the network, the disk or Redis directly; those
// capabilities arrive through the interfaces package.
//
// The core package is organized into several sub-packages:
//
// - domain: Grant records and the persisted Catalog document
// - errors: Typed errors for fetch, config and persisted-state failures
// - interfaces: Contracts for external dependencies (HTTP, cache, catalog store, logger)
// - normalize: Amount, deadline, region and summary extraction from free text
// - sources: The CANPAN, NPOWEB and JFC extractors
// - scoring: Keyword relevance scoring
// - identity: Stable record ids and URL dedup
// - filter: The ordered predicate chain
// - catalog: Loading the previous catalog and publishing the next one
// - pipeline: One complete run from collection to publication
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	    Store:      myStore,      // implements interfaces.CatalogStore
//	}
//
//	srcs := []sources.Source{
//	    sources.NewCANPAN(deps, sources.Options{URL: canpanURL, MaxPages: 10, Delay: time.Second}),
//	    sources.NewJFC(deps, sources.Options{URL: jfcURL, Delay: time.Second}),
//	}
//
//	result, err := pipeline.New(deps, srcs, policy).Run(ctx)
package core
