// Package search finds GitHub repositories for a free-text query and attaches
// each hit's language breakdown.
//
// # Overview
//
// A search is a single call:
//
//	client := search.NewClient(provider, search.WithLogger(logger))
//	repos, err := client.Search(ctx, "parser", search.Filters{Stars: 100, Language: "rust"}, search.SortStars)
//
// which sends one search request for
//
//	"parser"+in:name+in:description+in:topics+in:readme+stars:>=100+language:rust
//
// sorted by stars, descending, 10 results per page. Only the first page is
// ever requested. Every hit then gets its own languages request; these run
// concurrently and the results are stored by position, so the returned slice
// keeps the provider's order.
//
// # Filters
//
// [Filters] uses zero values as "no filter": Forks and Stars of 0 and an
// empty Language add no clause. [BuildQuery] exposes the query string for
// dry runs and tests.
//
// # Failures
//
// A search is all or nothing. If the search request or any languages request
// fails, Search returns that error and no results. Before returning, the
// failure is classified with [errors.Classify] and logged: provider errors
// with status and documentation link, transport errors with name, cause and
// message (stack at debug level), anything else as-is. The error value itself
// is returned unchanged.
//
// An empty result page is not a failure: Search returns an empty slice and a
// nil error.
//
// # Provider
//
// [Provider] abstracts the remote API. The production implementation lives in
// [github.com/matzehuels/reposcout/pkg/integrations/github]; it attaches the
// caller's credential to every request.
//
// [errors.Classify]: github.com/matzehuels/reposcout/pkg/errors.Classify
package search
