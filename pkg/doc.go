// Package pkg provides the libraries behind reposcout, a GitHub repository
// search client.
//
// # Overview
//
// The pkg directory is organized into these areas:
//
//  1. [search] - Query building, the search call and concurrent language enrichment
//  2. [integrations] - HTTP plumbing and the GitHub provider client
//  3. [errors] - Coded errors and the provider/transport failure taxonomy
//  4. [session] - Saved device-flow login
//  5. [config] - Config file, .env and credential resolution
//  6. [observability] - Optional search lifecycle hooks
//
// # Architecture
//
// One search flows through:
//
//	text + filters + sort
//	         ↓
//	    [search.BuildQuery] ("<text>"+in:name+...+language:L)
//	         ↓
//	    Provider.SearchRepositories (one request, first page of 10)
//	         ↓
//	    Provider.Languages (one request per hit, concurrently)
//	         ↓
//	    []search.Repository in provider order
//
// # Quick Start
//
//	hc := integrations.NewHTTPClient(ctx, os.Getenv("GITHUB_TOKEN"), 0)
//	gh, err := github.NewClient(hc, "")
//	if err != nil {
//	    return err
//	}
//
//	repos, err := search.NewClient(gh).Search(ctx, "parser",
//	    search.Filters{Stars: 100, Language: "rust"}, search.SortStars)
//
// [search]: github.com/matzehuels/reposcout/pkg/search
// [search.BuildQuery]: github.com/matzehuels/reposcout/pkg/search.BuildQuery
// [integrations]: github.com/matzehuels/reposcout/pkg/integrations
// [errors]: github.com/matzehuels/reposcout/pkg/errors
// [session]: github.com/matzehuels/reposcout/pkg/session
// [config]: github.com/matzehuels/reposcout/pkg/config
// [observability]: github.com/matzehuels/reposcout/pkg/observability
package pkg
