// Package github provides the GitHub implementation of the search provider.
//
// # Overview
//
// [Client] wraps go-github and implements [search.Provider]: repository
// search and the per-repository languages endpoint. It also exposes the
// authenticated user and remaining search quota for the CLI's auth commands.
//
// # Usage
//
//	hc := integrations.NewHTTPClient(ctx, token, 30*time.Second)
//	client, err := github.NewClient(hc, "")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	searcher := search.NewClient(client)
//	repos, err := searcher.Search(ctx, "parser", search.Filters{Stars: 100}, search.SortStars)
//
// # Authentication
//
// The client never holds a credential itself. Pass an *http.Client whose
// transport authenticates (see [integrations.NewHTTPClient]). Without a token
// GitHub allows 10 search requests per minute; with one, 30.
//
// # Errors
//
// Every method returns either an [errors.ProviderRequestError] (GitHub
// answered with an error: validation failure, rate limit, not found) or an
// [errors.TransportError] (anything else). The go-github error is kept as the
// cause.
//
// # Device Flow
//
// [OAuthClient] implements the device authorization flow used by
// `reposcout auth login`. It needs an OAuth App client ID from configuration;
// none is built in.
//
// [search.Provider]: github.com/matzehuels/reposcout/pkg/search.Provider
// [integrations.NewHTTPClient]: github.com/matzehuels/reposcout/pkg/integrations.NewHTTPClient
// [errors.ProviderRequestError]: github.com/matzehuels/reposcout/pkg/errors.ProviderRequestError
// [errors.TransportError]: github.com/matzehuels/reposcout/pkg/errors.TransportError
package github
