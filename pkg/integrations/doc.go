// Package integrations provides HTTP plumbing shared by provider API clients.
//
// # Overview
//
// [NewHTTPClient] builds the *http.Client every provider client sits on: an
// optional per-request timeout chosen by the caller and, when a token is
// given, an oauth2 transport that attaches it to each outgoing request. The token is always supplied at
// runtime (flag, environment or stored session); nothing is compiled in.
//
//	hc := integrations.NewHTTPClient(ctx, os.Getenv("GITHUB_TOKEN"), 30*time.Second)
//	client, err := github.NewClient(hc, "")
//
// Provider-specific clients live in subpackages:
//
//   - [github]: GitHub search and languages API, device flow login
//
// [github]: github.com/matzehuels/reposcout/pkg/integrations/github
package integrations
