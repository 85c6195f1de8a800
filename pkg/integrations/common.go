package integrations

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

// DefaultTimeout is the per-request timeout the CLI configures when
// github.timeout is unset. NewHTTPClient itself applies none by default.
const DefaultTimeout = 30 * time.Second

// NewHTTPClient creates an HTTP client for API requests.
//
// With a non-empty token, every request carries it as a bearer token via an
// oauth2 transport. With an empty token the client is unauthenticated, which
// GitHub serves with a much lower rate limit.
//
// timeout is a per-request deadline chosen by the caller; zero or negative
// means none, leaving deadlines to the request context.
//
// ctx only supplies the base client through oauth2.HTTPClient, if set; it does
// not bound requests.
func NewHTTPClient(ctx context.Context, token string, timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}
	if token == "" {
		return &http.Client{Timeout: timeout}
	}
	hc := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	hc.Timeout = timeout
	return hc
}
