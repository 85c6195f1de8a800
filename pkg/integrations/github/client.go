package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v53/github"

	"github.com/matzehuels/reposcout/pkg/errors"
	"github.com/matzehuels/reposcout/pkg/search"
)

// DefaultBaseURL is the public GitHub REST API root.
const DefaultBaseURL = "https://api.github.com/"

// Client implements [search.Provider] on top of go-github.
// Authentication is the job of the *http.Client passed to [NewClient].
type Client struct {
	gh *gh.Client
}

var _ search.Provider = (*Client)(nil)

// NewClient creates a GitHub API client that sends requests through
// httpClient. baseURL overrides the API root (GitHub Enterprise, tests);
// pass "" for [DefaultBaseURL].
func NewClient(httpClient *http.Client, baseURL string) (*Client, error) {
	c := gh.NewClient(httpClient)
	if baseURL != "" {
		if err := errors.ValidateURL(baseURL); err != nil {
			return nil, err
		}
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid API URL %q", baseURL)
		}
		c.BaseURL = u
	}
	return &Client{gh: c}, nil
}

// live makes go-github send the request even if an earlier response reported
// the rate limit as exhausted. Rate-limit errors then always come from GitHub
// and nothing carries over between calls.
func live(ctx context.Context) context.Context {
	return context.WithValue(ctx, gh.BypassRateLimitCheck, true)
}

// BaseURL returns the API root requests are sent to.
func (c *Client) BaseURL() string { return c.gh.BaseURL.String() }

// SearchRepositories runs one repository search and returns the items of the
// requested page. The slice is never nil.
func (c *Client) SearchRepositories(ctx context.Context, query string, opts search.SearchOptions) ([]*gh.Repository, error) {
	res, _, err := c.gh.Search.Repositories(live(ctx), query, &gh.SearchOptions{
		Sort:        string(opts.Sort),
		Order:       opts.Order,
		ListOptions: gh.ListOptions{PerPage: opts.PerPage},
	})
	if err != nil {
		return nil, convertError(err)
	}
	if res == nil || res.Repositories == nil {
		return []*gh.Repository{}, nil
	}
	return res.Repositories, nil
}

// Languages fetches the language breakdown at languagesURL, the
// "languages_url" of a search item. The URL must point at this client's API
// host so the credential is never sent elsewhere.
func (c *Client) Languages(ctx context.Context, languagesURL string) (map[string]int, error) {
	if err := ValidateResourceURL(c.gh.BaseURL, languagesURL); err != nil {
		return nil, errors.NewTransportError(err)
	}
	req, err := c.gh.NewRequest(http.MethodGet, languagesURL, nil)
	if err != nil {
		return nil, errors.NewTransportError(err)
	}

	langs := map[string]int{}
	if _, err := c.gh.Do(live(ctx), req, &langs); err != nil {
		return nil, convertError(err)
	}
	if langs == nil {
		langs = map[string]int{}
	}
	return langs, nil
}

// User returns the user the client's credential belongs to.
func (c *Client) User(ctx context.Context) (*User, error) {
	u, _, err := c.gh.Users.Get(live(ctx), "")
	if err != nil {
		return nil, convertError(err)
	}
	return &User{
		ID:        u.GetID(),
		Login:     u.GetLogin(),
		Name:      u.GetName(),
		AvatarURL: u.GetAvatarURL(),
		Email:     u.GetEmail(),
	}, nil
}

// RateLimit reports the remaining search requests for the current credential.
func (c *Client) RateLimit(ctx context.Context) (remaining, limit int, err error) {
	rl, _, err := c.gh.RateLimits(live(ctx))
	if err != nil {
		return 0, 0, convertError(err)
	}
	if rl == nil || rl.Search == nil {
		return 0, 0, errors.NewTransportError(fmt.Errorf("rate limit response has no search bucket"))
	}
	return rl.Search.Remaining, rl.Search.Limit, nil
}
