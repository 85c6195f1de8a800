package search

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v53/github"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/reposcout/pkg/observability"
)

// Client searches repositories and enriches every hit with its languages.
// It keeps no state between calls and is safe for concurrent use.
type Client struct {
	provider Provider
	logger   *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger failures are reported to.
// Defaults to log.Default().
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client backed by p.
func NewClient(p Provider, opts ...Option) *Client {
	c := &Client{provider: p, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search runs one search and returns the first page of results in provider
// order, each with its Languages filled in.
//
// One language request is issued per result, all at once. If the search or
// any language request fails, the remaining requests are cancelled, nothing
// is returned and the failure is logged then returned unchanged. An empty
// page is a success: the result is an empty, non-nil slice.
func (c *Client) Search(ctx context.Context, searchText string, filters Filters, sortBy SortKey) ([]Repository, error) {
	id := uuid.NewString()
	query := BuildQuery(searchText, filters)
	logger := c.logger.With("search_id", id)
	hooks := observability.Search()

	start := time.Now()
	hooks.OnSearchStart(ctx, id, query)
	logger.Debug("searching", "query", query, "sort", string(sortBy))

	repos, err := c.run(ctx, id, query, sortBy)
	elapsed := time.Since(start)
	hooks.OnSearchComplete(ctx, id, len(repos), elapsed, err)
	if err != nil {
		reportFailure(logger, err)
		return nil, err
	}

	logger.Debug("search complete", "results", len(repos), "elapsed", elapsed.Round(time.Millisecond))
	return repos, nil
}

func (c *Client) run(ctx context.Context, id, query string, sortBy SortKey) ([]Repository, error) {
	items, err := c.provider.SearchRepositories(ctx, query, SearchOptions{
		Sort:    sortBy,
		Order:   OrderDesc,
		PerPage: PageSize,
	})
	if err != nil {
		return nil, err
	}
	return c.enrich(ctx, id, items)
}

// enrich fetches all language breakdowns concurrently. Each goroutine writes
// only its own slot, so output order is input order.
func (c *Client) enrich(ctx context.Context, id string, items []*github.Repository) ([]Repository, error) {
	out := make([]Repository, len(items))
	hooks := observability.Search()

	g, gctx := errgroup.WithContext(ctx)
	for i, item := range items {
		g.Go(func() error {
			url := item.GetLanguagesURL()
			start := time.Now()
			langs, err := c.provider.Languages(gctx, url)
			hooks.OnEnrichComplete(gctx, id, url, time.Since(start), err)
			if err != nil {
				return err
			}
			if langs == nil {
				langs = map[string]int{}
			}
			out[i] = Repository{Repository: item, Languages: langs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
