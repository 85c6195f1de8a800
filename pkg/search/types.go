package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v53/github"

	"github.com/matzehuels/reposcout/pkg/errors"
)

// Request parameters that never vary between calls.
const (
	// PageSize is the number of results requested. Only the first page is fetched.
	PageSize = 10

	// OrderDesc is the only sort order ever requested.
	OrderDesc = "desc"
)

// SortKey selects the provider-side ordering of results.
type SortKey string

// Supported sort keys. SortUnset leaves ordering to the provider (best match).
const (
	SortUnset SortKey = ""
	SortForks SortKey = "forks"
	SortStars SortKey = "stars"
)

// ParseSortKey converts user input to a SortKey. "" and "default" map to
// SortUnset.
func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return SortUnset, nil
	case "forks":
		return SortForks, nil
	case "stars":
		return SortStars, nil
	default:
		return SortUnset, errors.New(errors.ErrCodeInvalidSort, "unknown sort %q (want default, stars or forks)", s)
	}
}

// Filters narrows a search. Zero counts and an empty language mean "no filter".
type Filters struct {
	Forks    int    `json:"forks"`
	Stars    int    `json:"stars"`
	Language string `json:"language"`
}

// Validate rejects negative counts and unusable language values.
func (f Filters) Validate() error {
	if err := errors.ValidateCount("forks", f.Forks); err != nil {
		return err
	}
	if err := errors.ValidateCount("stars", f.Stars); err != nil {
		return err
	}
	return errors.ValidateLanguage(f.Language)
}

// Query is the value a caller keeps to replay a search, e.g. in a history list.
// The client never builds or stores one itself.
type Query struct {
	SearchText string  `json:"searchText"`
	Filters    Filters `json:"filters"`
	SortBy     SortKey `json:"sortBy,omitempty"`
}

// String describes the query in words, one clause per active filter.
func (q Query) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search term: %q", q.SearchText)
	if q.Filters.Forks > 0 {
		fmt.Fprintf(&b, ", with at least %d forks", q.Filters.Forks)
	}
	if q.Filters.Language != "" {
		fmt.Fprintf(&b, ", containing code written in %s", q.Filters.Language)
	}
	if q.Filters.Stars > 0 {
		fmt.Fprintf(&b, ", with at least %d stars", q.Filters.Stars)
	}
	if q.SortBy != SortUnset {
		fmt.Fprintf(&b, ", with results sorted by %s", q.SortBy)
	}
	return b.String()
}

// Repository is a search hit enriched with its language breakdown.
// Languages maps language name to bytes of code and is never nil.
// Encoded as JSON, the provider fields sit next to "languages".
type Repository struct {
	*github.Repository
	Languages map[string]int `json:"languages"`
}

// SearchOptions are the request parameters passed to the provider alongside
// the query string.
type SearchOptions struct {
	Sort    SortKey // empty means provider default
	Order   string
	PerPage int
}

// Provider is the remote search API.
type Provider interface {
	// SearchRepositories returns the items of the first result page.
	SearchRepositories(ctx context.Context, query string, opts SearchOptions) ([]*github.Repository, error)

	// Languages fetches the language breakdown behind a repository's
	// languages URL.
	Languages(ctx context.Context, languagesURL string) (map[string]int, error)
}
