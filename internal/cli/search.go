package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reposcout/pkg/search"
)

// searchOpts holds the flags shared by search and query.
type searchOpts struct {
	forks    int
	stars    int
	language string
	sort     string
}

func (o *searchOpts) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&o.forks, "forks", 0, "minimum number of forks (0 = no minimum)")
	cmd.Flags().IntVar(&o.stars, "stars", 0, "minimum number of stars (0 = no minimum)")
	cmd.Flags().StringVarP(&o.language, "language", "l", "", "only repositories written in this language")
	cmd.Flags().StringVar(&o.sort, "sort", "", "sort results by: default, stars, forks (defaults to config search.default_sort)")

	_ = cmd.RegisterFlagCompletionFunc("sort", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"default", "stars", "forks"}, cobra.ShellCompDirectiveNoFileComp
	})
}

// query validates the flags and builds the search request.
func (o *searchOpts) query(args []string, defaultSort search.SortKey) (search.Query, error) {
	filters := search.Filters{Forks: o.forks, Stars: o.stars, Language: strings.TrimSpace(o.language)}
	if err := filters.Validate(); err != nil {
		return search.Query{}, err
	}

	sortBy := defaultSort
	if o.sort != "" {
		k, err := search.ParseSortKey(o.sort)
		if err != nil {
			return search.Query{}, err
		}
		sortBy = k
	}

	return search.Query{
		SearchText: strings.Join(args, " "),
		Filters:    filters,
		SortBy:     sortBy,
	}, nil
}

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var (
		opts    searchOpts
		asJSON  bool
		token   string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "search <text...>",
		Short: "Search GitHub repositories",
		Long: `Search GitHub repositories whose name, description, topics or README match
the text, and show the first page of results with their languages.

Arguments are joined with spaces into one phrase.`,
		Example: `  reposcout search parser --stars 100 --language rust --sort stars
  reposcout search "http router" --forks 10 --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.query(args, c.config.SortKey())
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			return c.runSearch(ctx, cmd.OutOrStdout(), q, token, asJSON)
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (overrides GITHUB_TOKEN and the saved login)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "overall deadline for the search, e.g. 20s (0 = none)")

	return cmd
}

// runSearch executes q and writes the results to w.
func (c *CLI) runSearch(ctx context.Context, w io.Writer, q search.Query, token string, asJSON bool) error {
	logger := loggerFromContext(ctx)

	provider, err := c.newGitHubClient(ctx, token)
	if err != nil {
		return err
	}
	client := search.NewClient(provider, search.WithLogger(logger))

	if !asJSON {
		fmt.Fprintln(w, StyleTitle.Render(q.String()))
	}

	spinner := newSpinner(ctx, "Searching GitHub...")
	spinner.Start()
	prog := newProgress(logger)

	repos, err := client.Search(ctx, q.SearchText, q.Filters, q.SortBy)
	spinner.Stop()
	if err != nil {
		return err
	}
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(repos)
	}

	if len(repos) == 0 {
		fmt.Fprintln(w, StyleDim.Render("No repositories found."))
		return nil
	}
	writeResults(w, repos)
	prog.done(fmt.Sprintf("Found %d repositories", len(repos)))
	return nil
}

// queryCommand creates the query command, a dry run of search.
func (c *CLI) queryCommand() *cobra.Command {
	var (
		opts   searchOpts
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "query <text...>",
		Short: "Print the GitHub search query without running it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := opts.query(args, c.config.SortKey())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					search.Query
					Q string `json:"q"`
				}{q, search.BuildQuery(q.SearchText, q.Filters)})
			}

			fmt.Fprintln(w, q.String())
			fmt.Fprintln(w, search.BuildQuery(q.SearchText, q.Filters))
			return nil
		},
	}

	opts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the request as JSON")

	return cmd
}
