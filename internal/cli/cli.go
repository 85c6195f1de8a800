// Package cli implements the reposcout command-line interface.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/reposcout/pkg/buildinfo"
	"github.com/matzehuels/reposcout/pkg/config"
	"github.com/matzehuels/reposcout/pkg/errors"
	"github.com/matzehuels/reposcout/pkg/integrations"
	"github.com/matzehuels/reposcout/pkg/integrations/github"
	"github.com/matzehuels/reposcout/pkg/observability"
	"github.com/matzehuels/reposcout/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "reposcout"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	verbose    bool
	configPath string
	config     *config.Config
	sessionDir string // "" means session.DefaultDir
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Reposcout searches GitHub repositories",
		Long: `Reposcout searches GitHub repositories by text, minimum forks, minimum stars
and language, and shows each hit with its language breakdown.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/reposcout/config.toml)")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.queryCommand())
	root.AddCommand(c.authCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads .env and the config file, then attaches the logger to the
// command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadDotEnv("."); err != nil {
		return err
	}

	if c.configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return err
		}
		c.configPath = path
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg

	level := cfg.LogLevel()
	if c.verbose {
		level = LogDebug
	}
	c.SetLogLevel(level)
	if level <= LogDebug {
		observability.SetSearchHooks(timingHooks{logger: c.Logger})
	}

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Client Factory
// =============================================================================

// savedToken reads the token from `auth login`. A broken login file is
// reported and treated as no login.
func (c *CLI) savedToken(ctx context.Context) (string, error) {
	store, err := session.NewCLIStore(c.sessionDir)
	if err == nil {
		var token string
		if token, err = store.Token(ctx); err == nil {
			return token, nil
		}
	}
	loggerFromContext(ctx).Warn("ignoring saved login", "err", errors.UserMessage(err))
	return "", nil
}

// newGitHubClient builds an API client with the first available credential
// (flag, GITHUB_TOKEN, saved login). Without one it warns and continues
// unauthenticated.
func (c *CLI) newGitHubClient(ctx context.Context, tokenFlag string) (*github.Client, error) {
	logger := loggerFromContext(ctx)
	token, source, err := config.ResolveToken(tokenFlag, func() (string, error) {
		return c.savedToken(ctx)
	})
	if err != nil {
		return nil, err
	}

	if source == config.TokenNone {
		logger.Warn("no GitHub token, requests are unauthenticated and heavily rate limited",
			"hint", "set "+config.EnvToken+" or run 'reposcout auth login'")
	} else {
		logger.Debug("using GitHub token", "source", string(source))
	}

	hc := integrations.NewHTTPClient(ctx, token, c.config.Timeout())
	return github.NewClient(hc, c.config.GitHub.APIURL)
}
