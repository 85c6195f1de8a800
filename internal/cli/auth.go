package cli

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/reposcout/pkg/config"
	"github.com/matzehuels/reposcout/pkg/errors"
	"github.com/matzehuels/reposcout/pkg/integrations"
	"github.com/matzehuels/reposcout/pkg/integrations/github"
	"github.com/matzehuels/reposcout/pkg/session"
)

// loginTimeout bounds the whole device flow.
const loginTimeout = 5 * time.Minute

// authCommand creates the auth command with subcommands.
func (c *CLI) authCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage the saved GitHub login",
		Long: `Authenticate with GitHub so searches run with a higher rate limit.

Login uses the device flow and needs an OAuth App client ID, given by
GITHUB_CLIENT_ID or github.client_id in the config file. The token is stored
in ~/.config/reposcout/sessions/ (mode 0600). GITHUB_TOKEN, when set, takes
precedence over the saved login.`,
	}

	cmd.AddCommand(c.authLoginCommand())
	cmd.AddCommand(c.authLogoutCommand())
	cmd.AddCommand(c.authStatusCommand())

	return cmd
}

func (c *CLI) authLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Authenticate with GitHub using the device flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := session.NewCLIStore(c.sessionDir)
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			if existing, _ := store.GetSession(ctx); existing != nil {
				printInfo("Already logged in as @%s", existing.Login())
				printNextStep("To re-authenticate, run", "reposcout auth logout")
				return nil
			}
			return c.runLogin(ctx, store)
		},
	}
}

func (c *CLI) authLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the saved GitHub login",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewCLIStore(c.sessionDir)
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			if err := store.DeleteSession(cmd.Context()); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

func (c *CLI) authStatusCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which credential searches use and the remaining search quota",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), c.config.Timeout())
			defer cancel()
			return c.runStatus(ctx, token)
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "GitHub token to check instead of the resolved one")

	return cmd
}

// runStatus verifies the resolved credential against the API.
func (c *CLI) runStatus(ctx context.Context, tokenFlag string) error {
	store, err := session.NewCLIStore(c.sessionDir)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	_, source, err := config.ResolveToken(tokenFlag, func() (string, error) { return c.savedToken(ctx) })
	if err != nil {
		return err
	}

	client, err := c.newGitHubClient(ctx, tokenFlag)
	if err != nil {
		return err
	}

	spinner := newSpinner(ctx, "Checking credentials...")
	spinner.Start()

	var user *github.User
	if source != config.TokenNone {
		if user, err = client.User(ctx); err != nil {
			spinner.StopWithError("Credential rejected")
			return fmt.Errorf("verify token: %s", errors.UserMessage(err))
		}
	}
	remaining, limit, err := client.RateLimit(ctx)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("rate limit: %s", errors.UserMessage(err))
	}

	if user == nil {
		printWarning("Not authenticated")
		printNextStep("To log in, run", "reposcout auth login")
	} else {
		printSuccess("Authenticated as @%s", user.Login)
		if user.Name != "" {
			printKeyValue("Name", user.Name)
		}
	}
	printKeyValue("Source", string(source))
	if source == config.TokenFromSession {
		if sess, _ := store.GetSession(ctx); sess != nil {
			printKeyValue("Expires", sess.ExpiresAt.Format("Jan 2, 2006"))
		}
	}
	printKeyValue("API", client.BaseURL())
	printKeyValue("Search", fmt.Sprintf("%d of %d requests left", remaining, limit))
	return nil
}

// runLogin runs the device flow and saves the resulting token.
func (c *CLI) runLogin(ctx context.Context, store *session.CLIStore) error {
	clientID := c.config.GitHub.ClientID
	if clientID == "" {
		return errors.New(errors.ErrCodeInvalidConfig,
			"no OAuth client ID: set %s or github.client_id in %s", config.EnvClientID, c.configPath)
	}

	oauthClient := github.NewOAuthClient(github.OAuthConfig{ClientID: clientID})

	loginCtx, cancel := context.WithTimeout(ctx, loginTimeout)
	defer cancel()

	deviceResp, err := oauthClient.RequestDeviceCode(loginCtx)
	if err != nil {
		return fmt.Errorf("request device code: %w", err)
	}

	printNewline()
	fmt.Println(StyleTitle.Render("GitHub Device Authorization"))
	printNewline()
	printKeyValue("Code", StyleNumber.Render(deviceResp.UserCode))
	printKeyValue("URL", StyleLink.Render(deviceResp.VerificationURI))
	printNewline()

	if err := openBrowser(deviceResp.VerificationURI); err != nil {
		printDetail("Copy the URL above and paste it in your browser")
	} else {
		printDetail("Opening browser...")
	}
	printInline("Waiting for authorization...")

	token, err := oauthClient.PollForToken(loginCtx, deviceResp.DeviceCode, deviceResp.Interval)
	printNewline()
	if err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	hc := integrations.NewHTTPClient(loginCtx, token.AccessToken, c.config.Timeout())
	client, err := github.NewClient(hc, c.config.GitHub.APIURL)
	if err != nil {
		return err
	}
	user, err := client.User(loginCtx)
	if err != nil {
		return fmt.Errorf("fetch user: %s", errors.UserMessage(err))
	}

	sess, err := session.New(token.AccessToken, user, session.DefaultTTL)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := store.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	printSuccess("Logged in as @%s", user.Login)
	printDetail("Token saved to %s", store.Path())
	return nil
}

func openBrowser(rawURL string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "https" && parsed.Scheme != "http" {
		return fmt.Errorf("URL scheme must be http or https, got %q", parsed.Scheme)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "linux":
		cmd = exec.Command("xdg-open", rawURL)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", rawURL)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
