// Package config loads reposcout's settings.
//
// Settings come from a TOML file (by default
// $XDG_CONFIG_HOME/reposcout/config.toml), with environment variables and a
// .env file in the working directory for the credential-bearing values:
//
//	[github]
//	api_url   = "https://api.github.com/"
//	timeout   = "30s"
//	client_id = "Iv1.0123456789abcdef"
//
//	[search]
//	default_sort = "stars"
//
//	[log]
//	level = "info"
//
// The file must not hold a token. Tokens are read at runtime only, see
// [ResolveToken].
package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/matzehuels/reposcout/pkg/errors"
	"github.com/matzehuels/reposcout/pkg/integrations"
	"github.com/matzehuels/reposcout/pkg/search"
)

const appName = "reposcout"

// Environment variables read at runtime.
const (
	EnvToken    = "GITHUB_TOKEN"
	EnvClientID = "GITHUB_CLIENT_ID"
	EnvAPIURL   = "GITHUB_API_URL"
)

// Config is the parsed configuration file.
type Config struct {
	GitHub GitHub `toml:"github"`
	Search Search `toml:"search"`
	Log    Log    `toml:"log"`
}

// GitHub holds provider settings.
type GitHub struct {
	APIURL   string   `toml:"api_url"`
	Timeout  Duration `toml:"timeout"`
	ClientID string   `toml:"client_id"`
}

// Search holds search defaults.
type Search struct {
	DefaultSort string `toml:"default_sort"`
}

// Log holds logging settings.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a string ("30s") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		GitHub: GitHub{
			APIURL:  "https://api.github.com/",
			Timeout: Duration{integrations.DefaultTimeout},
		},
		Log: Log{Level: "info"},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/reposcout/config.toml, falling back
// to ~/.config/reposcout/config.toml.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the configuration at path on top of [Default]. A missing file is
// not an error. GITHUB_API_URL and GITHUB_CLIENT_ID override the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	default:
		if md.IsDefined("github", "token") || md.IsDefined("token") {
			return nil, errors.New(errors.ErrCodeInvalidConfig,
				"%s: tokens are not read from the config file, use %s or 'reposcout auth login'", path, EnvToken)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			log.Warn("ignoring unknown config keys", "file", path, "keys", undecoded)
		}
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		cfg.GitHub.APIURL = v
	}
	if v := os.Getenv(EnvClientID); v != "" {
		cfg.GitHub.ClientID = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if err := errors.ValidateURL(c.GitHub.APIURL); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "github.api_url")
	}
	if c.GitHub.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "github.timeout must not be negative")
	}
	if _, err := search.ParseSortKey(c.Search.DefaultSort); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "search.default_sort")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	return nil
}

// Timeout returns the request timeout, falling back to the default for zero.
func (c *Config) Timeout() time.Duration {
	if c.GitHub.Timeout.Duration == 0 {
		return integrations.DefaultTimeout
	}
	return c.GitHub.Timeout.Duration
}

// SortKey returns the configured default sort.
func (c *Config) SortKey() search.SortKey {
	k, _ := search.ParseSortKey(c.Search.DefaultSort)
	return k
}

// LogLevel returns the configured log level, info if unset.
func (c *Config) LogLevel() log.Level {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// LoadDotEnv loads a .env file from dir into the environment. Variables
// already set are kept, and a missing file is ignored.
func LoadDotEnv(dir string) error {
	err := godotenv.Load(filepath.Join(dir, ".env"))
	if err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
	}
	return nil
}

// TokenSource names where a resolved token came from.
type TokenSource string

const (
	TokenFromFlag    TokenSource = "flag"
	TokenFromEnv     TokenSource = "env"
	TokenFromSession TokenSource = "session"
	TokenNone        TokenSource = "none"
)

// ResolveToken picks the credential: the flag value, then GITHUB_TOKEN, then
// the saved login returned by stored. stored may be nil.
func ResolveToken(flag string, stored func() (string, error)) (string, TokenSource, error) {
	if t := strings.TrimSpace(flag); t != "" {
		return t, TokenFromFlag, nil
	}
	if t := strings.TrimSpace(os.Getenv(EnvToken)); t != "" {
		return t, TokenFromEnv, nil
	}
	if stored != nil {
		t, err := stored()
		if err != nil {
			return "", TokenNone, err
		}
		if t != "" {
			return t, TokenFromSession, nil
		}
	}
	return "", TokenNone, nil
}
