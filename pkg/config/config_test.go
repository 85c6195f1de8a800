package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/reposcout/pkg/errors"
	"github.com/matzehuels/reposcout/pkg/search"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvClientID, "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHub.APIURL != "https://api.github.com/" {
		t.Errorf("APIURL = %q", cfg.GitHub.APIURL)
	}
	if cfg.Timeout() != 30*time.Second {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if cfg.SortKey() != search.SortUnset {
		t.Errorf("SortKey() = %q", cfg.SortKey())
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvClientID, "")

	path := writeFile(t, t.TempDir(), "config.toml", `
[github]
api_url = "https://ghe.example.com/api/v3/"
timeout = "5s"
client_id = "Iv1.abc"

[search]
default_sort = "forks"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHub.APIURL != "https://ghe.example.com/api/v3/" {
		t.Errorf("APIURL = %q", cfg.GitHub.APIURL)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("Timeout() = %v", cfg.Timeout())
	}
	if cfg.GitHub.ClientID != "Iv1.abc" {
		t.Errorf("ClientID = %q", cfg.GitHub.ClientID)
	}
	if cfg.SortKey() != search.SortForks {
		t.Errorf("SortKey() = %q", cfg.SortKey())
	}
	if cfg.LogLevel() != log.DebugLevel {
		t.Errorf("LogLevel() = %v", cfg.LogLevel())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "http://localhost:8080/")
	t.Setenv(EnvClientID, "Iv1.env")

	path := writeFile(t, t.TempDir(), "config.toml", "[github]\nclient_id = \"Iv1.file\"\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GitHub.APIURL != "http://localhost:8080/" {
		t.Errorf("APIURL = %q", cfg.GitHub.APIURL)
	}
	if cfg.GitHub.ClientID != "Iv1.env" {
		t.Errorf("ClientID = %q", cfg.GitHub.ClientID)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvClientID, "")

	tests := []struct {
		name    string
		content string
	}{
		{"token in github table", "[github]\ntoken = \"ghp_x\"\n"},
		{"token at top level", "token = \"ghp_x\"\n"},
		{"bad toml", "[github\n"},
		{"bad url", "[github]\napi_url = \"ftp://x\"\n"},
		{"bad timeout", "[github]\ntimeout = \"soon\"\n"},
		{"negative timeout", "[github]\ntimeout = \"-1s\"\n"},
		{"bad sort", "[search]\ndefault_sort = \"updated\"\n"},
		{"bad level", "[log]\nlevel = \"loud\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "config.toml", tt.content)
			_, err := Load(path)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath: %v", err)
	}
	if path != filepath.Join("/tmp/xdg", "reposcout", "config.toml") {
		t.Errorf("DefaultPath() = %q", path)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "REPOSCOUT_TEST_A=from-file\nREPOSCOUT_TEST_B=from-file\n")

	t.Setenv("REPOSCOUT_TEST_B", "from-env")
	os.Unsetenv("REPOSCOUT_TEST_A")
	t.Cleanup(func() { os.Unsetenv("REPOSCOUT_TEST_A") })

	if err := LoadDotEnv(dir); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("REPOSCOUT_TEST_A"); got != "from-file" {
		t.Errorf("A = %q, want from-file", got)
	}
	if got := os.Getenv("REPOSCOUT_TEST_B"); got != "from-env" {
		t.Errorf("B = %q, real env must win", got)
	}

	if err := LoadDotEnv(t.TempDir()); err != nil {
		t.Errorf("missing .env: %v", err)
	}
}

func TestResolveToken(t *testing.T) {
	stored := func(tok string, err error) func() (string, error) {
		return func() (string, error) { return tok, err }
	}

	tests := []struct {
		name       string
		flag       string
		env        string
		stored     func() (string, error)
		wantToken  string
		wantSource TokenSource
		wantErr    bool
	}{
		{"flag wins", "f", "e", stored("s", nil), "f", TokenFromFlag, false},
		{"env before session", "", "e", stored("s", nil), "e", TokenFromEnv, false},
		{"session", "", "", stored("s", nil), "s", TokenFromSession, false},
		{"nothing", "", "", stored("", nil), "", TokenNone, false},
		{"nil store", "", "", nil, "", TokenNone, false},
		{"store error", "", "", stored("", stderrors.New("disk")), "", TokenNone, true},
		{"blank flag ignored", "  ", "e", nil, "e", TokenFromEnv, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvToken, tt.env)
			tok, src, err := ResolveToken(tt.flag, tt.stored)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if tok != tt.wantToken || src != tt.wantSource {
				t.Errorf("ResolveToken() = %q, %q; want %q, %q", tok, src, tt.wantToken, tt.wantSource)
			}
		})
	}
}
