package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/reposcout/pkg/errors"
)

// FileStore keeps each session in <dir>/<id>.json, readable only by the owner.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore opens (and creates) dir. "" means [DefaultDir].
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// DefaultDir returns ~/.config/reposcout/sessions.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "reposcout", "sessions"), nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Get returns nil, nil for a missing or expired session. Expired files are
// removed. An unreadable file is an INVALID_CONFIG error naming the file.
func (s *FileStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p := s.path(id)
	data, err := os.ReadFile(p)
	switch {
	case os.IsNotExist(err):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("read session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err,
			"saved login %s is corrupt, run 'reposcout auth logout'", p)
	}
	if sess.IsExpired() {
		_ = os.Remove(p)
		return nil, nil
	}
	return &sess, nil
}

// Set writes sess through a temporary file so a crash never leaves half a token.
func (s *FileStore) Set(_ context.Context, sess *Session) error {
	if sess == nil || sess.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "session has no ID")
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, sess.ID+".*.tmp")
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	defer os.Remove(tmp.Name())

	// CreateTemp already uses 0600.
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(sess.ID)); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// Delete removes a session. Deleting a missing session is not an error.
func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// cliSessionID names the file holding the CLI's GitHub login.
const cliSessionID = "github"

// CLIStore is the CLI's single saved GitHub login.
type CLIStore struct {
	files *FileStore
}

// NewCLIStore opens the login store in dir ("" for [DefaultDir]).
func NewCLIStore(dir string) (*CLIStore, error) {
	fs, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return &CLIStore{files: fs}, nil
}

// GetSession returns the saved login, or nil.
func (c *CLIStore) GetSession(ctx context.Context) (*Session, error) {
	return c.files.Get(ctx, cliSessionID)
}

// SaveSession replaces the saved login with sess.
func (c *CLIStore) SaveSession(ctx context.Context, sess *Session) error {
	sess.ID = cliSessionID
	return c.files.Set(ctx, sess)
}

// DeleteSession forgets the saved login.
func (c *CLIStore) DeleteSession(ctx context.Context) error {
	return c.files.Delete(ctx, cliSessionID)
}

// Token returns the saved access token, or "" when there is no valid login.
func (c *CLIStore) Token(ctx context.Context) (string, error) {
	sess, err := c.GetSession(ctx)
	if err != nil || sess == nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// Path returns the login file.
func (c *CLIStore) Path() string {
	return c.files.path(cliSessionID)
}
