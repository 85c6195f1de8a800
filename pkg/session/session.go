// Package session stores the GitHub credential obtained by `reposcout auth login`.
//
// A [Session] holds the access token and the user it belongs to. Sessions
// live in a [Store]; the CLI uses [CLIStore], a single well-known session in
// a [FileStore] under ~/.config/reposcout/sessions/.
//
// # Usage
//
//	store, err := session.NewCLIStore("")
//	if err != nil {
//	    return err
//	}
//
//	sess, err := session.New(token.AccessToken, user, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	store.SaveSession(ctx, sess)
//
//	// Later
//	token, err := store.Token(ctx) // "" when logged out or expired
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/matzehuels/reposcout/pkg/integrations/github"
)

// Session stores an authenticated user's credential.
type Session struct {
	ID          string       `json:"id"`
	AccessToken string       `json:"access_token"`
	User        *github.User `json:"user"`
	ExpiresAt   time.Time    `json:"expires_at"`
	CreatedAt   time.Time    `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Login returns the GitHub login of the session's user, or "".
func (s *Session) Login() string {
	if s == nil || s.User == nil {
		return ""
	}
	return s.User.Login
}

// UserID returns a provider-namespaced user identifier ("github:{id}").
func (s *Session) UserID() string {
	if s == nil || s.User == nil {
		return ""
	}
	return fmt.Sprintf("github:%d", s.User.ID)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)
	Set(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id string) error
}

// DefaultTTL is how long a saved login stays valid.
const DefaultTTL = 30 * 24 * time.Hour

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// New creates a new session with the given token and user.
func New(accessToken string, user *github.User, ttl time.Duration) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		ID:          id,
		AccessToken: accessToken,
		User:        user,
		ExpiresAt:   now.Add(ttl),
		CreatedAt:   now,
	}, nil
}
