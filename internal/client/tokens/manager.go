// Package tokens owns the access/refresh token pair for the client session.
//
// The Manager is the single writer of token state: login and refresh replace
// the pair through it, logout clears it, and the HTTP transport reads from
// it. Values are mirrored into the credential store so a session survives a
// client restart within the configured lifetimes.
package tokens

import (
	"context"
	"fmt"
	"sync"

	"github.com/mastereducationkz/lms-front-sub003/internal/client/credstore"
	"github.com/mastereducationkz/lms-front-sub003/internal/common"
)

// Pair is the access/refresh token pair as issued by the auth endpoints.
type Pair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Manager holds the in-memory token state backed by a credential store.
// All methods are safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	store    credstore.Store
	hydrated bool

	access  string
	refresh string
	user    string
}

// NewManager constructs a Manager over the given store. Nothing is read from
// the store until the first accessor call.
func NewManager(store credstore.Store) *Manager {
	return &Manager{store: store}
}

// hydrate lazily loads persisted state; covers the first call after a restart
// before any explicit login. If both token keys are gone the session is
// unauthenticated regardless of a leftover cached user, so the user entry is
// dropped too.
func (m *Manager) hydrate(ctx context.Context) error {
	if m.hydrated {
		return nil
	}

	access, err := m.store.Get(ctx, common.AccessTokenKey)
	if err != nil {
		return fmt.Errorf("load access token: %w", err)
	}
	refresh, err := m.store.Get(ctx, common.RefreshTokenKey)
	if err != nil {
		return fmt.Errorf("load refresh token: %w", err)
	}
	user, err := m.store.Get(ctx, common.CurrentUserKey)
	if err != nil {
		return fmt.Errorf("load cached user: %w", err)
	}

	if access == "" && refresh == "" {
		user = ""
	}

	m.access, m.refresh, m.user = access, refresh, user
	m.hydrated = true
	return nil
}

// SetPair replaces both tokens in memory and in the store. The store write is
// a single transaction so the pair is never half-replaced.
func (m *Manager) SetPair(ctx context.Context, p Pair) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := m.store.SetMany(ctx, []credstore.Entry{
		credstore.NewEntry(common.AccessTokenKey, p.AccessToken, common.AccessTokenTTL),
		credstore.NewEntry(common.RefreshTokenKey, p.RefreshToken, common.RefreshTokenTTL),
	})
	if err != nil {
		return fmt.Errorf("persist token pair: %w", err)
	}

	m.access = p.AccessToken
	m.refresh = p.RefreshToken
	m.hydrated = true
	return nil
}

// AccessToken returns the current access token, "" if none. Local expiry is
// never checked; a dead token is discovered via a 401 from the server.
func (m *Manager) AccessToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hydrate(ctx); err != nil {
		return "", err
	}
	return m.access, nil
}

// RefreshToken returns the current refresh token, "" if none.
func (m *Manager) RefreshToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hydrate(ctx); err != nil {
		return "", err
	}
	return m.refresh, nil
}

// Clear wipes the token pair and the cached user from memory and store.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.access, m.refresh, m.user = "", "", ""
	m.hydrated = true

	for _, key := range []string{common.AccessTokenKey, common.RefreshTokenKey, common.CurrentUserKey} {
		if err := m.store.Delete(ctx, key); err != nil {
			return fmt.Errorf("clear credential[%s]: %w", key, err)
		}
	}
	return nil
}

// IsAuthenticated reports whether an access token is currently resolvable.
func (m *Manager) IsAuthenticated(ctx context.Context) bool {
	token, err := m.AccessToken(ctx)
	return err == nil && token != ""
}

// SetUser caches the serialized current-user profile.
func (m *Manager) SetUser(ctx context.Context, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Set(ctx, common.CurrentUserKey, raw, common.CurrentUserTTL); err != nil {
		return fmt.Errorf("persist cached user: %w", err)
	}
	m.user = raw
	return nil
}

// CachedUser returns the last cached profile, "" if none. The value is a
// convenience for synchronous reads; the server copy is authoritative.
func (m *Manager) CachedUser(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.hydrate(ctx); err != nil {
		return "", err
	}
	return m.user, nil
}
