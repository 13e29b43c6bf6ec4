// Package session implements the user-facing auth operations of the LMS
// client: login, logout, and current-user retrieval, built on the typed API
// client and the token manager.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mastereducationkz/lms-front-sub003/internal/client/api"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/models"
	"github.com/mastereducationkz/lms-front-sub003/internal/client/tokens"
	"github.com/mastereducationkz/lms-front-sub003/internal/logging"
)

// Service is the session facade. The logout field is the same canonical
// procedure injected into the auth transport, so a user-initiated logout and
// one forced by a failed refresh run identical code.
type Service struct {
	api    *api.Client
	tokens *tokens.Manager
	logout api.LogoutFunc
	log    logging.Logger
}

// New constructs the session facade.
func New(apiClient *api.Client, tm *tokens.Manager, logout api.LogoutFunc, log logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{api: apiClient, tokens: tm, logout: logout, log: log}
}

// Login authenticates with email/password, stores the resulting token pair,
// then fetches and caches the authoritative profile from the server.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, error) {
	pair, err := s.api.Login(ctx, email, password)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrNetwork):
			return nil, fmt.Errorf("network error, check your connection: %w", err)
		case errors.Is(err, api.ErrUnauthorized):
			return nil, fmt.Errorf("invalid email or password: %w", err)
		default:
			return nil, err
		}
	}
	if err := s.tokens.SetPair(ctx, pair); err != nil {
		return nil, err
	}

	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "logged in", "email", user.Email, "role", user.Role)
	return user, nil
}

// Logout runs the canonical logout procedure: best-effort server call,
// unconditional wipe of local credentials.
func (s *Service) Logout(ctx context.Context) error {
	return s.logout(ctx)
}

// IsAuthenticated reports whether an access token is currently resolvable.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	return s.tokens.IsAuthenticated(ctx)
}

// CurrentUser fetches the profile from the server and refreshes the local
// cache. Network failures, expired sessions, and other server errors are
// reported with distinct messages.
func (s *Service) CurrentUser(ctx context.Context) (*models.User, error) {
	user, err := s.api.Me(ctx)
	if err != nil {
		switch {
		case errors.Is(err, api.ErrNetwork):
			return nil, fmt.Errorf("network error, check your connection: %w", err)
		case errors.Is(err, api.ErrUnauthorized):
			return nil, fmt.Errorf("session expired, log in again: %w", err)
		default:
			return nil, fmt.Errorf("could not load profile: %w", err)
		}
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return nil, fmt.Errorf("encode cached user: %w", err)
	}
	if err := s.tokens.SetUser(ctx, string(raw)); err != nil {
		s.log.Warn(ctx, "cache current user", "err", err)
	}
	return user, nil
}

// CachedUser returns the last profile cached by CurrentUser without a server
// round trip, or nil when nothing usable is cached. The cache is advisory;
// reconcile with CurrentUser when it matters.
func (s *Service) CachedUser(ctx context.Context) (*models.User, error) {
	raw, err := s.tokens.CachedUser(ctx)
	if err != nil || raw == "" {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, nil
	}
	return &user, nil
}
