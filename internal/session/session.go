// ABOUTME: Client-side session lifecycle: login, registration, logout, refresh
// ABOUTME: The only component that writes to the durable token store

package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/lazybrownass/zorel-leather/internal/store"
)

// Session owns the client-side identity state. The token store is shared
// with the API client (which only reads it); all writes happen here.
type Session struct {
	api    *client.Client
	tokens store.Store

	mu   sync.RWMutex
	user *client.User
}

// New creates a session over the given client and token store.
func New(api *client.Client, tokens store.Store) *Session {
	return &Session{api: api, tokens: tokens}
}

// Login authenticates a customer. The token is persisted only after the
// login call succeeds; a failed login commits nothing.
func (s *Session) Login(ctx context.Context, email, password string) (*client.User, error) {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(store.KeyAuthToken, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("persisting session token: %w", err)
	}
	return s.fetchUser(ctx)
}

// Register creates an account with the same commit pattern as Login.
func (s *Session) Register(ctx context.Context, req client.RegisterRequest) (*client.User, error) {
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(store.KeyAuthToken, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("persisting session token: %w", err)
	}
	return s.fetchUser(ctx)
}

// AdminLogin authenticates staff and persists the admin-scoped token. The
// admin credential is independent of the customer session.
func (s *Session) AdminLogin(ctx context.Context, email, password string) (*client.User, error) {
	resp, err := s.api.AdminLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Set(store.KeyAdminToken, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("persisting admin token: %w", err)
	}
	return s.fetchUser(ctx)
}

// Logout clears the customer token and in-memory identity. The admin token
// is a separate credential and is deliberately left alone.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.tokens.Delete(store.KeyAuthToken)
}

// AdminLogout clears only the admin-scoped token.
func (s *Session) AdminLogout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.tokens.Delete(store.KeyAdminToken)
}

// Refresh resolves the stored token to a user. Run once at startup. With no
// token it resolves immediately with no user. Any failure of the who-am-I
// call (expired token, network down) is treated as token invalidation: the
// customer token and user state are cleared. This is the only expiry
// detection mechanism; there is no proactive refresh.
func (s *Session) Refresh(ctx context.Context) (*client.User, error) {
	if store.BearerToken(s.tokens) == "" {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		return nil, nil
	}
	return s.fetchUser(ctx)
}

func (s *Session) fetchUser(ctx context.Context) (*client.User, error) {
	user, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.mu.Lock()
		s.user = nil
		s.mu.Unlock()
		if delErr := s.tokens.Delete(store.KeyAuthToken); delErr != nil {
			return nil, fmt.Errorf("clearing invalid token: %w", delErr)
		}
		return nil, err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return user, nil
}

// User returns the current in-memory identity, or nil.
func (s *Session) User() *client.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthenticated reports whether an identity is loaded. Recomputed from
// current state on every call, never cached.
func (s *Session) IsAuthenticated() bool {
	return s.User() != nil
}

// IsAdmin reports whether the current user holds an admin role.
func (s *Session) IsAdmin() bool {
	u := s.User()
	return u != nil && (u.Role == client.RoleAdmin || u.Role == client.RoleSuperAdmin)
}

// IsSuperAdmin reports whether the current user is a super admin.
func (s *Session) IsSuperAdmin() bool {
	u := s.User()
	return u != nil && u.Role == client.RoleSuperAdmin
}
