// ABOUTME: Middleware for the mock backend: chaining, request logging, auth
// ABOUTME: Auth validates bearer tokens and stashes the caller in the context

package mockapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lazybrownass/zorel-leather/internal/client"
)

// chain applies middleware in declaration order; the first is outermost.
func chain(h http.HandlerFunc, middlewares ...func(http.HandlerFunc) http.HandlerFunc) http.HandlerFunc {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// logging logs each request with method, path, and duration at debug level.
func logging(log *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next(w, r)
			log.Debug("request handled",
				"method", r.Method,
				"path", r.URL.Path,
				"duration", time.Since(start))
		}
	}
}

type contextKey string

const callerKey contextKey = "caller"

// caller is the authenticated identity attached to a request.
type caller struct {
	User  client.User
	Scope string
}

// callerFrom extracts the authenticated caller, nil when anonymous.
func callerFrom(r *http.Request) *caller {
	c, ok := r.Context().Value(callerKey).(*caller)
	if !ok {
		return nil
	}
	return c
}

// withAuth resolves the bearer token if present and attaches the caller.
// Requests with a malformed or expired token are rejected outright; requests
// with no token pass through anonymous, per-route guards decide the rest.
func (s *Server) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next(w, r)
			return
		}
		if !strings.HasPrefix(header, "Bearer ") {
			writeDetail(w, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := parseToken(s.secret, strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			s.log.Debug("auth rejected", "path", r.URL.Path, "error", err)
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		user, ok := s.store.UserByID(claims.Subject)
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), callerKey, &caller{User: *user, Scope: claims.Scope})
		next(w, r.WithContext(ctx))
	}
}

// requireAuth rejects anonymous requests.
func requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if callerFrom(r) == nil {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next(w, r)
	}
}

// requireAdmin rejects callers without a staff role.
func requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := callerFrom(r)
		if c == nil {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		if c.User.Role != client.RoleAdmin && c.User.Role != client.RoleSuperAdmin {
			writeDetail(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	}
}
