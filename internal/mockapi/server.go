// ABOUTME: Mock storefront API server assembly
// ABOUTME: Wires the route table through the middleware chain onto a ServeMux

package mockapi

import (
	"crypto/rand"
	"log/slog"
	"net/http"
)

// Server is an in-memory storefront backend. It serves the same wire
// contract as the production API, for local development and tests.
type Server struct {
	store  *Store
	secret []byte
	log    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithStore uses a caller-provided store instead of the seeded default.
func WithStore(store *Store) Option {
	return func(s *Server) { s.store = store }
}

// WithSecret pins the token signing secret, for tests that mint tokens.
func WithSecret(secret []byte) Option {
	return func(s *Server) { s.secret = secret }
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// NewServer builds a mock backend with a seeded catalog unless overridden.
func NewServer(opts ...Option) *Server {
	s := &Server{
		log: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewStore()
		s.store.Seed()
	}
	if len(s.secret) == 0 {
		s.secret = make([]byte, 32)
		rand.Read(s.secret)
	}
	return s
}

// Store exposes the backing store, for tests that arrange state directly.
func (s *Server) Store() *Store {
	return s.store
}

// Handler assembles the route table into an http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, rt := range s.routes() {
		h := rt.Handler
		switch {
		case rt.Admin:
			h = chain(h, s.withAuth, requireAdmin)
		case rt.Auth:
			h = chain(h, s.withAuth, requireAuth)
		default:
			h = chain(h, s.withAuth)
		}
		mux.HandleFunc(rt.Method+" "+rt.Path, chain(h, logging(s.log)))
	}
	return mux
}
