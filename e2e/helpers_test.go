// ABOUTME: Shared helpers for end-to-end tests
// ABOUTME: Wires a real client, session, and token store to the mock backend

package e2e

import (
	"net/http/httptest"
	"testing"

	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/lazybrownass/zorel-leather/internal/mockapi"
	"github.com/lazybrownass/zorel-leather/internal/session"
	"github.com/lazybrownass/zorel-leather/internal/store"
)

// env is a fully wired client stack over a fresh mock backend.
type env struct {
	server  *httptest.Server
	backend *mockapi.Server
	tokens  store.Store
	api     *client.Client
	sess    *session.Session
}

func newEnv(t *testing.T) *env {
	t.Helper()

	backend := mockapi.NewServer()
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)

	tokens := store.NewMemStore()
	api := client.New(client.Config{BaseURL: ts.URL, Tokens: tokens})

	return &env{
		server:  ts,
		backend: backend,
		tokens:  tokens,
		api:     api,
		sess:    session.New(api, tokens),
	}
}

// newFileEnv is like newEnv but persists tokens to a temp directory, to
// exercise the durable store path.
func newFileEnv(t *testing.T) *env {
	t.Helper()
	t.Setenv("ZOREL_HOME", t.TempDir())

	backend := mockapi.NewServer()
	ts := httptest.NewServer(backend.Handler())
	t.Cleanup(ts.Close)

	tokens, err := store.NewFileStore()
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	api := client.New(client.Config{BaseURL: ts.URL, Tokens: tokens})

	return &env{
		server:  ts,
		backend: backend,
		tokens:  tokens,
		api:     api,
		sess:    session.New(api, tokens),
	}
}
