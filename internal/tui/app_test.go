// ABOUTME: Tests for the storefront TUI root model
// ABOUTME: Verifies screen routing, catalog rendering, and stale-data errors

package tui

import (
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/lazybrownass/zorel-leather/internal/mockapi"
	"github.com/lazybrownass/zorel-leather/internal/session"
	"github.com/lazybrownass/zorel-leather/internal/store"
)

func newTestApp(t *testing.T) (*App, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(mockapi.NewServer().Handler())
	t.Cleanup(ts.Close)

	tokens := store.NewMemStore()
	api := client.New(client.Config{BaseURL: ts.URL, Tokens: tokens})
	return New(api, session.New(api, tokens)), ts
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHomeView_RendersStorefront(t *testing.T) {
	app, _ := newTestApp(t)

	msg := app.loadStorefront()()
	app.Update(msg)

	view := app.View()
	for _, want := range []string{"Featured", "Collections", "Heritage Briefcase", "bags"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in home view:\n%s", want, view)
		}
	}
}

func TestHomeView_ConnectivityError(t *testing.T) {
	app, ts := newTestApp(t)
	ts.Close()

	msg := app.loadStorefront()()
	app.Update(msg)

	view := app.View()
	if !strings.Contains(view, "Unable to connect") {
		t.Errorf("expected connectivity copy in view:\n%s", view)
	}
	if !strings.Contains(view, "Press r to retry") {
		t.Errorf("expected retry hint for a retryable failure:\n%s", view)
	}
}

func TestCatalogScreen_ListsAndSelects(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := app.openCatalog("")
	app.Update(cmd())

	if app.screen != ScreenCatalog {
		t.Fatalf("expected catalog screen, got %d", app.screen)
	}
	view := app.View()
	if !strings.Contains(view, "Heritage Briefcase") || !strings.Contains(view, "6 pieces") {
		t.Errorf("expected full catalog in view:\n%s", view)
	}

	app.updateCatalog(keyMsg("j"))
	_, _ = app.updateCatalog(tea.KeyMsg{Type: tea.KeyEnter})

	if app.screen != ScreenProduct || app.selected == nil {
		t.Fatal("expected product detail screen after enter")
	}
	if !strings.Contains(app.View(), app.selected.Name) {
		t.Error("expected selected product name in detail view")
	}
}

func TestCatalogScreen_CategoryFilter(t *testing.T) {
	app, _ := newTestApp(t)

	cmd := app.openCatalog("accessories")
	app.Update(cmd())

	view := app.View()
	if !strings.Contains(view, "Meridian Belt") {
		t.Errorf("expected accessories in view:\n%s", view)
	}
	if strings.Contains(view, "Heritage Briefcase") {
		t.Errorf("expected bags filtered out:\n%s", view)
	}
}

func TestCatalogScreen_StaleDataOnFailedRefetch(t *testing.T) {
	app, ts := newTestApp(t)

	cmd := app.openCatalog("")
	app.Update(cmd())

	// Backend goes away; the refetch fails but the listing stays up.
	ts.Close()
	app.Update(app.refetchCatalog()())

	view := app.View()
	if !strings.Contains(view, "Heritage Briefcase") {
		t.Errorf("expected stale listing to remain visible:\n%s", view)
	}
	if !strings.Contains(view, "Unable to connect") {
		t.Errorf("expected inline error banner:\n%s", view)
	}
}

func TestLoginScreen_InvalidCredentialsShowsBackendCopy(t *testing.T) {
	app, _ := newTestApp(t)

	app.updateHome(keyMsg("l"))
	if app.screen != ScreenLogin {
		t.Fatal("expected login screen")
	}

	msg := app.submitLogin("ada@example.com", "wrong")()
	app.Update(msg)

	view := app.View()
	if !strings.Contains(view, "Invalid email or password") {
		t.Errorf("expected backend copy in login view:\n%s", view)
	}
}

func TestLoginScreen_SuccessReturnsHome(t *testing.T) {
	app, _ := newTestApp(t)

	app.updateHome(keyMsg("l"))
	msg := app.submitLogin("ada@example.com", "customer-pass")()
	app.Update(msg)

	if app.screen != ScreenHome {
		t.Fatalf("expected home screen after sign-in, got %d", app.screen)
	}
	if !strings.Contains(app.View(), "Ada Lovelace") {
		t.Error("expected signed-in identity in header")
	}
}
