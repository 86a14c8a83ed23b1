// ABOUTME: Sign-in screen for the storefront TUI
// ABOUTME: Two-field form submitting through the session layer

package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/lazybrownass/zorel-leather/internal/errutil"
	"github.com/lazybrownass/zorel-leather/internal/tui/styles"
)

// loginDoneMsg is sent when the sign-in attempt completes
type loginDoneMsg struct {
	user *client.User
	err  error
}

type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focused  int
	busy     bool
	err      error
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	return loginModel{email: email, password: password}
}

func (m *loginModel) focus() tea.Cmd {
	m.focused = 0
	m.password.Blur()
	return m.email.Focus()
}

func (a *App) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.login.busy {
		return a, nil
	}

	switch msg.String() {
	case "esc":
		a.login = newLoginModel()
		a.screen = ScreenHome
		return a, nil
	case "tab", "shift+tab":
		if a.login.focused == 0 {
			a.login.focused = 1
			a.login.email.Blur()
			return a, a.login.password.Focus()
		}
		a.login.focused = 0
		a.login.password.Blur()
		return a, a.login.email.Focus()
	case "enter":
		if a.login.focused == 0 {
			a.login.focused = 1
			a.login.email.Blur()
			return a, a.login.password.Focus()
		}
		a.login.busy = true
		a.login.err = nil
		return a, a.submitLogin(a.login.email.Value(), a.login.password.Value())
	}

	var cmd tea.Cmd
	if a.login.focused == 0 {
		a.login.email, cmd = a.login.email.Update(msg)
	} else {
		a.login.password, cmd = a.login.password.Update(msg)
	}
	return a, cmd
}

func (a *App) submitLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := a.sess.Login(context.Background(), email, password)
		return loginDoneMsg{user: user, err: err}
	}
}

func (m loginModel) view(spin spinner.Model) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Sign in") + "\n")
	sb.WriteString(m.email.View() + "\n")
	sb.WriteString(m.password.View() + "\n")

	if m.busy {
		sb.WriteString("\n" + spin.View() + " Signing in...")
	}
	if m.err != nil {
		sb.WriteString("\n" + styles.ErrorBanner.Render(errutil.Title(m.err)) + " " +
			errutil.Message(m.err))
	}

	return styles.ActivePanel.Render(sb.String())
}
