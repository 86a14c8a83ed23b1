// ABOUTME: Root bubbletea model for the storefront TUI
// ABOUTME: Routes keyboard input between home, catalog, detail, and sign-in

package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lazybrownass/zorel-leather/internal/client"
	"github.com/lazybrownass/zorel-leather/internal/errutil"
	"github.com/lazybrownass/zorel-leather/internal/fetch"
	"github.com/lazybrownass/zorel-leather/internal/session"
	"github.com/lazybrownass/zorel-leather/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenCatalog
	ScreenProduct
	ScreenLogin
)

const featuredLimit = 4

// storefrontMsg is sent when the landing data load completes
type storefrontMsg struct {
	storefront *client.Storefront
	err        error
}

// catalogMsg carries a catalog task snapshot after a fetch settles
type catalogMsg struct {
	state fetch.State[*client.Paginated[client.Product]]
}

// sessionMsg is sent when the startup token resolution completes
type sessionMsg struct {
	user *client.User
	err  error
}

// App is the root model for the TUI
type App struct {
	api  *client.Client
	sess *session.Session

	screen Screen
	width  int
	height int
	spin   spinner.Model

	storefront *client.Storefront
	loadErr    error
	loading    bool

	catalog  *fetch.Task[*client.Paginated[client.Product]]
	category string
	cursor   int
	selected *client.Product

	login loginModel
	user  *client.User
}

// New creates the TUI application over a client and session.
func New(api *client.Client, sess *session.Session) *App {
	a := &App{
		api:   api,
		sess:  sess,
		spin:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		login: newLoginModel(),
	}
	a.catalog = fetch.New(func(ctx context.Context) (*client.Paginated[client.Product], error) {
		return api.Products(ctx, client.ProductParams{Category: a.category})
	})
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	a.loading = true
	return tea.Batch(a.spin.Tick, a.loadStorefront(), a.resolveSession())
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.catalog.Close()
			return a, tea.Quit
		}
		switch a.screen {
		case ScreenHome:
			return a.updateHome(msg)
		case ScreenCatalog:
			return a.updateCatalog(msg)
		case ScreenProduct:
			return a.updateProduct(msg)
		case ScreenLogin:
			return a.updateLogin(msg)
		}

	case storefrontMsg:
		a.loading = false
		if msg.err != nil {
			a.loadErr = msg.err
			return a, nil
		}
		a.storefront = msg.storefront
		a.loadErr = nil
		return a, nil

	case catalogMsg:
		// Snapshot is read at render time via the task; the message only
		// triggers the repaint.
		return a, nil

	case sessionMsg:
		// A failed startup resolution means signed out, not a fatal error.
		a.user = msg.user
		return a, nil

	case loginDoneMsg:
		if msg.err != nil {
			a.login.err = msg.err
			a.login.busy = false
			return a, nil
		}
		a.user = msg.user
		a.login = newLoginModel()
		a.screen = ScreenHome
		return a, nil
	}

	return a, nil
}

func (a *App) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		a.catalog.Close()
		return a, tea.Quit
	case "r":
		a.loading = true
		a.loadErr = nil
		return a, a.loadStorefront()
	case "l":
		a.screen = ScreenLogin
		return a, a.login.focus()
	case "c":
		return a, a.openCatalog("")
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if a.storefront != nil && a.cursor < len(a.storefront.Categories)-1 {
			a.cursor++
		}
	case "enter":
		if a.storefront != nil && a.cursor < len(a.storefront.Categories) {
			return a, a.openCatalog(a.storefront.Categories[a.cursor].Slug)
		}
	}
	return a, nil
}

func (a *App) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	state := a.catalog.State()
	switch msg.String() {
	case "q":
		a.catalog.Close()
		return a, tea.Quit
	case "b":
		a.screen = ScreenHome
		a.cursor = 0
		return a, nil
	case "r":
		return a, a.refetchCatalog()
	case "up", "k":
		if a.cursor > 0 {
			a.cursor--
		}
	case "down", "j":
		if state.HasData && a.cursor < len(state.Data.Data)-1 {
			a.cursor++
		}
	case "enter":
		if state.HasData && a.cursor < len(state.Data.Data) {
			p := state.Data.Data[a.cursor]
			a.selected = &p
			a.screen = ScreenProduct
		}
	}
	return a, nil
}

func (a *App) updateProduct(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		a.catalog.Close()
		return a, tea.Quit
	case "b":
		a.selected = nil
		a.screen = ScreenCatalog
	}
	return a, nil
}

// openCatalog switches to the catalog screen for a category. The task only
// refetches when the category actually changed.
func (a *App) openCatalog(category string) tea.Cmd {
	a.category = category
	a.screen = ScreenCatalog
	a.cursor = 0
	return func() tea.Msg {
		a.catalog.SetKey(context.Background(), category)
		return catalogMsg{state: a.catalog.State()}
	}
}

func (a *App) refetchCatalog() tea.Cmd {
	return func() tea.Msg {
		a.catalog.Refetch(context.Background())
		return catalogMsg{state: a.catalog.State()}
	}
}

func (a *App) loadStorefront() tea.Cmd {
	return func() tea.Msg {
		sf, err := a.api.LoadStorefront(context.Background(), featuredLimit)
		return storefrontMsg{storefront: sf, err: err}
	}
}

func (a *App) resolveSession() tea.Cmd {
	return func() tea.Msg {
		user, err := a.sess.Refresh(context.Background())
		return sessionMsg{user: user, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenHome:
		content = a.viewHome()
	case ScreenCatalog:
		content = a.viewCatalog()
	case ScreenProduct:
		content = a.viewProduct()
	case ScreenLogin:
		content = a.login.view(a.spin)
	}
	return a.renderHeader() + "\n" + content + "\n" + a.renderFooter()
}

func (a *App) viewHome() string {
	if a.loading {
		return styles.Panel.Render(a.spin.View() + " Loading the storefront...")
	}
	if a.loadErr != nil {
		banner := styles.ErrorBanner.Render(errutil.Title(a.loadErr)) + "\n" +
			errutil.Message(a.loadErr)
		if errutil.IsRetryable(a.loadErr) {
			banner += "\n\n" + styles.Help.Render("Press r to retry")
		}
		return styles.Panel.Render(banner)
	}
	if a.storefront == nil {
		return styles.Panel.Render("No storefront data.")
	}

	var left strings.Builder
	left.WriteString(styles.Title.Render("Featured") + "\n")
	for _, p := range a.storefront.Featured {
		fmt.Fprintf(&left, "%-24s %8.2f %s\n", p.Name, p.Price, p.Currency)
	}

	var right strings.Builder
	right.WriteString(styles.Title.Render("Collections") + "\n")
	for i, c := range a.storefront.Categories {
		line := fmt.Sprintf("%-16s %d pieces", c.Name, c.ProductCount)
		if i == a.cursor {
			line = styles.Selected.Render("> " + line)
		} else {
			line = "  " + line
		}
		right.WriteString(line + "\n")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		styles.Panel.Render(left.String()),
		styles.ActivePanel.Render(right.String()))
}

func (a *App) viewCatalog() string {
	state := a.catalog.State()

	var sb strings.Builder
	title := "Catalog"
	if a.category != "" {
		title = "Catalog: " + a.category
	}
	sb.WriteString(styles.Title.Render(title) + "\n")

	if state.Loading && !state.HasData {
		sb.WriteString(a.spin.View() + " Loading...")
		return styles.ActivePanel.Render(sb.String())
	}

	// A failed refetch keeps the previous listing visible under the banner.
	if state.Err != nil {
		sb.WriteString(styles.ErrorBanner.Render(errutil.Title(state.Err)) + " " +
			errutil.Message(state.Err) + "\n")
		if errutil.IsRetryable(state.Err) {
			sb.WriteString(styles.Help.Render("Press r to retry") + "\n")
		}
		sb.WriteString("\n")
	}

	if state.HasData {
		for i, p := range state.Data.Data {
			stock := ""
			if !p.InStock {
				stock = "  [out of stock]"
			}
			line := fmt.Sprintf("%-24s %8.2f %s%s", p.Name, p.Price, p.Currency, stock)
			if i == a.cursor {
				line = styles.Selected.Render("> " + line)
			} else {
				line = "  " + line
			}
			sb.WriteString(line + "\n")
		}
		fmt.Fprintf(&sb, "\n%d pieces", state.Data.Total)
	}

	return styles.ActivePanel.Render(sb.String())
}

func (a *App) viewProduct() string {
	if a.selected == nil {
		return styles.Panel.Render("No product selected.")
	}
	p := a.selected

	var sb strings.Builder
	sb.WriteString(styles.Title.Render(p.Name) + "\n")
	sb.WriteString(p.Description + "\n\n")
	fmt.Fprintf(&sb, "Price:     %s\n", styles.ValueStyle.Render(fmt.Sprintf("%.2f %s", p.Price, p.Currency)))
	fmt.Fprintf(&sb, "Category:  %s\n", p.Category)
	if p.InStock {
		sb.WriteString("Status:    in stock\n")
	} else {
		sb.WriteString("Status:    " + styles.ErrorBanner.Render("out of stock") + "\n")
	}
	return styles.ActivePanel.Render(sb.String())
}

func (a *App) renderHeader() string {
	identity := "browsing as guest"
	if a.user != nil {
		identity = a.user.Name
	}
	return styles.Title.Render("Zorel Leather") + "  " + styles.Subtitle.Render(identity)
}

func (a *App) renderFooter() string {
	var shortcuts []string
	switch a.screen {
	case ScreenHome:
		shortcuts = []string{"↑↓ Collections", "Enter Open", "c Catalog", "l Sign in", "r Reload", "q Quit"}
	case ScreenCatalog:
		shortcuts = []string{"↑↓ Navigate", "Enter Details", "r Refresh", "b Back", "q Quit"}
	case ScreenProduct:
		shortcuts = []string{"b Back", "q Quit"}
	case ScreenLogin:
		shortcuts = []string{"Tab Next field", "Enter Submit", "Esc Cancel"}
	}

	var styled []string
	for _, s := range shortcuts {
		key, label, found := strings.Cut(s, " ")
		if found {
			styled = append(styled, styles.KeyStyle.Render(key)+" "+styles.Help.Render(label))
		} else {
			styled = append(styled, s)
		}
	}
	return " " + strings.Join(styled, "  ")
}

// Run starts the TUI
func Run(api *client.Client, sess *session.Session) error {
	p := tea.NewProgram(New(api, sess), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
