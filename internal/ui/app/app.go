// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/nav"
	"github.com/forkfulapp/forkful-tui/internal/session"
	"github.com/forkfulapp/forkful-tui/internal/ui/components"
	"github.com/forkfulapp/forkful-tui/internal/ui/views"
)

// maxRedirects bounds guard redirect chains. The guard table is small and
// acyclic; hitting the bound means a configuration bug, and the walk stops
// on whatever route it reached.
const maxRedirects = 8

// CookieStore is the slice of the persistent cookie jar the shell drives:
// logout clears it and flushes the cleared state to disk.
type CookieStore interface {
	Clear()
	Persist() error
}

// AuthStateChangedMsg is injected whenever the session store changes. The
// composition root subscribes to the store and forwards changes into the
// program loop.
type AuthStateChangedMsg struct {
	State session.AuthState
}

type bootstrapDoneMsg struct{}

type logoutResultMsg struct {
	err error
}

// Model is the root model: header, status bar, toast queue and the active
// view, plus the guard-driven router connecting them.
type Model struct {
	env     *views.Env
	cookies CookieStore

	route nav.Route
	// view is nil while the active route is suspended on bootstrap.
	view views.View

	header *components.Header
	status *components.StatusBar
	spin   spinner.Model
	toasts []components.Toast

	bootCtx    context.Context
	bootCancel context.CancelFunc
}

// New creates the root model. The initial route is home; it stays suspended
// until the bootstrap finishes.
func New(env *views.Env, cookies CookieStore) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = env.Theme.MutedText

	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		env:        env,
		cookies:    cookies,
		route:      nav.RouteHome,
		header:     components.NewHeader(env.Theme),
		status:     components.NewStatusBar(env.Theme),
		spin:       sp,
		bootCtx:    ctx,
		bootCancel: cancel,
	}
}

// Init starts the bootstrap and the suspension spinner.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.bootstrapCmd())
}

// =============================================================================
// BOOTSTRAP
// =============================================================================

// bootstrapCmd resolves the session held by the cookie jar, exactly once per
// (re)start. The store is written only when the command has not been
// cancelled; the completion mark is recorded unconditionally so the UI never
// stays suspended. A rejected or failed resolution leaves the client
// unauthenticated, which is not an error.
func (m *Model) bootstrapCmd() tea.Cmd {
	ctx := m.bootCtx
	client := m.env.Client
	store := m.env.Store
	return func() tea.Msg {
		sess, err := client.CurrentSession(ctx)
		if ctx.Err() == nil {
			if err != nil {
				sess = nil
			}
			store.Write(sess)
		}
		store.MarkBootstrapComplete()
		return bootstrapDoneMsg{}
	}
}

// =============================================================================
// UPDATE
// =============================================================================

// Update routes messages between the shell and the active view.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.bootCancel()
			return m, tea.Quit
		case "tab":
			return m, m.cycleRoute(1)
		case "shift+tab":
			return m, m.cycleRoute(-1)
		case "ctrl+l":
			if m.env.Store.Read().Authenticated() {
				return m, m.logoutCmd()
			}
		}

	case tea.WindowSizeMsg:
		m.env.Width = msg.Width
		m.env.Height = msg.Height
		m.header.SetWidth(msg.Width)
		m.status.SetWidth(msg.Width)
		// Views re-wrap their content on resize.
		if m.view != nil {
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return m, cmd
		}
		return m, nil

	case spinner.TickMsg:
		if m.view != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case bootstrapDoneMsg:
		m.syncHeader()
		return m, m.resolve(m.route)

	case AuthStateChangedMsg:
		m.syncHeader()
		// The session changed under the current route; its guard may now
		// decide differently (expiry, login, logout).
		return m, m.resolve(m.route)

	case views.NavigateMsg:
		return m, m.resolve(msg.Route)

	case views.ToastMsg:
		m.toasts = append(m.toasts, msg.Toast)
		return m, msg.Toast.ExpireCmd()

	case components.ToastExpiredMsg:
		m.dropToast(msg.ID)
		return m, nil

	case logoutResultMsg:
		return m, m.finishLogout(msg.err)
	}

	if m.view != nil {
		var cmd tea.Cmd
		m.view, cmd = m.view.Update(msg)
		return m, cmd
	}
	return m, nil
}

// =============================================================================
// ROUTING
// =============================================================================

// resolve runs the guard decision procedure for a navigation target and
// mounts the route it settles on. Suspension keeps the target so the next
// auth state change resumes it.
func (m *Model) resolve(target nav.Route) tea.Cmd {
	state := m.env.Store.Read()

	for i := 0; i < maxRedirects; i++ {
		switch decision := nav.DecideRoute(state, target); decision.Kind {
		case nav.Suspend:
			m.route = target
			m.view = nil
			m.header.Active = target
			return m.spin.Tick
		case nav.Redirect:
			target = decision.Target
		case nav.Render:
			return m.mount(target)
		}
	}
	return m.mount(target)
}

// mount constructs the view for a route. A renderable route that is already
// mounted is left alone so in-flight form state survives auth state churn.
func (m *Model) mount(target nav.Route) tea.Cmd {
	if target == m.route && m.view != nil {
		return nil
	}
	m.route = target
	m.header.Active = target

	var cmd tea.Cmd
	switch target {
	case nav.RouteAbout:
		m.view, cmd = views.NewAbout(m.env)
	case nav.RouteLogin:
		m.view, cmd = views.NewLogin(m.env)
	case nav.RouteRegister:
		m.view, cmd = views.NewRegister(m.env)
	case nav.RouteDashboard:
		m.view, cmd = views.NewDashboard(m.env)
	case nav.RouteAdminDashboard:
		m.view, cmd = views.NewAdminDashboard(m.env)
	case nav.RouteProfile:
		m.view, cmd = views.NewProfile(m.env)
	case nav.RouteVerifyEmail:
		m.view, cmd = views.NewVerifyEmail(m.env)
	case nav.RouteResendVerification:
		m.view, cmd = views.NewResendVerification(m.env)
	case nav.RouteForgotPassword:
		m.view, cmd = views.NewForgotPassword(m.env)
	case nav.RouteResetPassword:
		m.view, cmd = views.NewResetPassword(m.env)
	default:
		m.view, cmd = views.NewHome(m.env)
	}
	return cmd
}

// navEntries is the header strip for the current auth state.
func (m *Model) navEntries(state session.AuthState) []components.NavEntry {
	entries := []components.NavEntry{
		{Label: "Home", Route: nav.RouteHome},
		{Label: "About", Route: nav.RouteAbout},
	}
	switch state.Role() {
	case account.RoleAdmin:
		entries = append(entries,
			components.NavEntry{Label: "Admin", Route: nav.RouteAdminDashboard},
			components.NavEntry{Label: "Profile", Route: nav.RouteProfile},
		)
	case account.RoleUser:
		entries = append(entries,
			components.NavEntry{Label: "Dashboard", Route: nav.RouteDashboard},
			components.NavEntry{Label: "Profile", Route: nav.RouteProfile},
		)
	default:
		entries = append(entries,
			components.NavEntry{Label: "Sign in", Route: nav.RouteLogin},
			components.NavEntry{Label: "Register", Route: nav.RouteRegister},
			components.NavEntry{Label: "Verify email", Route: nav.RouteVerifyEmail},
		)
	}
	return entries
}

// cycleRoute moves to the neighbouring header entry.
func (m *Model) cycleRoute(delta int) tea.Cmd {
	entries := m.header.Entries
	if len(entries) == 0 {
		return nil
	}
	idx := 0
	for i, e := range entries {
		if e.Route == m.route {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(entries)) % len(entries)
	return m.resolve(entries[idx].Route)
}

// syncHeader refreshes the parts of the header derived from auth state.
func (m *Model) syncHeader() {
	state := m.env.Store.Read()
	m.header.Entries = m.navEntries(state)
	if state.Session != nil {
		m.header.SetUser(state.Session.Username)
	} else {
		m.header.SetUser("")
	}
}

// =============================================================================
// LOGOUT
// =============================================================================

// logoutCmd invalidates the server-side session. Local state is cleared in
// finishLogout regardless of the outcome; a dead server must not pin the
// client in an authenticated UI.
func (m *Model) logoutCmd() tea.Cmd {
	client := m.env.Client
	return func() tea.Msg {
		return logoutResultMsg{err: client.Logout(context.Background())}
	}
}

// finishLogout clears the cookie jar and the session store, then starts a
// fresh bootstrap so the UI settles through the same path as a cold start.
func (m *Model) finishLogout(err error) tea.Cmd {
	m.cookies.Clear()
	persistErr := m.cookies.Persist()

	m.bootCancel()
	m.bootCtx, m.bootCancel = context.WithCancel(context.Background())
	m.env.Store.Reset()
	m.syncHeader()

	cmds := []tea.Cmd{m.resolve(m.route), m.bootstrapCmd()}
	if err != nil {
		cmds = append(cmds, views.ShowToast(
			components.NewErrorToast("Signed out locally; the server could not be reached.")))
	} else if persistErr == nil {
		cmds = append(cmds, views.ShowToast(components.NewStatusToast("Signed out.")))
	}
	return tea.Batch(cmds...)
}

// =============================================================================
// VIEW
// =============================================================================

// View renders the full frame: header, toasts, body, status bar.
func (m *Model) View() string {
	header := m.header.View()
	status := m.status.View(m.shortcuts())

	var body string
	if m.view == nil {
		body = m.spin.View() + " " + m.env.Theme.MutedText.Render("Restoring session...")
	} else {
		body = m.view.View()
	}

	var toastLines string
	for _, t := range m.toasts {
		line := t.Render(m.env.Theme)
		if m.env.Width > 0 {
			line = lipgloss.PlaceHorizontal(m.env.Width, lipgloss.Right, line)
		}
		if toastLines != "" {
			toastLines += "\n"
		}
		toastLines += line
	}

	chrome := lipgloss.Height(header) + lipgloss.Height(status)
	if toastLines != "" {
		chrome += lipgloss.Height(toastLines)
	}
	if avail := m.env.Height - chrome; avail > lipgloss.Height(body) {
		body = lipgloss.Place(m.env.Width, avail, lipgloss.Center, lipgloss.Center, body)
	}

	parts := []string{header}
	if toastLines != "" {
		parts = append(parts, toastLines)
	}
	parts = append(parts, m.env.Theme.Body.Render(body), status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// shortcuts lists the status bar hints for the current state.
func (m *Model) shortcuts() []components.Shortcut {
	out := []components.Shortcut{
		{Key: "tab", Desc: "next view"},
		{Key: "shift+tab", Desc: "previous view"},
	}
	if m.env.Store.Read().Authenticated() {
		out = append(out, components.Shortcut{Key: "ctrl+l", Desc: "sign out"})
	}
	out = append(out, components.Shortcut{Key: "ctrl+c", Desc: "quit"})
	return out
}

func (m *Model) dropToast(id string) {
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}
