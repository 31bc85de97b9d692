// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Protected landing screens. The route guard guarantees an authenticated
// session with the right role before either of these is ever constructed.

package views

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Dashboard is the regular user's home screen.
type Dashboard struct {
	env *Env
}

// NewDashboard creates the user dashboard.
func NewDashboard(env *Env) (View, tea.Cmd) {
	return &Dashboard{env: env}, nil
}

// Update consumes nothing; the dashboard is read-only for now.
func (v *Dashboard) Update(msg tea.Msg) (View, tea.Cmd) {
	return v, nil
}

// View renders the dashboard.
func (v *Dashboard) View() string {
	theme := v.env.Theme
	state := v.env.Store.Read()

	var b strings.Builder
	name := ""
	if state.Session != nil {
		name = state.Session.Username
	}
	b.WriteString(theme.CardTitle.Render(fmt.Sprintf("Welcome back, %s", name)))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("Your saved recipes and meal plans will appear here."))
	b.WriteString("\n\n")
	b.WriteString(theme.MutedText.Render("Visit your profile (tab) to manage your account and enable two-factor authentication."))

	card := theme.Card.Render(b.String())
	if v.env.Width > 0 {
		return lipgloss.PlaceHorizontal(v.env.Width, lipgloss.Center, card)
	}
	return card
}

// =============================================================================
// ADMIN DASHBOARD
// =============================================================================

// AdminDashboard is the administrator home screen.
type AdminDashboard struct {
	env *Env
}

// NewAdminDashboard creates the admin dashboard.
func NewAdminDashboard(env *Env) (View, tea.Cmd) {
	return &AdminDashboard{env: env}, nil
}

// Update consumes nothing.
func (v *AdminDashboard) Update(msg tea.Msg) (View, tea.Cmd) {
	return v, nil
}

// View renders the admin dashboard.
func (v *AdminDashboard) View() string {
	theme := v.env.Theme
	state := v.env.Store.Read()

	var b strings.Builder
	name := ""
	if state.Session != nil {
		name = state.Session.Username
	}
	b.WriteString(theme.CardTitle.Render("Administration"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Signed in as %s (admin)", name)))
	b.WriteString("\n\n")
	b.WriteString(theme.MutedText.Render("User moderation and platform settings will appear here."))

	card := theme.Card.Render(b.String())
	if v.env.Width > 0 {
		return lipgloss.PlaceHorizontal(v.env.Width, lipgloss.Center, card)
	}
	return card
}
