// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/forkfulapp/forkful-tui/internal/nav"
	"github.com/forkfulapp/forkful-tui/internal/ui/styles"
	"github.com/forkfulapp/forkful-tui/internal/util"
)

// NavEntry is one link in the header's navigation strip.
type NavEntry struct {
	Label string
	Route nav.Route
}

// Header renders the brand, the navigation strip and the signed-in user.
type Header struct {
	theme *styles.Theme

	Title    string
	Username string
	Entries  []NavEntry
	Active   nav.Route
	Width    int
}

// NewHeader creates a header with the application brand.
func NewHeader(theme *styles.Theme) *Header {
	return &Header{
		theme: theme,
		Title: "forkful",
		Width: 80,
	}
}

// SetWidth updates the render width.
func (h *Header) SetWidth(width int) {
	if width > 0 {
		h.Width = width
	}
}

// SetUser records the signed-in user shown on the right; empty clears it.
func (h *Header) SetUser(username string) {
	h.Username = username
}

// View renders the header as a single styled line.
func (h *Header) View() string {
	var links strings.Builder
	for _, e := range h.Entries {
		if e.Route == h.Active {
			links.WriteString(h.theme.NavActive.Render(e.Label))
		} else {
			links.WriteString(h.theme.NavLink.Render(e.Label))
		}
	}

	left := h.theme.Brand.Render(h.Title) + "  " + links.String()

	right := ""
	if h.Username != "" {
		right = h.theme.UserInfo.Render("@" + util.TruncateWidth(h.Username, 24))
	}

	gap := h.Width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return h.theme.Header.Width(h.Width).Render(left + strings.Repeat(" ", gap) + right)
}
