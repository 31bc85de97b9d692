// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/forkfulapp/forkful-tui/internal/ui/styles"
)

// Shortcut is one key hint in the status bar.
type Shortcut struct {
	Key  string
	Desc string
}

// StatusBar renders the shortcut hints at the bottom of the screen.
type StatusBar struct {
	theme *styles.Theme
	Width int
}

// NewStatusBar creates a status bar.
func NewStatusBar(theme *styles.Theme) *StatusBar {
	return &StatusBar{theme: theme, Width: 80}
}

// SetWidth updates the render width.
func (s *StatusBar) SetWidth(width int) {
	if width > 0 {
		s.Width = width
	}
}

// View renders the shortcut hints.
func (s *StatusBar) View(shortcuts []Shortcut) string {
	parts := make([]string, 0, len(shortcuts))
	for _, sc := range shortcuts {
		parts = append(parts,
			s.theme.ShortcutKey.Render(sc.Key)+" "+s.theme.ShortcutDesc.Render(sc.Desc))
	}
	return s.theme.StatusBar.Width(s.Width).Render(strings.Join(parts, "  "))
}
