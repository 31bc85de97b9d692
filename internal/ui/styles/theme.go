// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled components for the application. It detects the
// terminal's color capability once at startup.
type Theme struct {
	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// Application container
	App  lipgloss.Style
	Body lipgloss.Style

	// Header / navigation
	Header    lipgloss.Style
	Brand     lipgloss.Style
	NavLink   lipgloss.Style
	NavActive lipgloss.Style
	UserInfo  lipgloss.Style

	// Cards (forms and content panels)
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style

	// Feedback
	ErrorText   lipgloss.Style
	SuccessText lipgloss.Style
	MutedText   lipgloss.Style

	// Status bar
	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style

	// Toasts
	ToastError  lipgloss.Style
	ToastStatus lipgloss.Style

	// QR code block (dark-on-light so the code stays scannable)
	QR lipgloss.Style
}

// NewTheme creates a theme from the detected terminal capabilities.
// The variant ("dark" or "light") overrides background detection, matching
// the ui.theme config setting.
func NewTheme(variant string) *Theme {
	colorProfile := termenv.ColorProfile()

	isDark := termenv.HasDarkBackground()
	switch variant {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	}

	t := &Theme{
		IsDark:       isDark,
		HasTrueColor: colorProfile == termenv.TrueColor,
		ColorProfile: colorProfile,
	}
	t.initStyles()
	return t
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()
	t.Body = lipgloss.NewStyle().Padding(1, 2)

	t.Header = lipgloss.NewStyle().
		Background(SurfaceDim).
		Padding(0, 2)

	t.Brand = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	t.NavLink = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Padding(0, 1)

	t.NavActive = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron).
		Padding(0, 1).
		Underline(true)

	t.UserInfo = lipgloss.NewStyle().
		Foreground(Basil).
		Bold(true)

	t.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 3)

	t.CardTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Saffron)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.ErrorText = lipgloss.NewStyle().
		Foreground(Paprika)

	t.SuccessText = lipgloss.NewStyle().
		Foreground(Basil)

	t.MutedText = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Blueberry)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ToastError = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Paprika).
		Foreground(Paprika).
		Padding(0, 1)

	t.ToastStatus = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Basil).
		Foreground(Basil).
		Padding(0, 1)

	// Scanners expect dark modules on a light background.
	t.QR = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(lipgloss.Color("#FFFFFF"))
}
