// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful-tui/internal/nav"
	"github.com/forkfulapp/forkful-tui/internal/ui/styles"
)

func testTheme() *styles.Theme {
	return styles.NewTheme("dark")
}

// =============================================================================
// HEADER TESTS
// =============================================================================

func TestNewHeader(t *testing.T) {
	h := NewHeader(testTheme())
	require.NotNil(t, h)
	assert.Equal(t, "forkful", h.Title)
	assert.Empty(t, h.Username)
	assert.Equal(t, 80, h.Width)
}

func TestHeaderShowsUser(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetUser("ada")

	out := h.View()
	assert.Contains(t, out, "@ada")

	h.SetUser("")
	assert.NotContains(t, h.View(), "@ada")
}

func TestHeaderRendersEntries(t *testing.T) {
	h := NewHeader(testTheme())
	h.Entries = []NavEntry{
		{Label: "Home", Route: nav.RouteHome},
		{Label: "About", Route: nav.RouteAbout},
	}
	h.Active = nav.RouteAbout

	out := h.View()
	assert.Contains(t, out, "Home")
	assert.Contains(t, out, "About")
}

func TestHeaderSetWidthIgnoresNonPositive(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetWidth(0)
	assert.Equal(t, 80, h.Width)
	h.SetWidth(120)
	assert.Equal(t, 120, h.Width)
}

// =============================================================================
// STATUS BAR TESTS
// =============================================================================

func TestStatusBarView(t *testing.T) {
	s := NewStatusBar(testTheme())
	out := s.View([]Shortcut{
		{Key: "tab", Desc: "next view"},
		{Key: "ctrl+c", Desc: "quit"},
	})
	assert.Contains(t, out, "tab")
	assert.Contains(t, out, "quit")
}

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastConstructors(t *testing.T) {
	status := NewStatusToast("saved")
	assert.Equal(t, ToastKindStatus, status.Kind)
	assert.Equal(t, DefaultToastDuration, status.Duration)
	assert.NotEmpty(t, status.ID)

	errToast := NewErrorToast("boom")
	assert.Equal(t, ToastKindError, errToast.Kind)
	assert.Equal(t, ErrorToastDuration, errToast.Duration)
	assert.NotEqual(t, status.ID, errToast.ID)
}

func TestToastRender(t *testing.T) {
	theme := testTheme()

	assert.Contains(t, NewErrorToast("boom").Render(theme), "boom")
	assert.Empty(t, Toast{}.Render(theme))
}

func TestToastExpireCmd(t *testing.T) {
	toast := NewStatusToast("hello")
	cmd := toast.ExpireCmd()
	require.NotNil(t, cmd)
}

func TestHeaderTruncatesLongUsername(t *testing.T) {
	h := NewHeader(testTheme())
	h.SetUser(strings.Repeat("x", 60))

	out := h.View()
	assert.NotContains(t, out, strings.Repeat("x", 30))
}
