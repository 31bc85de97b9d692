// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTheme(t *testing.T) {
	theme := NewTheme("dark")
	require.NotNil(t, theme)
	assert.True(t, theme.IsDark)

	light := NewTheme("light")
	assert.False(t, light.IsDark)
}

func TestThemeStylesRender(t *testing.T) {
	theme := NewTheme("dark")

	// Styles must be usable immediately after construction.
	assert.NotPanics(t, func() {
		_ = theme.Brand.Render("forkful")
		_ = theme.ErrorText.Render("boom")
		_ = theme.QR.Render("█▀▄")
		_ = theme.StatusBar.Render("ready")
	})
}
