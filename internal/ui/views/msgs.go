// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/nav"
	"github.com/forkfulapp/forkful-tui/internal/ui/components"
)

// NavigateMsg asks the application to move to another route. The route guard
// still runs; views request navigation, they never bypass access control.
type NavigateMsg struct {
	Route nav.Route
}

// ToastMsg asks the application to show a toast.
type ToastMsg struct {
	Toast components.Toast
}

// Navigate creates a navigation command.
func Navigate(r nav.Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{Route: r} }
}

// ShowToast creates a toast command.
func ShowToast(t components.Toast) tea.Cmd {
	return func() tea.Msg { return ToastMsg{Toast: t} }
}

// errorDetail returns the server's message for err when it carried one, and
// the fallback otherwise. Server messages are surfaced verbatim; transport
// failures get a stable client-side phrasing instead of a Go error string.
func errorDetail(err error, fallback string) string {
	if detail := account.Detail(err); detail != "" {
		return detail
	}
	return fallback
}
