// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Non-blocking toasts: short notifications that auto-dismiss instead of
// stealing focus from the active view.

package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/forkfulapp/forkful-tui/internal/ui/styles"
)

// ToastKind represents the type of toast notification.
type ToastKind int

const (
	// ToastKindStatus is an informational toast.
	ToastKindStatus ToastKind = iota
	// ToastKindError is an error toast (longer to read).
	ToastKindError
)

// Auto-dismiss durations per kind.
const (
	DefaultToastDuration = 4 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

// Toast is a single notification.
type Toast struct {
	ID       string
	Message  string
	Kind     ToastKind
	Duration time.Duration
}

// ToastExpiredMsg asks the holder to drop the identified toast.
type ToastExpiredMsg struct {
	ID string
}

// NewStatusToast creates an informational toast.
func NewStatusToast(message string) Toast {
	return Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Kind:     ToastKindStatus,
		Duration: DefaultToastDuration,
	}
}

// NewErrorToast creates an error toast.
func NewErrorToast(message string) Toast {
	return Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Kind:     ToastKindError,
		Duration: ErrorToastDuration,
	}
}

// ExpireCmd schedules the toast's auto-dismiss message.
func (t Toast) ExpireCmd() tea.Cmd {
	id := t.ID
	return tea.Tick(t.Duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Render draws the toast with the style matching its kind.
func (t Toast) Render(theme *styles.Theme) string {
	if t.Message == "" {
		return ""
	}
	switch t.Kind {
	case ToastKindError:
		return theme.ToastError.Render(t.Message)
	default:
		return theme.ToastStatus.Render(t.Message)
	}
}
