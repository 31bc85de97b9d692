// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/session"
	"github.com/forkfulapp/forkful-tui/internal/ui/styles"
)

// View is the contract every screen satisfies.
type View interface {
	// Update consumes a message and returns the (possibly replaced) view
	// plus a follow-up command.
	Update(msg tea.Msg) (View, tea.Cmd)
	// View renders the screen body.
	View() string
}

// Env is the shared context injected into every view: the account client,
// the session store and presentation state. The composition root owns it;
// views share the pointer and never copy it.
type Env struct {
	Client *account.Client
	Store  *session.Store
	Theme  *styles.Theme

	Width  int
	Height int
}

// =============================================================================
// FORM HELPERS
// =============================================================================

// newField creates a textinput with the standard form appearance.
func newField(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 38
	return in
}

// newSecretField creates a masked input for passwords.
func newSecretField(placeholder string) textinput.Model {
	in := newField(placeholder)
	in.EchoMode = textinput.EchoPassword
	in.EchoCharacter = '•'
	return in
}

// moveFocus shifts focus across the form fields by delta, wrapping around,
// and returns the new focus index.
func moveFocus(inputs []textinput.Model, focus, delta int) int {
	if len(inputs) == 0 {
		return 0
	}
	inputs[focus].Blur()
	focus = (focus + delta + len(inputs)) % len(inputs)
	inputs[focus].Focus()
	return focus
}

// updateInputs forwards a message to every field and batches the commands.
func updateInputs(inputs []textinput.Model, msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(inputs))
	for i := range inputs {
		inputs[i], cmds[i] = inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}
