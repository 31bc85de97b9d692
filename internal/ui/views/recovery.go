// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Password recovery: the request form that sends the reset email and the
// form that redeems the emailed token.

package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/nav"
	"github.com/forkfulapp/forkful-tui/internal/ui/components"
)

type forgotResultMsg struct {
	msg *account.Message
	err error
}

// ForgotPassword asks for the account email and requests a reset link.
type ForgotPassword struct {
	env *Env

	email   textinput.Model
	busy    bool
	done    bool
	errMsg  string
	confirm string
}

// NewForgotPassword creates the reset request view.
func NewForgotPassword(env *Env) (View, tea.Cmd) {
	email := newField("you@example.com")
	email.Focus()
	return &ForgotPassword{env: env, email: email}, textinput.Blink
}

// Update handles the request round trip.
func (v *ForgotPassword) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "enter":
			if v.done {
				return v, Navigate(nav.RouteLogin)
			}
			return v, v.submit()
		case "ctrl+t":
			return v, Navigate(nav.RouteResetPassword)
		}

	case forgotResultMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = errorDetail(msg.err, "Could not send the reset email. Please try again.")
			return v, nil
		}
		v.done = true
		v.confirm = msg.msg.Message
		if v.confirm == "" {
			v.confirm = "If that email is registered, a reset link is on its way."
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.email, cmd = v.email.Update(msg)
	return v, cmd
}

func (v *ForgotPassword) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	if !emailPattern.MatchString(email) {
		v.errMsg = "Enter a valid email address."
		return nil
	}
	v.errMsg = ""
	v.busy = true
	client := v.env.Client
	return func() tea.Msg {
		res, err := client.ForgotPassword(context.Background(), email)
		return forgotResultMsg{msg: res, err: err}
	}
}

// View renders the request card.
func (v *ForgotPassword) View() string {
	theme := v.env.Theme
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Reset your password"))
	b.WriteString("\n\n")

	if v.done {
		b.WriteString(theme.SuccessText.Render(v.confirm))
		b.WriteString("\n\n")
		b.WriteString(theme.MutedText.Render("enter back to sign in · ctrl+t enter reset token"))
	} else {
		b.WriteString(theme.Label.Render("Email"))
		b.WriteString("\n")
		b.WriteString(v.email.View())
		b.WriteString("\n")
		if v.busy {
			b.WriteString("\n")
			b.WriteString(theme.MutedText.Render("Sending reset email..."))
			b.WriteString("\n")
		}
		if v.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(theme.ErrorText.Render(v.errMsg))
			b.WriteString("\n")
		}
	}

	card := theme.Card.Render(b.String())
	if v.env.Width > 0 {
		return lipgloss.PlaceHorizontal(v.env.Width, lipgloss.Center, card)
	}
	return card
}

// =============================================================================
// RESET PASSWORD
// =============================================================================

type resetResultMsg struct {
	msg *account.Message
	err error
}

// ResetPassword redeems an emailed reset token with a new password.
type ResetPassword struct {
	env *Env

	inputs []textinput.Model
	focus  int
	busy   bool
	errMsg string
}

const (
	resetFieldToken = iota
	resetFieldPassword
	resetFieldConfirm
)

// NewResetPassword creates the token redemption view.
func NewResetPassword(env *Env) (View, tea.Cmd) {
	inputs := []textinput.Model{
		newField("reset token from the email"),
		newSecretField("new password"),
		newSecretField("repeat new password"),
	}
	inputs[resetFieldToken].Focus()
	return &ResetPassword{env: env, inputs: inputs}, textinput.Blink
}

// Update handles the redemption round trip.
func (v *ResetPassword) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		switch msg.String() {
		case "up":
			v.focus = moveFocus(v.inputs, v.focus, -1)
			return v, nil
		case "down":
			v.focus = moveFocus(v.inputs, v.focus, 1)
			return v, nil
		case "enter":
			if v.focus < len(v.inputs)-1 {
				v.focus = moveFocus(v.inputs, v.focus, 1)
				return v, nil
			}
			return v, v.submit()
		}

	case resetResultMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = errorDetail(msg.err, "Password reset failed. The token may have expired.")
			return v, nil
		}
		text := msg.msg.Message
		if text == "" {
			text = "Password updated. Sign in with your new password."
		}
		return v, tea.Batch(
			ShowToast(components.NewStatusToast(text)),
			Navigate(nav.RouteLogin),
		)
	}

	return v, updateInputs(v.inputs, msg)
}

func (v *ResetPassword) submit() tea.Cmd {
	token := strings.TrimSpace(v.inputs[resetFieldToken].Value())
	password := v.inputs[resetFieldPassword].Value()
	switch {
	case token == "":
		v.errMsg = "The reset token is required."
		return nil
	case !strongPassword(password):
		v.errMsg = "Password must be at least 6 characters with an uppercase letter, a digit and a special character."
		return nil
	case password != v.inputs[resetFieldConfirm].Value():
		v.errMsg = "Passwords do not match."
		return nil
	}

	v.errMsg = ""
	v.busy = true
	client := v.env.Client
	return func() tea.Msg {
		res, err := client.ResetPassword(context.Background(), token, password)
		return resetResultMsg{msg: res, err: err}
	}
}

// View renders the redemption card.
func (v *ResetPassword) View() string {
	theme := v.env.Theme
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Choose a new password"))
	b.WriteString("\n")

	labels := []string{"Reset token", "New password", "Confirm password"}
	for i, in := range v.inputs {
		b.WriteString("\n")
		b.WriteString(theme.Label.Render(labels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if v.busy {
		b.WriteString("\n")
		b.WriteString(theme.MutedText.Render("Updating password..."))
		b.WriteString("\n")
	}
	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(v.errMsg))
		b.WriteString("\n")
	}

	card := theme.Card.Render(b.String())
	if v.env.Width > 0 {
		return lipgloss.PlaceHorizontal(v.env.Width, lipgloss.Center, card)
	}
	return card
}
