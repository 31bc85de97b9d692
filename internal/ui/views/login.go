// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/nav"
)

// seqState is the phase of the authentication sequencer.
type seqState int

const (
	seqIdle seqState = iota
	seqSubmitting
	seqMfaPending
	seqAuthenticated
	seqFailed
)

type loginResultMsg struct {
	result *account.LoginResult
	err    error
}

type sessionResolvedMsg struct {
	session *account.Session
	err     error
}

// Login is the sign-in screen and the authentication sequencer. Submission
// walks Idle -> Submitting and from there to exactly one of Authenticated,
// MfaPending or Failed. While Submitting the form is locked; Failed returns
// the form to an editable state with the rejection reason shown inline.
//
// The session store is written only on finalization: after a successful
// session resolution, never from intermediate states.
type Login struct {
	env *Env

	state  seqState
	inputs []textinput.Model
	focus  int
	errMsg string

	mfa *MfaPrompt
}

const (
	loginFieldUsername = iota
	loginFieldPassword
)

// NewLogin creates the sign-in view.
func NewLogin(env *Env) (View, tea.Cmd) {
	inputs := []textinput.Model{
		newField("username"),
		newSecretField("password"),
	}
	inputs[loginFieldUsername].Focus()

	return &Login{env: env, inputs: inputs}, textinput.Blink
}

// Update advances the sequencer.
func (v *Login) Update(msg tea.Msg) (View, tea.Cmd) {
	// The prompt owns the keyboard while the challenge is pending.
	if v.state == seqMfaPending && v.mfa != nil {
		switch msg := msg.(type) {
		case MfaCompletedMsg:
			v.mfa = nil
			return v, v.resolveSessionCmd()
		case MfaAbandonedMsg:
			// Abandoning the challenge returns to a clean form. The
			// challenge token is dropped with the prompt.
			v.mfa = nil
			v.state = seqIdle
			v.inputs[loginFieldPassword].SetValue("")
			return v, nil
		default:
			return v, v.mfa.Update(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.state == seqSubmitting {
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
		case "ctrl+f":
			return v, Navigate(nav.RouteForgotPassword)
		case "ctrl+r":
			return v, Navigate(nav.RouteRegister)
		}

	case loginResultMsg:
		if v.state != seqSubmitting {
			return v, nil
		}
		return v, v.handleLoginResult(msg)

	case sessionResolvedMsg:
		if msg.err != nil {
			v.fail(errorDetail(msg.err, "Signed in, but the session could not be loaded."))
			return v, nil
		}
		// Finalization: publish the session, then land on the home route
		// for the role the server actually assigned.
		v.state = seqAuthenticated
		v.env.Store.Write(msg.session)
		return v, Navigate(nav.HomeFor(msg.session.Role))
	}

	return v, updateInputs(v.inputs, msg)
}

// submit validates the form and starts credential submission.
func (v *Login) submit() tea.Cmd {
	username := strings.TrimSpace(v.inputs[loginFieldUsername].Value())
	password := v.inputs[loginFieldPassword].Value()
	if username == "" || password == "" {
		v.errMsg = "Username and password are required."
		v.state = seqFailed
		return nil
	}

	v.errMsg = ""
	v.state = seqSubmitting

	client := v.env.Client
	return func() tea.Msg {
		res, err := client.Login(context.Background(), username, password)
		return loginResultMsg{result: res, err: err}
	}
}

// handleLoginResult routes the credential response to the next phase.
func (v *Login) handleLoginResult(msg loginResultMsg) tea.Cmd {
	if msg.err != nil {
		v.fail(errorDetail(msg.err, "Sign in failed. Please try again."))
		return nil
	}

	switch {
	case msg.result.MFARequired:
		v.state = seqMfaPending
		prompt, cmd := NewMfaPrompt(v.env, MfaModeLogin, msg.result.MFAToken)
		v.mfa = prompt
		return cmd
	case msg.result.Authenticated:
		return v.resolveSessionCmd()
	default:
		v.fail("Sign in failed. Please try again.")
		return nil
	}
}

// resolveSessionCmd fetches the now-established session. This is the same
// call the startup bootstrapper makes; the sequencer finalizes on its result
// rather than trusting the login acknowledgement alone.
func (v *Login) resolveSessionCmd() tea.Cmd {
	v.state = seqSubmitting
	client := v.env.Client
	return func() tea.Msg {
		session, err := client.CurrentSession(context.Background())
		return sessionResolvedMsg{session: session, err: err}
	}
}

func (v *Login) fail(reason string) {
	v.state = seqFailed
	v.errMsg = reason
	v.inputs[loginFieldPassword].SetValue("")
	v.focus = 0
	for i := range v.inputs {
		v.inputs[i].Blur()
	}
	v.inputs[loginFieldUsername].Focus()
}

// View renders the sign-in card, or the MFA prompt while one is pending.
func (v *Login) View() string {
	if v.state == seqMfaPending && v.mfa != nil {
		return v.mfa.View()
	}

	theme := v.env.Theme
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Sign in to forkful"))
	b.WriteString("\n\n")

	b.WriteString(theme.Label.Render("Username"))
	b.WriteString("\n")
	b.WriteString(v.inputs[loginFieldUsername].View())
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Password"))
	b.WriteString("\n")
	b.WriteString(v.inputs[loginFieldPassword].View())
	b.WriteString("\n")

	if v.state == seqSubmitting {
		b.WriteString("\n")
		b.WriteString(theme.MutedText.Render("Signing in..."))
		b.WriteString("\n")
	}
	if v.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(v.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.MutedText.Render("Forgot your password? Press ctrl+f."))
	b.WriteString("\n")
	b.WriteString(theme.MutedText.Render("No account yet? Press ctrl+r to register."))

	card := theme.Card.Render(b.String())
	if v.env.Width > 0 {
		return lipgloss.PlaceHorizontal(v.env.Width, lipgloss.Center, card)
	}
	return card
}
