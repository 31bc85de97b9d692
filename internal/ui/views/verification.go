// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Email verification: redeeming the emailed token and requesting a fresh one.

package views

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/time/rate"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/nav"
)

// resendCooldown limits how often a verification email can be requested.
const resendCooldown = 30 * time.Second

type verifyEmailResultMsg struct {
	msg *account.Message
	err error
}

// VerifyEmail redeems an email verification token.
type VerifyEmail struct {
	env *Env

	token   textinput.Model
	busy    bool
	done    bool
	errMsg  string
	confirm string
}

// NewVerifyEmail creates the verification view.
func NewVerifyEmail(env *Env) (View, tea.Cmd) {
	token := newField("verification token from the email")
	token.Focus()
	return &VerifyEmail{env: env, token: token}, textinput.Blink
}

// Update handles the redemption round trip.
func (v *VerifyEmail) Update(msg tea.Msg) (View, tea.Cmd) {
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
		case "ctrl+n":
			return v, Navigate(nav.RouteResendVerification)
		}

	case verifyEmailResultMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = errorDetail(msg.err, "Verification failed. The token may have expired.")
			return v, nil
		}
		v.done = true
		v.confirm = msg.msg.Message
		if v.confirm == "" {
			v.confirm = "Email verified. You can sign in now."
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.token, cmd = v.token.Update(msg)
	return v, cmd
}

func (v *VerifyEmail) submit() tea.Cmd {
	token := strings.TrimSpace(v.token.Value())
	if token == "" {
		v.errMsg = "The verification token is required."
		return nil
	}
	v.errMsg = ""
	v.busy = true
	client := v.env.Client
	return func() tea.Msg {
		res, err := client.VerifyEmail(context.Background(), token)
		return verifyEmailResultMsg{msg: res, err: err}
	}
}

// View renders the verification card.
func (v *VerifyEmail) View() string {
	theme := v.env.Theme
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Verify your email"))
	b.WriteString("\n\n")

	if v.done {
		b.WriteString(theme.SuccessText.Render(v.confirm))
		b.WriteString("\n\n")
		b.WriteString(theme.MutedText.Render("enter go to sign in"))
	} else {
		b.WriteString(theme.Label.Render("Token"))
		b.WriteString("\n")
		b.WriteString(v.token.View())
		b.WriteString("\n")
		if v.busy {
			b.WriteString("\n")
			b.WriteString(theme.MutedText.Render("Verifying..."))
			b.WriteString("\n")
		}
		if v.errMsg != "" {
			b.WriteString("\n")
			b.WriteString(theme.ErrorText.Render(v.errMsg))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(theme.MutedText.Render("Lost the email? Press ctrl+n to request a new one."))
	}

	card := theme.Card.Render(b.String())
	if v.env.Width > 0 {
		return lipgloss.PlaceHorizontal(v.env.Width, lipgloss.Center, card)
	}
	return card
}

// =============================================================================
// RESEND VERIFICATION
// =============================================================================

type resendResultMsg struct {
	msg *account.Message
	err error
}

// ResendVerification requests a fresh verification email. A local rate
// limiter keeps repeated submissions from hammering the mail pipeline.
type ResendVerification struct {
	env *Env

	email   textinput.Model
	limiter *rate.Limiter
	busy    bool
	errMsg  string
	confirm string
}

// NewResendVerification creates the resend view.
func NewResendVerification(env *Env) (View, tea.Cmd) {
	email := newField("you@example.com")
	email.Focus()
	return &ResendVerification{
		env:     env,
		email:   email,
		limiter: rate.NewLimiter(rate.Every(resendCooldown), 1),
	}, textinput.Blink
}

// Update handles the resend round trip.
func (v *ResendVerification) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.busy {
			return v, nil
		}
		if msg.String() == "enter" {
			return v, v.submit()
		}

	case resendResultMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = errorDetail(msg.err, "Could not send the email. Please try again.")
			return v, nil
		}
		v.confirm = msg.msg.Message
		if v.confirm == "" {
			v.confirm = "Verification email sent."
		}
		return v, nil
	}

	var cmd tea.Cmd
	v.email, cmd = v.email.Update(msg)
	return v, cmd
}

func (v *ResendVerification) submit() tea.Cmd {
	email := strings.TrimSpace(v.email.Value())
	if !emailPattern.MatchString(email) {
		v.errMsg = "Enter a valid email address."
		return nil
	}
	if !v.limiter.Allow() {
		v.errMsg = "Please wait a moment before requesting another email."
		return nil
	}
	v.errMsg = ""
	v.confirm = ""
	v.busy = true
	client := v.env.Client
	return func() tea.Msg {
		res, err := client.ResendVerification(context.Background(), email)
		return resendResultMsg{msg: res, err: err}
	}
}

// View renders the resend card.
func (v *ResendVerification) View() string {
	theme := v.env.Theme
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Resend verification email"))
	b.WriteString("\n\n")
	b.WriteString(theme.Label.Render("Email"))
	b.WriteString("\n")
	b.WriteString(v.email.View())
	b.WriteString("\n")

	if v.busy {
		b.WriteString("\n")
		b.WriteString(theme.MutedText.Render("Sending..."))
		b.WriteString("\n")
	}
	if v.confirm != "" {
		b.WriteString("\n")
		b.WriteString(theme.SuccessText.Render(v.confirm))
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
