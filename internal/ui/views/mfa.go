// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pquerna/otp"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/qr"
)

// MfaMode selects what the prompt verifies.
type MfaMode int

const (
	// MfaModeLogin verifies a login-time challenge against a challenge token.
	MfaModeLogin MfaMode = iota
	// MfaModeSetup confirms enrollment after provisioning a new secret.
	MfaModeSetup
)

// Messages the prompt emits toward its owner. Failures stay inside the
// prompt (shown inline, code retried); only terminal outcomes escape.
type (
	// MfaCompletedMsg reports a successful login-time verification.
	MfaCompletedMsg struct{}
	// MfaEnrolledMsg reports a completed enrollment.
	MfaEnrolledMsg struct{}
	// MfaAbandonedMsg reports that the user dismissed the prompt.
	MfaAbandonedMsg struct{}
)

type mfaSetupReadyMsg struct {
	setup *account.MFASetup
	err   error
}

type mfaVerifyResultMsg struct {
	err error
}

// MfaPrompt is the modal second-factor dialog. In login mode it binds the
// entered code to the challenge token issued alongside the credential
// response. In setup mode it first fetches provisioning material, renders the
// otpauth URL as a QR code and then confirms enrollment; the provisioning
// call runs exactly once per prompt, retries reuse the same secret.
type MfaPrompt struct {
	env  *Env
	mode MfaMode

	// challenge token, login mode only
	token string

	code     textinput.Model
	fetching bool
	busy     bool
	errMsg   string

	qrBlock string
	issuer  string
	holder  string
}

// NewMfaPrompt creates the prompt and its activation command. Setup mode
// starts by requesting provisioning material; login mode is ready at once.
func NewMfaPrompt(env *Env, mode MfaMode, token string) (*MfaPrompt, tea.Cmd) {
	code := newField("6-digit code")
	code.CharLimit = 6
	code.Width = 12
	code.Focus()

	p := &MfaPrompt{
		env:   env,
		mode:  mode,
		token: token,
		code:  code,
	}

	cmds := []tea.Cmd{textinput.Blink}
	if mode == MfaModeSetup {
		p.fetching = true
		cmds = append(cmds, p.beginSetupCmd())
	}
	return p, tea.Batch(cmds...)
}

// Update consumes a message and returns a follow-up command. The owner keeps
// routing messages here while the prompt is open.
func (p *MfaPrompt) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return func() tea.Msg { return MfaAbandonedMsg{} }
		case "enter":
			return p.submit()
		}

	case mfaSetupReadyMsg:
		p.fetching = false
		if msg.err != nil {
			p.errMsg = errorDetail(msg.err, "Could not start MFA setup.")
			return nil
		}
		p.applyProvisioning(msg.setup.OtpauthURL)
		return nil

	case mfaVerifyResultMsg:
		p.busy = false
		if msg.err != nil {
			p.errMsg = errorDetail(msg.err, "Verification failed. Please try again.")
			p.code.SetValue("")
			return nil
		}
		if p.mode == MfaModeSetup {
			return func() tea.Msg { return MfaEnrolledMsg{} }
		}
		return func() tea.Msg { return MfaCompletedMsg{} }
	}

	var cmd tea.Cmd
	p.code, cmd = p.code.Update(msg)
	return cmd
}

// submit validates the entered code locally and starts verification. A bad
// code never leaves the prompt; the server only sees well-formed submissions.
func (p *MfaPrompt) submit() tea.Cmd {
	if p.busy || p.fetching {
		return nil
	}
	code := strings.TrimSpace(p.code.Value())
	if !validTOTPCode(code) {
		p.errMsg = "Enter the 6-digit code from your authenticator app."
		return nil
	}
	p.errMsg = ""
	p.busy = true

	client := p.env.Client
	if p.mode == MfaModeSetup {
		return func() tea.Msg {
			return mfaVerifyResultMsg{err: client.VerifyMFASetup(context.Background(), code)}
		}
	}
	token := p.token
	return func() tea.Msg {
		return mfaVerifyResultMsg{err: client.VerifyMFALogin(context.Background(), code, token)}
	}
}

func (p *MfaPrompt) beginSetupCmd() tea.Cmd {
	client := p.env.Client
	return func() tea.Msg {
		setup, err := client.BeginMFASetup(context.Background())
		return mfaSetupReadyMsg{setup: setup, err: err}
	}
}

// applyProvisioning renders the otpauth URL as a terminal QR block and pulls
// the human-readable issuer and account out of it for the caption.
func (p *MfaPrompt) applyProvisioning(otpauthURL string) {
	block, err := qr.Render(otpauthURL)
	if err != nil {
		p.errMsg = "Could not render the enrollment QR code."
		return
	}
	p.qrBlock = block

	if key, err := otp.NewKeyFromURL(otpauthURL); err == nil {
		p.issuer = key.Issuer()
		p.holder = key.AccountName()
	}
}

// View renders the prompt card.
func (p *MfaPrompt) View() string {
	theme := p.env.Theme

	var b strings.Builder
	if p.mode == MfaModeSetup {
		b.WriteString(theme.CardTitle.Render("Enable two-factor authentication"))
		b.WriteString("\n")
		switch {
		case p.fetching:
			b.WriteString(theme.MutedText.Render("Requesting enrollment secret..."))
			b.WriteString("\n")
		case p.qrBlock != "":
			b.WriteString(theme.Subtitle.Render("Scan with your authenticator app:"))
			b.WriteString("\n")
			b.WriteString(theme.QR.Render(p.qrBlock))
			b.WriteString("\n")
			if p.issuer != "" {
				b.WriteString(theme.MutedText.Render(p.issuer + " · " + p.holder))
				b.WriteString("\n")
			}
		}
	} else {
		b.WriteString(theme.CardTitle.Render("Two-factor authentication"))
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("Enter the code from your authenticator app."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Code"))
	b.WriteString("\n")
	b.WriteString(p.code.View())
	b.WriteString("\n")

	if p.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(p.errMsg))
		b.WriteString("\n")
	}
	if p.busy {
		b.WriteString("\n")
		b.WriteString(theme.MutedText.Render("Verifying..."))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.MutedText.Render("enter verify · esc cancel"))

	card := theme.Card.Render(b.String())
	if p.env.Width > 0 {
		return lipgloss.PlaceHorizontal(p.env.Width, lipgloss.Center, card)
	}
	return card
}

// validTOTPCode reports whether the code is exactly six digits.
func validTOTPCode(code string) bool {
	if len(code) != 6 {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
