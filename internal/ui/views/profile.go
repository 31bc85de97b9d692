// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/ui/components"
)

type profileLoadedMsg struct {
	profile *account.Profile
	err     error
}

// Profile shows the extended account record and hosts MFA enrollment. The
// record is fetched on mount; enrollment opens the MFA prompt in setup mode
// and refetches the record once it completes so the MFA flag is fresh.
type Profile struct {
	env *Env

	profile *account.Profile
	loading bool
	errMsg  string

	mfa *MfaPrompt
}

// NewProfile creates the profile view and starts the record fetch.
func NewProfile(env *Env) (View, tea.Cmd) {
	v := &Profile{env: env, loading: true}
	return v, v.loadCmd()
}

// Update handles the fetch, the enrollment prompt and its completion.
func (v *Profile) Update(msg tea.Msg) (View, tea.Cmd) {
	if v.mfa != nil {
		switch msg.(type) {
		case MfaEnrolledMsg:
			v.mfa = nil
			v.loading = true
			return v, tea.Batch(
				ShowToast(components.NewStatusToast("Two-factor authentication enabled.")),
				v.loadCmd(),
			)
		case MfaAbandonedMsg:
			v.mfa = nil
			return v, nil
		default:
			return v, v.mfa.Update(msg)
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "m" && v.profile != nil && !v.profile.MFAEnabled {
			prompt, cmd := NewMfaPrompt(v.env, MfaModeSetup, "")
			v.mfa = prompt
			return v, cmd
		}

	case profileLoadedMsg:
		v.loading = false
		if msg.err != nil {
			v.errMsg = errorDetail(msg.err, "Could not load your profile.")
			return v, nil
		}
		v.errMsg = ""
		v.profile = msg.profile
		return v, nil
	}

	return v, nil
}

func (v *Profile) loadCmd() tea.Cmd {
	client := v.env.Client
	return func() tea.Msg {
		p, err := client.Profile(context.Background())
		return profileLoadedMsg{profile: p, err: err}
	}
}

// View renders the profile card, or the enrollment prompt while it is open.
func (v *Profile) View() string {
	if v.mfa != nil {
		return v.mfa.View()
	}

	theme := v.env.Theme
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Your profile"))
	b.WriteString("\n\n")

	switch {
	case v.loading:
		b.WriteString(theme.MutedText.Render("Loading..."))
	case v.errMsg != "":
		b.WriteString(theme.ErrorText.Render(v.errMsg))
	case v.profile != nil:
		p := v.profile
		rows := []struct{ label, value string }{
			{"Username", p.Username},
			{"Email", p.Email},
			{"Full name", p.FullName},
			{"Phone", p.Phone},
			{"City", p.City},
			{"Country", p.Country},
			{"Date of birth", p.DOB},
		}
		for _, row := range rows {
			if row.value == "" {
				continue
			}
			b.WriteString(theme.Label.Render(row.label+": "))
			b.WriteString(row.value)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		if p.MFAEnabled {
			b.WriteString(theme.SuccessText.Render("Two-factor authentication is enabled."))
		} else {
			b.WriteString(theme.ErrorText.Render("Two-factor authentication is off."))
			b.WriteString("\n")
			b.WriteString(theme.MutedText.Render("Press m to enable it."))
		}
	}

	card := theme.Card.Render(b.String())
	if v.env.Width > 0 {
		return lipgloss.PlaceHorizontal(v.env.Width, lipgloss.Center, card)
	}
	return card
}
