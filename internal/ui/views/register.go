// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package views

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/nav"
	"github.com/forkfulapp/forkful-tui/internal/ui/components"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type registerResultMsg struct {
	msg *account.Message
	err error
}

// Register is the account creation form. Validation runs client-side before
// anything is sent; the server re-validates and its rejection message is
// shown verbatim when it disagrees.
type Register struct {
	env *Env

	inputs []textinput.Model
	focus  int
	busy   bool
	errMsg string
}

const (
	regFieldUsername = iota
	regFieldEmail
	regFieldPassword
	regFieldConfirm
	regFieldFullName
	regFieldPhone
	regFieldCity
	regFieldCountry
	regFieldDOB
)

var regLabels = []string{
	"Username", "Email", "Password", "Confirm password",
	"Full name (optional)", "Phone (optional)", "City (optional)",
	"Country (optional)", "Date of birth (optional, YYYY-MM-DD)",
}

// NewRegister creates the registration view.
func NewRegister(env *Env) (View, tea.Cmd) {
	inputs := []textinput.Model{
		newField("username"),
		newField("you@example.com"),
		newSecretField("password"),
		newSecretField("repeat password"),
		newField("Ada Lovelace"),
		newField("+1 555 0100"),
		newField("London"),
		newField("United Kingdom"),
		newField("1990-01-31"),
	}
	inputs[regFieldUsername].Focus()

	return &Register{env: env, inputs: inputs}, textinput.Blink
}

// Update handles form interaction and the registration round trip.
func (v *Register) Update(msg tea.Msg) (View, tea.Cmd) {
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

	case registerResultMsg:
		v.busy = false
		if msg.err != nil {
			v.errMsg = errorDetail(msg.err, "Registration failed. Please try again.")
			return v, nil
		}
		text := msg.msg.Message
		if text == "" {
			text = "Account created. Check your email to verify your address."
		}
		return v, tea.Batch(
			ShowToast(components.NewStatusToast(text)),
			Navigate(nav.RouteLogin),
		)
	}

	return v, updateInputs(v.inputs, msg)
}

// submit validates the form and sends the registration request.
func (v *Register) submit() tea.Cmd {
	req := account.RegisterRequest{
		Username: strings.TrimSpace(v.inputs[regFieldUsername].Value()),
		Email:    strings.TrimSpace(v.inputs[regFieldEmail].Value()),
		Password: v.inputs[regFieldPassword].Value(),
		FullName: strings.TrimSpace(v.inputs[regFieldFullName].Value()),
		Phone:    strings.TrimSpace(v.inputs[regFieldPhone].Value()),
		City:     strings.TrimSpace(v.inputs[regFieldCity].Value()),
		Country:  strings.TrimSpace(v.inputs[regFieldCountry].Value()),
		DOB:      strings.TrimSpace(v.inputs[regFieldDOB].Value()),
	}

	if msg := validateRegistration(req, v.inputs[regFieldConfirm].Value()); msg != "" {
		v.errMsg = msg
		return nil
	}

	v.errMsg = ""
	v.busy = true
	client := v.env.Client
	return func() tea.Msg {
		res, err := client.Register(context.Background(), req)
		return registerResultMsg{msg: res, err: err}
	}
}

// validateRegistration returns the first problem with the form, or "".
func validateRegistration(req account.RegisterRequest, confirm string) string {
	switch {
	case req.Username == "":
		return "Username is required."
	case !emailPattern.MatchString(req.Email):
		return "Enter a valid email address."
	case !strongPassword(req.Password):
		return "Password must be at least 6 characters with an uppercase letter, a digit and a special character."
	case req.Password != confirm:
		return "Passwords do not match."
	}
	if req.DOB != "" {
		if _, err := time.Parse("2006-01-02", req.DOB); err != nil {
			return "Date of birth must be YYYY-MM-DD."
		}
	}
	return ""
}

// strongPassword enforces the account service's password policy so obviously
// bad passwords never leave the client.
func strongPassword(pw string) bool {
	if len(pw) < 6 {
		return false
	}
	var upper, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r) && !unicode.IsSpace(r):
			special = true
		}
	}
	return upper && digit && special
}

// View renders the registration card.
func (v *Register) View() string {
	theme := v.env.Theme
	var b strings.Builder
	b.WriteString(theme.CardTitle.Render("Create your forkful account"))
	b.WriteString("\n")

	for i, in := range v.inputs {
		b.WriteString("\n")
		b.WriteString(theme.Label.Render(regLabels[i]))
		b.WriteString("\n")
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if v.busy {
		b.WriteString("\n")
		b.WriteString(theme.MutedText.Render("Creating account..."))
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
