// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Static content screens rendered from markdown.

package views

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

const homeMarkdown = `# Welcome to forkful

Discover, save and share recipes from your terminal.

- **Sign in** to reach your dashboard and saved recipes.
- **Register** if you are new here. Verification takes a minute.
- Browse **About** to learn what forkful is.

Use the shortcuts in the status bar to move around.
`

const aboutMarkdown = `# About forkful

forkful is a community recipe platform. This client talks to the forkful
account service over HTTPS and keeps your session in an encrypted local
cookie store, so signing in once is enough.

## Security

- Sessions live in an encrypted file readable only by your user.
- Two-factor authentication is supported and encouraged. Enable it from
  your profile.

## Source

forkful is built by Morgan Forge and released under AGPL-3.0-or-later.
`

// chrome rows around the body: header, padding, status bar.
const staticChrome = 6

// Static renders a fixed markdown document inside a scrollable viewport.
// Home and About are both Static with different content; the markdown is
// re-rendered on resize so word wrap stays correct.
type Static struct {
	env      *Env
	markdown string
	vp       viewport.Model
}

// NewHome creates the landing screen.
func NewHome(env *Env) (View, tea.Cmd) {
	return newStatic(env, homeMarkdown), nil
}

// NewAbout creates the about screen.
func NewAbout(env *Env) (View, tea.Cmd) {
	return newStatic(env, aboutMarkdown), nil
}

func newStatic(env *Env, markdown string) *Static {
	v := &Static{env: env, markdown: markdown}
	v.vp = viewport.New(bodyWidth(env), bodyHeight(env))
	v.render()
	return v
}

// Update re-renders on resize and lets the viewport handle scrolling.
func (v *Static) Update(msg tea.Msg) (View, tea.Cmd) {
	if _, ok := msg.(tea.WindowSizeMsg); ok {
		v.vp.Width = bodyWidth(v.env)
		v.vp.Height = bodyHeight(v.env)
		v.render()
		return v, nil
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *Static) render() {
	wrap := 80
	if v.vp.Width > 0 && v.vp.Width < wrap {
		wrap = v.vp.Width
	}
	style := "light"
	if v.env.Theme.IsDark {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		v.vp.SetContent(v.markdown)
		return
	}
	out, err := r.Render(v.markdown)
	if err != nil {
		v.vp.SetContent(v.markdown)
		return
	}
	v.vp.SetContent(out)
}

// View returns the visible slice of the rendered document.
func (v *Static) View() string {
	return v.vp.View()
}

func bodyWidth(env *Env) int {
	if env.Width > 4 {
		return env.Width - 4
	}
	return 76
}

func bodyHeight(env *Env) int {
	if env.Height > staticChrome {
		return env.Height - staticChrome
	}
	return 18
}
