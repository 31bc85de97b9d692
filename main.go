// forkful TUI - a terminal client for the forkful recipe platform.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/config"
	"github.com/forkfulapp/forkful-tui/internal/cookies"
	"github.com/forkfulapp/forkful-tui/internal/session"
	"github.com/forkfulapp/forkful-tui/internal/ui/app"
	"github.com/forkfulapp/forkful-tui/internal/ui/styles"
	"github.com/forkfulapp/forkful-tui/internal/ui/views"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func main() {
	if handleVersionFlag() {
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "forkful: %v\n", err)
		os.Exit(1)
	}

	stateDir, err := cfg.StateDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "forkful: %v\n", err)
		os.Exit(1)
	}
	jarPath := filepath.Join(stateDir, cookies.JarFileName)
	keyPath := filepath.Join(stateDir, cookies.KeyFileName)

	jar, err := cookies.NewJar(cfg.Server.BaseURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forkful: %v\n", err)
		os.Exit(1)
	}
	if err := jar.Load(jarPath, keyPath); err != nil {
		// A jar that cannot be read is treated as absent; the user signs
		// in again instead of being locked out.
		if !errors.Is(err, cookies.ErrCorruptJar) {
			fmt.Fprintf(os.Stderr, "forkful: warning: session state unreadable: %v\n", err)
		}
		jar.Clear()
	}

	env := &views.Env{
		Client: account.NewClient(account.ClientConfig{
			BaseURL: cfg.Server.BaseURL,
			Timeout: cfg.RequestTimeout(),
			Jar:     jar,
		}),
		Store: session.NewStore(),
		Theme: styles.NewTheme(cfg.UI.Theme),
	}

	root := app.New(env, &persistentJar{jar: jar, jarPath: jarPath, keyPath: keyPath})
	program := tea.NewProgram(root, tea.WithAltScreen())

	// Store changes can originate outside the program loop; forward them in
	// as messages so guards re-evaluate on the next update.
	unsubscribe := env.Store.Subscribe(func(state session.AuthState) {
		program.Send(app.AuthStateChangedMsg{State: state})
	})
	defer unsubscribe()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "forkful: %v\n", err)
		os.Exit(1)
	}

	if err := jar.Save(jarPath, keyPath); err != nil {
		fmt.Fprintf(os.Stderr, "forkful: warning: could not persist session: %v\n", err)
	}
}

func handleVersionFlag() bool {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("forkful %s (%s, built %s)\n", Version, GitCommit, BuildDate)
			return true
		}
	}
	return false
}

// persistentJar binds the cookie jar to its on-disk location so the UI can
// clear and flush it without knowing about paths.
type persistentJar struct {
	jar     *cookies.Jar
	jarPath string
	keyPath string
}

func (p *persistentJar) Clear() { p.jar.Clear() }

func (p *persistentJar) Persist() error { return p.jar.Save(p.jarPath, p.keyPath) }
