// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkfulapp/forkful-tui/internal/account"
)

func TestNewStoreInitialState(t *testing.T) {
	s := NewStore()
	state := s.Read()

	assert.Nil(t, state.Session)
	assert.False(t, state.BootstrapComplete)
	assert.False(t, state.Authenticated())
	assert.Equal(t, account.RoleNone, state.Role())
}

func TestWriteReplacesSession(t *testing.T) {
	s := NewStore()
	sess := &account.Session{ID: 1, Username: "ada", Role: account.RoleAdmin}

	s.Write(sess)
	state := s.Read()
	require.NotNil(t, state.Session)
	assert.Equal(t, account.RoleAdmin, state.Role())
	assert.False(t, state.BootstrapComplete, "Write must not touch the bootstrap flag")

	s.Write(nil)
	assert.False(t, s.Read().Authenticated())
}

func TestMarkBootstrapComplete(t *testing.T) {
	s := NewStore()

	s.MarkBootstrapComplete()
	assert.True(t, s.Read().BootstrapComplete)
	assert.Nil(t, s.Read().Session, "bootstrap completion must not fabricate a session")

	// Idempotent
	s.MarkBootstrapComplete()
	assert.True(t, s.Read().BootstrapComplete)
}

func TestSubscribeNotifiedSynchronously(t *testing.T) {
	s := NewStore()

	var seen []AuthState
	s.Subscribe(func(st AuthState) { seen = append(seen, st) })

	s.Write(&account.Session{Username: "ada", Role: account.RoleUser})
	require.Len(t, seen, 1, "Write must notify before returning")
	assert.True(t, seen[0].Authenticated())

	s.MarkBootstrapComplete()
	require.Len(t, seen, 2)
	assert.True(t, seen[1].BootstrapComplete)
}

func TestUnsubscribeStopsNotifications(t *testing.T) {
	s := NewStore()

	calls := 0
	unsubscribe := s.Subscribe(func(AuthState) { calls++ })

	s.Write(nil)
	assert.Equal(t, 1, calls)

	unsubscribe()
	s.Write(&account.Session{Username: "ada"})
	assert.Equal(t, 1, calls)
}

func TestMultipleSubscribers(t *testing.T) {
	s := NewStore()

	a, b := 0, 0
	s.Subscribe(func(AuthState) { a++ })
	s.Subscribe(func(AuthState) { b++ })

	s.MarkBootstrapComplete()
	assert.Equal(t, 1, a)
	assert.Equal(t, 1, b)
}

func TestResetClearsEverything(t *testing.T) {
	s := NewStore()
	s.Write(&account.Session{Username: "ada", Role: account.RoleAdmin})
	s.MarkBootstrapComplete()

	s.Reset()
	state := s.Read()
	assert.Nil(t, state.Session)
	assert.False(t, state.BootstrapComplete)
}

func TestListenerMayUnsubscribeDuringNotification(t *testing.T) {
	s := NewStore()

	var unsubscribe func()
	calls := 0
	unsubscribe = s.Subscribe(func(AuthState) {
		calls++
		unsubscribe()
	})

	s.MarkBootstrapComplete()
	s.Write(nil)
	assert.Equal(t, 1, calls)
}
