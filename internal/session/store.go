// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"sync"

	"github.com/forkfulapp/forkful-tui/internal/account"
)

// =============================================================================
// AUTH STATE
// =============================================================================

// AuthState is the observable authentication state of the client.
//
// Session is nil while unauthenticated. BootstrapComplete reports whether the
// one-time session resolution at startup has finished; consumers must not
// treat Session as meaningful until it is true.
type AuthState struct {
	Session           *account.Session
	BootstrapComplete bool
}

// Authenticated reports whether a session is present. It says nothing about
// bootstrap completion; guards check BootstrapComplete first.
func (s AuthState) Authenticated() bool {
	return s.Session != nil
}

// Role returns the session's role, or RoleNone while unauthenticated.
func (s AuthState) Role() account.Role {
	if s.Session == nil {
		return account.RoleNone
	}
	return s.Session.Role
}

// =============================================================================
// STORE
// =============================================================================

// Listener observes AuthState changes.
type Listener func(AuthState)

// Store holds the AuthState and notifies subscribers on every change.
//
// Writes are atomic value replacements. Notification is synchronous: by the
// time Write or MarkBootstrapComplete returns, every subscriber has seen the
// new state.
type Store struct {
	mu        sync.Mutex
	state     AuthState
	listeners map[int]Listener
	nextID    int
}

// NewStore creates an empty store: no session, bootstrap not complete.
func NewStore() *Store {
	return &Store{listeners: make(map[int]Listener)}
}

// Read returns the current state.
func (s *Store) Read() AuthState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Write replaces the session. A nil session records the unauthenticated
// state. BootstrapComplete is left untouched.
func (s *Store) Write(sess *account.Session) {
	s.mu.Lock()
	s.state.Session = sess
	state := s.state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, state)
}

// MarkBootstrapComplete records that the startup session resolution has
// finished. Idempotent.
func (s *Store) MarkBootstrapComplete() {
	s.mu.Lock()
	s.state.BootstrapComplete = true
	state := s.state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, state)
}

// Reset clears the session and the bootstrap flag, returning the store to
// its pre-bootstrap state. Used on explicit logout followed by re-bootstrap.
func (s *Store) Reset() {
	s.mu.Lock()
	s.state = AuthState{}
	state := s.state
	listeners := s.snapshotListeners()
	s.mu.Unlock()

	notify(listeners, state)
}

// Subscribe registers a listener for state changes and returns an
// unsubscribe function. The listener is not called with the current state;
// callers Read first if they need it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// snapshotListeners copies the listener set under the lock so notification
// can run outside it. A listener unsubscribing during notification still
// receives the in-flight change.
func (s *Store) snapshotListeners() []Listener {
	out := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		out = append(out, l)
	}
	return out
}

func notify(listeners []Listener, state AuthState) {
	for _, l := range listeners {
		l(state)
	}
}
