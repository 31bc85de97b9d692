// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import (
	"github.com/forkfulapp/forkful-tui/internal/account"
	"github.com/forkfulapp/forkful-tui/internal/session"
)

// =============================================================================
// GUARD MODES
// =============================================================================

// GuardMode selects the guard variant applied to a route.
type GuardMode int

const (
	// GuardOpen renders for everyone once bootstrap completes.
	GuardOpen GuardMode = iota
	// GuardProtected requires a session, optionally with a specific role.
	GuardProtected
	// GuardPublic is for login-like routes: an authenticated user is
	// redirected to their role's home instead of seeing the route.
	GuardPublic
)

// =============================================================================
// DECISIONS
// =============================================================================

// DecisionKind is the outcome class of a guard evaluation.
type DecisionKind int

const (
	// Suspend renders nothing; re-evaluate when the session store changes.
	Suspend DecisionKind = iota
	// Redirect navigates to Decision.Target instead of rendering.
	Redirect
	// Render shows the guarded route.
	Render
)

// Decision is the outcome of evaluating a guard. Target is meaningful only
// for Redirect.
type Decision struct {
	Kind   DecisionKind
	Target Route
}

// =============================================================================
// DECISION PROCEDURE
// =============================================================================

// Decide evaluates the guard for one route against the current auth state.
//
// The procedure is total: every combination of state, mode and required role
// maps to exactly one decision.
//
//  1. Bootstrap incomplete: suspend, regardless of mode.
//  2. Protected: no session redirects to login; a role mismatch redirects to
//     the actor's own home (never the required role's route, never a generic
//     fallback); otherwise render.
//  3. Public: any session redirects to the actor's home; otherwise render.
//  4. Open: render.
func Decide(state session.AuthState, spec Spec) Decision {
	if !state.BootstrapComplete {
		return Decision{Kind: Suspend}
	}

	switch spec.Mode {
	case GuardProtected:
		if !state.Authenticated() {
			return Decision{Kind: Redirect, Target: RouteLogin}
		}
		if spec.RequiredRole != account.RoleNone && state.Role() != spec.RequiredRole {
			return Decision{Kind: Redirect, Target: HomeFor(state.Role())}
		}
		return Decision{Kind: Render}

	case GuardPublic:
		if state.Authenticated() {
			return Decision{Kind: Redirect, Target: HomeFor(state.Role())}
		}
		return Decision{Kind: Render}

	default:
		return Decision{Kind: Render}
	}
}

// DecideRoute evaluates the guard configured for a route.
func DecideRoute(state session.AuthState, r Route) Decision {
	return Decide(state, SpecFor(r))
}
