// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import "github.com/forkfulapp/forkful-tui/internal/account"

// Route identifies a navigable view.
type Route string

// The full route surface of the client.
const (
	RouteHome               Route = "/"
	RouteAbout              Route = "/about"
	RouteLogin              Route = "/login"
	RouteRegister           Route = "/register"
	RouteDashboard          Route = "/dashboard"
	RouteAdminDashboard     Route = "/adminDashboard"
	RouteProfile            Route = "/profile"
	RouteVerifyEmail        Route = "/verify-email"
	RouteResendVerification Route = "/resend-verification"
	RouteForgotPassword     Route = "/forgot-password"
	RouteResetPassword      Route = "/reset-password"
)

// Spec describes how a route is guarded.
type Spec struct {
	// Mode selects the guard variant.
	Mode GuardMode
	// RequiredRole restricts a protected route to one role.
	// RoleNone means any authenticated role.
	RequiredRole account.Role
}

// routeSpecs is the guard configuration for every route. Routes absent from
// the map are open: rendered for everyone once bootstrap completes.
var routeSpecs = map[Route]Spec{
	RouteLogin:          {Mode: GuardPublic},
	RouteRegister:       {Mode: GuardPublic},
	RouteDashboard:      {Mode: GuardProtected, RequiredRole: account.RoleUser},
	RouteAdminDashboard: {Mode: GuardProtected, RequiredRole: account.RoleAdmin},
	RouteProfile:        {Mode: GuardProtected},
}

// SpecFor returns the guard configuration for a route.
func SpecFor(r Route) Spec {
	if spec, ok := routeSpecs[r]; ok {
		return spec
	}
	return Spec{Mode: GuardOpen}
}
