// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package nav

import "github.com/forkfulapp/forkful-tui/internal/account"

// HomeFor maps a role to that role's home route. This is the only place the
// mapping exists; guards and the login flow must not hardcode redirect
// targets.
//
// Total and deterministic: every role, including unrecognized ones, maps to
// exactly one route.
func HomeFor(role account.Role) Route {
	switch role {
	case account.RoleAdmin:
		return RouteAdminDashboard
	case account.RoleUser:
		return RouteDashboard
	default:
		return RouteHome
	}
}
