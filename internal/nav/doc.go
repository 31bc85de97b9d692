// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package nav defines the client's route surface and the access-control
// decisions made over it.
//
// Two pieces live here: the navigation policy (the single role-to-home-route
// mapping) and the route guard (the total decision procedure that either
// suspends rendering, redirects, or renders a route based on the current
// authentication state). Guards never fail; absence of a session and role
// mismatches are resolved by redirect.
package nav
