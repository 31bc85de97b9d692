// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app holds the root Bubble Tea model: the navigation shell around
// the views.
//
// The shell owns the route, runs the guard decision procedure on every
// navigation request, and mounts the winning view. It also runs the startup
// bootstrap (the one-time session resolution), the logout flow, and the toast
// queue. Views never change the route themselves; they emit NavigateMsg and
// the shell decides.
package app
