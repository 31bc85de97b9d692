// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session holds the single source of truth for the client's
// authentication state.
//
// The Store owns an AuthState: the current Session (nil while
// unauthenticated) and a flag marking whether the one-time bootstrap has
// completed. Only the bootstrapper and the login flow write; route guards and
// the header are read-only observers notified synchronously on every change.
package session
