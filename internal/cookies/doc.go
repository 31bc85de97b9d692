// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cookies provides a persistent cookie jar for the account service
// session.
//
// A browser keeps its session cookie across restarts; this jar gives the TUI
// the same behavior so the startup bootstrap can resolve an existing session.
// The cookie file is encrypted at rest (XChaCha20-Poly1305) with a random key
// kept in a 0600-permission key file next to it.
package cookies
