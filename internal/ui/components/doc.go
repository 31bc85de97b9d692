// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package components provides UI components for the forkful TUI: the
// navigation header, the shortcut status bar and non-blocking toasts.
package components
