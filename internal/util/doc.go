// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small shared helpers for the forkful TUI.
//
// It contains filesystem helpers (atomic writes for local state files)
// and display-width-aware string helpers used by the UI layer.
package util
