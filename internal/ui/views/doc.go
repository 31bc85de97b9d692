// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package views implements the screens of the forkful TUI.
//
// Each route maps to one view model following the Bubble Tea pattern: a
// constructor returning the model plus its activation command, an Update
// method consuming messages, and a View method rendering the screen. Views
// are created fresh on every navigation, which gives mount-once semantics to
// activation work such as fetching MFA provisioning material.
//
// The login view carries the authentication sequencer: the state machine
// driving credential submission, the optional second-factor hand-off and
// session finalization. It and the MFA prompt are the only writers to the
// session store besides the startup bootstrapper.
package views
