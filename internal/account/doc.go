// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package account implements the HTTP client for the forkful account service.
//
// The account service is the system of record for credentials, sessions and
// multi-factor secrets. This package covers session resolution, login with an
// optional second factor, MFA enrollment, registration, email verification and
// password recovery. Authentication state travels in a session cookie managed
// by the http.CookieJar supplied at construction.
//
// All methods take a context and surface failures either as sentinel errors
// (ErrUnauthorized for rejected credentials or missing sessions) or as an
// *APIError carrying the server-provided detail message.
package account
