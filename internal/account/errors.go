// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"errors"
	"fmt"
	"net/http"
)

// Error variables for common account service failures.
var (
	// ErrUnauthorized indicates the server rejected the request: missing or
	// expired session, bad credentials, or an invalid MFA code. For the
	// current-session call this is a normal outcome, not a failure.
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError represents a non-2xx response from the account service. Detail is
// the server-provided message when the body carried one; callers surface it
// to the user verbatim.
type APIError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("account service error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("account service error (HTTP %d)", e.Status)
}

// Unwrap maps authentication failures onto ErrUnauthorized so callers can use
// errors.Is without inspecting status codes.
func (e *APIError) Unwrap() error {
	if e.Status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

// Detail extracts the server-provided message from err, or returns the empty
// string when the error carries none (transport failures, cancellations).
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}
