// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

// =============================================================================
// ROLES
// =============================================================================

// Role is the closed set of roles the account service assigns to users.
type Role string

const (
	// RoleAdmin identifies platform administrators.
	RoleAdmin Role = "admin"
	// RoleUser identifies regular users. The wire value is historical.
	RoleUser Role = "regularUser"
	// RoleNone is the absence of a role (unauthenticated or unrecognized).
	RoleNone Role = ""
)

// ParseRole maps a wire value onto the closed role set. Unknown values
// collapse to RoleNone rather than leaking free-form strings into the client.
func ParseRole(s string) Role {
	switch s {
	case string(RoleAdmin):
		return RoleAdmin
	case string(RoleUser):
		return RoleUser
	default:
		return RoleNone
	}
}

// String returns a human-readable name for the role.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleUser:
		return "user"
	default:
		return "none"
	}
}

// =============================================================================
// SESSION
// =============================================================================

// Session is the client-held record of an authenticated actor. It exists only
// while authenticated; an unauthenticated client holds no Session at all.
type Session struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// =============================================================================
// REQUEST / RESPONSE TYPES
// =============================================================================

// LoginResult is the outcome of a credential submission. Exactly one of
// Authenticated or MFARequired is set on success; MFAToken accompanies
// MFARequired and identifies the pending challenge.
type LoginResult struct {
	Authenticated bool   `json:"authenticated"`
	MFARequired   bool   `json:"mfa_required"`
	MFAToken      string `json:"mfa_token"`
}

// MFASetup is the provisioning payload for MFA enrollment. The otpauth URL
// encodes the shared secret; the client renders it as a scannable QR code.
type MFASetup struct {
	OtpauthURL string `json:"otpauth_url"`
}

// RegisterRequest carries the registration form fields. Optional profile
// fields are omitted from the body when empty.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	DOB      string `json:"dob,omitempty"`
}

// Profile is the extended account record shown on the profile view.
type Profile struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	City       string `json:"city"`
	Country    string `json:"country"`
	DOB        string `json:"dob"`
	MFAEnabled bool   `json:"mfa_enabled"`
}

// Message is the generic acknowledgement body returned by the account
// service's fire-and-forget operations.
type Message struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type mfaLoginVerifyRequest struct {
	Code     string `json:"code"`
	MFAToken string `json:"mfa_token"`
}

type mfaSetupVerifyRequest struct {
	Code string `json:"code"`
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

type emailRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}
