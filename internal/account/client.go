// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Configuration constants for the account service client.
const (
	// DefaultTimeout is the default timeout for account service requests.
	DefaultTimeout = 30 * time.Second

	// MaxResponseSize is the maximum allowed response body size.
	// Response size limit prevents memory exhaustion on a misbehaving server.
	MaxResponseSize = 1 * 1024 * 1024 // 1MB
)

// ClientConfig holds configuration options for the account client.
type ClientConfig struct {
	// BaseURL is the root URL of the account service.
	BaseURL string

	// Timeout for requests (default: 30s).
	Timeout time.Duration

	// Jar holds the session cookie. A persistent jar keeps the session
	// across program runs the way a browser cookie store would.
	Jar http.CookieJar
}

// Client communicates with the forkful account service.
//
// The Client is safe for concurrent use. Session state lives entirely in the
// cookie jar; the client itself holds no authentication state.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an account service client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Jar:     cfg.Jar,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
	}
}

// BaseURL returns the configured service root.
func (c *Client) BaseURL() string { return c.baseURL }

// =============================================================================
// SESSION
// =============================================================================

// CurrentSession resolves the session held by the cookie jar. ErrUnauthorized
// (wrapped in the returned *APIError) means no valid session exists, which is
// a normal outcome for an unauthenticated client.
func (c *Client) CurrentSession(ctx context.Context) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &s); err != nil {
		return nil, err
	}
	s.Role = ParseRole(string(s.Role))
	return &s, nil
}

// Login submits primary credentials. The result either finalizes
// authentication or reports that a second factor is required, carrying the
// challenge token for the verification call.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var res LoginResult
	body := loginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/users/login", body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Logout invalidates the server-side session. Callers treat this as
// best-effort: local state is cleared regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil)
}

// =============================================================================
// MFA
// =============================================================================

// VerifyMFALogin completes a login-time MFA challenge. The token is single-use
// from the server's point of view but retries with the same token are allowed
// until the server rejects it as expired.
func (c *Client) VerifyMFALogin(ctx context.Context, code, mfaToken string) error {
	body := mfaLoginVerifyRequest{Code: code, MFAToken: mfaToken}
	return c.do(ctx, http.MethodPost, "/users/mfa/verify-login", body, nil)
}

// BeginMFASetup requests provisioning material for MFA enrollment.
func (c *Client) BeginMFASetup(ctx context.Context) (*MFASetup, error) {
	var setup MFASetup
	if err := c.do(ctx, http.MethodPost, "/users/mfa/setup", nil, &setup); err != nil {
		return nil, err
	}
	return &setup, nil
}

// VerifyMFASetup confirms enrollment with a code generated from the
// provisioned secret.
func (c *Client) VerifyMFASetup(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodPost, "/users/mfa/verify-setup", mfaSetupVerifyRequest{Code: code}, nil)
}

// =============================================================================
// ACCOUNT LIFECYCLE
// =============================================================================

// Register creates a new account. Validation failures come back as an
// *APIError with the server's detail message.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, "/users/register", req, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// VerifyEmail redeems an email verification token.
func (c *Client) VerifyEmail(ctx context.Context, token string) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, "/users/verify-email", verifyEmailRequest{Token: token}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResendVerification requests a fresh verification email.
func (c *Client) ResendVerification(ctx context.Context, email string) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, "/users/resend-verification", emailRequest{Email: email}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ForgotPassword requests a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) (*Message, error) {
	var msg Message
	if err := c.do(ctx, http.MethodPost, "/users/forgot-password", emailRequest{Email: email}, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// ResetPassword redeems a reset token together with the new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) (*Message, error) {
	var msg Message
	body := resetPasswordRequest{Token: token, NewPassword: newPassword}
	if err := c.do(ctx, http.MethodPost, "/users/reset-password", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Profile fetches the extended account record for the profile view.
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/users/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// =============================================================================
// REQUEST PLUMBING
// =============================================================================

// do performs a JSON request against the account service. A non-2xx response
// becomes an *APIError carrying the server's detail message when present.
// Transport failures are returned wrapped, untyped.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	// Correlation ID for server-side request tracing.
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("account service unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Detail: decodeDetail(data)}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("malformed response: %w", err)
		}
	}
	return nil
}

// decodeDetail extracts the "detail" field from an error body. The field may
// be a plain string or a structured validation report; anything non-string is
// flattened to its JSON form so the user still sees what the server said.
func decodeDetail(data []byte) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(body.Detail, &s); err == nil {
		return s
	}
	return string(body.Detail)
}
