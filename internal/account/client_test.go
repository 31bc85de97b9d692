// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package account

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	client := NewClient(ClientConfig{BaseURL: srv.URL, Jar: jar})
	return client, srv
}

// =============================================================================
// SESSION TESTS
// =============================================================================

func TestCurrentSession(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/me", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "username": "ada", "email": "ada@example.com", "role": "admin",
		})
	}))

	s, err := client.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), s.ID)
	assert.Equal(t, "ada", s.Username)
	assert.Equal(t, RoleAdmin, s.Role)
}

func TestCurrentSessionUnauthorized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
	}))

	s, err := client.CurrentSession(context.Background())
	assert.Nil(t, s)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Not authenticated", Detail(err))
}

func TestCurrentSessionUnknownRole(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "x", "role": "superuser"})
	}))

	s, err := client.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RoleNone, s.Role)
}

func TestCurrentSessionMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))

	_, err := client.CurrentSession(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

// =============================================================================
// LOGIN TESTS
// =============================================================================

func TestLoginAuthenticated(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ada", body["username"])
		assert.Equal(t, "hunter2", body["password"])

		json.NewEncoder(w).Encode(map[string]any{"authenticated": true})
	}))

	res, err := client.Login(context.Background(), "ada", "hunter2")
	require.NoError(t, err)
	assert.True(t, res.Authenticated)
	assert.False(t, res.MFARequired)
}

func TestLoginMFARequired(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"mfa_required": true, "mfa_token": "T1"})
	}))

	res, err := client.Login(context.Background(), "ada", "hunter2")
	require.NoError(t, err)
	assert.False(t, res.Authenticated)
	assert.True(t, res.MFARequired)
	assert.Equal(t, "T1", res.MFAToken)
}

func TestLoginRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid username or password"})
	}))

	res, err := client.Login(context.Background(), "ada", "wrong")
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid username or password", Detail(err))
}

func TestLoginSessionCookieCarriedForward(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "Bearer tok", Path: "/"})
		json.NewEncoder(w).Encode(map[string]any{"authenticated": true})
	})
	mux.HandleFunc("/users/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("access_token")
		if err != nil || cookie.Value == "" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"detail": "Not authenticated"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "ada", "role": "regularUser"})
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Login(context.Background(), "ada", "hunter2")
	require.NoError(t, err)

	s, err := client.CurrentSession(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RoleUser, s.Role)
}

// =============================================================================
// MFA TESTS
// =============================================================================

func TestVerifyMFALogin(t *testing.T) {
	var got map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/mfa/verify-login", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))

	require.NoError(t, client.VerifyMFALogin(context.Background(), "123456", "T1"))
	assert.Equal(t, "123456", got["code"])
	assert.Equal(t, "T1", got["mfa_token"])
}

func TestVerifyMFALoginRejected(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid MFA code"})
	}))

	err := client.VerifyMFALogin(context.Background(), "000000", "T1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "Invalid MFA code", Detail(err))
}

func TestBeginMFASetup(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/mfa/setup", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{
			"otpauth_url": "otpauth://totp/forkful:ada?secret=JBSWY3DPEHPK3PXP&issuer=forkful",
		})
	}))

	setup, err := client.BeginMFASetup(context.Background())
	require.NoError(t, err)
	assert.Contains(t, setup.OtpauthURL, "otpauth://totp/")
}

// =============================================================================
// ACCOUNT LIFECYCLE TESTS
// =============================================================================

func TestRegisterValidationFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "User already exists"})
	}))

	_, err := client.Register(context.Background(), RegisterRequest{
		Username: "ada", Email: "ada@example.com", Password: "Secret1!",
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "User already exists", apiErr.Detail)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestResetPassword(t *testing.T) {
	var got map[string]string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/reset-password", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"message": "Password updated"})
	}))

	msg, err := client.ResetPassword(context.Background(), "tok123", "NewSecret1!")
	require.NoError(t, err)
	assert.Equal(t, "Password updated", msg.Message)
	assert.Equal(t, "tok123", got["token"])
	assert.Equal(t, "NewSecret1!", got["new_password"])
}

func TestTransportFailure(t *testing.T) {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	// Unroutable port: connection refused.
	client := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:1", Jar: jar})

	_, err = client.CurrentSession(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not be APIErrors")
}

// =============================================================================
// ERROR DECODING TESTS
// =============================================================================

func TestDecodeDetail(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"string detail", `{"detail":"Bad credentials"}`, "Bad credentials"},
		{"no detail", `{"error":"x"}`, ""},
		{"empty body", ``, ""},
		{"not json", `<html>`, ""},
		{"structured detail", `{"detail":[{"loc":["body","email"]}]}`, `[{"loc":["body","email"]}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, decodeDetail([]byte(tc.body)))
		})
	}
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
	assert.Equal(t, RoleUser, ParseRole("regularUser"))
	assert.Equal(t, RoleNone, ParseRole(""))
	assert.Equal(t, RoleNone, ParseRole("superuser"))
}
