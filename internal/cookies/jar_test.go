// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cookies

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestJarRoundTrip(t *testing.T) {
	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)

	u := mustURL(t, "https://api.forkful.app/users/login")
	jar.SetCookies(u, []*http.Cookie{{Name: "access_token", Value: "Bearer tok", Path: "/"}})

	got := jar.Cookies(mustURL(t, "https://api.forkful.app/users/me"))
	require.Len(t, got, 1)
	assert.Equal(t, "access_token", got[0].Name)
	assert.Equal(t, "Bearer tok", got[0].Value)
}

func TestJarIgnoresOtherHosts(t *testing.T) {
	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)

	jar.SetCookies(mustURL(t, "https://evil.example.com/"), []*http.Cookie{{Name: "x", Value: "y"}})
	assert.Empty(t, jar.Cookies(mustURL(t, "https://api.forkful.app/")))
	assert.Empty(t, jar.Cookies(mustURL(t, "https://evil.example.com/")))
}

func TestJarExpiry(t *testing.T) {
	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	u := mustURL(t, "https://api.forkful.app/")

	jar.SetCookies(u, []*http.Cookie{
		{Name: "expired", Value: "x", Expires: time.Now().Add(-time.Hour)},
		{Name: "live", Value: "y", Expires: time.Now().Add(time.Hour)},
	})

	got := jar.Cookies(u)
	require.Len(t, got, 1)
	assert.Equal(t, "live", got[0].Name)
}

func TestJarDeleteViaMaxAge(t *testing.T) {
	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	u := mustURL(t, "https://api.forkful.app/")

	jar.SetCookies(u, []*http.Cookie{{Name: "access_token", Value: "tok"}})
	jar.SetCookies(u, []*http.Cookie{{Name: "access_token", MaxAge: -1}})

	assert.Empty(t, jar.Cookies(u))
}

func TestJarClear(t *testing.T) {
	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	u := mustURL(t, "https://api.forkful.app/")

	jar.SetCookies(u, []*http.Cookie{{Name: "access_token", Value: "tok"}})
	jar.Clear()
	assert.Empty(t, jar.Cookies(u))
}

// =============================================================================
// PERSISTENCE TESTS
// =============================================================================

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, JarFileName)
	keyPath := filepath.Join(dir, KeyFileName)

	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	u := mustURL(t, "https://api.forkful.app/")
	jar.SetCookies(u, []*http.Cookie{{Name: "access_token", Value: "Bearer tok", Path: "/"}})

	require.NoError(t, jar.Save(jarPath, keyPath))

	// File on disk must not contain the cookie value in the clear.
	raw, err := os.ReadFile(jarPath)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "Bearer tok")

	// Key file is owner-only.
	info, err := os.Stat(keyPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	fresh, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	require.NoError(t, fresh.Load(jarPath, keyPath))

	got := fresh.Cookies(u)
	require.Len(t, got, 1)
	assert.Equal(t, "Bearer tok", got[0].Value)
}

func TestLoadMissingFilesIsEmptyJar(t *testing.T) {
	dir := t.TempDir()

	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	require.NoError(t, jar.Load(filepath.Join(dir, JarFileName), filepath.Join(dir, KeyFileName)))
	assert.Empty(t, jar.Cookies(mustURL(t, "https://api.forkful.app/")))
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, JarFileName)
	keyPath := filepath.Join(dir, KeyFileName)

	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	require.NoError(t, jar.Save(jarPath, keyPath)) // creates a valid key

	require.NoError(t, os.WriteFile(jarPath, []byte("garbage"), 0600))

	fresh, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	assert.ErrorIs(t, fresh.Load(jarPath, keyPath), ErrCorruptJar)
}

func TestSaveReusesKey(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, JarFileName)
	keyPath := filepath.Join(dir, KeyFileName)

	jar, err := NewJar("https://api.forkful.app")
	require.NoError(t, err)
	require.NoError(t, jar.Save(jarPath, keyPath))

	key1, err := os.ReadFile(keyPath)
	require.NoError(t, err)

	require.NoError(t, jar.Save(jarPath, keyPath))
	key2, err := os.ReadFile(keyPath)
	require.NoError(t, err)

	assert.Equal(t, key1, key2)
}
