// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cookies

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/forkfulapp/forkful-tui/internal/util"
)

// File names inside the state directory.
const (
	// JarFileName is the encrypted cookie file.
	JarFileName = "session.cookies"
	// KeyFileName holds the random encryption key.
	KeyFileName = "session.key"
)

// ErrCorruptJar indicates the cookie file could not be decrypted or decoded.
// Callers treat it like an empty jar; the session is simply re-established.
var ErrCorruptJar = errors.New("cookie jar corrupt")

// storedCookie is the serialized form of one cookie.
type storedCookie struct {
	Name    string    `json:"name"`
	Value   string    `json:"value"`
	Path    string    `json:"path,omitempty"`
	Expires time.Time `json:"expires,omitempty"`
}

// Jar is an http.CookieJar scoped to a single host (the account service)
// that can persist its contents to an encrypted file.
//
// Unlike net/http/cookiejar it exposes its entries for serialization; the
// client only ever talks to one origin, so full RFC 6265 domain matching is
// not needed.
type Jar struct {
	mu      sync.Mutex
	host    string
	cookies map[string]storedCookie
}

// NewJar creates an empty jar bound to the host of baseURL.
func NewJar(baseURL string) (*Jar, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	return &Jar{host: u.Host, cookies: make(map[string]storedCookie)}, nil
}

// SetCookies implements http.CookieJar. Cookies for other hosts are ignored;
// expired cookies and MaxAge<0 delete existing entries.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	if u.Host != j.host {
		return
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	for _, c := range cookies {
		if c.Name == "" {
			continue
		}
		if c.MaxAge < 0 || c.Value == "" {
			delete(j.cookies, c.Name)
			continue
		}

		sc := storedCookie{Name: c.Name, Value: c.Value, Path: c.Path}
		switch {
		case c.MaxAge > 0:
			sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
		case !c.Expires.IsZero():
			if c.Expires.Before(now) {
				delete(j.cookies, c.Name)
				continue
			}
			sc.Expires = c.Expires
		}
		j.cookies[c.Name] = sc
	}
}

// Cookies implements http.CookieJar, returning unexpired cookies for the
// bound host.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	if u.Host != j.host {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	now := time.Now()
	var out []*http.Cookie
	for name, sc := range j.cookies {
		if !sc.Expires.IsZero() && sc.Expires.Before(now) {
			delete(j.cookies, name)
			continue
		}
		out = append(out, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: sc.Path})
	}
	return out
}

// Clear drops every cookie. Used on logout.
func (j *Jar) Clear() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies = make(map[string]storedCookie)
}

// =============================================================================
// PERSISTENCE
// =============================================================================

// Save encrypts the jar and writes it atomically to jarPath, creating the
// key file on first use.
func (j *Jar) Save(jarPath, keyPath string) error {
	j.mu.Lock()
	list := make([]storedCookie, 0, len(j.cookies))
	for _, sc := range j.cookies {
		list = append(list, sc)
	}
	j.mu.Unlock()

	plaintext, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode cookies: %w", err)
	}

	key, err := loadOrCreateKey(keyPath)
	if err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return fmt.Errorf("failed to init cipher: %w", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := aead.Seal(nonce, nonce, plaintext, nil)
	return util.AtomicWriteFile(jarPath, ciphertext, 0600)
}

// Load decrypts jarPath into the jar, replacing its contents. A missing jar
// or key file leaves the jar empty and returns nil; an undecryptable file
// returns ErrCorruptJar.
func (j *Jar) Load(jarPath, keyPath string) error {
	ciphertext, err := os.ReadFile(jarPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read cookie file: %w", err)
	}

	key, err := os.ReadFile(keyPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read key file: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return ErrCorruptJar
	}
	if len(ciphertext) < aead.NonceSize() {
		return ErrCorruptJar
	}

	nonce, sealed := ciphertext[:aead.NonceSize()], ciphertext[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return ErrCorruptJar
	}

	var list []storedCookie
	if err := json.Unmarshal(plaintext, &list); err != nil {
		return ErrCorruptJar
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.cookies = make(map[string]storedCookie, len(list))
	for _, sc := range list {
		j.cookies[sc.Name] = sc
	}
	return nil
}

// loadOrCreateKey reads the encryption key, generating a fresh random key on
// first use. The key file is written with owner-only permissions.
func loadOrCreateKey(keyPath string) ([]byte, error) {
	key, err := os.ReadFile(keyPath)
	if err == nil {
		if len(key) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("key file %s has wrong size", keyPath)
		}
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}
	if err := util.AtomicWriteFile(keyPath, key, 0600); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	return key, nil
}
