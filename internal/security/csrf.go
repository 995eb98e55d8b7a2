package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

// Keys under which the token pair lives in the session store
const (
	csrfTokenKey  = "csrf_token"
	csrfSecretKey = "csrf_secret"
)

// CSRF issues and verifies per-session CSRF tokens. Each session holds a
// random (token, secret) pair: the token is handed to the client and echoed
// back on submissions, the secret never leaves the server. Verification
// compares SHA-256("token:secret") digests in constant time, so a submitted
// token can't be probed byte by byte through timing.
type CSRF struct {
	store SessionStore
	ttl   time.Duration
}

// NewCSRF creates a CSRF token service over the given session store
func NewCSRF(store SessionStore, ttl time.Duration) *CSRF {
	return &CSRF{store: store, ttl: ttl}
}

// Issue returns the session's CSRF token, generating a fresh token/secret
// pair when either half is missing. Only the token is returned; the secret
// stays in the store.
func (c *CSRF) Issue(w http.ResponseWriter, r *http.Request) (string, error) {
	token, haveToken := c.store.Get(r, csrfTokenKey)
	_, haveSecret := c.store.Get(r, csrfSecretKey)
	if haveToken && haveSecret && token != "" {
		return token, nil
	}

	token, err := randomHex(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSRF token: %w", err)
	}
	secret, err := randomHex(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSRF secret: %w", err)
	}

	c.store.Set(w, r, csrfTokenKey, token, c.ttl)
	c.store.Set(w, r, csrfSecretKey, secret, c.ttl)

	return token, nil
}

// Verify reports whether submitted is the valid CSRF token for the request's
// session. It never returns an error: a missing pair, an empty submission and
// a mismatch all read as false, and the caller rejects with 403.
func (c *CSRF) Verify(r *http.Request, submitted string) bool {
	if submitted == "" {
		return false
	}

	token, ok := c.store.Get(r, csrfTokenKey)
	if !ok || token == "" {
		return false
	}
	secret, ok := c.store.Get(r, csrfSecretKey)
	if !ok || secret == "" {
		return false
	}

	expected := pairDigest(token, secret)
	got := pairDigest(submitted, secret)
	return subtle.ConstantTimeCompare(expected[:], got[:]) == 1
}

// Invalidate discards the session's token pair. Called on admin login and
// logout so the pair rotates across privilege changes.
func (c *CSRF) Invalidate(w http.ResponseWriter, r *http.Request) {
	c.store.Delete(w, r, csrfTokenKey)
	c.store.Delete(w, r, csrfSecretKey)
}

// pairDigest computes the keyed digest both sides of a verification use.
// Digests are fixed-size, so the constant-time compare never short-circuits.
func pairDigest(token, secret string) [sha256.Size]byte {
	return sha256.Sum256([]byte(token + ":" + secret))
}

// randomHex returns n cryptographically random bytes, hex-encoded
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
