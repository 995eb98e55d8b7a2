package security

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// sidCookieName identifies the browser session for the server-side stores.
// The cookie-backed store doesn't need it; values live in the jar itself.
const sidCookieName = "wm_sid"

// SessionStore is the capability the CSRF service uses to persist
// session-scoped values. The production implementation keeps values in
// HTTP-only cookies; server-side implementations (memory, redis) key them
// by a session-ID cookie instead.
type SessionStore interface {
	// Get returns the value stored under key for the request's session.
	Get(r *http.Request, key string) (string, bool)

	// Set stores value under key for the request's session with the given TTL.
	Set(w http.ResponseWriter, r *http.Request, key, value string, ttl time.Duration)

	// Delete removes the value stored under key for the request's session.
	Delete(w http.ResponseWriter, r *http.Request, key string)
}

// CookieStore keeps session values directly in HTTP-only, SameSite=Strict
// cookies, so no server-side state is required and every replica can verify
// tokens it did not issue.
type CookieStore struct {
	prefix     string
	production bool // forces the Secure flag regardless of request scheme
}

// NewCookieStore creates a cookie-backed session store.
// In production the Secure flag is always set.
func NewCookieStore(production bool) *CookieStore {
	return &CookieStore{prefix: "wm_", production: production}
}

func (s *CookieStore) Get(r *http.Request, key string) (string, bool) {
	cookie, err := r.Cookie(s.prefix + key)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s *CookieStore) Set(w http.ResponseWriter, r *http.Request, key, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.prefix + key,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   s.production || IsSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
	})
}

func (s *CookieStore) Delete(w http.ResponseWriter, r *http.Request, key string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.prefix + key,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.production || IsSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
	})
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore keeps session values in process memory, keyed by a session-ID
// cookie. Used in development and tests; not suitable for multi-replica
// deployments.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]map[string]memoryEntry
}

// NewMemoryStore creates an in-memory session store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]map[string]memoryEntry),
	}
	go store.cleanupExpired()
	return store
}

func (s *MemoryStore) Get(r *http.Request, key string) (string, bool) {
	cookie, err := r.Cookie(sidCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[cookie.Value][key]
	if !ok || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.value, true
}

func (s *MemoryStore) Set(w http.ResponseWriter, r *http.Request, key, value string, ttl time.Duration) {
	sid := s.ensureSessionID(w, r, ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sessions[sid] == nil {
		s.sessions[sid] = make(map[string]memoryEntry)
	}
	s.sessions[sid][key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

func (s *MemoryStore) Delete(w http.ResponseWriter, r *http.Request, key string) {
	cookie, err := r.Cookie(sidCookieName)
	if err != nil || cookie.Value == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions[cookie.Value], key)
}

// ensureSessionID returns the request's session ID, minting one (and setting
// the cookie) when the request has none yet.
func (s *MemoryStore) ensureSessionID(w http.ResponseWriter, r *http.Request, ttl time.Duration) string {
	if cookie, err := r.Cookie(sidCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	sid := uuid.New().String()
	cookie := &http.Cookie{
		Name:     sidCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   IsSecureRequest(r),
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(w, cookie)
	// Make the ID visible to stores reading the same request later in the cycle
	r.AddCookie(cookie)
	return sid
}

// cleanupExpired removes expired entries periodically
func (s *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		s.mu.Lock()
		for sid, entries := range s.sessions {
			for key, entry := range entries {
				if now.After(entry.expiresAt) {
					delete(entries, key)
				}
			}
			if len(entries) == 0 {
				delete(s.sessions, sid)
			}
		}
		s.mu.Unlock()
	}
}
