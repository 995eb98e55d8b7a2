package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCookieStoreRoundTrip(t *testing.T) {
	store := NewCookieStore(false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	store.Set(w, r, "csrf_token", "abc123", time.Hour)

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Set() wrote %d cookies, want 1", len(cookies))
	}

	cookie := cookies[0]
	if cookie.Name != "wm_csrf_token" {
		t.Errorf("cookie name = %q, want %q", cookie.Name, "wm_csrf_token")
	}
	if !cookie.HttpOnly {
		t.Error("cookie is not HttpOnly")
	}
	if cookie.SameSite != http.SameSiteStrictMode {
		t.Error("cookie is not SameSite=Strict")
	}

	next := httptest.NewRequest(http.MethodPost, "/", nil)
	next.AddCookie(cookie)

	value, ok := store.Get(next, "csrf_token")
	if !ok || value != "abc123" {
		t.Errorf("Get() = (%q, %v), want (%q, true)", value, ok, "abc123")
	}
}

func TestCookieStoreProductionForcesSecure(t *testing.T) {
	store := NewCookieStore(true)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil) // plain http request
	store.Set(w, r, "csrf_token", "abc123", time.Hour)

	if !w.Result().Cookies()[0].Secure {
		t.Error("production cookie is not Secure")
	}
}

func TestCookieStoreDelete(t *testing.T) {
	store := NewCookieStore(false)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	store.Delete(w, r, "csrf_token")

	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("Delete() wrote %d cookies, want 1", len(cookies))
	}
	if cookies[0].MaxAge != -1 {
		t.Errorf("delete cookie MaxAge = %d, want -1", cookies[0].MaxAge)
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	store.Set(w, r, "key", "value", time.Hour)

	// Set mints a session cookie and makes it visible on the same request
	value, ok := store.Get(r, "key")
	if !ok || value != "value" {
		t.Errorf("Get() same request = (%q, %v), want (%q, true)", value, ok, "value")
	}

	next := httptest.NewRequest(http.MethodPost, "/", nil)
	for _, cookie := range w.Result().Cookies() {
		next.AddCookie(cookie)
	}
	value, ok = store.Get(next, "key")
	if !ok || value != "value" {
		t.Errorf("Get() next request = (%q, %v), want (%q, true)", value, ok, "value")
	}
}

func TestMemoryStoreMissingSession(t *testing.T) {
	store := NewMemoryStore()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, ok := store.Get(r, "key"); ok {
		t.Error("Get() = true for a request without a session cookie")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	store.Set(w, r, "key", "value", -time.Second)

	if _, ok := store.Get(r, "key"); ok {
		t.Error("Get() = true for an expired entry")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	store.Set(w, r, "key", "value", time.Hour)
	store.Delete(w, r, "key")

	if _, ok := store.Get(r, "key"); ok {
		t.Error("Get() = true after Delete()")
	}
}
