package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// issueToken runs Issue against a fresh session and returns the token plus a
// request carrying the session's cookies, ready for Verify.
func issueToken(t *testing.T, csrf *CSRF) (string, *http.Request) {
	t.Helper()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)

	token, err := csrf.Issue(w, r)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if token == "" {
		t.Fatal("Issue() returned an empty token")
	}

	next := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	for _, cookie := range w.Result().Cookies() {
		next.AddCookie(cookie)
	}
	return token, next
}

func TestCSRFIssueAndVerify(t *testing.T) {
	csrf := NewCSRF(NewMemoryStore(), time.Hour)

	token, r := issueToken(t, csrf)
	if !csrf.Verify(r, token) {
		t.Error("Verify() = false for the issued token")
	}
}

func TestCSRFIssueIsStable(t *testing.T) {
	csrf := NewCSRF(NewMemoryStore(), time.Hour)

	first, r := issueToken(t, csrf)

	w := httptest.NewRecorder()
	second, err := csrf.Issue(w, r)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if first != second {
		t.Errorf("second Issue() returned a different token: %q vs %q", first, second)
	}
}

func TestCSRFVerifyRejectsMismatch(t *testing.T) {
	csrf := NewCSRF(NewMemoryStore(), time.Hour)
	token, r := issueToken(t, csrf)

	tests := []struct {
		name      string
		submitted string
	}{
		{name: "empty token", submitted: ""},
		{name: "shorter token", submitted: token[:len(token)-2]},
		{name: "longer token", submitted: token + "ab"},
		{name: "same length different token", submitted: flipLastChar(token)},
		{name: "shared prefix", submitted: token[:32] + flipLastChar(token)[32:]},
		{name: "unrelated value", submitted: "deadbeef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if csrf.Verify(r, tt.submitted) {
				t.Errorf("Verify(%q) = true, want false", tt.submitted)
			}
		})
	}
}

func TestCSRFVerifyWithoutIssuedPair(t *testing.T) {
	csrf := NewCSRF(NewMemoryStore(), time.Hour)

	r := httptest.NewRequest(http.MethodPost, "/api/contact", nil)
	if csrf.Verify(r, "anything") {
		t.Error("Verify() = true for a session with no issued pair")
	}
}

func TestCSRFTokensDifferAcrossSessions(t *testing.T) {
	csrf := NewCSRF(NewMemoryStore(), time.Hour)

	tokenA, _ := issueToken(t, csrf)
	tokenB, rB := issueToken(t, csrf)

	if tokenA == tokenB {
		t.Fatal("two sessions received the same token")
	}
	if csrf.Verify(rB, tokenA) {
		t.Error("Verify() accepted a token issued to a different session")
	}
}

func TestCSRFInvalidate(t *testing.T) {
	csrf := NewCSRF(NewMemoryStore(), time.Hour)
	token, r := issueToken(t, csrf)

	w := httptest.NewRecorder()
	csrf.Invalidate(w, r)

	if csrf.Verify(r, token) {
		t.Error("Verify() = true after Invalidate()")
	}

	// A fresh Issue mints a new pair
	w = httptest.NewRecorder()
	fresh, err := csrf.Issue(w, r)
	if err != nil {
		t.Fatalf("Issue() after Invalidate() error = %v", err)
	}
	if fresh == token {
		t.Error("Issue() after Invalidate() returned the old token")
	}
}

func TestCSRFExpiredPair(t *testing.T) {
	store := NewMemoryStore()
	csrf := NewCSRF(store, -time.Second)

	token, r := issueToken(t, csrf)
	if csrf.Verify(r, token) {
		t.Error("Verify() = true for an expired pair")
	}
}

// flipLastChar changes the final character while keeping the length
func flipLastChar(s string) string {
	last := s[len(s)-1]
	replacement := byte('0')
	if last == '0' {
		replacement = '1'
	}
	return s[:len(s)-1] + string(replacement)
}
