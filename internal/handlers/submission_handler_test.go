package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"willowmoon/internal/security"
)

// newCSRFClient issues a token against a fresh session and returns it with
// the cookies needed to replay that session.
func newCSRFClient(t *testing.T, csrf *security.CSRF) (string, []*http.Cookie) {
	t.Helper()

	handler := NewCSRFHandler(csrf)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	handler.Token(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("Token() status = %d, want 200", w.Code)
	}
	if cc := w.Header().Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("Token() Cache-Control = %q, want no-store", cc)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}
	if payload.Token == "" {
		t.Fatal("Token() returned an empty token")
	}

	return payload.Token, w.Result().Cookies()
}

func postJSON(target, body, token string, cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set(CSRFHeader, token)
	}
	for _, cookie := range cookies {
		r.AddCookie(cookie)
	}
	return r
}

// The nil collaborators are deliberate: these tests assert the pipeline stops
// before any storage or email work, so a nil dereference would mean the
// ordering is broken.
func protectedContact(csrf *security.CSRF) http.HandlerFunc {
	handler := NewSubmissionHandler(nil, nil, nil)
	mw := NewMiddleware(nil, csrf, nil)
	return mw.CSRFProtect(handler.Contact)
}

func TestContactRejectsMissingCSRFToken(t *testing.T) {
	csrf := security.NewCSRF(security.NewMemoryStore(), time.Hour)
	_, cookies := newCSRFClient(t, csrf)

	body := `{"name":"Jane","email":"jane@example.com","subject":"Hello there","message":"A perfectly valid message."}`

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing header", token: ""},
		{name: "wrong token", token: "0000000000000000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			protectedContact(csrf).ServeHTTP(w, postJSON("/api/contact", body, tt.token, cookies))

			if w.Code != http.StatusForbidden {
				t.Errorf("status = %d, want 403", w.Code)
			}

			var resp map[string]string
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if resp["error"] != "Invalid CSRF token" {
				t.Errorf("error = %q, want %q", resp["error"], "Invalid CSRF token")
			}
		})
	}
}

func TestContactRejectsRequestWithoutSession(t *testing.T) {
	csrf := security.NewCSRF(security.NewMemoryStore(), time.Hour)
	token, _ := newCSRFClient(t, csrf)

	// Valid token but no session cookies: the stored pair can't be found
	w := httptest.NewRecorder()
	protectedContact(csrf).ServeHTTP(w, postJSON("/api/contact", `{}`, token, nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestContactValidationFailureListsAllFields(t *testing.T) {
	csrf := security.NewCSRF(security.NewMemoryStore(), time.Hour)
	token, cookies := newCSRFClient(t, csrf)

	body := `{"name":"J","email":"not-an-email","subject":"Hi","message":"short"}`

	w := httptest.NewRecorder()
	protectedContact(csrf).ServeHTTP(w, postJSON("/api/contact", body, token, cookies))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Error   string `json:"error"`
		Details []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"details"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Validation failed" {
		t.Errorf("error = %q, want %q", resp.Error, "Validation failed")
	}
	if len(resp.Details) != 4 {
		t.Errorf("details = %d errors, want 4: %+v", len(resp.Details), resp.Details)
	}
}

func TestContactRejectsMalformedJSON(t *testing.T) {
	csrf := security.NewCSRF(security.NewMemoryStore(), time.Hour)
	token, cookies := newCSRFClient(t, csrf)

	w := httptest.NewRecorder()
	protectedContact(csrf).ServeHTTP(w, postJSON("/api/contact", `{not json`, token, cookies))

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestBookingValidationRunsAfterCSRF(t *testing.T) {
	csrf := security.NewCSRF(security.NewMemoryStore(), time.Hour)
	token, cookies := newCSRFClient(t, csrf)

	handler := NewSubmissionHandler(nil, nil, nil)
	mw := NewMiddleware(nil, csrf, nil)
	protected := mw.CSRFProtect(handler.Booking)

	// Past date must be a validation error, not a CSRF one
	body := `{"service":"moonlight-yoga","date":"2020-01-01","time":"18:00","participants":2,"name":"Jane","email":"jane@example.com"}`

	w := httptest.NewRecorder()
	protected.ServeHTTP(w, postJSON("/api/bookings", body, token, cookies))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"date"`) {
		t.Errorf("response does not carry a date field error: %s", w.Body.String())
	}
}

func TestCSRFTokenReissuedForSameSession(t *testing.T) {
	csrf := security.NewCSRF(security.NewMemoryStore(), time.Hour)
	handler := NewCSRFHandler(csrf)

	first, cookies := newCSRFClient(t, csrf)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/csrf-token", nil)
	for _, cookie := range cookies {
		r.AddCookie(cookie)
	}
	handler.Token(w, r)

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(w.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}
	if payload.Token != first {
		t.Errorf("second fetch returned a new token: %q vs %q", payload.Token, first)
	}
}

func TestRecoverMiddleware(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	Recover(panicky).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "boom") {
		t.Errorf("panic detail leaked to the client: %s", w.Body.String())
	}
}

func TestRequireAdminWithoutSession(t *testing.T) {
	mw := NewMiddleware(nil, nil, nil)
	next := mw.RequireAdmin(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler ran without a session")
	})

	w := httptest.NewRecorder()
	next.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/events", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
