package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/oauth2"

	"willowmoon/internal/security"
	"willowmoon/internal/service"
	"willowmoon/internal/validation"
)

// AuthHandler handles admin authentication
type AuthHandler struct {
	authService     *service.AuthService
	csrf            *security.CSRF
	googleOAuth     *oauth2.Config
	redirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, csrf *security.CSRF, googleOAuth *oauth2.Config, redirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:     authService,
		csrf:            csrf,
		googleOAuth:     googleOAuth,
		redirectBaseURL: redirectBaseURL,
	}
}

// Login handles POST /api/admin/login. A successful login rotates the CSRF
// pair: the pre-login token must not remain valid across the privilege change.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input validation.AdminLoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	record, errs := validation.ParseAdminLogin(input)
	if errs != nil {
		respondValidationFailed(w, errs)
		return
	}

	session, user, err := h.authService.Login(record.Email, record.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		respondServerError(w, "Error logging in", err)
		return
	}

	h.csrf.Invalidate(w, r)
	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// Logout handles POST /api/admin/logout, ending the session and rotating the
// CSRF pair
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		_ = h.authService.Logout(cookie.Value)
	}

	h.csrf.Invalidate(w, r)
	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	respondSuccess(w, "Logged out")
}

// Me handles GET /api/admin/me, returning the authenticated admin
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
