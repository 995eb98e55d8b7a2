package handlers

import (
	"net/http"

	"willowmoon/internal/security"
)

// CSRFHandler issues CSRF tokens to browsers before they submit forms
type CSRFHandler struct {
	csrf *security.CSRF
}

// NewCSRFHandler creates a new CSRF handler
func NewCSRFHandler(csrf *security.CSRF) *CSRFHandler {
	return &CSRFHandler{csrf: csrf}
}

// Token handles GET /api/csrf-token. It returns the session's token,
// creating a fresh pair when the session has none, and stores the pair as a
// side effect. Responses must never be cached: a cached token from another
// session would always fail verification.
func (h *CSRFHandler) Token(w http.ResponseWriter, r *http.Request) {
	token, err := h.csrf.Issue(w, r)
	if err != nil {
		respondServerError(w, "Error issuing CSRF token", err)
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
