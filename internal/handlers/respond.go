package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"willowmoon/internal/validation"
)

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondSuccess writes the standard submission success shape
func respondSuccess(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

// respondError writes a client-facing error with the given status
func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// respondValidationFailed writes the 400 shape carrying field-level detail
func respondValidationFailed(w http.ResponseWriter, errs validation.Errors) {
	writeJSON(w, http.StatusBadRequest, map[string]interface{}{
		"error":   "Validation failed",
		"details": errs,
	})
}

// respondServerError logs the internal error and returns a generic message,
// never leaking storage or schema detail to the client
func respondServerError(w http.ResponseWriter, logMsg string, err error) {
	log.Printf("%s: %v", logMsg, err)
	respondError(w, http.StatusInternalServerError, "Something went wrong. Please try again later.")
}
