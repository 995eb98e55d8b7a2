package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// FieldError describes a single violated constraint
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is an ordered list of field errors. A parse collects every violation
// rather than stopping at the first, so clients can render all inline errors
// in one round trip.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

func (e *Errors) add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	nameRegex  = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	phoneRegex = regexp.MustCompile(`^[\d\s\-+()]+$`)
	slugRegex  = regexp.MustCompile(`^[a-z0-9-]+$`)
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex  = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// checkLength appends an error if value is outside [min, max] runes
func (e *Errors) checkLength(field, value string, min, max int) bool {
	n := len([]rune(value))
	switch {
	case n < min:
		if min <= 1 {
			e.add(field, fmt.Sprintf("%s is required", field))
		} else {
			e.add(field, fmt.Sprintf("%s must be at least %d characters", field, min))
		}
		return false
	case n > max:
		e.add(field, fmt.Sprintf("%s must be at most %d characters", field, max))
		return false
	}
	return true
}

// checkEmail validates an already-trimmed email address
func (e *Errors) checkEmail(field, value string) bool {
	if value == "" {
		e.add(field, "email is required")
		return false
	}
	if len(value) > 255 {
		e.add(field, "email must be at most 255 characters")
		return false
	}
	if !emailRegex.MatchString(value) {
		e.add(field, "invalid email format")
		return false
	}
	return true
}

// checkDate validates a YYYY-MM-DD date string. The regex gives format
// errors a clearer message; time.Parse rejects impossible calendar dates
// like February 31st.
func (e *Errors) checkDate(field, value string) bool {
	if !dateRegex.MatchString(value) {
		e.add(field, "date must be in YYYY-MM-DD format")
		return false
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		e.add(field, "date is not a valid calendar date")
		return false
	}
	return true
}

// checkTime validates an HH:MM 24-hour time string
func (e *Errors) checkTime(field, value string) bool {
	if !timeRegex.MatchString(value) {
		e.add(field, "time must be in HH:MM 24-hour format")
		return false
	}
	return true
}

// checkURL validates an absolute http(s) URL
func (e *Errors) checkURL(field, value string) bool {
	parsed, err := url.Parse(value)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		e.add(field, "must be a valid URL")
		return false
	}
	return true
}
