// Package sanitize neutralizes HTML/script injection in user-supplied text
// before it is stored and later rendered (on a page or in outbound email).
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strict drops all markup, keeping plain text only. Applied to free-text
	// form fields (names, subjects, messages, notes).
	strict = bluemonday.StrictPolicy()

	// ugc allows the benign formatting subset, for server-rendered markdown.
	ugc = bluemonday.UGCPolicy()
)

// Text strips every tag and executable construct from s, preserving plain
// text. Idempotent: sanitizing already-sanitized text is a no-op.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}

// HTML filters rendered HTML down to user-generated-content safe markup:
// script tags, event-handler attributes and javascript: URIs are removed,
// common formatting elements survive.
func HTML(s string) string {
	return ugc.Sanitize(s)
}
