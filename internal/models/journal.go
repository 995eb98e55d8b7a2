package models

import "time"

// JournalPost represents a journal (blog) entry. Body is stored as markdown;
// BodyHTML is rendered and sanitized on the way out and never persisted.
type JournalPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt"`
	Body      string    `json:"body,omitempty"`
	BodyHTML  string    `json:"body_html,omitempty"`
	ImageURL  string    `json:"image"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
