package models

import "time"

// StandalonePage represents a freestanding content page (about, pricing, ...)
type StandalonePage struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body,omitempty"`
	BodyHTML  string    `json:"body_html,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageContent holds editable content for a built-in page, addressed by page key.
// Blocks are named content sections within the page.
type PageContent struct {
	ID        int64          `json:"id"`
	PageKey   string         `json:"page_key"`
	Content   string         `json:"content"`
	Blocks    []ContentBlock `json:"blocks,omitempty"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ContentBlock is a named content section within a page
type ContentBlock struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}
