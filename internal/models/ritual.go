package models

import "time"

// Ritual represents a recurring treatment or practice offered by the studio
type Ritual struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Duration    string    `json:"duration"` // e.g. "60 min"
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
