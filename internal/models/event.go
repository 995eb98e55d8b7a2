package models

import "time"

// Event represents a scheduled studio event (workshop, class, retreat day)
type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM, 24-hour
	Location    string    `json:"location"`
	ImageURL    string    `json:"image"`
	Price       float64   `json:"price"`
	Capacity    int       `json:"capacity"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
