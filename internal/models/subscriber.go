package models

import "time"

// Subscriber represents a newsletter subscriber
type Subscriber struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	SubscribedAt time.Time  `json:"subscribed_at"`
	Unsubscribed *time.Time `json:"unsubscribed_at,omitempty"`
}
