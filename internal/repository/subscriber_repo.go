package repository

import (
	"database/sql"
	"fmt"

	"willowmoon/internal/database"
	"willowmoon/internal/models"
)

// SubscriberRepository handles database operations for newsletter subscribers
type SubscriberRepository struct {
	db *database.DB
}

// NewSubscriberRepository creates a new subscriber repository
func NewSubscriberRepository(db *database.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

// Subscribe adds an email to the newsletter list. Re-subscribing an existing
// address clears any unsubscription and reports created=false.
func (r *SubscriberRepository) Subscribe(email string) (*models.Subscriber, bool, error) {
	existing, err := r.GetByEmail(email)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		if existing.Unsubscribed != nil {
			query := "UPDATE newsletter_subscribers SET unsubscribed_at = NULL WHERE id = ?"
			if _, err := r.db.Exec(query, existing.ID); err != nil {
				return nil, false, fmt.Errorf("failed to resubscribe: %w", err)
			}
			existing.Unsubscribed = nil
		}
		return existing, false, nil
	}

	query := "INSERT INTO newsletter_subscribers (email) VALUES (?)"
	id, err := r.db.ExecReturningID(query, email)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create subscriber: %w", err)
	}

	subscriber, err := r.getByID(id)
	if err != nil {
		return nil, false, err
	}
	return subscriber, true, nil
}

// Unsubscribe marks an email as unsubscribed, reporting whether it existed
func (r *SubscriberRepository) Unsubscribe(email string) (bool, error) {
	query := "UPDATE newsletter_subscribers SET unsubscribed_at = CURRENT_TIMESTAMP WHERE email = ? AND unsubscribed_at IS NULL"
	result, err := r.db.Exec(query, email)
	if err != nil {
		return false, fmt.Errorf("failed to unsubscribe: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check unsubscribe result: %w", err)
	}
	return affected > 0, nil
}

// GetByEmail retrieves a subscriber by email, returning nil when not found
func (r *SubscriberRepository) GetByEmail(email string) (*models.Subscriber, error) {
	query := "SELECT id, email, subscribed_at, unsubscribed_at FROM newsletter_subscribers WHERE email = ?"
	return r.scanSubscriber(r.db.QueryRow(query, email))
}

// ListActive retrieves all currently subscribed addresses
func (r *SubscriberRepository) ListActive() ([]models.Subscriber, error) {
	query := `
		SELECT id, email, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers
		WHERE unsubscribed_at IS NULL
		ORDER BY subscribed_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []models.Subscriber
	for rows.Next() {
		var sub models.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.Unsubscribed); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, sub)
	}
	return subscribers, rows.Err()
}

func (r *SubscriberRepository) getByID(id int64) (*models.Subscriber, error) {
	query := "SELECT id, email, subscribed_at, unsubscribed_at FROM newsletter_subscribers WHERE id = ?"
	return r.scanSubscriber(r.db.QueryRow(query, id))
}

func (r *SubscriberRepository) scanSubscriber(row *sql.Row) (*models.Subscriber, error) {
	sub := &models.Subscriber{}
	err := row.Scan(&sub.ID, &sub.Email, &sub.SubscribedAt, &sub.Unsubscribed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriber: %w", err)
	}
	return sub, nil
}
