package repository

import (
	"database/sql"
	"fmt"

	"willowmoon/internal/database"
	"willowmoon/internal/models"
)

// EventRepository handles database operations for events
type EventRepository struct {
	db *database.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *database.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = "id, title, slug, description, event_date, event_time, location, image_url, price, capacity, published, created_at, updated_at"

// CreateEvent inserts a new event and returns it with its assigned ID
func (r *EventRepository) CreateEvent(event *models.Event) (*models.Event, error) {
	query := `
		INSERT INTO events (title, slug, description, event_date, event_time, location, image_url, price, capacity, published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		event.Title, event.Slug, event.Description, event.Date, event.Time,
		event.Location, event.ImageURL, event.Price, event.Capacity, event.Published,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return r.GetEventByID(id)
}

// GetEventByID retrieves an event by ID, returning nil when not found
func (r *EventRepository) GetEventByID(id int64) (*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE id = ?"
	return r.scanEvent(r.db.QueryRow(query, id))
}

// GetEventBySlug retrieves an event by slug, returning nil when not found
func (r *EventRepository) GetEventBySlug(slug string) (*models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events WHERE slug = ?"
	return r.scanEvent(r.db.QueryRow(query, slug))
}

// ListEvents retrieves all events, optionally only published ones,
// soonest first
func (r *EventRepository) ListEvents(publishedOnly bool) ([]models.Event, error) {
	query := "SELECT " + eventColumns + " FROM events"
	if publishedOnly {
		query += " WHERE published = ?"
	}
	query += " ORDER BY event_date ASC, event_time ASC"

	var rows *sql.Rows
	var err error
	if publishedOnly {
		rows, err = r.db.Query(query, true)
	} else {
		rows, err = r.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		if err := rows.Scan(
			&event.ID, &event.Title, &event.Slug, &event.Description,
			&event.Date, &event.Time, &event.Location, &event.ImageURL,
			&event.Price, &event.Capacity, &event.Published,
			&event.CreatedAt, &event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

// UpdateEvent updates all editable fields of an event
func (r *EventRepository) UpdateEvent(id int64, event *models.Event) (*models.Event, error) {
	query := `
		UPDATE events
		SET title = ?, slug = ?, description = ?, event_date = ?, event_time = ?,
		    location = ?, image_url = ?, price = ?, capacity = ?, published = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		event.Title, event.Slug, event.Description, event.Date, event.Time,
		event.Location, event.ImageURL, event.Price, event.Capacity, event.Published, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetEventByID(id)
}

// DeleteEvent removes an event, reporting whether a row was deleted
func (r *EventRepository) DeleteEvent(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

func (r *EventRepository) scanEvent(row *sql.Row) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID, &event.Title, &event.Slug, &event.Description,
		&event.Date, &event.Time, &event.Location, &event.ImageURL,
		&event.Price, &event.Capacity, &event.Published,
		&event.CreatedAt, &event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}
