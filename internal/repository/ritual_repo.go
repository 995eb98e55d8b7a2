package repository

import (
	"database/sql"
	"fmt"

	"willowmoon/internal/database"
	"willowmoon/internal/models"
)

// RitualRepository handles database operations for rituals
type RitualRepository struct {
	db *database.DB
}

// NewRitualRepository creates a new ritual repository
func NewRitualRepository(db *database.DB) *RitualRepository {
	return &RitualRepository{db: db}
}

const ritualColumns = "id, title, slug, description, duration, price, image_url, published, created_at, updated_at"

// CreateRitual inserts a new ritual and returns it with its assigned ID
func (r *RitualRepository) CreateRitual(ritual *models.Ritual) (*models.Ritual, error) {
	query := `
		INSERT INTO rituals (title, slug, description, duration, price, image_url, published)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		ritual.Title, ritual.Slug, ritual.Description, ritual.Duration,
		ritual.Price, ritual.ImageURL, ritual.Published,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ritual: %w", err)
	}
	return r.GetRitualByID(id)
}

// GetRitualByID retrieves a ritual by ID, returning nil when not found
func (r *RitualRepository) GetRitualByID(id int64) (*models.Ritual, error) {
	query := "SELECT " + ritualColumns + " FROM rituals WHERE id = ?"
	return r.scanRitual(r.db.QueryRow(query, id))
}

// GetRitualBySlug retrieves a ritual by slug, returning nil when not found
func (r *RitualRepository) GetRitualBySlug(slug string) (*models.Ritual, error) {
	query := "SELECT " + ritualColumns + " FROM rituals WHERE slug = ?"
	return r.scanRitual(r.db.QueryRow(query, slug))
}

// ListRituals retrieves all rituals, optionally only published ones
func (r *RitualRepository) ListRituals(publishedOnly bool) ([]models.Ritual, error) {
	query := "SELECT " + ritualColumns + " FROM rituals"
	if publishedOnly {
		query += " WHERE published = ?"
	}
	query += " ORDER BY title ASC"

	var rows *sql.Rows
	var err error
	if publishedOnly {
		rows, err = r.db.Query(query, true)
	} else {
		rows, err = r.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rituals: %w", err)
	}
	defer rows.Close()

	var rituals []models.Ritual
	for rows.Next() {
		var ritual models.Ritual
		if err := rows.Scan(
			&ritual.ID, &ritual.Title, &ritual.Slug, &ritual.Description,
			&ritual.Duration, &ritual.Price, &ritual.ImageURL, &ritual.Published,
			&ritual.CreatedAt, &ritual.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan ritual: %w", err)
		}
		rituals = append(rituals, ritual)
	}
	return rituals, rows.Err()
}

// UpdateRitual updates all editable fields of a ritual
func (r *RitualRepository) UpdateRitual(id int64, ritual *models.Ritual) (*models.Ritual, error) {
	query := `
		UPDATE rituals
		SET title = ?, slug = ?, description = ?, duration = ?, price = ?,
		    image_url = ?, published = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		ritual.Title, ritual.Slug, ritual.Description, ritual.Duration,
		ritual.Price, ritual.ImageURL, ritual.Published, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update ritual: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetRitualByID(id)
}

// DeleteRitual removes a ritual, reporting whether a row was deleted
func (r *RitualRepository) DeleteRitual(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM rituals WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete ritual: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

func (r *RitualRepository) scanRitual(row *sql.Row) (*models.Ritual, error) {
	ritual := &models.Ritual{}
	err := row.Scan(
		&ritual.ID, &ritual.Title, &ritual.Slug, &ritual.Description,
		&ritual.Duration, &ritual.Price, &ritual.ImageURL, &ritual.Published,
		&ritual.CreatedAt, &ritual.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ritual: %w", err)
	}
	return ritual, nil
}
