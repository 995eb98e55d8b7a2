package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"willowmoon/internal/database"
	"willowmoon/internal/models"
)

// PageRepository handles database operations for standalone pages and
// per-page editable content blocks
type PageRepository struct {
	db *database.DB
}

// NewPageRepository creates a new page repository
func NewPageRepository(db *database.DB) *PageRepository {
	return &PageRepository{db: db}
}

const pageColumns = "id, title, slug, body, published, created_at, updated_at"

// CreatePage inserts a new standalone page and returns it with its assigned ID
func (r *PageRepository) CreatePage(page *models.StandalonePage) (*models.StandalonePage, error) {
	query := `
		INSERT INTO standalone_pages (title, slug, body, published)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query, page.Title, page.Slug, page.Body, page.Published)
	if err != nil {
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	return r.GetPageByID(id)
}

// GetPageByID retrieves a standalone page by ID, returning nil when not found
func (r *PageRepository) GetPageByID(id int64) (*models.StandalonePage, error) {
	query := "SELECT " + pageColumns + " FROM standalone_pages WHERE id = ?"
	return r.scanPage(r.db.QueryRow(query, id))
}

// GetPageBySlug retrieves a standalone page by slug, returning nil when not found
func (r *PageRepository) GetPageBySlug(slug string) (*models.StandalonePage, error) {
	query := "SELECT " + pageColumns + " FROM standalone_pages WHERE slug = ?"
	return r.scanPage(r.db.QueryRow(query, slug))
}

// ListPages retrieves all standalone pages
func (r *PageRepository) ListPages(publishedOnly bool) ([]models.StandalonePage, error) {
	query := "SELECT " + pageColumns + " FROM standalone_pages"
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
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []models.StandalonePage
	for rows.Next() {
		var page models.StandalonePage
		if err := rows.Scan(
			&page.ID, &page.Title, &page.Slug, &page.Body, &page.Published,
			&page.CreatedAt, &page.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, page)
	}
	return pages, rows.Err()
}

// UpdatePage updates all editable fields of a standalone page
func (r *PageRepository) UpdatePage(id int64, page *models.StandalonePage) (*models.StandalonePage, error) {
	query := `
		UPDATE standalone_pages
		SET title = ?, slug = ?, body = ?, published = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query, page.Title, page.Slug, page.Body, page.Published, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update page: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetPageByID(id)
}

// DeletePage removes a standalone page, reporting whether a row was deleted
func (r *PageRepository) DeletePage(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM standalone_pages WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete page: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

// GetPageContent retrieves editable content for a built-in page by key,
// returning nil when the page has no stored content yet
func (r *PageRepository) GetPageContent(pageKey string) (*models.PageContent, error) {
	query := "SELECT id, page_key, content, blocks, updated_at FROM page_content WHERE page_key = ?"

	content := &models.PageContent{}
	var blocksJSON string
	err := r.db.QueryRow(query, pageKey).Scan(
		&content.ID, &content.PageKey, &content.Content, &blocksJSON, &content.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page content: %w", err)
	}

	if blocksJSON != "" {
		if err := json.Unmarshal([]byte(blocksJSON), &content.Blocks); err != nil {
			return nil, fmt.Errorf("failed to decode content blocks: %w", err)
		}
	}
	return content, nil
}

// UpsertPageContent stores editable content for a built-in page. The
// existence check and the write run in one transaction so two concurrent
// saves can't both insert.
func (r *PageRepository) UpsertPageContent(pageKey, content string, blocks []models.ContentBlock) (*models.PageContent, error) {
	blocksJSON, err := json.Marshal(blocks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode content blocks: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existingID int64
	err = tx.QueryRow("SELECT id FROM page_content WHERE page_key = ?", pageKey).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		query := "INSERT INTO page_content (page_key, content, blocks) VALUES (?, ?, ?)"
		if _, err := tx.ExecReturningID(query, pageKey, content, string(blocksJSON)); err != nil {
			return nil, fmt.Errorf("failed to create page content: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to check page content: %w", err)
	default:
		query := "UPDATE page_content SET content = ?, blocks = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
		if _, err := tx.Exec(query, content, string(blocksJSON), existingID); err != nil {
			return nil, fmt.Errorf("failed to update page content: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit page content: %w", err)
	}

	return r.GetPageContent(pageKey)
}

func (r *PageRepository) scanPage(row *sql.Row) (*models.StandalonePage, error) {
	page := &models.StandalonePage{}
	err := row.Scan(
		&page.ID, &page.Title, &page.Slug, &page.Body, &page.Published,
		&page.CreatedAt, &page.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}
	return page, nil
}
