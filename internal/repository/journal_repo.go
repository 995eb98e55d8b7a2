package repository

import (
	"database/sql"
	"fmt"

	"willowmoon/internal/database"
	"willowmoon/internal/models"
)

// JournalRepository handles database operations for journal posts
type JournalRepository struct {
	db *database.DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *database.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

const journalColumns = "id, title, slug, excerpt, body, image_url, published, created_at, updated_at"

// CreatePost inserts a new journal post and returns it with its assigned ID
func (r *JournalRepository) CreatePost(post *models.JournalPost) (*models.JournalPost, error) {
	query := `
		INSERT INTO journal_posts (title, slug, excerpt, body, image_url, published)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(query,
		post.Title, post.Slug, post.Excerpt, post.Body, post.ImageURL, post.Published,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create journal post: %w", err)
	}
	return r.GetPostByID(id)
}

// GetPostByID retrieves a journal post by ID, returning nil when not found
func (r *JournalRepository) GetPostByID(id int64) (*models.JournalPost, error) {
	query := "SELECT " + journalColumns + " FROM journal_posts WHERE id = ?"
	return r.scanPost(r.db.QueryRow(query, id))
}

// GetPostBySlug retrieves a journal post by slug, returning nil when not found
func (r *JournalRepository) GetPostBySlug(slug string) (*models.JournalPost, error) {
	query := "SELECT " + journalColumns + " FROM journal_posts WHERE slug = ?"
	return r.scanPost(r.db.QueryRow(query, slug))
}

// ListPosts retrieves journal posts, newest first
func (r *JournalRepository) ListPosts(publishedOnly bool) ([]models.JournalPost, error) {
	query := "SELECT " + journalColumns + " FROM journal_posts"
	if publishedOnly {
		query += " WHERE published = ?"
	}
	query += " ORDER BY created_at DESC"

	var rows *sql.Rows
	var err error
	if publishedOnly {
		rows, err = r.db.Query(query, true)
	} else {
		rows, err = r.db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query journal posts: %w", err)
	}
	defer rows.Close()

	var posts []models.JournalPost
	for rows.Next() {
		var post models.JournalPost
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Body,
			&post.ImageURL, &post.Published, &post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal post: %w", err)
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

// UpdatePost updates all editable fields of a journal post
func (r *JournalRepository) UpdatePost(id int64, post *models.JournalPost) (*models.JournalPost, error) {
	query := `
		UPDATE journal_posts
		SET title = ?, slug = ?, excerpt = ?, body = ?, image_url = ?,
		    published = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	result, err := r.db.Exec(query,
		post.Title, post.Slug, post.Excerpt, post.Body, post.ImageURL, post.Published, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update journal post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return nil, nil
	}
	return r.GetPostByID(id)
}

// DeletePost removes a journal post, reporting whether a row was deleted
func (r *JournalRepository) DeletePost(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM journal_posts WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete journal post: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check delete result: %w", err)
	}
	return affected > 0, nil
}

func (r *JournalRepository) scanPost(row *sql.Row) (*models.JournalPost, error) {
	post := &models.JournalPost{}
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Excerpt, &post.Body,
		&post.ImageURL, &post.Published, &post.CreatedAt, &post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get journal post: %w", err)
	}
	return post, nil
}
