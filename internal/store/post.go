// Copyright (c) 2026 TradeFX Services SRL <contact@tradefxservices.com>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all TradeFX entities.
// Each store struct wraps a *sql.DB and exposes typed query methods.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"tradefx/internal/models"
)

// postColumns is the shared SELECT column list for post queries.
const postColumns = `id, slug, title, excerpt, content, category,
       featured_image, author, publish_date, reading_time, featured`

// PostStore handles all post-related database operations.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

// scanPost reads one post row and fills in the derived category label.
func scanPost(row interface{ Scan(...any) error }) (models.Post, error) {
	var p models.Post
	var publishDate time.Time
	err := row.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Excerpt, &p.Content, &p.Category,
		&p.FeaturedImage, &p.Author, &publishDate, &p.ReadingTime, &p.Featured,
	)
	if err != nil {
		return models.Post{}, err
	}
	p.PublishDate = models.Date{Time: publishDate}
	p.CategoryLabel = models.CategoryLabel(p.Category)
	return p, nil
}

// List returns all posts ordered by publish date descending.
func (s *PostStore) List() ([]models.Post, error) {
	rows, err := s.db.Query(`
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY publish_date DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// FindBySlug retrieves a post by its slug. Returns nil if not found.
func (s *PostStore) FindBySlug(slug string) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts WHERE slug = $1
	`, slug)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by slug: %w", err)
	}
	return &p, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(`
		SELECT `+postColumns+`
		FROM posts WHERE id = $1
	`, id)

	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return &p, nil
}

// SlugExists reports whether any post already uses the given slug.
func (s *PostStore) SlugExists(slug string) bool {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS (SELECT 1 FROM posts WHERE slug = $1)`, slug).Scan(&exists)
	return err == nil && exists
}

// Create inserts a new post and returns it with the generated ID and
// derived category label.
func (s *PostStore) Create(p *models.Post) (*models.Post, error) {
	row := s.db.QueryRow(`
		INSERT INTO posts (slug, title, excerpt, content, category, featured_image,
		                   author, publish_date, reading_time, featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+postColumns+`
	`, p.Slug, p.Title, p.Excerpt, p.Content, p.Category, p.FeaturedImage,
		p.Author, p.PublishDate.Time, p.ReadingTime, p.Featured)

	created, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &created, nil
}

// Update modifies an existing post.
func (s *PostStore) Update(p *models.Post) error {
	_, err := s.db.Exec(`
		UPDATE posts SET
			slug = $1, title = $2, excerpt = $3, content = $4, category = $5,
			featured_image = $6, author = $7, publish_date = $8,
			reading_time = $9, featured = $10, updated_at = NOW()
		WHERE id = $11
	`, p.Slug, p.Title, p.Excerpt, p.Content, p.Category, p.FeaturedImage,
		p.Author, p.PublishDate.Time, p.ReadingTime, p.Featured, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID.
func (s *PostStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}

// Count returns the number of posts.
func (s *PostStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return count, nil
}
