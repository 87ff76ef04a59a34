// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"

	"engagecms/internal/models"
)

// ContentStore handles CRUD operations for blog contents.
type ContentStore struct {
	q DBTX
}

// contentColumns is the list of columns selected in content queries. Every
// query aliases blog_contents as c.
const contentColumns = `c.id, c.slug, c.title, c.content_body, c.author_id, c.category_id,
	c.status, c.is_featured, c.is_hero, c.thumbnail_url,
	c.view_count, c.like_count, c.comment_count,
	c.meta_title, c.meta_description, c.published_at, c.created_at, c.updated_at`

// scanContent scans a single row into a Content struct.
func scanContent(row scanner) (*models.Content, error) {
	var c models.Content
	err := row.Scan(
		&c.ID, &c.Slug, &c.Title, &c.Body, &c.AuthorID, &c.CategoryID,
		&c.Status, &c.IsFeatured, &c.IsHero, &c.ThumbnailURL,
		&c.ViewCount, &c.LikeCount, &c.CommentCount,
		&c.MetaTitle, &c.MetaDescription, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanContents(op string, rows *sql.Rows) ([]models.Content, error) {
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, dbError(op, err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(op, err)
	}
	return items, nil
}

// oneContent scans a single-row result, mapping sql.ErrNoRows to (nil, nil).
func oneContent(op string, row *sql.Row) (*models.Content, error) {
	c, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError(op, err)
	}
	return c, nil
}

// ContentFilter selects contents for List. Zero fields do not filter.
type ContentFilter struct {
	Status     models.ContentStatus
	CategoryID *int64
	TagID      *int64
	Featured   bool
	Hero       bool
	Limit      int
}

// List returns contents matching f, newest publication first.
func (s *ContentStore) List(ctx context.Context, f ContentFilter) ([]models.Content, error) {
	var status *string
	if f.Status != "" {
		st := string(f.Status)
		status = &st
	}
	var limit *int
	if f.Limit > 0 {
		limit = &f.Limit
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT `+contentColumns+`
		FROM blog_contents c
		WHERE ($1::text IS NULL OR c.status = $1)
		  AND ($2::bigint IS NULL OR c.category_id = $2)
		  AND ($3::bigint IS NULL OR EXISTS (
		        SELECT 1 FROM blog_content_tags bct
		        WHERE bct.content_id = c.id AND bct.tag_id = $3))
		  AND (NOT $4 OR c.is_featured)
		  AND (NOT $5 OR c.is_hero)
		ORDER BY c.published_at DESC NULLS LAST, c.id DESC
		LIMIT $6
	`, status, f.CategoryID, f.TagID, f.Featured, f.Hero, limit)
	if err != nil {
		return nil, dbError("list contents", err)
	}
	return scanContents("list contents", rows)
}

// FindByID retrieves a content by ID. Returns nil if not found.
func (s *ContentStore) FindByID(ctx context.Context, id int64) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM blog_contents c WHERE c.id = $1`, id)
	return oneContent("find content by id", row)
}

// FindBySlug retrieves a content by slug. Returns nil if not found.
func (s *ContentStore) FindBySlug(ctx context.Context, slug string) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM blog_contents c WHERE c.slug = $1`, slug)
	return oneContent("find content by slug", row)
}

// LockByID retrieves a content by ID and locks the row until the
// surrounding transaction ends. Returns nil if not found.
func (s *ContentStore) LockByID(ctx context.Context, id int64) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM blog_contents c WHERE c.id = $1 FOR UPDATE`, id)
	return oneContent("lock content", row)
}

// Create inserts a new content and returns it with generated fields.
func (s *ContentStore) Create(ctx context.Context, c *models.Content) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `
		INSERT INTO blog_contents AS c
			(slug, title, content_body, author_id, category_id, status,
			 is_featured, is_hero, thumbnail_url, meta_title, meta_description, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING `+contentColumns,
		c.Slug, c.Title, c.Body, c.AuthorID, c.CategoryID, c.Status,
		c.IsFeatured, c.IsHero, c.ThumbnailURL, c.MetaTitle, c.MetaDescription, c.PublishedAt,
	)
	result, err := scanContent(row)
	if err != nil {
		return nil, dbError("create content", err)
	}
	return result, nil
}

// Update writes every editable column of c and refreshes updated_at.
// Counters are never written here. Returns nil if the content does not exist.
func (s *ContentStore) Update(ctx context.Context, c *models.Content) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `
		UPDATE blog_contents AS c SET
			slug = $1, title = $2, content_body = $3, author_id = $4, category_id = $5,
			status = $6, is_featured = $7, is_hero = $8, thumbnail_url = $9,
			meta_title = $10, meta_description = $11, published_at = $12,
			updated_at = NOW()
		WHERE c.id = $13
		RETURNING `+contentColumns,
		c.Slug, c.Title, c.Body, c.AuthorID, c.CategoryID,
		c.Status, c.IsFeatured, c.IsHero, c.ThumbnailURL,
		c.MetaTitle, c.MetaDescription, c.PublishedAt, c.ID,
	)
	result, err := scanContent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("update content", err)
	}
	return result, nil
}

// Delete removes a content row and reports whether it existed. Dependent
// rows must already be gone or are removed by the foreign key cascades.
func (s *ContentStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM blog_contents WHERE id = $1`, id)
	if err != nil {
		return false, deleteError("delete content", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, dbError("delete content", err)
	}
	return n > 0, nil
}
