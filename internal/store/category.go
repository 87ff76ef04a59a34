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

// CategoryStore manages blog categories in the database.
type CategoryStore struct {
	q DBTX
}

const categoryColumns = `cat.id, cat.slug, cat.name, cat.description, cat.is_visible, cat.sort_order, cat.created_at, cat.updated_at`

// categoryWithCount selects a category together with its number of
// PUBLISHED contents.
const categoryWithCount = `
	SELECT ` + categoryColumns + `,
	       (SELECT COUNT(*) FROM blog_contents ct
	        WHERE ct.category_id = cat.id AND ct.status = 'PUBLISHED') AS content_count
	FROM blog_categories cat`

// scanCategory scans a row into a Category struct.
func scanCategory(row scanner) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID, &c.Slug, &c.Name, &c.Description,
		&c.IsVisible, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCategoryWithCount(row scanner) (*models.Category, error) {
	var c models.Category
	err := row.Scan(
		&c.ID, &c.Slug, &c.Name, &c.Description,
		&c.IsVisible, &c.SortOrder, &c.CreatedAt, &c.UpdatedAt,
		&c.ContentCount,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns categories ordered by sort_order, with published content
// counts. A non-nil visible restricts the result to that visibility.
func (s *CategoryStore) List(ctx context.Context, visible *bool) ([]models.Category, error) {
	rows, err := s.q.QueryContext(ctx, categoryWithCount+`
		WHERE $1::boolean IS NULL OR cat.is_visible = $1
		ORDER BY cat.sort_order, cat.name, cat.id
	`, visible)
	if err != nil {
		return nil, dbError("list categories", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategoryWithCount(rows)
		if err != nil {
			return nil, dbError("scan category", err)
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list categories", err)
	}
	return items, nil
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	row := s.q.QueryRowContext(ctx, categoryWithCount+` WHERE cat.id = $1`, id)
	return s.one("find category by id", row)
}

// FindBySlug retrieves a category by slug. Returns nil if not found.
func (s *CategoryStore) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	row := s.q.QueryRowContext(ctx, categoryWithCount+` WHERE cat.slug = $1`, slug)
	return s.one("find category by slug", row)
}

func (s *CategoryStore) one(op string, row *sql.Row) (*models.Category, error) {
	c, err := scanCategoryWithCount(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError(op, err)
	}
	return c, nil
}

// FindByIDs returns the categories with the given IDs keyed by ID.
func (s *CategoryStore) FindByIDs(ctx context.Context, ids []int64) (map[int64]*models.Category, error) {
	out := make(map[int64]*models.Category, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.q.QueryContext(ctx, categoryWithCount+` WHERE cat.id = ANY($1)`, ids)
	if err != nil {
		return nil, dbError("find categories by ids", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanCategoryWithCount(rows)
		if err != nil {
			return nil, dbError("scan category", err)
		}
		out[c.ID] = c
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("find categories by ids", err)
	}
	return out, nil
}

// Create inserts a new category and returns it.
func (s *CategoryStore) Create(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.q.QueryRowContext(ctx, `
		INSERT INTO blog_categories AS cat (slug, name, description, is_visible, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+categoryColumns,
		c.Slug, c.Name, c.Description, c.IsVisible, c.SortOrder,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, dbError("create category", err)
	}
	return result, nil
}

// Update writes every mutable column of c and refreshes updated_at.
// Returns nil if the category does not exist.
func (s *CategoryStore) Update(ctx context.Context, c *models.Category) (*models.Category, error) {
	row := s.q.QueryRowContext(ctx, `
		UPDATE blog_categories AS cat SET
			slug = $1, name = $2, description = $3, is_visible = $4,
			sort_order = $5, updated_at = NOW()
		WHERE cat.id = $6
		RETURNING `+categoryColumns,
		c.Slug, c.Name, c.Description, c.IsVisible, c.SortOrder, c.ID,
	)
	result, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("update category", err)
	}
	return result, nil
}

// Delete removes a category by ID and reports whether a row was deleted.
// Contents still referencing it make the delete fail (ON DELETE RESTRICT).
func (s *CategoryStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM blog_categories WHERE id = $1`, id)
	if err != nil {
		return false, deleteError("delete category", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, dbError("delete category", err)
	}
	return n > 0, nil
}

// CountContents returns the number of contents in any status that
// reference the category.
func (s *CategoryStore) CountContents(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_contents WHERE category_id = $1`, id,
	).Scan(&n)
	if err != nil {
		return 0, dbError("count category contents", err)
	}
	return n, nil
}
