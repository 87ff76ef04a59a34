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

// CommentStore handles comment rows.
type CommentStore struct {
	q DBTX
}

const commentColumns = `cm.id, cm.content_id, cm.user_id, cm.parent_id, cm.content, cm.is_approved, cm.created_at, cm.updated_at`

func scanComment(row scanner) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(
		&c.ID, &c.ContentID, &c.UserID, &c.ParentID,
		&c.Body, &c.IsApproved, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanComments(op string, rows *sql.Rows) ([]models.Comment, error) {
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
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

func oneComment(op string, row *sql.Row) (*models.Comment, error) {
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError(op, err)
	}
	return c, nil
}

// FindByID retrieves a comment by ID. Returns nil if not found.
func (s *CommentStore) FindByID(ctx context.Context, id int64) (*models.Comment, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+commentColumns+` FROM blog_comments cm WHERE cm.id = $1`, id)
	return oneComment("find comment by id", row)
}

// ListTopLevel returns the approved top-level comments of a content,
// newest first.
func (s *CommentStore) ListTopLevel(ctx context.Context, contentID int64) ([]models.Comment, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM blog_comments cm
		WHERE cm.content_id = $1 AND cm.parent_id IS NULL AND cm.is_approved
		ORDER BY cm.created_at DESC, cm.id DESC
	`, contentID)
	if err != nil {
		return nil, dbError("list comments", err)
	}
	return scanComments("list comments", rows)
}

// RepliesFor returns the approved replies of the given comments keyed by
// parent ID, oldest first.
func (s *CommentStore) RepliesFor(ctx context.Context, parentIDs []int64) (map[int64][]models.Comment, error) {
	out := make(map[int64][]models.Comment, len(parentIDs))
	if len(parentIDs) == 0 {
		return out, nil
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT `+commentColumns+`
		FROM blog_comments cm
		WHERE cm.parent_id = ANY($1) AND cm.is_approved
		ORDER BY cm.created_at, cm.id
	`, parentIDs)
	if err != nil {
		return nil, dbError("list replies", err)
	}
	replies, err := scanComments("list replies", rows)
	if err != nil {
		return nil, err
	}
	for _, r := range replies {
		out[*r.ParentID] = append(out[*r.ParentID], r)
	}
	return out, nil
}

// Create inserts a comment and returns it.
func (s *CommentStore) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	row := s.q.QueryRowContext(ctx, `
		INSERT INTO blog_comments AS cm (content_id, user_id, parent_id, content, is_approved)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+commentColumns,
		c.ContentID, c.UserID, c.ParentID, c.Body, c.IsApproved,
	)
	result, err := scanComment(row)
	if err != nil {
		return nil, dbError("create comment", err)
	}
	return result, nil
}

// Update writes the body and approval flag. Returns nil if the comment
// does not exist.
func (s *CommentStore) Update(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	row := s.q.QueryRowContext(ctx, `
		UPDATE blog_comments AS cm SET content = $1, is_approved = $2, updated_at = NOW()
		WHERE cm.id = $3
		RETURNING `+commentColumns,
		c.Body, c.IsApproved, c.ID,
	)
	result, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("update comment", err)
	}
	return result, nil
}

// Delete removes a comment, and through the parent cascade its replies,
// returning the deleted row. Returns nil if it did not exist.
func (s *CommentStore) Delete(ctx context.Context, id int64) (*models.Comment, error) {
	row := s.q.QueryRowContext(ctx, `
		DELETE FROM blog_comments AS cm WHERE cm.id = $1
		RETURNING `+commentColumns, id)
	c, err := scanComment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, deleteError("delete comment", err)
	}
	return c, nil
}

// DeleteByContent removes every comment of a content.
func (s *CommentStore) DeleteByContent(ctx context.Context, contentID int64) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM blog_comments WHERE content_id = $1`, contentID)
	if err != nil {
		return 0, deleteError("delete content comments", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbError("delete content comments", err)
	}
	return n, nil
}
