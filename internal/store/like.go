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

// LikeStore handles like rows. At most one row exists per (content, user).
type LikeStore struct {
	q DBTX
}

// Find returns the like of userID on contentID, or nil.
func (s *LikeStore) Find(ctx context.Context, contentID, userID int64) (*models.Like, error) {
	var l models.Like
	err := s.q.QueryRowContext(ctx, `
		SELECT id, content_id, user_id, created_at
		FROM blog_likes WHERE content_id = $1 AND user_id = $2
	`, contentID, userID).Scan(&l.ID, &l.ContentID, &l.UserID, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("find like", err)
	}
	return &l, nil
}

// Create inserts a like. A second like for the same pair fails with a
// Conflict error from the unique constraint.
func (s *LikeStore) Create(ctx context.Context, contentID, userID int64) (*models.Like, error) {
	var l models.Like
	err := s.q.QueryRowContext(ctx, `
		INSERT INTO blog_likes (content_id, user_id) VALUES ($1, $2)
		RETURNING id, content_id, user_id, created_at
	`, contentID, userID).Scan(&l.ID, &l.ContentID, &l.UserID, &l.CreatedAt)
	if err != nil {
		return nil, dbError("create like", err)
	}
	return &l, nil
}

// Delete removes the like of userID on contentID and reports whether one
// existed.
func (s *LikeStore) Delete(ctx context.Context, contentID, userID int64) (bool, error) {
	res, err := s.q.ExecContext(ctx,
		`DELETE FROM blog_likes WHERE content_id = $1 AND user_id = $2`, contentID, userID)
	if err != nil {
		return false, deleteError("delete like", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, dbError("delete like", err)
	}
	return n > 0, nil
}

// DeleteByContent removes every like of a content.
func (s *LikeStore) DeleteByContent(ctx context.Context, contentID int64) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM blog_likes WHERE content_id = $1`, contentID)
	if err != nil {
		return 0, deleteError("delete content likes", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbError("delete content likes", err)
	}
	return n, nil
}

// Count returns the number of likes on a content.
func (s *LikeStore) Count(ctx context.Context, contentID int64) (int64, error) {
	var n int64
	err := s.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM blog_likes WHERE content_id = $1`, contentID).Scan(&n)
	if err != nil {
		return 0, dbError("count likes", err)
	}
	return n, nil
}
