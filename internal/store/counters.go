// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// counters.go maintains the derived view, like and comment counters on
// blog_contents. Every change is a single UPDATE relative to the stored
// value so concurrent writers never lose increments.
package store

import (
	"context"
	"database/sql"
	"errors"

	"engagecms/internal/models"
)

// CounterStore updates the derived counters of contents.
type CounterStore struct {
	q DBTX
}

// IncrementViewsByID adds one view and returns the row as seen after the
// increment. Returns nil if the content does not exist.
func (s *CounterStore) IncrementViewsByID(ctx context.Context, id int64) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `
		UPDATE blog_contents AS c SET view_count = c.view_count + 1
		WHERE c.id = $1
		RETURNING `+contentColumns, id)
	return oneContent("increment views", row)
}

// IncrementViewsBySlug is IncrementViewsByID keyed by slug.
func (s *CounterStore) IncrementViewsBySlug(ctx context.Context, slug string) (*models.Content, error) {
	row := s.q.QueryRowContext(ctx, `
		UPDATE blog_contents AS c SET view_count = c.view_count + 1
		WHERE c.slug = $1
		RETURNING `+contentColumns, slug)
	return oneContent("increment views", row)
}

// AdjustLikes adds delta to like_count, never going below zero, and
// returns the new value. ok is false if the content does not exist.
func (s *CounterStore) AdjustLikes(ctx context.Context, contentID, delta int64) (n int64, ok bool, err error) {
	return s.adjust(ctx, "adjust likes", `
		UPDATE blog_contents SET like_count = GREATEST(like_count + $2, 0)
		WHERE id = $1 RETURNING like_count`, contentID, delta)
}

// AdjustComments adds delta to comment_count, never going below zero, and
// returns the new value. ok is false if the content does not exist.
func (s *CounterStore) AdjustComments(ctx context.Context, contentID, delta int64) (n int64, ok bool, err error) {
	return s.adjust(ctx, "adjust comments", `
		UPDATE blog_contents SET comment_count = GREATEST(comment_count + $2, 0)
		WHERE id = $1 RETURNING comment_count`, contentID, delta)
}

func (s *CounterStore) adjust(ctx context.Context, op, query string, contentID, delta int64) (int64, bool, error) {
	var n int64
	err := s.q.QueryRowContext(ctx, query, contentID, delta).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, dbError(op, err)
	}
	return n, true, nil
}

// LikeCount returns the stored like_count of a content. ok is false if
// the content does not exist.
func (s *CounterStore) LikeCount(ctx context.Context, contentID int64) (n int64, ok bool, err error) {
	err = s.q.QueryRowContext(ctx, `SELECT like_count FROM blog_contents WHERE id = $1`, contentID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, dbError("read like count", err)
	}
	return n, true, nil
}

// ReconcileLikes rewrites like_count wherever it differs from the number
// of like rows and returns how many contents were repaired.
func (s *CounterStore) ReconcileLikes(ctx context.Context) (int64, error) {
	res, err := s.q.ExecContext(ctx, `
		UPDATE blog_contents c SET like_count = l.actual
		FROM (
			SELECT bc.id, COUNT(bl.id) AS actual
			FROM blog_contents bc
			LEFT JOIN blog_likes bl ON bl.content_id = bc.id
			GROUP BY bc.id
		) l
		WHERE l.id = c.id AND c.like_count <> l.actual
	`)
	if err != nil {
		return 0, dbError("reconcile likes", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbError("reconcile likes", err)
	}
	return n, nil
}
