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

// TagStore manages tags and their association with contents.
type TagStore struct {
	q DBTX
}

const tagColumns = `t.id, t.name, t.slug, t.created_at`

func scanTag(row scanner) (*models.Tag, error) {
	var t models.Tag
	if err := row.Scan(&t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all tags in alphabetical order.
func (s *TagStore) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+tagColumns+` FROM blog_tags t ORDER BY t.name, t.id`)
	if err != nil {
		return nil, dbError("list tags", err)
	}
	defer rows.Close()

	var items []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, dbError("scan tag", err)
		}
		items = append(items, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list tags", err)
	}
	return items, nil
}

// FindByID retrieves a tag by ID. Returns nil if not found.
func (s *TagStore) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM blog_tags t WHERE t.id = $1`, id)
	return oneTag("find tag by id", row)
}

// FindBySlug retrieves a tag by slug. Returns nil if not found.
func (s *TagStore) FindBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+tagColumns+` FROM blog_tags t WHERE t.slug = $1`, slug)
	return oneTag("find tag by slug", row)
}

func oneTag(op string, row *sql.Row) (*models.Tag, error) {
	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError(op, err)
	}
	return t, nil
}

// Ensure returns the tag with the given slug, creating it with name when
// absent. Concurrent callers racing on the same slug both get the one row.
func (s *TagStore) Ensure(ctx context.Context, name, slug string) (*models.Tag, error) {
	row := s.q.QueryRowContext(ctx, `
		INSERT INTO blog_tags AS t (name, slug)
		VALUES ($1, $2)
		ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
		RETURNING `+tagColumns,
		name, slug,
	)
	t, err := scanTag(row)
	if err != nil {
		return nil, dbError("ensure tag", err)
	}
	return t, nil
}

// Attach links a tag to a content. An existing link is left untouched.
func (s *TagStore) Attach(ctx context.Context, contentID, tagID int64) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO blog_content_tags (content_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, contentID, tagID)
	if err != nil {
		return dbError("attach tag", err)
	}
	return nil
}

// DetachAll removes every tag link of a content and returns how many
// links were removed.
func (s *TagStore) DetachAll(ctx context.Context, contentID int64) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM blog_content_tags WHERE content_id = $1`, contentID)
	if err != nil {
		return 0, deleteError("detach tags", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, dbError("detach tags", err)
	}
	return n, nil
}

// ForContents returns the tags of each given content, keyed by content ID
// and ordered by tag name.
func (s *TagStore) ForContents(ctx context.Context, contentIDs []int64) (map[int64][]models.Tag, error) {
	out := make(map[int64][]models.Tag, len(contentIDs))
	if len(contentIDs) == 0 {
		return out, nil
	}

	rows, err := s.q.QueryContext(ctx, `
		SELECT bct.content_id, `+tagColumns+`
		FROM blog_content_tags bct
		JOIN blog_tags t ON t.id = bct.tag_id
		WHERE bct.content_id = ANY($1)
		ORDER BY t.name, t.id
	`, contentIDs)
	if err != nil {
		return nil, dbError("tags for contents", err)
	}
	defer rows.Close()

	for rows.Next() {
		var contentID int64
		var t models.Tag
		if err := rows.Scan(&contentID, &t.ID, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, dbError("scan content tag", err)
		}
		out[contentID] = append(out[contentID], t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("tags for contents", err)
	}
	return out, nil
}
