// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"

	"engagecms/internal/apperr"
	"engagecms/internal/models"
	"engagecms/internal/store"
	"engagecms/internal/view"
)

// TagService reads tags. Tags are created through content creation.
type TagService struct {
	store *store.Store
}

// List returns every tag ordered by name.
func (s *TagService) List(ctx context.Context) ([]view.Tag, error) {
	rows, err := s.store.Tags.List(ctx)
	if err != nil {
		return nil, apperr.WithOp("tag.list", err)
	}
	return view.FromTags(rows), nil
}

// Get returns one tag with its published contents, or nil.
func (s *TagService) Get(ctx context.Context, l Lookup) (*view.Tag, error) {
	if err := l.check(); err != nil {
		return nil, err
	}

	var out *view.Tag
	err := s.store.ReadTx(ctx, func(tx *store.Store) error {
		var row *models.Tag
		var err error
		if l.ID != nil {
			row, err = tx.Tags.FindByID(ctx, *l.ID)
		} else {
			row, err = tx.Tags.FindBySlug(ctx, *l.Slug)
		}
		if err != nil || row == nil {
			return err
		}

		contents, err := tx.Contents.List(ctx, store.ContentFilter{
			Status: models.ContentStatusPublished,
			TagID:  &row.ID,
		})
		if err != nil {
			return err
		}
		views, err := contentViews(ctx, tx, contents)
		if err != nil {
			return err
		}
		out = view.FromTag(row)
		out.Contents = &views
		return nil
	})
	if err != nil {
		return nil, apperr.WithOp("tag.get", err)
	}
	return out, nil
}
