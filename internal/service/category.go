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

// CategoryService manages blog categories.
type CategoryService struct {
	store *store.Store
}

// List returns categories ordered by sort order, each with its number of
// published contents. A non-nil visible filters by visibility.
func (s *CategoryService) List(ctx context.Context, visible *bool) ([]view.Category, error) {
	rows, err := s.store.Categories.List(ctx, visible)
	if err != nil {
		return nil, apperr.WithOp("category.list", err)
	}
	return view.FromCategories(rows), nil
}

// Get returns one category with its published contents. A missing
// category is a NotFound error.
func (s *CategoryService) Get(ctx context.Context, l Lookup) (*view.Category, error) {
	if err := l.check(); err != nil {
		return nil, err
	}

	var out *view.Category
	err := s.store.ReadTx(ctx, func(tx *store.Store) error {
		var row *models.Category
		var err error
		if l.ID != nil {
			row, err = tx.Categories.FindByID(ctx, *l.ID)
		} else {
			row, err = tx.Categories.FindBySlug(ctx, *l.Slug)
		}
		if err != nil {
			return err
		}
		if row == nil {
			return apperr.NotFound("category", lookupKey(l))
		}

		contents, err := tx.Contents.List(ctx, store.ContentFilter{
			Status:     models.ContentStatusPublished,
			CategoryID: &row.ID,
		})
		if err != nil {
			return err
		}

		views, err := contentViews(ctx, tx, contents)
		if err != nil {
			return err
		}
		out = view.FromCategory(row)
		out.Contents = &views
		return nil
	})
	if err != nil {
		return nil, apperr.WithOp("category.get", err)
	}
	return out, nil
}

// Create inserts a category. A taken slug is a Conflict error.
func (s *CategoryService) Create(ctx context.Context, in view.CategoryInput) (*view.Category, error) {
	row := in.Row()
	if err := checkCategory(row); err != nil {
		return nil, err
	}

	created, err := s.store.Categories.Create(ctx, row)
	if err != nil {
		return nil, apperr.WithOp("category.create", err)
	}
	return view.FromCategory(created), nil
}

// Update applies the supplied fields to category id.
func (s *CategoryService) Update(ctx context.Context, id int64, p view.CategoryPatch) (*view.Category, error) {
	var out *view.Category
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		row, err := tx.Categories.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return apperr.NotFound("category", id)
		}

		p.Apply(row)
		if err := checkCategory(row); err != nil {
			return err
		}

		updated, err := tx.Categories.Update(ctx, row)
		if err != nil {
			return err
		}
		if updated == nil {
			return apperr.NotFound("category", id)
		}
		updated.ContentCount = row.ContentCount
		out = view.FromCategory(updated)
		return nil
	})
	if err != nil {
		return nil, apperr.WithOp("category.update", err)
	}
	return out, nil
}

// Delete removes category id. It fails with Conflict while any content,
// in any status, still belongs to it.
func (s *CategoryService) Delete(ctx context.Context, id int64) (bool, error) {
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		n, err := tx.Categories.CountContents(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("category", "category %d still has %d content item(s)", id, n)
		}

		deleted, err := tx.Categories.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("category", id)
		}
		return nil
	})
	if err != nil {
		return false, apperr.WithOp("category.delete", err)
	}
	return true, nil
}

func checkCategory(c *models.Category) error {
	if c.Slug == "" {
		return apperr.Validation("slug", "slug is required")
	}
	if c.Name == "" {
		return apperr.Validation("name", "name is required")
	}
	return nil
}

func lookupKey(l Lookup) any {
	if l.ID != nil {
		return *l.ID
	}
	return *l.Slug
}
