// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"
	"strings"
	"time"

	"engagecms/internal/apperr"
	"engagecms/internal/events"
	"engagecms/internal/models"
	"engagecms/internal/slug"
	"engagecms/internal/store"
	"engagecms/internal/view"
)

// ContentService manages articles, their tags and their view counter.
type ContentService struct {
	store             *store.Store
	events            events.Publisher
	now               func() time.Time
	defaultCategoryID int64
}

// ListParams are the arguments of the contents query.
type ListParams struct {
	First      *int    `json:"first"`
	CategoryID *int64  `json:"categoryId"`
	Status     *string `json:"status"`
}

// List returns contents newest publication first, hydrated with author,
// category and tags. Status defaults to PUBLISHED and the size to 10.
func (s *ContentService) List(ctx context.Context, p ListParams) ([]view.Content, error) {
	n, err := limit("first", p.First, DefaultContentLimit)
	if err != nil {
		return nil, err
	}
	status := models.ContentStatusPublished
	if p.Status != nil {
		st, ok := models.ParseContentStatus(*p.Status)
		if !ok {
			return nil, apperr.Validation("status", "status must be DRAFT or PUBLISHED")
		}
		status = st
	}

	return s.list(ctx, "content.list", store.ContentFilter{
		Status:     status,
		CategoryID: p.CategoryID,
		Limit:      n,
	})
}

// Featured returns published, featured contents, newest first.
func (s *ContentService) Featured(ctx context.Context, size *int) ([]view.Content, error) {
	n, err := limit("limit", size, DefaultFeaturedLimit)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, "content.featured", store.ContentFilter{
		Status:   models.ContentStatusPublished,
		Featured: true,
		Limit:    n,
	})
}

// Hero returns the newest published hero content, or nil. Several rows
// may be flagged as hero; only the newest is returned.
func (s *ContentService) Hero(ctx context.Context) (*view.Content, error) {
	items, err := s.list(ctx, "content.hero", store.ContentFilter{
		Status: models.ContentStatusPublished,
		Hero:   true,
		Limit:  1,
	})
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}

func (s *ContentService) list(ctx context.Context, op string, f store.ContentFilter) ([]view.Content, error) {
	var out []view.Content
	err := s.store.ReadTx(ctx, func(tx *store.Store) error {
		rows, err := tx.Contents.List(ctx, f)
		if err != nil {
			return err
		}
		out, err = contentViews(ctx, tx, rows)
		return err
	})
	if err != nil {
		return nil, apperr.WithOp(op, err)
	}
	return out, nil
}

// Get returns one content with its relations and approved comments, or
// nil if it does not exist. Every successful fetch adds one view; the
// returned viewCount includes it.
func (s *ContentService) Get(ctx context.Context, l Lookup) (*view.Content, error) {
	if err := l.check(); err != nil {
		return nil, err
	}

	var out *view.Content
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		var row *models.Content
		var err error
		if l.ID != nil {
			row, err = tx.Counters.IncrementViewsByID(ctx, *l.ID)
		} else {
			row, err = tx.Counters.IncrementViewsBySlug(ctx, *l.Slug)
		}
		if err != nil || row == nil {
			return err
		}

		if out, err = contentView(ctx, tx, row); err != nil {
			return err
		}
		top, err := tx.Comments.ListTopLevel(ctx, row.ID)
		if err != nil {
			return err
		}
		threads, err := threadViews(ctx, tx, top)
		if err != nil {
			return err
		}
		out.Comments = &threads
		return nil
	})
	if err != nil {
		return nil, apperr.WithOp("content.get", err)
	}
	return out, nil
}

// Create inserts a content and links its tags in one transaction. Tag
// names are matched by normalized slug, so "Tag A" and "tag a" share one
// tag and produce one link.
func (s *ContentService) Create(ctx context.Context, in view.ContentInput) (*view.Content, error) {
	row := in.Row()
	if row.Title == "" {
		return nil, apperr.Validation("title", "title is required")
	}
	if err := requireID("authorId", row.AuthorID); err != nil {
		return nil, err
	}
	if row.Slug == "" {
		row.Slug = slug.Generate(row.Title)
		if row.Slug == "" {
			return nil, apperr.Validation("slug", "slug is required when the title has no usable characters")
		}
	}

	row.Status = models.ContentStatusDraft
	if strings.TrimSpace(in.Status) != "" {
		st, ok := models.ParseContentStatus(in.Status)
		if !ok {
			return nil, apperr.Validation("status", "status must be DRAFT or PUBLISHED")
		}
		row.Status = st
	}
	if row.IsPublished() {
		now := s.now()
		row.PublishedAt = &now
	}
	if row.CategoryID == nil {
		id := s.defaultCategoryID
		row.CategoryID = &id
	}

	tags := uniqueTags(in.Tags)

	var out *view.Content
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		created, err := tx.Contents.Create(ctx, row)
		if err != nil {
			return err
		}
		for _, t := range tags {
			tag, err := tx.Tags.Ensure(ctx, t.name, t.slug)
			if err != nil {
				return err
			}
			if err := tx.Tags.Attach(ctx, created.ID, tag.ID); err != nil {
				return err
			}
		}
		out, err = contentView(ctx, tx, created)
		return err
	})
	if err != nil {
		return nil, apperr.WithOp("content.create", err)
	}

	e := events.New(events.ContentCreated)
	e.ContentID, e.UserID = out.ID, out.AuthorID
	s.events.Publish(ctx, e)
	if out.Status == string(models.ContentStatusPublished) {
		s.publishPublished(ctx, out)
	}
	return out, nil
}

// Update applies the supplied fields to content id. Moving to PUBLISHED
// stamps publishedAt with the current time and moving to DRAFT clears it.
// Tags in the patch are ignored; tags are only linked on create.
func (s *ContentService) Update(ctx context.Context, id int64, p view.ContentPatch) (*view.Content, error) {
	var status models.ContentStatus
	if p.Status != nil {
		st, ok := models.ParseContentStatus(*p.Status)
		if !ok {
			return nil, apperr.Validation("status", "status must be DRAFT or PUBLISHED")
		}
		status = st
	}

	var out *view.Content
	var newlyPublished bool
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		row, err := tx.Contents.LockByID(ctx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return apperr.NotFound("content", id)
		}
		wasPublished := row.IsPublished()

		p.Apply(row, s.defaultCategoryID)
		if row.Title == "" {
			return apperr.Validation("title", "title must not be empty")
		}
		if row.Slug == "" {
			return apperr.Validation("slug", "slug must not be empty")
		}

		switch status {
		case models.ContentStatusPublished:
			now := s.now()
			row.Status, row.PublishedAt = status, &now
		case models.ContentStatusDraft:
			row.Status, row.PublishedAt = status, nil
		}
		newlyPublished = !wasPublished && row.IsPublished()

		updated, err := tx.Contents.Update(ctx, row)
		if err != nil {
			return err
		}
		if updated == nil {
			return apperr.NotFound("content", id)
		}
		out, err = contentView(ctx, tx, updated)
		return err
	})
	if err != nil {
		return nil, apperr.WithOp("content.update", err)
	}

	if newlyPublished {
		s.publishPublished(ctx, out)
	}
	return out, nil
}

// Delete removes content id together with its tag links, comments and
// likes in one transaction.
func (s *ContentService) Delete(ctx context.Context, id int64) (bool, error) {
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		if _, err := tx.Tags.DetachAll(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Comments.DeleteByContent(ctx, id); err != nil {
			return err
		}
		if _, err := tx.Likes.DeleteByContent(ctx, id); err != nil {
			return err
		}
		deleted, err := tx.Contents.Delete(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound("content", id)
		}
		return nil
	})
	if err != nil {
		return false, apperr.WithOp("content.delete", err)
	}

	e := events.New(events.ContentDeleted)
	e.ContentID = id
	s.events.Publish(ctx, e)
	return true, nil
}

func (s *ContentService) publishPublished(ctx context.Context, c *view.Content) {
	e := events.New(events.ContentPublished)
	e.ContentID, e.UserID = c.ID, c.AuthorID
	s.events.Publish(ctx, e)
}

type tagName struct {
	name string
	slug string
}

// uniqueTags trims tag names, drops blanks and keeps the first name seen
// for each normalized slug.
func uniqueTags(names []string) []tagName {
	seen := make(map[string]struct{}, len(names))
	out := make([]tagName, 0, len(names))
	for _, n := range names {
		n = strings.Join(strings.Fields(n), " ")
		s := slug.Normalize(n)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, tagName{name: n, slug: s})
	}
	return out
}
