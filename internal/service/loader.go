// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// loader.go batch-loads the relations of a result set: one query per
// related entity type no matter how many rows reference it.
package service

import (
	"context"

	"engagecms/internal/models"
	"engagecms/internal/store"
	"engagecms/internal/view"
)

// contentViews converts rows to public contents with authors, categories
// and tags loaded in three queries.
func contentViews(ctx context.Context, st *store.Store, rows []models.Content) ([]view.Content, error) {
	rel, err := loadRelations(ctx, st, rows)
	if err != nil {
		return nil, err
	}
	return view.FromContents(rows, rel), nil
}

// contentView is contentViews for a single row.
func contentView(ctx context.Context, st *store.Store, row *models.Content) (*view.Content, error) {
	if row == nil {
		return nil, nil
	}
	out, err := contentViews(ctx, st, []models.Content{*row})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func loadRelations(ctx context.Context, st *store.Store, rows []models.Content) (view.Relations, error) {
	var rel view.Relations
	if len(rows) == 0 {
		return rel, nil
	}

	authorIDs := newIDSet()
	categoryIDs := newIDSet()
	contentIDs := newIDSet()
	for _, c := range rows {
		authorIDs.add(c.AuthorID)
		contentIDs.add(c.ID)
		if c.CategoryID != nil {
			categoryIDs.add(*c.CategoryID)
		}
	}

	var err error
	if rel.Users, err = st.Users.FindByIDs(ctx, authorIDs.ids); err != nil {
		return rel, err
	}
	if rel.Categories, err = st.Categories.FindByIDs(ctx, categoryIDs.ids); err != nil {
		return rel, err
	}
	if rel.Tags, err = st.Tags.ForContents(ctx, contentIDs.ids); err != nil {
		return rel, err
	}
	return rel, nil
}

// threadViews converts top-level comments to public threads, loading all
// approved replies in one query and every commenter in another.
func threadViews(ctx context.Context, st *store.Store, top []models.Comment) ([]view.Comment, error) {
	parentIDs := newIDSet()
	userIDs := newIDSet()
	for _, c := range top {
		parentIDs.add(c.ID)
		userIDs.add(c.UserID)
	}

	replies, err := st.Comments.RepliesFor(ctx, parentIDs.ids)
	if err != nil {
		return nil, err
	}
	for _, rs := range replies {
		for _, r := range rs {
			userIDs.add(r.UserID)
		}
	}

	users, err := st.Users.FindByIDs(ctx, userIDs.ids)
	if err != nil {
		return nil, err
	}
	return view.FromThreads(top, replies, users), nil
}

// commentView converts a single comment and loads its author.
func commentView(ctx context.Context, st *store.Store, c *models.Comment) (*view.Comment, error) {
	users, err := st.Users.FindByIDs(ctx, []int64{c.UserID})
	if err != nil {
		return nil, err
	}
	return view.FromComment(c, users), nil
}

// idSet collects distinct IDs in first-seen order.
type idSet struct {
	seen map[int64]struct{}
	ids  []int64
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[int64]struct{})}
}

func (s *idSet) add(id int64) {
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}
