// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"

	"engagecms/internal/apperr"
	"engagecms/internal/events"
	"engagecms/internal/store"
	"engagecms/internal/view"
)

// CommentService manages comments and the comment counter of their
// content.
type CommentService struct {
	store  *store.Store
	events events.Publisher
}

// ListTopLevel returns the approved top-level comments of a content,
// newest first, each with its approved replies oldest first.
func (s *CommentService) ListTopLevel(ctx context.Context, contentID int64) ([]view.Comment, error) {
	if err := requireID("contentId", contentID); err != nil {
		return nil, err
	}

	var out []view.Comment
	err := s.store.ReadTx(ctx, func(tx *store.Store) error {
		top, err := tx.Comments.ListTopLevel(ctx, contentID)
		if err != nil {
			return err
		}
		out, err = threadViews(ctx, tx, top)
		return err
	})
	if err != nil {
		return nil, apperr.WithOp("comment.list", err)
	}
	return out, nil
}

// Create inserts an unapproved comment and increments the comment
// counter of its content in the same transaction. A reply must point at a
// top-level comment of the same content.
func (s *CommentService) Create(ctx context.Context, in view.CommentInput) (*view.Comment, error) {
	row := in.Row()
	if row.Body == "" {
		return nil, apperr.Validation("body", "body is required")
	}
	if err := requireID("contentId", row.ContentID); err != nil {
		return nil, err
	}
	if err := requireID("userId", row.UserID); err != nil {
		return nil, err
	}
	row.IsApproved = false

	var out *view.Comment
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		if row.ParentID != nil {
			parent, err := tx.Comments.FindByID(ctx, *row.ParentID)
			if err != nil {
				return err
			}
			if parent == nil || parent.ContentID != row.ContentID {
				return apperr.NotFound("comment", *row.ParentID)
			}
			if parent.IsReply() {
				return apperr.Validation("parentId", "replies cannot be nested more than one level")
			}
		}

		created, err := tx.Comments.Create(ctx, row)
		if err != nil {
			return err
		}
		_, ok, err := tx.Counters.AdjustComments(ctx, created.ContentID, 1)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.NotFound("content", created.ContentID)
		}
		out, err = commentView(ctx, tx, created)
		return err
	})
	if err != nil {
		return nil, apperr.WithOp("comment.create", err)
	}

	e := events.New(events.CommentCreated)
	e.ContentID, e.CommentID, e.UserID = out.ContentID, out.ID, out.UserID
	s.events.Publish(ctx, e)
	return out, nil
}

// Update changes the body and/or approval of comment id. Counters are
// left untouched.
func (s *CommentService) Update(ctx context.Context, id int64, p view.CommentPatch) (*view.Comment, error) {
	var out *view.Comment
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		row, err := tx.Comments.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if row == nil {
			return apperr.NotFound("comment", id)
		}

		p.Apply(row)
		if row.Body == "" {
			return apperr.Validation("body", "body must not be empty")
		}

		updated, err := tx.Comments.Update(ctx, row)
		if err != nil {
			return err
		}
		if updated == nil {
			return apperr.NotFound("comment", id)
		}
		out, err = commentView(ctx, tx, updated)
		return err
	})
	if err != nil {
		return nil, apperr.WithOp("comment.update", err)
	}
	return out, nil
}

// Delete removes comment id, and its replies, then decrements the
// comment counter of its content by one whatever the approval state.
func (s *CommentService) Delete(ctx context.Context, id int64) (bool, error) {
	var contentID int64
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		deleted, err := tx.Comments.Delete(ctx, id)
		if err != nil {
			return err
		}
		if deleted == nil {
			return apperr.NotFound("comment", id)
		}
		contentID = deleted.ContentID
		_, _, err = tx.Counters.AdjustComments(ctx, deleted.ContentID, -1)
		return err
	})
	if err != nil {
		return false, apperr.WithOp("comment.delete", err)
	}

	e := events.New(events.CommentDeleted)
	e.ContentID, e.CommentID = contentID, id
	s.events.Publish(ctx, e)
	return true, nil
}
