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

// LikeService toggles likes and keeps like_count in step with the like
// rows.
type LikeService struct {
	store  *store.Store
	events events.Publisher
}

// Toggle likes contentID on behalf of userID, or removes the like if one
// exists. The content row is locked for the duration of the transaction,
// so concurrent toggles of the same content run one after the other. The
// returned likeCount is read after commit.
func (s *LikeService) Toggle(ctx context.Context, contentID, userID int64) (*view.LikeResult, error) {
	if err := requireID("contentId", contentID); err != nil {
		return nil, err
	}
	if err := requireID("userId", userID); err != nil {
		return nil, err
	}

	var liked bool
	err := s.store.InTx(ctx, func(tx *store.Store) error {
		content, err := tx.Contents.LockByID(ctx, contentID)
		if err != nil {
			return err
		}
		if content == nil {
			return apperr.NotFound("content", contentID)
		}

		existing, err := tx.Likes.Find(ctx, contentID, userID)
		if err != nil {
			return err
		}

		delta := int64(1)
		if existing != nil {
			if _, err := tx.Likes.Delete(ctx, contentID, userID); err != nil {
				return err
			}
			delta = -1
		} else if _, err := tx.Likes.Create(ctx, contentID, userID); err != nil {
			return err
		}
		liked = existing == nil

		_, _, err = tx.Counters.AdjustLikes(ctx, contentID, delta)
		return err
	})
	if err != nil {
		return nil, apperr.WithOp("like.toggle", err)
	}

	count, _, err := s.store.Counters.LikeCount(ctx, contentID)
	if err != nil {
		return nil, apperr.WithOp("like.toggle", err)
	}

	e := events.New(events.LikeToggled)
	e.ContentID, e.UserID, e.Liked = contentID, userID, &liked
	s.events.Publish(ctx, e)

	return &view.LikeResult{Success: true, IsLiked: liked, LikeCount: count}, nil
}
