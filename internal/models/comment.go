// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "time"

// Comment is a row of blog_comments. Replies reference a top-level
// comment through ParentID; deeper nesting is rejected on write.
type Comment struct {
	ID         int64     `json:"id"`
	ContentID  int64     `json:"content_id"`
	UserID     int64     `json:"user_id"`
	ParentID   *int64    `json:"parent_id"`
	Body       string    `json:"content"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// IsReply returns true if the comment answers another comment.
func (c *Comment) IsReply() bool {
	return c.ParentID != nil
}

// Like is a row of blog_likes. (ContentID, UserID) is unique.
type Like struct {
	ID        int64     `json:"id"`
	ContentID int64     `json:"content_id"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
