// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"
)

// ContentStatus represents the publishing state of a content item.
type ContentStatus string

const (
	ContentStatusDraft     ContentStatus = "DRAFT"
	ContentStatusPublished ContentStatus = "PUBLISHED"
)

// ParseContentStatus normalizes s to upper case and reports whether it is
// a known status.
func ParseContentStatus(s string) (ContentStatus, bool) {
	st := ContentStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case ContentStatusDraft, ContentStatusPublished:
		return st, true
	}
	return st, false
}

// Content is a row of blog_contents.
type Content struct {
	ID              int64         `json:"id"`
	Slug            string        `json:"slug"`
	Title           string        `json:"title"`
	Body            string        `json:"content_body"`
	AuthorID        int64         `json:"author_id"`
	CategoryID      *int64        `json:"category_id"`
	Status          ContentStatus `json:"status"`
	IsFeatured      bool          `json:"is_featured"`
	IsHero          bool          `json:"is_hero"`
	ThumbnailURL    *string       `json:"thumbnail_url"`
	ViewCount       int64         `json:"view_count"`
	LikeCount       int64         `json:"like_count"`
	CommentCount    int64         `json:"comment_count"`
	MetaTitle       *string       `json:"meta_title"`
	MetaDescription *string       `json:"meta_description"`
	PublishedAt     *time.Time    `json:"published_at"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// IsPublished returns true if the content item is in published status.
func (c *Content) IsPublished() bool {
	return c.Status == ContentStatusPublished
}

// ContentTag is a row of blog_content_tags.
type ContentTag struct {
	ContentID int64 `json:"content_id"`
	TagID     int64 `json:"tag_id"`
}
