// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package view holds the public shapes returned to API clients and the
// input shapes they send, together with the conversions between those
// shapes and the database rows in package models.
package view

import "time"

// User is the public profile of an author or commenter. Contact details
// stay private.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Avatar      *string   `json:"avatar"`
	CompanyName *string   `json:"companyName"`
	Position    *string   `json:"position"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Category is a public category. Contents is only set when a single
// category is fetched, and is then encoded as a list even when empty.
type Category struct {
	ID           int64      `json:"id"`
	Slug         string     `json:"slug"`
	Name         string     `json:"name"`
	Description  *string    `json:"description"`
	IsVisible    bool       `json:"isVisible"`
	SortOrder    int        `json:"sortOrder"`
	ContentCount int64      `json:"contentCount"`
	Contents     *[]Content `json:"contents,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Tag is a public tag. Contents is only set when a single tag is
// fetched.
type Tag struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	Slug     string     `json:"slug"`
	Contents *[]Content `json:"contents,omitempty"`
}

// Content is a public article with its relations. Comments is only set
// when a single content is fetched.
type Content struct {
	ID              int64      `json:"id"`
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	ContentBody     string     `json:"contentBody"`
	Excerpt         string     `json:"excerpt"`
	Status          string     `json:"status"`
	IsFeatured      bool       `json:"isFeatured"`
	IsHero          bool       `json:"isHero"`
	ThumbnailURL    *string    `json:"thumbnailUrl"`
	ViewCount       int64      `json:"viewCount"`
	LikeCount       int64      `json:"likeCount"`
	CommentCount    int64      `json:"commentCount"`
	MetaTitle       *string    `json:"metaTitle"`
	MetaDescription *string    `json:"metaDescription"`
	PublishedAt     *time.Time `json:"publishedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`

	AuthorID   int64      `json:"authorId"`
	CategoryID *int64     `json:"categoryId"`
	Author     *User      `json:"author"`
	Category   *Category  `json:"category"`
	Tags       []Tag      `json:"tags"`
	Comments   *[]Comment `json:"comments,omitempty"`
}

// Comment is a public comment. Replies is only set on top-level
// comments of a thread.
type Comment struct {
	ID         int64      `json:"id"`
	ContentID  int64      `json:"contentId"`
	UserID     int64      `json:"userId"`
	ParentID   *int64     `json:"parentId"`
	Body       string     `json:"body"`
	IsApproved bool       `json:"isApproved"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	User       *User      `json:"user"`
	Replies    *[]Comment `json:"replies,omitempty"`
}

// LikeResult is returned by toggleLike.
type LikeResult struct {
	Success   bool  `json:"success"`
	IsLiked   bool  `json:"isLiked"`
	LikeCount int64 `json:"likeCount"`
}
