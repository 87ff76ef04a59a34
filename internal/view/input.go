// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package view

import (
	"strings"

	"engagecms/internal/models"
)

// CategoryInput is the argument of createCategory.
type CategoryInput struct {
	Slug        string  `json:"slug" validate:"required,max=200"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	IsVisible   *bool   `json:"isVisible"`
	SortOrder   *int    `json:"sortOrder"`
}

// Row maps the input to a new category row with defaults applied.
func (in CategoryInput) Row() *models.Category {
	c := &models.Category{
		Slug:        strings.TrimSpace(in.Slug),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		IsVisible:   true,
	}
	if in.IsVisible != nil {
		c.IsVisible = *in.IsVisible
	}
	if in.SortOrder != nil {
		c.SortOrder = *in.SortOrder
	}
	return c
}

// CategoryPatch is the argument of updateCategory. Only present keys are
// applied.
type CategoryPatch struct {
	Slug        *string     `json:"slug" validate:"omitnil,min=1,max=200"`
	Name        *string     `json:"name" validate:"omitnil,min=1,max=200"`
	Description Opt[string] `json:"description" validate:"omitempty,max=2000"`
	IsVisible   *bool       `json:"isVisible"`
	SortOrder   *int        `json:"sortOrder"`
}

// Apply copies the supplied fields onto c.
func (p CategoryPatch) Apply(c *models.Category) {
	if p.Slug != nil {
		c.Slug = strings.TrimSpace(*p.Slug)
	}
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description.Set {
		c.Description = p.Description.Ptr()
	}
	if p.IsVisible != nil {
		c.IsVisible = *p.IsVisible
	}
	if p.SortOrder != nil {
		c.SortOrder = *p.SortOrder
	}
}

// ContentInput is the argument of createContent.
type ContentInput struct {
	Title           string   `json:"title" validate:"required,max=300"`
	Slug            string   `json:"slug" validate:"omitempty,max=300"`
	ContentBody     string   `json:"contentBody" validate:"max=100000"`
	AuthorID        int64    `json:"authorId" validate:"omitempty,gt=0"`
	CategoryID      *int64   `json:"categoryId" validate:"omitempty,gt=0"`
	Status          string   `json:"status"`
	IsFeatured      bool     `json:"isFeatured"`
	IsHero          bool     `json:"isHero"`
	ThumbnailURL    *string  `json:"thumbnailUrl" validate:"omitempty,max=2000"`
	MetaTitle       *string  `json:"metaTitle" validate:"omitempty,max=300"`
	MetaDescription *string  `json:"metaDescription" validate:"omitempty,max=500"`
	Tags            []string `json:"tags" validate:"max=50,dive,max=100"`
}

// Row maps the input to a new content row. Status, slug fallback, author
// and publication time are resolved by the caller.
func (in ContentInput) Row() *models.Content {
	c := &models.Content{
		Slug:            strings.TrimSpace(in.Slug),
		Title:           strings.TrimSpace(in.Title),
		Body:            in.ContentBody,
		AuthorID:        in.AuthorID,
		CategoryID:      in.CategoryID,
		IsFeatured:      in.IsFeatured,
		IsHero:          in.IsHero,
		ThumbnailURL:    in.ThumbnailURL,
		MetaTitle:       in.MetaTitle,
		MetaDescription: in.MetaDescription,
	}
	if c.MetaTitle == nil {
		title := c.Title
		c.MetaTitle = &title
	}
	return c
}

// ContentPatch is the argument of updateContent. Only present keys are
// applied. Tags are accepted but not applied on update.
type ContentPatch struct {
	Title           *string     `json:"title" validate:"omitnil,min=1,max=300"`
	Slug            *string     `json:"slug" validate:"omitnil,min=1,max=300"`
	ContentBody     *string     `json:"contentBody" validate:"omitempty,max=100000"`
	CategoryID      Opt[int64]  `json:"categoryId" validate:"omitempty,gt=0"`
	Status          *string     `json:"status"`
	IsFeatured      *bool       `json:"isFeatured"`
	IsHero          *bool       `json:"isHero"`
	ThumbnailURL    Opt[string] `json:"thumbnailUrl" validate:"omitempty,max=2000"`
	MetaTitle       Opt[string] `json:"metaTitle" validate:"omitempty,max=300"`
	MetaDescription Opt[string] `json:"metaDescription" validate:"omitempty,max=500"`
	Tags            []string    `json:"tags"`
}

// Apply copies the supplied fields other than status onto c. A null
// categoryId assigns defaultCategoryID.
func (p ContentPatch) Apply(c *models.Content, defaultCategoryID int64) {
	if p.Title != nil {
		c.Title = strings.TrimSpace(*p.Title)
	}
	if p.Slug != nil {
		c.Slug = strings.TrimSpace(*p.Slug)
	}
	if p.ContentBody != nil {
		c.Body = *p.ContentBody
	}
	if p.CategoryID.Set {
		if p.CategoryID.Null {
			id := defaultCategoryID
			c.CategoryID = &id
		} else {
			c.CategoryID = p.CategoryID.Ptr()
		}
	}
	if p.IsFeatured != nil {
		c.IsFeatured = *p.IsFeatured
	}
	if p.IsHero != nil {
		c.IsHero = *p.IsHero
	}
	if p.ThumbnailURL.Set {
		c.ThumbnailURL = p.ThumbnailURL.Ptr()
	}
	if p.MetaTitle.Set {
		c.MetaTitle = p.MetaTitle.Ptr()
	}
	if p.MetaDescription.Set {
		c.MetaDescription = p.MetaDescription.Ptr()
	}
}

// CommentInput is the argument of createComment. UserID may be omitted
// when the request is authenticated.
type CommentInput struct {
	ContentID int64  `json:"contentId" validate:"required,gt=0"`
	UserID    int64  `json:"userId" validate:"omitempty,gt=0"`
	ParentID  *int64 `json:"parentId" validate:"omitempty,gt=0"`
	Body      string `json:"body" validate:"required,max=5000"`
}

// Row maps the input to a new, unapproved comment row.
func (in CommentInput) Row() *models.Comment {
	return &models.Comment{
		ContentID: in.ContentID,
		UserID:    in.UserID,
		ParentID:  in.ParentID,
		Body:      strings.TrimSpace(in.Body),
	}
}

// CommentPatch is the argument of updateComment.
type CommentPatch struct {
	Body       *string `json:"body" validate:"omitempty,max=5000"`
	IsApproved *bool   `json:"isApproved"`
}

// Apply copies the supplied fields onto c.
func (p CommentPatch) Apply(c *models.Comment) {
	if p.Body != nil {
		c.Body = strings.TrimSpace(*p.Body)
	}
	if p.IsApproved != nil {
		c.IsApproved = *p.IsApproved
	}
}
