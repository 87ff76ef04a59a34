// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package view

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"engagecms/internal/models"
)

// ExcerptLength is the number of characters kept from the body when a
// content has no meta description.
const ExcerptLength = 150

var stripTags = newStripTags()

func newStripTags() *bluemonday.Policy {
	p := bluemonday.StripTagsPolicy()
	p.AddSpaceWhenStrippingTag(true)
	return p
}

// Relations carries the batch-loaded relations of a set of contents.
// Missing entries leave the corresponding field empty.
type Relations struct {
	Users      map[int64]*models.User
	Categories map[int64]*models.Category
	Tags       map[int64][]models.Tag // keyed by content ID
}

// FromUser converts a user row.
func FromUser(u *models.User) *User {
	if u == nil {
		return nil
	}
	return &User{
		ID:          u.ID,
		Username:    u.Username,
		Avatar:      u.Avatar,
		CompanyName: u.CompanyName,
		Position:    u.Position,
		Status:      u.Status,
		CreatedAt:   u.CreatedAt,
	}
}

// FromUsers converts a slice of user rows.
func FromUsers(rows []models.User) []User {
	out := make([]User, 0, len(rows))
	for i := range rows {
		out = append(out, *FromUser(&rows[i]))
	}
	return out
}

// FromCategory converts a category row.
func FromCategory(c *models.Category) *Category {
	if c == nil {
		return nil
	}
	return &Category{
		ID:           c.ID,
		Slug:         c.Slug,
		Name:         c.Name,
		Description:  c.Description,
		IsVisible:    c.IsVisible,
		SortOrder:    c.SortOrder,
		ContentCount: c.ContentCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// FromCategories converts a slice of category rows.
func FromCategories(rows []models.Category) []Category {
	out := make([]Category, 0, len(rows))
	for i := range rows {
		out = append(out, *FromCategory(&rows[i]))
	}
	return out
}

// FromTag converts a tag row.
func FromTag(t *models.Tag) *Tag {
	if t == nil {
		return nil
	}
	return &Tag{ID: t.ID, Name: t.Name, Slug: t.Slug}
}

// FromTags converts a slice of tag rows. The result is never nil.
func FromTags(rows []models.Tag) []Tag {
	out := make([]Tag, 0, len(rows))
	for i := range rows {
		out = append(out, *FromTag(&rows[i]))
	}
	return out
}

// FromContent converts a content row, attaching whatever relations rel
// holds for it.
func FromContent(c *models.Content, rel Relations) *Content {
	if c == nil {
		return nil
	}
	out := &Content{
		ID:              c.ID,
		Slug:            c.Slug,
		Title:           c.Title,
		ContentBody:     c.Body,
		Excerpt:         Excerpt(c),
		Status:          string(c.Status),
		IsFeatured:      c.IsFeatured,
		IsHero:          c.IsHero,
		ThumbnailURL:    c.ThumbnailURL,
		ViewCount:       c.ViewCount,
		LikeCount:       c.LikeCount,
		CommentCount:    c.CommentCount,
		MetaTitle:       c.MetaTitle,
		MetaDescription: c.MetaDescription,
		PublishedAt:     c.PublishedAt,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
		AuthorID:        c.AuthorID,
		CategoryID:      c.CategoryID,
		Author:          FromUser(rel.Users[c.AuthorID]),
		Tags:            FromTags(rel.Tags[c.ID]),
	}
	if c.CategoryID != nil {
		out.Category = FromCategory(rel.Categories[*c.CategoryID])
	}
	return out
}

// FromContents converts a slice of content rows. The result is never nil.
func FromContents(rows []models.Content, rel Relations) []Content {
	out := make([]Content, 0, len(rows))
	for i := range rows {
		out = append(out, *FromContent(&rows[i], rel))
	}
	return out
}

// FromComment converts a comment row, attaching its author from users.
func FromComment(c *models.Comment, users map[int64]*models.User) *Comment {
	if c == nil {
		return nil
	}
	return &Comment{
		ID:         c.ID,
		ContentID:  c.ContentID,
		UserID:     c.UserID,
		ParentID:   c.ParentID,
		Body:       c.Body,
		IsApproved: c.IsApproved,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
		User:       FromUser(users[c.UserID]),
	}
}

// FromThreads converts top-level comments and attaches their replies,
// keyed by parent ID. Neither the result nor any Replies is nil.
func FromThreads(top []models.Comment, replies map[int64][]models.Comment, users map[int64]*models.User) []Comment {
	out := make([]Comment, 0, len(top))
	for i := range top {
		c := FromComment(&top[i], users)
		rs := replies[top[i].ID]
		list := make([]Comment, 0, len(rs))
		for j := range rs {
			list = append(list, *FromComment(&rs[j], users))
		}
		c.Replies = &list
		out = append(out, *c)
	}
	return out
}

// Excerpt returns the meta description when set, otherwise the first
// ExcerptLength characters of the body with markup removed. Truncated
// text ends with "...".
func Excerpt(c *models.Content) string {
	if c.MetaDescription != nil && strings.TrimSpace(*c.MetaDescription) != "" {
		return *c.MetaDescription
	}

	text := html.UnescapeString(stripTags.Sanitize(c.Body))
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= ExcerptLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:ExcerptLength])) + "..."
}
