// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package service implements the entity services. Each service validates
// its input, runs its store calls in one transaction whenever more than
// one row is written, and returns public shapes from package view.
package service

import (
	"strings"
	"time"

	"engagecms/internal/apperr"
	"engagecms/internal/events"
	"engagecms/internal/store"
)

// List limits shared by the list operations.
const (
	DefaultContentLimit  = 10
	DefaultFeaturedLimit = 5
	DefaultUserLimit     = 10
	MaxListLimit         = 100
)

// Options configures the services.
type Options struct {
	// DefaultCategoryID is assigned to contents created without a category
	// or updated with a null one.
	DefaultCategoryID int64
	// Events receives domain events after commit. Nil discards them.
	Events events.Publisher
	// Now returns the current time. Nil uses time.Now.
	Now func() time.Time
}

// Services bundles the entity services over one store.
type Services struct {
	Categories *CategoryService
	Contents   *ContentService
	Tags       *TagService
	Comments   *CommentService
	Likes      *LikeService
	Users      *UserService
}

// New wires every service to st.
func New(st *store.Store, opts Options) *Services {
	if opts.Events == nil {
		opts.Events = events.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultCategoryID <= 0 {
		opts.DefaultCategoryID = 1
	}

	return &Services{
		Categories: &CategoryService{store: st},
		Contents: &ContentService{
			store:             st,
			events:            opts.Events,
			now:               opts.Now,
			defaultCategoryID: opts.DefaultCategoryID,
		},
		Tags:     &TagService{store: st},
		Comments: &CommentService{store: st, events: opts.Events},
		Likes:    &LikeService{store: st, events: opts.Events},
		Users:    &UserService{store: st},
	}
}

// Lookup selects a single entity by ID or by slug. ID wins when both are
// given.
type Lookup struct {
	ID   *int64  `json:"id"`
	Slug *string `json:"slug"`
}

// ByID returns a Lookup by ID.
func ByID(id int64) Lookup { return Lookup{ID: &id} }

// BySlug returns a Lookup by slug.
func BySlug(slug string) Lookup { return Lookup{Slug: &slug} }

func (l Lookup) check() error {
	if l.ID == nil && (l.Slug == nil || strings.TrimSpace(*l.Slug) == "") {
		return apperr.Validation("id", "either id or slug is required")
	}
	return nil
}

// limit applies a default and the upper bound to an optional list size.
func limit(field string, n *int, fallback int) (int, error) {
	if n == nil {
		return fallback, nil
	}
	if *n < 1 || *n > MaxListLimit {
		return 0, apperr.Validation(field, "%s must be between 1 and %d", field, MaxListLimit)
	}
	return *n, nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return apperr.Validation(field, "%s is required", field)
	}
	return nil
}
