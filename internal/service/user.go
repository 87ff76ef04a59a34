// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package service

import (
	"context"

	"engagecms/internal/apperr"
	"engagecms/internal/store"
	"engagecms/internal/view"
)

// UserService exposes the read side of the external user table.
type UserService struct {
	store *store.Store
}

// Get returns user id, or nil.
func (s *UserService) Get(ctx context.Context, id int64) (*view.User, error) {
	if err := requireID("id", id); err != nil {
		return nil, err
	}
	u, err := s.store.Users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.WithOp("user.get", err)
	}
	if u == nil {
		return nil, nil
	}
	return view.FromUser(u), nil
}

// List returns active users, newest first.
func (s *UserService) List(ctx context.Context, size *int) ([]view.User, error) {
	n, err := limit("limit", size, DefaultUserLimit)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.Users.ListActive(ctx, n)
	if err != nil {
		return nil, apperr.WithOp("user.list", err)
	}
	return view.FromUsers(rows), nil
}
