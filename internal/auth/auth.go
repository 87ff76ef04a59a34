// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth resolves bearer credentials into the viewer on whose
// behalf an API operation runs. Credentials are verified here, at the
// transport edge; the services only ever see a user ID.
package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned when a credential is malformed, expired or
// unknown.
var ErrInvalidToken = errors.New("auth: invalid token")

// Viewer is the authenticated caller.
type Viewer struct {
	UserID int64
}

// Resolver turns a bearer token into a Viewer.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*Viewer, error)
}

type viewerKey struct{}

// WithViewer returns a copy of ctx carrying v.
func WithViewer(ctx context.Context, v *Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// FromContext returns the viewer stored in ctx, or nil for anonymous
// callers.
func FromContext(ctx context.Context) *Viewer {
	v, _ := ctx.Value(viewerKey{}).(*Viewer)
	return v
}

// UserID returns the viewer's user ID, or 0 for anonymous callers.
func UserID(ctx context.Context) int64 {
	if v := FromContext(ctx); v != nil {
		return v.UserID
	}
	return 0
}
