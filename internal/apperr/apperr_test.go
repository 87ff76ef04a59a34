// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"validation", Validation("slug", "slug is required"), KindValidation},
		{"not found", NotFound("content", 4), KindNotFound},
		{"conflict", Conflict("category", "slug taken"), KindConflict},
		{"internal", Internal("x", errors.New("boom")), KindInternal},
		{"plain error", errors.New("plain"), KindInternal},
		{"wrapped", fmt.Errorf("outer: %w", NotFound("tag", "go")), KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	want := map[Kind]string{
		KindValidation: "VALIDATION_ERROR",
		KindNotFound:   "NOT_FOUND",
		KindConflict:   "CONFLICT",
		KindInternal:   "INTERNAL_ERROR",
	}
	for k, s := range want {
		if k.String() != s {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), s)
		}
	}
}

func TestPublicMessage_HidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")
	err := Internal("content.list", cause)

	if got := PublicMessage(err); got != "internal error" {
		t.Errorf("PublicMessage = %q", got)
	}
	if !errors.Is(err, cause) {
		t.Error("Internal should unwrap to its cause")
	}
	if got := PublicMessage(NotFound("content", 9)); got != "content 9 not found" {
		t.Errorf("PublicMessage(NotFound) = %q", got)
	}
}

func TestWithOp(t *testing.T) {
	err := WithOp("comment.create", NotFound("comment", 9999))
	var e *Error
	if !errors.As(err, &e) || e.Op != "comment.create" {
		t.Fatalf("expected op to be set, got %v", err)
	}
	if err.Error() != "comment.create: comment 9999 not found" {
		t.Errorf("Error() = %q", err.Error())
	}

	// An existing op is kept.
	err = WithOp("other", err)
	if errors.As(err, &e); e.Op != "comment.create" {
		t.Errorf("op overwritten: %q", e.Op)
	}
}
