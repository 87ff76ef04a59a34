// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package graph

import (
	"context"
	"fmt"

	"engagecms/internal/events"
	"engagecms/internal/view"
)

// Moderate applies a moderation decision by running updateComment, so
// decisions from the moderation feed share logging, metrics and the
// mutation hook with client calls. It implements events.Moderator.
func (e *Executor) Moderate(ctx context.Context, d events.Decision) error {
	op := &updateCommentOp{
		ID:    d.CommentID,
		Input: view.CommentPatch{IsApproved: &d.Approved},
	}
	if err := validateArgs(op); err != nil {
		return err
	}

	resp := e.Execute(ctx, OpUpdateComment, op)
	if resp.Failed() {
		first := resp.Errors[0]
		return fmt.Errorf("%s: %s", first.Extensions.Code, first.Message)
	}
	return nil
}
