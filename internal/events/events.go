// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events publishes domain events after successful mutations and
// consumes comment moderation decisions, both over Kafka.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types.
const (
	ContentCreated   = "content.created"
	ContentPublished = "content.published"
	ContentDeleted   = "content.deleted"
	CommentCreated   = "comment.created"
	CommentDeleted   = "comment.deleted"
	LikeToggled      = "like.toggled"
)

// Event is the JSON envelope written to the events topic.
type Event struct {
	ID        string    `json:"eventId"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	ContentID int64     `json:"contentId,omitempty"`
	CommentID int64     `json:"commentId,omitempty"`
	UserID    int64     `json:"userId,omitempty"`
	// Liked is set for like.toggled.
	Liked *bool `json:"liked,omitempty"`
}

// New returns an event of the given type stamped with a fresh ID and the
// current time.
func New(typ string) Event {
	return Event{ID: uuid.NewString(), Type: typ, Timestamp: time.Now().UTC()}
}

// Publisher delivers events. Delivery is best effort: Publish never
// fails the caller.
type Publisher interface {
	Publish(ctx context.Context, e Event)
}

// Nop discards every event. It is used when no brokers are configured.
type Nop struct{}

// Publish discards e.
func (Nop) Publish(context.Context, Event) {}

// Recorder keeps published events in memory, for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Publish records e.
func (r *Recorder) Publish(_ context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the types of the recorded events in order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}
