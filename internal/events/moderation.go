// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/segmentio/kafka-go"
)

// Decision is a moderation verdict for one comment.
type Decision struct {
	CommentID int64 `json:"commentId"`
	Approved  bool  `json:"approved"`
}

// Moderator applies a moderation decision.
type Moderator interface {
	Moderate(ctx context.Context, d Decision) error
}

// ModeratorFunc adapts a function to Moderator.
type ModeratorFunc func(ctx context.Context, d Decision) error

// Moderate calls f.
func (f ModeratorFunc) Moderate(ctx context.Context, d Decision) error { return f(ctx, d) }

// messageReader is implemented by *kafka.Reader.
type messageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// ModerationConsumer reads moderation decisions from a topic and applies
// them one at a time.
type ModerationConsumer struct {
	reader    messageReader
	moderator Moderator
	topic     string
	timeout   time.Duration
}

// NewModerationConsumer creates a consumer group reader on topic.
func NewModerationConsumer(brokers []string, topic, groupID string, m Moderator) (*ModerationConsumer, error) {
	if topic == "" {
		return nil, errors.New("moderation topic must not be empty")
	}
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers must not be empty")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
		MaxWait:        3 * time.Second,
	})

	slog.Info("kafka moderation consumer initialized", "brokers", brokers, "topic", topic, "group_id", groupID)
	return newModerationConsumer(reader, topic, m), nil
}

func newModerationConsumer(r messageReader, topic string, m Moderator) *ModerationConsumer {
	return &ModerationConsumer{reader: r, moderator: m, topic: topic, timeout: 30 * time.Second}
}

// Run reads messages until ctx is cancelled or the reader is closed.
// Malformed messages and failed decisions are logged and skipped.
func (c *ModerationConsumer) Run(ctx context.Context) {
	slog.Info("moderation consumer started", "topic", c.topic)
	defer slog.Info("moderation consumer stopped", "topic", c.topic)

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return
			}
			slog.Error("read moderation message", "topic", c.topic, "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		if err := c.handle(ctx, msg); err != nil {
			slog.Error("handle moderation message",
				"topic", msg.Topic,
				"offset", msg.Offset,
				"error", err,
			)
		}
	}
}

func (c *ModerationConsumer) handle(ctx context.Context, msg kafka.Message) error {
	var d Decision
	if err := json.Unmarshal(msg.Value, &d); err != nil {
		return fmt.Errorf("decode decision: %w", err)
	}
	if d.CommentID <= 0 {
		return fmt.Errorf("decode decision: invalid commentId %d", d.CommentID)
	}

	hctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if err := c.moderator.Moderate(hctx, d); err != nil {
		return fmt.Errorf("moderate comment %d: %w", d.CommentID, err)
	}
	slog.Info("comment moderated", "comment_id", d.CommentID, "approved", d.Approved)
	return nil
}

// Close closes the underlying reader.
func (c *ModerationConsumer) Close() error {
	return c.reader.Close()
}
