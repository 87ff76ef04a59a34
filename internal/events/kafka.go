// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

// messageWriter is implemented by *kafka.Writer.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a single topic, keyed by content ID so
// that events of one content stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

// NewKafkaPublisher creates an asynchronous publisher for topic. Delivery
// failures are logged from the writer's completion callback.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				slog.Warn("kafka event delivery failed", "topic", topic, "messages", len(msgs), "error", err)
			}
		},
	}
	slog.Info("kafka publisher initialized", "brokers", brokers, "topic", topic)
	return &KafkaPublisher{writer: w, topic: topic}
}

// Publish marshals e and hands it to the writer.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		slog.Error("marshal event", "type", e.Type, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(e.ContentID, 10)),
		Value: payload,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		slog.Warn("kafka event write failed", "type", e.Type, "topic", p.topic, "error", err)
		return
	}
	slog.Debug("kafka event queued", "type", e.Type, "topic", p.topic)
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
