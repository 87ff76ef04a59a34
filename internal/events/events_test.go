// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, topic: "events"}

	e := New(CommentCreated)
	e.ContentID = 42
	e.CommentID = 7
	p.Publish(context.Background(), e)

	if len(w.msgs) != 1 {
		t.Fatalf("messages written: got %d, want 1", len(w.msgs))
	}
	if string(w.msgs[0].Key) != "42" {
		t.Errorf("key: got %q, want 42", w.msgs[0].Key)
	}

	var got Event
	if err := json.Unmarshal(w.msgs[0].Value, &got); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if got.Type != CommentCreated || got.CommentID != 7 || got.ID == "" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestKafkaPublisher_WriteErrorIsSwallowed(t *testing.T) {
	p := &KafkaPublisher{writer: &fakeWriter{err: errors.New("broker down")}, topic: "events"}
	// Must not panic or block.
	p.Publish(context.Background(), New(ContentDeleted))
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Publish(context.Background(), New(ContentCreated))
	r.Publish(context.Background(), New(LikeToggled))

	types := r.Types()
	if len(types) != 2 || types[0] != ContentCreated || types[1] != LikeToggled {
		t.Errorf("types: got %v", types)
	}
}

// fakeReader yields queued messages then io.EOF.
type fakeReader struct {
	msgs []kafka.Message
}

func (r *fakeReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	if len(r.msgs) == 0 {
		return kafka.Message{}, io.EOF
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) Close() error { return nil }

func TestModerationConsumer_Run(t *testing.T) {
	reader := &fakeReader{msgs: []kafka.Message{
		{Value: []byte(`{"commentId": 5, "approved": true}`)},
		{Value: []byte(`not json`)},
		{Value: []byte(`{"commentId": 0, "approved": true}`)},
		{Value: []byte(`{"commentId": 6, "approved": false}`)},
		{Value: []byte(`{"commentId": 7, "approved": true}`)},
	}}

	var got []Decision
	m := ModeratorFunc(func(_ context.Context, d Decision) error {
		got = append(got, d)
		if d.CommentID == 6 {
			return errors.New("comment 6 not found")
		}
		return nil
	})

	c := newModerationConsumer(reader, "moderation", m)
	c.Run(context.Background())

	if len(got) != 3 {
		t.Fatalf("decisions applied: got %d, want 3 (%+v)", len(got), got)
	}
	if got[0] != (Decision{CommentID: 5, Approved: true}) || got[2].CommentID != 7 {
		t.Errorf("unexpected decisions: %+v", got)
	}
}

func TestNewModerationConsumer_Validation(t *testing.T) {
	m := ModeratorFunc(func(context.Context, Decision) error { return nil })
	if _, err := NewModerationConsumer(nil, "t", "g", m); err == nil {
		t.Error("expected error without brokers")
	}
	if _, err := NewModerationConsumer([]string{"localhost:9092"}, "", "g", m); err == nil {
		t.Error("expected error without topic")
	}
}
