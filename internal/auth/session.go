// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// session.go resolves opaque session tokens stored in Valkey. Each token
// maps to a JSON payload with automatic TTL expiry that slides forward on
// every successful lookup.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultSessionTTL is how long a session lives in Valkey without use.
	DefaultSessionTTL = 24 * time.Hour

	// sessionKeyPrefix namespaces session keys in Valkey to avoid collisions.
	sessionKeyPrefix = "session:"

	// tokenLength is the byte length of a random token (32 bytes = 64 hex chars).
	tokenLength = 32
)

// Session is the payload stored for a token.
type Session struct {
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResolver manages session tokens in Valkey.
type SessionResolver struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionResolver creates a resolver backed by the given Valkey client.
func NewSessionResolver(client *redis.Client, ttl time.Duration) *SessionResolver {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionResolver{client: client, ttl: ttl}
}

// Create stores a session for userID and returns its token.
func (s *SessionResolver) Create(ctx context.Context, userID int64) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("session create: %w", err)
	}

	payload, err := json.Marshal(Session{UserID: userID, CreatedAt: time.Now()})
	if err != nil {
		return "", fmt.Errorf("session marshal: %w", err)
	}

	if err := s.client.Set(ctx, sessionKeyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("session store: %w", err)
	}
	return token, nil
}

// Resolve looks token up and extends its TTL.
func (s *SessionResolver) Resolve(ctx context.Context, token string) (*Viewer, error) {
	payload, err := s.client.GetEx(ctx, sessionKeyPrefix+token, s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}

	var data Session
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("%w: session unmarshal: %v", ErrInvalidToken, err)
	}
	if data.UserID <= 0 {
		return nil, fmt.Errorf("%w: session without user", ErrInvalidToken)
	}
	return &Viewer{UserID: data.UserID}, nil
}

// Destroy removes a session.
func (s *SessionResolver) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("session destroy: %w", err)
	}
	return nil
}

// generateToken creates a cryptographically random session token.
func generateToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
