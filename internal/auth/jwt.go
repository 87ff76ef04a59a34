// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// JWTResolver accepts HS256 tokens whose "sub" or "user_id" claim holds a
// positive numeric user ID.
type JWTResolver struct {
	secret []byte
	parser *jwt.Parser
}

// NewJWTResolver returns a resolver verifying tokens with secret.
func NewJWTResolver(secret string) (*JWTResolver, error) {
	if secret == "" {
		return nil, errors.New("auth: jwt secret is empty")
	}
	return &JWTResolver{
		secret: []byte(secret),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}

// Resolve verifies token and returns its viewer.
func (r *JWTResolver) Resolve(_ context.Context, token string) (*Viewer, error) {
	claims := jwt.MapClaims{}
	_, err := r.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := userIDClaim(claims)
	if err != nil {
		return nil, err
	}
	return &Viewer{UserID: id}, nil
}

// Sign issues a token for userID. It is used by tests and tooling.
func (r *JWTResolver) Sign(userID int64, claims jwt.MapClaims) (string, error) {
	c := jwt.MapClaims{"sub": strconv.FormatInt(userID, 10)}
	for k, v := range claims {
		c[k] = v
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(r.secret)
}

func userIDClaim(claims jwt.MapClaims) (int64, error) {
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil || id <= 0 {
			return 0, fmt.Errorf("%w: subject is not a user id", ErrInvalidToken)
		}
		return id, nil
	}

	switch v := claims["user_id"].(type) {
	case float64:
		if v > 0 && v == float64(int64(v)) {
			return int64(v), nil
		}
	case string:
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id, nil
		}
	}
	return 0, fmt.Errorf("%w: no user id claim", ErrInvalidToken)
}
