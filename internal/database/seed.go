// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
)

// SeedOptions controls how much sample data Seed creates.
type SeedOptions struct {
	Posts int   // number of sample posts, default 5
	Seed  int64 // faker seed, 0 for random
}

// Seed populates the database with initial development data: an author
// account, a second reader account, and a handful of published posts in
// the fallback category. It is a no-op when any user already exists.
func Seed(ctx context.Context, db *sql.DB, opts SeedOptions) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	if opts.Posts <= 0 {
		opts.Posts = 5
	}
	faker := gofakeit.New(opts.Seed)

	hash, err := bcrypt.GenerateFromPassword([]byte("author"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed begin tx: %w", err)
	}
	defer tx.Rollback()

	var authorID int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO users (username, email, password_hash, company_name, position, phone_number)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, "author", "author@engagecms.local", string(hash),
		faker.Company(), faker.JobTitle(), faker.Phone(),
	).Scan(&authorID)
	if err != nil {
		return fmt.Errorf("seed insert author: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO users (username, email) VALUES ($1, $2)
	`, strings.ToLower(faker.Username()), faker.Email()); err != nil {
		return fmt.Errorf("seed insert reader: %w", err)
	}

	for i := 0; i < opts.Posts; i++ {
		title := strings.TrimSuffix(faker.Sentence(6), ".")
		body := "<p>" + faker.Paragraph(2, 4, 12, "</p><p>") + "</p>"
		_, err := tx.ExecContext(ctx, `
			INSERT INTO blog_contents
				(slug, title, content_body, author_id, category_id, status,
				 is_featured, is_hero, meta_title, published_at)
			VALUES ($1, $2, $3, $4, 1, 'PUBLISHED', $5, $6, $2, NOW())
		`, fmt.Sprintf("sample-post-%d", i+1), title, body, authorID, i < 2, i == 0)
		if err != nil {
			return fmt.Errorf("seed insert post %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed commit: %w", err)
	}

	slog.Info("database seeded with development data",
		"author", "author@engagecms.local",
		"posts", opts.Posts,
	)
	return nil
}
