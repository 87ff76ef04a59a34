// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"

	"engagecms/internal/models"
)

// UserStore reads user accounts. Accounts are owned by another system;
// this store never writes them.
type UserStore struct {
	q DBTX
}

// userColumns is the list of columns selected in user queries. The
// password hash is deliberately not selected.
const userColumns = `u.id, u.username, u.email, u.avatar, u.company_name, u.position,
	u.phone_number, u.status, u.created_at, u.updated_at`

func scanUser(row scanner) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Avatar, &u.CompanyName, &u.Position,
		&u.PhoneNumber, &u.Status, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by ID. Returns nil if not found.
func (s *UserStore) FindByID(ctx context.Context, id int64) (*models.User, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, dbError("find user by id", err)
	}
	return u, nil
}

// FindByIDs returns the users with the given IDs keyed by ID.
func (s *UserStore) FindByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error) {
	out := make(map[int64]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	rows, err := s.q.QueryContext(ctx, `SELECT `+userColumns+` FROM users u WHERE u.id = ANY($1)`, ids)
	if err != nil {
		return nil, dbError("find users by ids", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dbError("scan user", err)
		}
		out[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("find users by ids", err)
	}
	return out, nil
}

// ListActive returns up to limit active users, newest first.
func (s *UserStore) ListActive(ctx context.Context, limit int) ([]models.User, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+userColumns+`
		FROM users u
		WHERE u.status = 'ACTIVE'
		ORDER BY u.created_at DESC, u.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, dbError("list users", err)
	}
	defer rows.Close()

	var items []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, dbError("scan user", err)
		}
		items = append(items, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list users", err)
	}
	return items, nil
}
