// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the row structures that map to database tables.
// Field names follow the column names; the public camelCase shapes live in
// package view.
package models

import "time"

// UserStatusActive marks accounts listed by the users query.
const UserStatusActive = "ACTIVE"

// User is a row of users. Accounts are managed outside this service and
// are only read here for author and commenter display.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize the hash
	Avatar       *string   `json:"avatar"`
	CompanyName  *string   `json:"company_name"`
	Position     *string   `json:"position"`
	PhoneNumber  *string   `json:"phone_number"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsActive returns true if the account is active.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
