// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store implements the PostgreSQL data access layer. Every entity
// store runs its queries against a DBTX, so the same code serves both the
// connection pool and a transaction opened with Store.InTx or Store.ReadTx.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the subset of *sql.DB and *sql.Tx used by the entity stores.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store groups the entity stores over one connection handle.
type Store struct {
	db *sql.DB // nil when bound to a transaction

	Categories *CategoryStore
	Contents   *ContentStore
	Tags       *TagStore
	Comments   *CommentStore
	Likes      *LikeStore
	Users      *UserStore
	Counters   *CounterStore
}

// New returns a Store backed by the connection pool. The pool is owned by
// the caller.
func New(db *sql.DB) *Store {
	return bind(db, db)
}

func bind(db *sql.DB, q DBTX) *Store {
	return &Store{
		db:         db,
		Categories: &CategoryStore{q: q},
		Contents:   &ContentStore{q: q},
		Tags:       &TagStore{q: q},
		Comments:   &CommentStore{q: q},
		Likes:      &LikeStore{q: q},
		Users:      &UserStore{q: q},
		Counters:   &CounterStore{q: q},
	}
}

// InTx runs fn inside a READ COMMITTED transaction. The transaction is
// committed when fn returns nil and rolled back otherwise, including when
// ctx is cancelled. Calling InTx on a Store already bound to a transaction
// runs fn in that transaction.
func (s *Store) InTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.run(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, fn)
}

// ReadTx runs fn inside a read-only REPEATABLE READ transaction so that
// every query issued by fn observes the same snapshot.
func (s *Store) ReadTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.run(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}, fn)
}

func (s *Store) run(ctx context.Context, opts *sql.TxOptions, fn func(tx *Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return dbError("begin tx", err)
	}
	defer tx.Rollback()

	if err := fn(bind(nil, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dbError("commit tx", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return errors.New("ping: store is bound to a transaction")
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
