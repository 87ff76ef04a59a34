// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"engagecms/internal/apperr"
)

// PostgreSQL SQLSTATE codes mapped to error kinds.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgStringTooLong       = "22001"
)

type constraintInfo struct {
	entity string
	field  string
}

// constraints maps constraint names to the entity and field they guard.
// For foreign keys the entity is the referenced one.
var constraints = map[string]constraintInfo{
	"blog_categories_slug_key":          {"category", "slug"},
	"blog_contents_slug_key":            {"content", "slug"},
	"blog_tags_name_key":                {"tag", "name"},
	"blog_tags_slug_key":                {"tag", "slug"},
	"blog_likes_content_user_key":       {"like", "contentId"},
	"blog_contents_author_id_fkey":      {"user", "authorId"},
	"blog_contents_category_id_fkey":    {"category", "categoryId"},
	"blog_comments_content_id_fkey":     {"content", "contentId"},
	"blog_comments_user_id_fkey":        {"user", "userId"},
	"blog_comments_parent_id_fkey":      {"comment", "parentId"},
	"blog_likes_content_id_fkey":        {"content", "contentId"},
	"blog_likes_user_id_fkey":           {"user", "userId"},
	"blog_content_tags_content_id_fkey": {"content", "contentId"},
	"blog_content_tags_tag_id_fkey":     {"tag", "tagId"},
}

// dbError classifies a driver error raised while inserting or updating.
// A foreign key violation there means the referenced row does not exist.
func dbError(op string, err error) error {
	return classify(op, err, false)
}

// deleteError classifies a driver error raised while deleting. A foreign
// key violation there means the row is still referenced.
func deleteError(op string, err error) error {
	return classify(op, err, true)
}

func classify(op string, err error, deleting bool) error {
	if err == nil {
		return nil
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperr.Internal(op, err)
	}

	info, known := constraints[pgErr.ConstraintName]
	if !known {
		info = constraintInfo{entity: pgErr.TableName}
	}

	var out *apperr.Error
	switch pgErr.Code {
	case pgUniqueViolation:
		out = apperr.Conflict(info.entity, "%s with this %s already exists", info.entity, orDefault(info.field, "key"))
	case pgForeignKeyViolation:
		if deleting {
			out = apperr.Conflict(info.entity, "%s is still referenced", info.entity)
		} else {
			out = apperr.NotFound(info.entity, "referenced by "+orDefault(info.field, "input"))
		}
	case pgCheckViolation, pgStringTooLong:
		out = apperr.Validation(info.field, "invalid value")
	default:
		return apperr.Internal(op, err)
	}

	out.Op = op
	out.Field = info.field
	out.Err = err
	return out
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
