// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package graph

import (
	"context"

	"engagecms/internal/auth"
	"engagecms/internal/service"
	"engagecms/internal/view"
)

// Operation names.
const (
	OpCategories       = "categories"
	OpCategory         = "category"
	OpContents         = "contents"
	OpContent          = "content"
	OpFeaturedContents = "featuredContents"
	OpHeroContent      = "heroContent"
	OpTags             = "tags"
	OpTag              = "tag"
	OpComments         = "comments"
	OpUser             = "user"
	OpUsers            = "users"

	OpCreateContent  = "createContent"
	OpUpdateContent  = "updateContent"
	OpDeleteContent  = "deleteContent"
	OpCreateCategory = "createCategory"
	OpUpdateCategory = "updateCategory"
	OpDeleteCategory = "deleteCategory"
	OpCreateComment  = "createComment"
	OpUpdateComment  = "updateComment"
	OpDeleteComment  = "deleteComment"
	OpToggleLike     = "toggleLike"
)

// Operation is a decoded, validated call. Every implementation is one of
// the op types below; Decode is the only constructor.
type Operation interface {
	// Mutation reports whether the operation writes.
	Mutation() bool
	// Cacheable reports whether the encoded result may be served from the
	// query cache.
	Cacheable() bool
	execute(ctx context.Context, svc *service.Services) (any, error)
}

// newOperation returns the empty argument struct for name, or nil for an
// unknown name.
func newOperation(name string) Operation {
	switch name {
	case OpCategories:
		return &categoriesOp{}
	case OpCategory:
		return &categoryOp{}
	case OpContents:
		return &contentsOp{}
	case OpContent:
		return &contentOp{}
	case OpFeaturedContents:
		return &featuredContentsOp{}
	case OpHeroContent:
		return &heroContentOp{}
	case OpTags:
		return &tagsOp{}
	case OpTag:
		return &tagOp{}
	case OpComments:
		return &commentsOp{}
	case OpUser:
		return &userOp{}
	case OpUsers:
		return &usersOp{}
	case OpCreateContent:
		return &createContentOp{}
	case OpUpdateContent:
		return &updateContentOp{}
	case OpDeleteContent:
		return &deleteContentOp{}
	case OpCreateCategory:
		return &createCategoryOp{}
	case OpUpdateCategory:
		return &updateCategoryOp{}
	case OpDeleteCategory:
		return &deleteCategoryOp{}
	case OpCreateComment:
		return &createCommentOp{}
	case OpUpdateComment:
		return &updateCommentOp{}
	case OpDeleteComment:
		return &deleteCommentOp{}
	case OpToggleLike:
		return &toggleLikeOp{}
	default:
		return nil
	}
}

type query struct{}

func (query) Mutation() bool  { return false }
func (query) Cacheable() bool { return true }

type mutation struct{}

func (mutation) Mutation() bool  { return true }
func (mutation) Cacheable() bool { return false }

// Queries.

type categoriesOp struct {
	query
	IsVisible *bool `json:"isVisible"`
}

func (o *categoriesOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Categories.List(ctx, o.IsVisible)
}

type categoryOp struct {
	query
	service.Lookup
}

func (o *categoryOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Categories.Get(ctx, o.Lookup)
}

type contentsOp struct {
	query
	service.ListParams
}

func (o *contentsOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Contents.List(ctx, o.ListParams)
}

// contentOp is never cached: every fetch counts a view.
type contentOp struct {
	query
	service.Lookup
}

func (*contentOp) Cacheable() bool { return false }

func (o *contentOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return nullable(svc.Contents.Get(ctx, o.Lookup))
}

type featuredContentsOp struct {
	query
	Limit *int `json:"limit"`
}

func (o *featuredContentsOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Contents.Featured(ctx, o.Limit)
}

type heroContentOp struct {
	query
}

func (o *heroContentOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return nullable(svc.Contents.Hero(ctx))
}

type tagsOp struct {
	query
}

func (o *tagsOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Tags.List(ctx)
}

type tagOp struct {
	query
	service.Lookup
}

func (o *tagOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return nullable(svc.Tags.Get(ctx, o.Lookup))
}

type commentsOp struct {
	query
	ContentID int64 `json:"contentId" validate:"required,gt=0"`
}

func (o *commentsOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Comments.ListTopLevel(ctx, o.ContentID)
}

type userOp struct {
	query
	ID int64 `json:"id" validate:"required,gt=0"`
}

func (o *userOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return nullable(svc.Users.Get(ctx, o.ID))
}

type usersOp struct {
	query
	Limit *int `json:"limit"`
}

func (o *usersOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Users.List(ctx, o.Limit)
}

// Mutations.

type createContentOp struct {
	mutation
	Input view.ContentInput `json:"input"`
}

func (o *createContentOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	if o.Input.AuthorID == 0 {
		o.Input.AuthorID = auth.UserID(ctx)
	}
	return svc.Contents.Create(ctx, o.Input)
}

type updateContentOp struct {
	mutation
	ID    int64             `json:"id" validate:"required,gt=0"`
	Input view.ContentPatch `json:"input"`
}

func (o *updateContentOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Contents.Update(ctx, o.ID, o.Input)
}

type deleteContentOp struct {
	mutation
	ID int64 `json:"id" validate:"required,gt=0"`
}

func (o *deleteContentOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Contents.Delete(ctx, o.ID)
}

type createCategoryOp struct {
	mutation
	Input view.CategoryInput `json:"input"`
}

func (o *createCategoryOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Categories.Create(ctx, o.Input)
}

type updateCategoryOp struct {
	mutation
	ID    int64              `json:"id" validate:"required,gt=0"`
	Input view.CategoryPatch `json:"input"`
}

func (o *updateCategoryOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Categories.Update(ctx, o.ID, o.Input)
}

type deleteCategoryOp struct {
	mutation
	ID int64 `json:"id" validate:"required,gt=0"`
}

func (o *deleteCategoryOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Categories.Delete(ctx, o.ID)
}

type createCommentOp struct {
	mutation
	Input view.CommentInput `json:"input"`
}

func (o *createCommentOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	if o.Input.UserID == 0 {
		o.Input.UserID = auth.UserID(ctx)
	}
	return svc.Comments.Create(ctx, o.Input)
}

type updateCommentOp struct {
	mutation
	ID    int64             `json:"id" validate:"required,gt=0"`
	Input view.CommentPatch `json:"input"`
}

func (o *updateCommentOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Comments.Update(ctx, o.ID, o.Input)
}

type deleteCommentOp struct {
	mutation
	ID int64 `json:"id" validate:"required,gt=0"`
}

func (o *deleteCommentOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	return svc.Comments.Delete(ctx, o.ID)
}

type toggleLikeOp struct {
	mutation
	ContentID int64 `json:"contentId" validate:"required,gt=0"`
	UserID    int64 `json:"userId" validate:"omitempty,gt=0"`
}

func (o *toggleLikeOp) execute(ctx context.Context, svc *service.Services) (any, error) {
	if o.UserID == 0 {
		o.UserID = auth.UserID(ctx)
	}
	return svc.Likes.Toggle(ctx, o.ContentID, o.UserID)
}

// nullable turns a typed nil pointer into an untyped nil so the result
// encodes as JSON null.
func nullable[T any](v *T, err error) (any, error) {
	if err != nil || v == nil {
		return nil, err
	}
	return v, nil
}
