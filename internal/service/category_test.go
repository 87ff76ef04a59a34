package service

import (
	"context"
	"testing"

	"engagecms/internal/apperr"
	"engagecms/internal/view"
)

func TestCategoryLifecycle(t *testing.T) {
	svc, db, _ := testServices(t)
	ctx := context.Background()
	userID := testUser(t, db)

	slug := uniqueSlug("svc-cat")
	t.Cleanup(func() { db.Exec("DELETE FROM blog_categories WHERE slug = $1", slug) })

	cat, err := svc.Categories.Create(ctx, view.CategoryInput{Slug: slug, Name: " News "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cat.Name != "News" || !cat.IsVisible {
		t.Errorf("unexpected category: %+v", cat)
	}

	if _, err := svc.Categories.Create(ctx, view.CategoryInput{Slug: slug, Name: "Again"}); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("duplicate slug: expected conflict, got %v", err)
	}

	name := "Renamed"
	up, err := svc.Categories.Update(ctx, cat.ID, view.CategoryPatch{Name: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if up.Name != name || up.Slug != slug {
		t.Errorf("after update: %+v", up)
	}

	postSlug := uniqueSlug("in-cat")
	cleanContentSlug(t, db, postSlug)
	if _, err := svc.Contents.Create(ctx, view.ContentInput{
		Title: "In", Slug: postSlug, AuthorID: userID, CategoryID: &cat.ID, Status: "PUBLISHED",
	}); err != nil {
		t.Fatalf("Contents.Create: %v", err)
	}

	got, err := svc.Categories.Get(ctx, BySlug(slug))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Contents == nil {
		t.Fatal("contents not hydrated")
	}
	contents := *got.Contents
	if got.ContentCount != 1 || len(contents) != 1 || contents[0].Slug != postSlug {
		t.Fatalf("expected one published content, got count %d contents %d", got.ContentCount, len(contents))
	}

	if _, err := svc.Categories.Delete(ctx, cat.ID); !apperr.Is(err, apperr.KindConflict) {
		t.Errorf("delete non-empty: expected conflict, got %v", err)
	}
	if _, err := svc.Contents.Delete(ctx, contents[0].ID); err != nil {
		t.Fatalf("Contents.Delete: %v", err)
	}
	ok, err := svc.Categories.Delete(ctx, cat.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: got (%v, %v)", ok, err)
	}
	if _, err := svc.Categories.Get(ctx, ByID(cat.ID)); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("get deleted: expected not found, got %v", err)
	}
}

func TestCategoryValidation(t *testing.T) {
	svc, _, _ := testServices(t)
	ctx := context.Background()

	if _, err := svc.Categories.Create(ctx, view.CategoryInput{Slug: " ", Name: "x"}); !apperr.Is(err, apperr.KindValidation) {
		t.Errorf("blank slug: expected validation error, got %v", err)
	}
	if _, err := svc.Categories.Update(ctx, 1<<60, view.CategoryPatch{}); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("missing category: expected not found, got %v", err)
	}
	if _, err := svc.Categories.Delete(ctx, 1<<60); !apperr.Is(err, apperr.KindNotFound) {
		t.Errorf("delete missing: expected not found, got %v", err)
	}
}

func TestTagGet(t *testing.T) {
	svc, db, _ := testServices(t)
	ctx := context.Background()
	userID := testUser(t, db)

	slug := uniqueSlug("tagged")
	cleanContentSlug(t, db, slug)
	t.Cleanup(func() { db.Exec("DELETE FROM blog_tags WHERE slug = 'svc-get-tag'") })
	if _, err := svc.Contents.Create(ctx, view.ContentInput{
		Title: "Tagged", Slug: slug, AuthorID: userID, Status: "PUBLISHED", Tags: []string{"Svc Get Tag"},
	}); err != nil {
		t.Fatalf("Contents.Create: %v", err)
	}

	tag, err := svc.Tags.Get(ctx, BySlug("svc-get-tag"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if tag == nil || tag.Name != "Svc Get Tag" || tag.Contents == nil || len(*tag.Contents) != 1 {
		t.Fatalf("unexpected tag: %+v", tag)
	}

	missing, err := svc.Tags.Get(ctx, BySlug(uniqueSlug("no-tag")))
	if err != nil || missing != nil {
		t.Errorf("missing tag: got (%v, %v), want (nil, nil)", missing, err)
	}

	all, err := svc.Tags.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) == 0 {
		t.Error("expected at least one tag")
	}
}

func TestUserService(t *testing.T) {
	svc, db, _ := testServices(t)
	ctx := context.Background()
	id := testUser(t, db)

	u, err := svc.Users.Get(ctx, id)
	if err != nil || u == nil || u.ID != id {
		t.Fatalf("Get: got (%+v, %v)", u, err)
	}
	missing, err := svc.Users.Get(ctx, 1<<60)
	if err != nil || missing != nil {
		t.Errorf("Get missing: got (%+v, %v)", missing, err)
	}

	two := 2
	users, err := svc.Users.List(ctx, &two)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(users) == 0 || len(users) > 2 {
		t.Errorf("List: got %d users", len(users))
	}
}
