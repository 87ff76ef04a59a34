// service_test.go holds the database helpers shared by the service
// integration tests. Tests are skipped if PostgreSQL is not available.
package service

import (
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"engagecms/internal/apperr"
	"engagecms/internal/database"
	"engagecms/internal/events"
	"engagecms/internal/store"
)

func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "engagecms")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "engagecms")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testServices returns services over the test database together with the
// recorder receiving their events.
func testServices(t *testing.T) (*Services, *sql.DB, *events.Recorder) {
	t.Helper()
	db := testDB(t)
	rec := &events.Recorder{}
	svc := New(store.New(db), Options{DefaultCategoryID: 1, Events: rec})
	return svc, db, rec
}

func testUser(t *testing.T, db *sql.DB) int64 {
	t.Helper()
	name := "svc-user-" + uuid.NewString()[:8]
	var id int64
	err := db.QueryRow(`
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, 'x') RETURNING id
	`, name, name+"@example.test").Scan(&id)
	if err != nil {
		t.Fatalf("insert test user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", id) })
	return id
}

// cleanContentSlug removes a content created through the service and all
// rows that hang off it.
func cleanContentSlug(t *testing.T, db *sql.DB, slug string) {
	t.Helper()
	t.Cleanup(func() {
		var id int64
		if err := db.QueryRow("SELECT id FROM blog_contents WHERE slug = $1", slug).Scan(&id); err != nil {
			return
		}
		db.Exec("DELETE FROM blog_likes WHERE content_id = $1", id)
		db.Exec("DELETE FROM blog_comments WHERE content_id = $1", id)
		db.Exec("DELETE FROM blog_content_tags WHERE content_id = $1", id)
		db.Exec("DELETE FROM blog_contents WHERE id = $1", id)
	})
}

func uniqueSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

func TestLookupCheck(t *testing.T) {
	blank := "  "
	tests := []struct {
		name    string
		l       Lookup
		wantErr bool
	}{
		{"by id", ByID(3), false},
		{"by slug", BySlug("hello"), false},
		{"empty", Lookup{}, true},
		{"blank slug", Lookup{Slug: &blank}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.l.check()
			if (err != nil) != tt.wantErr {
				t.Fatalf("check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !apperr.Is(err, apperr.KindValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestLimit(t *testing.T) {
	n := func(v int) *int { return &v }
	tests := []struct {
		name    string
		in      *int
		want    int
		wantErr bool
	}{
		{"default", nil, 10, false},
		{"explicit", n(3), 3, false},
		{"max", n(MaxListLimit), MaxListLimit, false},
		{"zero", n(0), 0, true},
		{"too large", n(MaxListLimit + 1), 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := limit("first", tt.in, 10)
			if (err != nil) != tt.wantErr {
				t.Fatalf("limit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("limit() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUniqueTags(t *testing.T) {
	got := uniqueTags([]string{"Tag A", "tag a", "  ", "Go  Lang", "go lang", "Other"})
	want := []tagName{
		{name: "Tag A", slug: "tag-a"},
		{name: "Go Lang", slug: "go-lang"},
		{name: "Other", slug: "other"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tags, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tag %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestNewDefaults(t *testing.T) {
	svc := New(store.New(nil), Options{})
	if svc.Contents.defaultCategoryID != 1 {
		t.Errorf("default category: got %d, want 1", svc.Contents.defaultCategoryID)
	}
	if svc.Contents.now == nil {
		t.Error("expected a clock")
	}
	if _, ok := svc.Comments.events.(events.Nop); !ok {
		t.Errorf("expected Nop publisher, got %T", svc.Comments.events)
	}
	if d := time.Since(svc.Contents.now()); d < 0 || d > time.Minute {
		t.Errorf("clock is off by %v", d)
	}
}
