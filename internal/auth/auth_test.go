package auth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

func TestViewerContext(t *testing.T) {
	ctx := context.Background()
	if FromContext(ctx) != nil || UserID(ctx) != 0 {
		t.Fatal("empty context should be anonymous")
	}
	ctx = WithViewer(ctx, &Viewer{UserID: 7})
	if UserID(ctx) != 7 {
		t.Errorf("UserID: got %d, want 7", UserID(ctx))
	}
}

func TestJWTResolver(t *testing.T) {
	r, err := NewJWTResolver("test-secret")
	if err != nil {
		t.Fatalf("NewJWTResolver: %v", err)
	}
	other, _ := NewJWTResolver("other-secret")
	ctx := context.Background()

	good, err := r.Sign(42, nil)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	foreign, _ := other.Sign(42, nil)
	expired, _ := r.Sign(42, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	userIDOnly, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 9}).SignedString([]byte("test-secret"))
	badSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "alice"}).SignedString([]byte("test-secret"))
	noClaim, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"name": "x"}).SignedString([]byte("test-secret"))
	wrongAlg, _ := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{"sub": "42"}).SignedString([]byte("test-secret"))

	tests := []struct {
		name    string
		token   string
		want    int64
		wantErr bool
	}{
		{"valid sub", good, 42, false},
		{"user_id claim", userIDOnly, 9, false},
		{"wrong secret", foreign, 0, true},
		{"expired", expired, 0, true},
		{"non numeric sub", badSub, 0, true},
		{"no id claim", noClaim, 0, true},
		{"wrong algorithm", wrongAlg, 0, true},
		{"garbage", "not-a-token", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Resolve(ctx, tt.token)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidToken) {
					t.Fatalf("expected ErrInvalidToken, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if v.UserID != tt.want {
				t.Errorf("UserID: got %d, want %d", v.UserID, tt.want)
			}
		})
	}
}

func TestNewJWTResolverEmptySecret(t *testing.T) {
	if _, err := NewJWTResolver(""); err == nil {
		t.Error("expected an error for an empty secret")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testValkeyClient returns a Redis client connected to the test Valkey.
// Skips the test if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		Password: os.Getenv("VALKEY_PASSWORD"),
		DB:       15, // Use DB 15 for tests to isolate from dev data.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, sessionKeyPrefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return client
}

func TestSessionResolverLifecycle(t *testing.T) {
	client := testValkeyClient(t)
	s := NewSessionResolver(client, time.Minute)
	ctx := context.Background()

	token, err := s.Create(ctx, 5)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(token) != tokenLength*2 {
		t.Errorf("token length: got %d, want %d", len(token), tokenLength*2)
	}

	v, err := s.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if v.UserID != 5 {
		t.Errorf("UserID: got %d, want 5", v.UserID)
	}

	if err := s.Destroy(ctx, token); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if _, err := s.Resolve(ctx, token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("destroyed token: expected ErrInvalidToken, got %v", err)
	}
}

func TestSessionResolverSlidingTTL(t *testing.T) {
	client := testValkeyClient(t)
	s := NewSessionResolver(client, time.Hour)
	ctx := context.Background()

	token, err := s.Create(ctx, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	client.Expire(ctx, sessionKeyPrefix+token, time.Minute)

	if _, err := s.Resolve(ctx, token); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	ttl, err := client.TTL(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		t.Fatalf("TTL: %v", err)
	}
	if ttl <= time.Minute {
		t.Errorf("TTL was not extended: %v", ttl)
	}
}

func TestSessionResolverCorruptPayload(t *testing.T) {
	client := testValkeyClient(t)
	s := NewSessionResolver(client, time.Minute)
	ctx := context.Background()

	client.Set(ctx, sessionKeyPrefix+"corrupt", "{not json", time.Minute)
	if _, err := s.Resolve(ctx, "corrupt"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
