package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestUserIsActive(t *testing.T) {
	if !(&User{Status: UserStatusActive}).IsActive() {
		t.Error("ACTIVE user should be active")
	}
	if (&User{Status: "SUSPENDED"}).IsActive() {
		t.Error("SUSPENDED user should not be active")
	}
}

// TestUserPasswordHashNotSerialized ensures the hash never leaks into JSON.
func TestUserPasswordHashNotSerialized(t *testing.T) {
	u := User{ID: 1, Username: "ada", PasswordHash: "$2a$10$secret"}
	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "secret") {
		t.Errorf("password hash serialized: %s", data)
	}
}
