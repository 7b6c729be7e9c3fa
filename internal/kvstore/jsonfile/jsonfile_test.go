package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"hourly/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestLoadAllEmpty(t *testing.T) {
	s := newTestStore(t)
	users, err := s.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("expected empty store, got %d users", len(users))
	}
}

func TestSaveAllRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	users := map[string]core.User{
		"alice": {
			Username: "alice",
			Password: "secret",
			Balance:  core.Money{Cents: -25000},
			Expenses: []core.Expense{
				{ID: "e1", Date: core.NewDate(2024, 3, 5), Hour: 9, Amount: core.Money{Cents: 5000}, Description: "Coffee", Notes: "espresso"},
			},
		},
	}
	if err := s.SaveAll(ctx, users); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}

	loaded, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	alice, ok := loaded["alice"]
	if !ok {
		t.Fatalf("alice missing after roundtrip")
	}
	if alice.Password != "secret" || alice.Balance.Cents != -25000 {
		t.Fatalf("unexpected user: %+v", alice)
	}
	if len(alice.Expenses) != 1 || alice.Expenses[0].Description != "Coffee" {
		t.Fatalf("unexpected expenses: %+v", alice.Expenses)
	}
	if alice.Expenses[0].Date.String() != "2024-03-05" {
		t.Fatalf("date lost in roundtrip: %s", alice.Expenses[0].Date)
	}
}

func TestSaveAllOverwrites(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_ = s.SaveAll(ctx, map[string]core.User{"a": {Username: "a"}, "b": {Username: "b"}})
	_ = s.SaveAll(ctx, map[string]core.User{"c": {Username: "c"}})

	users, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("save must overwrite the whole collection, got %d users", len(users))
	}
	if _, ok := users["c"]; !ok {
		t.Fatalf("expected only user c, got %v", users)
	}
}

func TestCorruptUsersSlotRecoversEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "users.json"), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	// Session pointer lives in its own slot and must survive.
	if err := s.SetCurrentSession(ctx, "alice"); err != nil {
		t.Fatalf("SetCurrentSession: %v", err)
	}

	users, err := s.LoadAll(ctx)
	if err != nil {
		t.Fatalf("corrupt slot must not error: %v", err)
	}
	if len(users) != 0 {
		t.Fatalf("corrupt slot must load as empty, got %d users", len(users))
	}

	current, err := s.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if current != "alice" {
		t.Fatalf("session slot must be independent of users slot, got %q", current)
	}
}

func TestSessionSlotLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	current, err := s.CurrentSession(ctx)
	if err != nil {
		t.Fatalf("CurrentSession: %v", err)
	}
	if current != "" {
		t.Fatalf("fresh store must have no session, got %q", current)
	}

	if err := s.SetCurrentSession(ctx, "bob"); err != nil {
		t.Fatalf("SetCurrentSession: %v", err)
	}
	current, _ = s.CurrentSession(ctx)
	if current != "bob" {
		t.Fatalf("got %q, want bob", current)
	}

	if err := s.ClearCurrentSession(ctx); err != nil {
		t.Fatalf("ClearCurrentSession: %v", err)
	}
	current, _ = s.CurrentSession(ctx)
	if current != "" {
		t.Fatalf("expected cleared session, got %q", current)
	}

	// Clearing twice is a no-op.
	if err := s.ClearCurrentSession(ctx); err != nil {
		t.Fatalf("second ClearCurrentSession: %v", err)
	}
}
