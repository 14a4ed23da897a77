package users

import (
	"context"
	"testing"
	"time"

	"github.com/suPer8Hu/chatrelay/internal/store"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(store.New(store.NewFileBackend(t.TempDir())))
}

func TestUpsert_CaseInsensitive(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	base := time.Date(2026, 1, 7, 22, 30, 0, 0, time.UTC)
	r.now = func() time.Time { return base }
	first, err := r.Upsert(ctx, "Alice")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	r.now = func() time.Time { return base.Add(time.Hour) }
	second, err := r.Upsert(ctx, "aLICE")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected same user, got %s and %s", first.ID, second.ID)
	}
	if second.Username != "Alice" {
		t.Fatalf("expected original spelling kept, got %q", second.Username)
	}
	if !second.CreatedAt.Equal(base) {
		t.Fatalf("created_at changed: %v", second.CreatedAt)
	}
	if !second.LastLogin.Equal(base.Add(time.Hour)) {
		t.Fatalf("last_login not bumped: %v", second.LastLogin)
	}
	if n := len(r.List(ctx)); n != 1 {
		t.Fatalf("expected 1 user, got %d", n)
	}
}

func TestUpsert_NewUserTimestamps(t *testing.T) {
	r := newTestRegistry(t)
	ctx := context.Background()

	u, err := r.Upsert(ctx, "bob")
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if u.ID == "" {
		t.Fatalf("expected an id")
	}
	if !u.CreatedAt.Equal(u.LastLogin) {
		t.Fatalf("expected created_at == last_login for a new user, got %v / %v", u.CreatedAt, u.LastLogin)
	}

	got, ok := r.GetByUsername(ctx, "BOB")
	if !ok || got.ID != u.ID {
		t.Fatalf("lookup by username failed: %+v %v", got, ok)
	}
	if _, ok := r.GetByUsername(ctx, "carol"); ok {
		t.Fatalf("unexpected user carol")
	}
}
