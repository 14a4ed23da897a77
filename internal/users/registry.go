package users

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/suPer8Hu/chatrelay/internal/store"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	LastLogin time.Time `json:"last_login"`
}

type Registry struct {
	store *store.Store
	now   func() time.Time
}

func NewRegistry(s *store.Store) *Registry {
	return &Registry{store: s, now: time.Now}
}

func sameUsername(a, b string) bool {
	return strings.EqualFold(a, b)
}

// Upsert records a login. Usernames match case-insensitively; an existing
// user keeps its original spelling and only has last_login bumped.
func (r *Registry) Upsert(ctx context.Context, username string) (*User, error) {
	var out User
	err := store.Update(ctx, r.store, store.Users, func(all []User) ([]User, bool) {
		now := r.now()
		for i := range all {
			if sameUsername(all[i].Username, username) {
				all[i].LastLogin = now
				out = all[i]
				return all, true
			}
		}
		out = User{
			ID:        uuid.NewString(),
			Username:  username,
			CreatedAt: now,
			LastLogin: now,
		}
		return append(all, out), true
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Registry) List(ctx context.Context) []User {
	return store.Read[User](ctx, r.store, store.Users)
}

func (r *Registry) GetByUsername(ctx context.Context, username string) (*User, bool) {
	for _, u := range r.List(ctx) {
		if sameUsername(u.Username, username) {
			return &u, true
		}
	}
	return nil, false
}
