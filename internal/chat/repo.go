package chat

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/suPer8Hu/chatrelay/internal/store"
)

// Registry stores chat records. It does not check ownership; callers compare
// Chat.UserID with the requester before acting on a chat.
type Registry struct {
	store *store.Store
	now   func() time.Time
}

func NewRegistry(s *store.Store) *Registry {
	return &Registry{store: s, now: time.Now}
}

func (r *Registry) all(ctx context.Context) []Chat {
	return store.Read[Chat](ctx, r.store, store.Chats)
}

// ListByUser returns the user's chats in stored order.
func (r *Registry) ListByUser(ctx context.Context, userID string) []Chat {
	out := []Chat{}
	for _, c := range r.all(ctx) {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out
}

func (r *Registry) GetByID(ctx context.Context, chatID string) (*Chat, error) {
	for _, c := range r.all(ctx) {
		if c.ID == chatID {
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// Create adds a chat with fresh id and session id. An empty title is
// replaced by an auto-generated one.
func (r *Registry) Create(ctx context.Context, userID, title string) (*Chat, error) {
	var out Chat
	err := store.Update(ctx, r.store, store.Chats, func(all []Chat) ([]Chat, bool) {
		now := r.now()
		if title == "" {
			owned := 0
			for _, c := range all {
				if c.UserID == userID {
					owned++
				}
			}
			title = autoTitle(owned+1, now)
		}
		out = Chat{
			ID:        uuid.NewString(),
			UserID:    userID,
			SessionID: uuid.NewString(),
			Title:     title,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return append(all, out), true
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update sets the title when one is given and always bumps UpdatedAt.
// The title is stored as given.
func (r *Registry) Update(ctx context.Context, chatID string, title *string) (*Chat, error) {
	var out *Chat
	err := store.Update(ctx, r.store, store.Chats, func(all []Chat) ([]Chat, bool) {
		for i := range all {
			if all[i].ID != chatID {
				continue
			}
			if title != nil {
				all[i].Title = *title
			}
			all[i].UpdatedAt = r.now()
			c := all[i]
			out = &c
			return all, true
		}
		return all, false
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, ErrNotFound
	}
	return out, nil
}

// Rename validates the title (trimmed, 1..100 characters) before touching
// the record; an invalid title leaves the chat unchanged.
func (r *Registry) Rename(ctx context.Context, chatID, title string) (*Chat, error) {
	title, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	return r.Update(ctx, chatID, &title)
}

// Touch bumps UpdatedAt only.
func (r *Registry) Touch(ctx context.Context, chatID string) (*Chat, error) {
	return r.Update(ctx, chatID, nil)
}

// Delete reports whether a record was removed.
func (r *Registry) Delete(ctx context.Context, chatID string) (bool, error) {
	removed := false
	err := store.Update(ctx, r.store, store.Chats, func(all []Chat) ([]Chat, bool) {
		kept := all[:0]
		for _, c := range all {
			if c.ID == chatID {
				removed = true
				continue
			}
			kept = append(kept, c)
		}
		return kept, removed
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
