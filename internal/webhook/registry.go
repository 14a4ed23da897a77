package webhook

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/suPer8Hu/chatrelay/internal/store"
)

var (
	ErrNotFound = errors.New("webhook not found")
	ErrNoFields = errors.New("name or url required")
)

// Webhook is a named outbound endpoint. Webhooks are global, not per user.
type Webhook struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

type Registry struct {
	store *store.Store
}

func NewRegistry(s *store.Store) *Registry {
	return &Registry{store: s}
}

func (r *Registry) List(ctx context.Context) []Webhook {
	return store.Read[Webhook](ctx, r.store, store.Webhooks)
}

func (r *Registry) Get(ctx context.Context, id string) (*Webhook, error) {
	for _, w := range r.List(ctx) {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, ErrNotFound
}

func (r *Registry) Create(ctx context.Context, name, url string) (*Webhook, error) {
	w := Webhook{ID: uuid.NewString(), Name: name, URL: url}
	err := store.Update(ctx, r.store, store.Webhooks, func(all []Webhook) ([]Webhook, bool) {
		return append(all, w), true
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Update changes whichever of name and url is non-nil; at least one must be.
func (r *Registry) Update(ctx context.Context, id string, name, url *string) (*Webhook, error) {
	if name == nil && url == nil {
		return nil, ErrNoFields
	}
	var out *Webhook
	err := store.Update(ctx, r.store, store.Webhooks, func(all []Webhook) ([]Webhook, bool) {
		for i := range all {
			if all[i].ID != id {
				continue
			}
			if name != nil {
				all[i].Name = *name
			}
			if url != nil {
				all[i].URL = *url
			}
			w := all[i]
			out = &w
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

// Delete reports whether a webhook was removed.
func (r *Registry) Delete(ctx context.Context, id string) (bool, error) {
	removed := false
	err := store.Update(ctx, r.store, store.Webhooks, func(all []Webhook) ([]Webhook, bool) {
		kept := all[:0]
		for _, w := range all {
			if w.ID == id {
				removed = true
				continue
			}
			kept = append(kept, w)
		}
		return kept, removed
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
