package webhook

import (
	"context"

	"github.com/google/uuid"
	"github.com/suPer8Hu/chatrelay/internal/store"
)

// Legacy exposes the single-webhook API that predates named webhooks. It
// always addresses the webhook at position 0.
//
// Deprecated: use Registry.
type Legacy struct {
	r *Registry
}

func NewLegacy(r *Registry) *Legacy {
	return &Legacy{r: r}
}

func (l *Legacy) GetFirst(ctx context.Context) (*Webhook, bool) {
	all := l.r.List(ctx)
	if len(all) == 0 {
		return nil, false
	}
	return &all[0], true
}

// SetFirstOrCreate points the first webhook at url, creating a
// "Default Webhook" when there is none.
func (l *Legacy) SetFirstOrCreate(ctx context.Context, url string) (*Webhook, error) {
	var out Webhook
	err := store.Update(ctx, l.r.store, store.Webhooks, func(all []Webhook) ([]Webhook, bool) {
		if len(all) > 0 {
			all[0].URL = url
			out = all[0]
			return all, true
		}
		out = Webhook{ID: uuid.NewString(), Name: store.DefaultWebhookName, URL: url}
		return append(all, out), true
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearAll removes every webhook, named or not.
func (l *Legacy) ClearAll(ctx context.Context) error {
	return store.Update(ctx, l.r.store, store.Webhooks, func([]Webhook) ([]Webhook, bool) {
		return []Webhook{}, true
	})
}
