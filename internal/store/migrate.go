package store

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Documents written before multiple webhooks existed looked like
// {"active_webhook": "<url>"}.
const legacyWebhookKey = "active_webhook"

const DefaultWebhookName = "Default Webhook"

type migratedWebhook struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s *Store) migrateLegacyWebhook(ctx context.Context, legacy json.RawMessage) json.RawMessage {
	var url string
	_ = json.Unmarshal(legacy, &url)

	webhooks := []migratedWebhook{}
	if url != "" {
		webhooks = append(webhooks, migratedWebhook{
			ID:   uuid.NewString(),
			Name: DefaultWebhookName,
			URL:  url,
		})
	}
	if err := s.save(ctx, Webhooks, webhooks); err != nil {
		log.Printf("[store] migrate legacy webhook: %v", err)
	} else {
		log.Printf("[store] migrated legacy webhook document (%d webhook)", len(webhooks))
	}

	out, err := json.Marshal(webhooks)
	if err != nil {
		return nil
	}
	return out
}
