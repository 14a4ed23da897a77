package relay

import (
	"context"
	"errors"
	"log"

	"github.com/suPer8Hu/chatrelay/internal/chat"
	"github.com/suPer8Hu/chatrelay/internal/webhook"
)

var (
	ErrNoWebhook       = errors.New("no webhook configured")
	ErrWebhookNotFound = errors.New("selected webhook not found")
)

// Request is one outbound user message.
type Request struct {
	UserID    string
	Username  string
	ChatID    string
	SessionID string
	Message   string
	WebhookID string // optional; the first configured webhook when empty
}

type Service struct {
	webhooks *webhook.Registry
	chats    *chat.Registry
	client   *Client
}

func NewService(webhooks *webhook.Registry, chats *chat.Registry, client *Client) *Service {
	return &Service{webhooks: webhooks, chats: chats, client: client}
}

// Resolve picks the target webhook.
func (s *Service) Resolve(ctx context.Context, webhookID string) (*webhook.Webhook, error) {
	if webhookID != "" {
		w, err := s.webhooks.Get(ctx, webhookID)
		if errors.Is(err, webhook.ErrNotFound) {
			return nil, ErrWebhookNotFound
		}
		return w, err
	}
	all := s.webhooks.List(ctx)
	if len(all) == 0 {
		return nil, ErrNoWebhook
	}
	return &all[0], nil
}

// Send relays the message and returns the webhook's reply. The webhook owns
// persisting both sides of the exchange under SessionID.
func (s *Service) Send(ctx context.Context, req Request) (string, error) {
	target, err := s.Resolve(ctx, req.WebhookID)
	if err != nil {
		return "", err
	}
	return s.Deliver(ctx, target, req)
}

// Deliver bumps the chat's recency and posts to an already resolved target.
func (s *Service) Deliver(ctx context.Context, target *webhook.Webhook, req Request) (string, error) {
	if req.ChatID != "" {
		if _, err := s.chats.Touch(ctx, req.ChatID); err != nil {
			log.Printf("[relay] touch chat_id=%s err=%v", req.ChatID, err)
		}
	}

	return s.client.Post(ctx, target.URL, Envelope{
		UserMessage: req.Message,
		SessionID:   req.SessionID,
		Username:    req.Username,
	})
}
