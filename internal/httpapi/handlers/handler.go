package handlers

import (
	"context"
	"fmt"

	"github.com/suPer8Hu/chatrelay/internal/chat"
	"github.com/suPer8Hu/chatrelay/internal/config"
	"github.com/suPer8Hu/chatrelay/internal/history"
	"github.com/suPer8Hu/chatrelay/internal/httpapi/middleware"
	"github.com/suPer8Hu/chatrelay/internal/relay"
	"github.com/suPer8Hu/chatrelay/internal/session"
	"github.com/suPer8Hu/chatrelay/internal/store"
	"github.com/suPer8Hu/chatrelay/internal/users"
	"github.com/suPer8Hu/chatrelay/internal/webhook"
	"gorm.io/gorm"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Cfg      config.Config
	Sessions middleware.SessionCookie
	Auth     *session.Authenticator
	Users    *users.Registry
	Chats    *chat.Registry
	Webhooks *webhook.Registry
	Legacy   *webhook.Legacy
	Relay    *relay.Service
	History  *history.Service

	historyDB pinger
}

// NewHandler wires the registries over st. historyDB may be nil, in which
// case history reads degrade to empty results.
func NewHandler(cfg config.Config, st *store.Store, historyDB *gorm.DB) (*Handler, error) {
	var verifier session.Verifier = session.UsernameOnly{}
	if cfg.LoginAccessCodeHash != "" {
		v, err := session.NewAccessCode(cfg.LoginAccessCodeHash)
		if err != nil {
			return nil, fmt.Errorf("LOGIN_ACCESS_CODE_HASH: %w", err)
		}
		verifier = v
	}

	userReg := users.NewRegistry(st)
	chatReg := chat.NewRegistry(st)
	webhookReg := webhook.NewRegistry(st)

	h := &Handler{
		Cfg: cfg,
		Sessions: middleware.SessionCookie{
			Gate:   session.NewGate(cfg.SecretKey, cfg.SessionTTL),
			Name:   cfg.SessionCookie,
			Secure: cfg.CookieSecure,
		},
		Auth:     session.NewAuthenticator(userReg, chatReg, verifier),
		Users:    userReg,
		Chats:    chatReg,
		Webhooks: webhookReg,
		Legacy:   webhook.NewLegacy(webhookReg),
		Relay:    relay.NewService(webhookReg, chatReg, relay.NewClient(cfg.WebhookTimeout)),
		History:  history.NewService(nil),
	}
	if historyDB != nil {
		reader := history.NewReader(historyDB, cfg.HistoryTable)
		h.History = history.NewService(reader)
		h.historyDB = reader
	}
	return h, nil
}
