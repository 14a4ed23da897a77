package httpapi

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/common"
	"github.com/suPer8Hu/chatrelay/internal/config"
	"github.com/suPer8Hu/chatrelay/internal/httpapi/handlers"
	"github.com/suPer8Hu/chatrelay/internal/httpapi/middleware"
	"github.com/suPer8Hu/chatrelay/internal/store"
	"gorm.io/gorm"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter builds the HTTP surface. historyDB may be nil.
func NewRouter(cfg config.Config, st *store.Store, historyDB *gorm.DB) (*gin.Engine, error) {
	h, err := handlers.NewHandler(cfg, st, historyDB)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	common.UseJSONFieldNames()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(gin.Logger())
	r.Use(middleware.Recovery())

	r.NoRoute(func(c *gin.Context) {
		common.Fail(c, http.StatusNotFound, 40400, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		common.Fail(c, http.StatusMethodNotAllowed, 40500, "method not allowed")
	})

	r.Use(middleware.RequestID())
	r.Use(h.Sessions.Load())
	r.SetHTMLTemplate(tmpl)

	r.GET("/", h.Index)
	r.GET("/healthz", h.Health)

	// auth
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	// pages
	pages := r.Group("/")
	pages.Use(middleware.PageAuthRequired())
	pages.GET("/chat", h.ChatPage)
	pages.GET("/webhooks", h.WebhooksPage)

	// session required
	authed := r.Group("/")
	authed.Use(middleware.APIAuthRequired())
	authed.GET("/api/users", h.ListUsers)
	authed.GET("/api/chats", h.ListChats)
	authed.POST("/api/chats", h.CreateChat)
	authed.PUT("/api/chats/:id", h.UpdateChat)
	authed.DELETE("/api/chats/:id", h.DeleteChat)
	authed.PUT("/api/chats/:id/rename", h.RenameChat)
	authed.GET("/api/chat/history", h.ChatHistory)
	authed.POST("/chat/send", h.SendMessage)

	// webhooks are global configuration
	r.GET("/api/webhooks", h.ListWebhooks)
	r.POST("/api/webhooks", h.CreateWebhook)
	r.GET("/api/webhooks/:id", h.GetWebhook)
	r.PUT("/api/webhooks/:id", h.UpdateWebhook)
	r.DELETE("/api/webhooks/:id", h.DeleteWebhook)

	// deprecated single-webhook surface
	r.GET("/api/webhook", h.GetLegacyWebhook)
	r.POST("/api/webhook", h.SetLegacyWebhook)
	r.DELETE("/api/webhook", h.DeleteLegacyWebhook)

	return r, nil
}
