package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/httpapi/middleware"
)

func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/chat")
}

func (h *Handler) ChatPage(c *gin.Context) {
	c.HTML(http.StatusOK, "chat.html", gin.H{"Username": middleware.CurrentSession(c).Username})
}

func (h *Handler) WebhooksPage(c *gin.Context) {
	c.HTML(http.StatusOK, "webhooks.html", gin.H{"Username": middleware.CurrentSession(c).Username})
}

func (h *Handler) Health(c *gin.Context) {
	status := "disabled"
	if h.historyDB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		status = "ok"
		if err := h.historyDB.Ping(ctx); err != nil {
			status = "unreachable"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "history_db": status})
}
