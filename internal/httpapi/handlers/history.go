package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/httpapi/middleware"
)

// ChatHistory returns the normalized conversation of the requested chat, or
// of the active chat when chat_id is omitted. A failing history store yields
// an empty history plus an "error" field, never a failed request.
func (h *Handler) ChatHistory(c *gin.Context) {
	sc := middleware.CurrentSession(c)

	chatID, sessionID := sc.ChatID, sc.SessionID
	if id := c.Query("chat_id"); id != "" {
		ch, ok := h.ownedChatByID(c, sc, id)
		if !ok {
			return
		}
		chatID, sessionID = ch.ID, ch.SessionID
	} else if !sc.HasActiveChat() {
		c.JSON(http.StatusOK, gin.H{"history": []any{}, "message": "No active chat found."})
		return
	}

	msgs, err := h.History.Fetch(c.Request.Context(), sessionID)
	resp := gin.H{
		"chat_id":        chatID,
		"session_id":     sessionID,
		"history":        msgs,
		"total_messages": len(msgs),
	}
	if err != nil {
		resp["error"] = "Could not load chat history: " + err.Error()
	}
	c.JSON(http.StatusOK, resp)
}
