package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/common"
	"github.com/suPer8Hu/chatrelay/internal/httpapi/middleware"
	"github.com/suPer8Hu/chatrelay/internal/relay"
)

type sendReq struct {
	Message   *string `json:"message" binding:"required"`
	WebhookID string  `json:"webhook_id"`
}

// SendMessage relays one user message to a webhook and returns its reply.
func (h *Handler) SendMessage(c *gin.Context) {
	sc := middleware.CurrentSession(c)

	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10030, common.ValidationMessage(err))
		return
	}

	ctx := c.Request.Context()
	target, err := h.Relay.Resolve(ctx, req.WebhookID)
	switch {
	case errors.Is(err, relay.ErrWebhookNotFound):
		common.Fail(c, http.StatusNotFound, 40403, "Selected webhook not found. Please select a valid webhook.")
		return
	case errors.Is(err, relay.ErrNoWebhook):
		common.Fail(c, http.StatusBadRequest, 10031, "No webhook is configured. Please set one in the Webhook Management page.")
		return
	case err != nil:
		log.Printf("[SendMessage] resolve webhook_id=%q err=%v", req.WebhookID, err)
		common.Fail(c, http.StatusInternalServerError, 20030, "Failed to resolve webhook.")
		return
	}

	created, err := h.Auth.EnsureActiveChat(ctx, sc)
	if err != nil {
		log.Printf("[SendMessage] ensure chat user_id=%s err=%v", sc.UserID, err)
		common.Fail(c, http.StatusInternalServerError, 20010, "Failed to create chat.")
		return
	}
	if created {
		if err := h.Sessions.Save(c, sc); err != nil {
			log.Printf("[SendMessage] save session user_id=%s err=%v", sc.UserID, err)
		}
	}

	reply, err := h.Relay.Deliver(ctx, target, relay.Request{
		UserID:    sc.UserID,
		Username:  sc.Username,
		ChatID:    sc.ChatID,
		SessionID: sc.SessionID,
		Message:   *req.Message,
		WebhookID: target.ID,
	})
	if err != nil {
		var up *relay.UpstreamError
		switch {
		case errors.As(err, &up) && up.Timeout:
			common.Fail(c, http.StatusGatewayTimeout, 50400, "The request to the webhook timed out.")
		case errors.Is(err, relay.ErrMalformedReply):
			common.Fail(c, http.StatusInternalServerError, 20031, "Failed to decode JSON response from the webhook.")
		case errors.Is(err, relay.ErrMissingReply):
			common.Fail(c, http.StatusInternalServerError, 20032, "Webhook response is missing the 'reply' key.")
		default:
			log.Printf("[SendMessage] webhook=%s session_id=%s err=%v", target.ID, sc.SessionID, err)
			common.Fail(c, http.StatusInternalServerError, 20033,
				fmt.Sprintf("Webhook call failed. Please check the URL and ensure the endpoint is running. Details: %v", err))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
