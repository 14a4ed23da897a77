package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/common"
)

// The singular /api/webhook endpoints address the first configured webhook
// only. Responses carry a Deprecation header pointing at /api/webhooks.

type legacyWebhookReq struct {
	WebhookURL *string `json:"webhook_url" binding:"required"`
}

func deprecated(c *gin.Context) {
	c.Header("Deprecation", "true")
	c.Header("Link", `</api/webhooks>; rel="successor-version"`)
}

func (h *Handler) GetLegacyWebhook(c *gin.Context) {
	deprecated(c)
	w, ok := h.Legacy.GetFirst(c.Request.Context())
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"webhook_url": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"webhook_url": w.URL})
}

func (h *Handler) SetLegacyWebhook(c *gin.Context) {
	deprecated(c)
	var req legacyWebhookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10021, common.ValidationMessage(err))
		return
	}

	w, err := h.Legacy.SetFirstOrCreate(c.Request.Context(), *req.WebhookURL)
	if err != nil {
		log.Printf("[SetLegacyWebhook] err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 20023, "Failed to save webhook.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook updated successfully.", "webhook_url": w.URL})
}

func (h *Handler) DeleteLegacyWebhook(c *gin.Context) {
	deprecated(c)
	if err := h.Legacy.ClearAll(c.Request.Context()); err != nil {
		log.Printf("[DeleteLegacyWebhook] err=%v", err)
		common.Fail(c, http.StatusInternalServerError, 20022, "Failed to delete webhook.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook deleted successfully."})
}
