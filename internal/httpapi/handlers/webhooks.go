package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/common"
	"github.com/suPer8Hu/chatrelay/internal/webhook"
)

// Only presence is checked; empty strings are stored as given.
type createWebhookReq struct {
	Name *string `json:"name" binding:"required"`
	URL  *string `json:"url" binding:"required"`
}

type updateWebhookReq struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

func (h *Handler) ListWebhooks(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"webhooks": h.Webhooks.List(c.Request.Context())})
}

func (h *Handler) GetWebhook(c *gin.Context) {
	w, err := h.Webhooks.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		common.Fail(c, http.StatusNotFound, 40403, "Webhook not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"webhook": w})
}

func (h *Handler) CreateWebhook(c *gin.Context) {
	var req createWebhookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10020, "Missing 'name' or 'url' in request body.")
		return
	}

	w, err := h.Webhooks.Create(c.Request.Context(), *req.Name, *req.URL)
	if err != nil {
		log.Printf("[CreateWebhook] name=%q err=%v", *req.Name, err)
		common.Fail(c, http.StatusInternalServerError, 20020, "Failed to create webhook.")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Webhook created successfully.", "webhook": w})
}

func (h *Handler) UpdateWebhook(c *gin.Context) {
	var req updateWebhookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10020, "Missing 'name' or 'url' in request body.")
		return
	}

	w, err := h.Webhooks.Update(c.Request.Context(), c.Param("id"), req.Name, req.URL)
	switch {
	case errors.Is(err, webhook.ErrNoFields):
		common.Fail(c, http.StatusBadRequest, 10020, "Missing 'name' or 'url' in request body.")
		return
	case errors.Is(err, webhook.ErrNotFound):
		common.Fail(c, http.StatusNotFound, 40403, "Webhook not found.")
		return
	case err != nil:
		log.Printf("[UpdateWebhook] id=%s err=%v", c.Param("id"), err)
		common.Fail(c, http.StatusInternalServerError, 20021, "Failed to update webhook.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook updated successfully.", "webhook": w})
}

func (h *Handler) DeleteWebhook(c *gin.Context) {
	removed, err := h.Webhooks.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		log.Printf("[DeleteWebhook] id=%s err=%v", c.Param("id"), err)
		common.Fail(c, http.StatusInternalServerError, 20022, "Failed to delete webhook.")
		return
	}
	if !removed {
		common.Fail(c, http.StatusNotFound, 40403, "Webhook not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Webhook deleted successfully."})
}
