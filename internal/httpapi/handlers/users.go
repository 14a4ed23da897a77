package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	all := h.Users.List(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"users": all, "total": len(all)})
}
