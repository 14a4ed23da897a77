package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/common"
	"github.com/suPer8Hu/chatrelay/internal/httpapi/middleware"
	"github.com/suPer8Hu/chatrelay/internal/session"
)

type loginReq struct {
	Username   string `json:"username" binding:"required"`
	AccessCode string `json:"access_code"`
}

func (h *Handler) LoginPage(c *gin.Context) {
	if middleware.CurrentSession(c).Authenticated() {
		c.Redirect(http.StatusFound, "/chat")
		return
	}
	c.HTML(http.StatusOK, "login.html", gin.H{
		"AccessCodeRequired": h.Cfg.LoginAccessCodeHash != "",
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "Username is required.")
		return
	}

	sc, err := h.Auth.Login(c.Request.Context(), req.Username, req.AccessCode)
	switch {
	case errors.Is(err, session.ErrUsernameTooShort):
		common.Fail(c, http.StatusBadRequest, 10002, "Username must be at least 2 characters long.")
		return
	case errors.Is(err, session.ErrIdentityRejected):
		common.Fail(c, http.StatusUnauthorized, 40101, "Invalid access code.")
		return
	case err != nil:
		log.Printf("[Login] username=%q err=%v", req.Username, err)
		common.Fail(c, http.StatusInternalServerError, 20001, "Login failed.")
		return
	}

	if err := h.Sessions.Save(c, sc); err != nil {
		log.Printf("[Login] save session user_id=%s err=%v", sc.UserID, err)
		common.Fail(c, http.StatusInternalServerError, 20001, "Login failed.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful.", "username": sc.Username})
}

func (h *Handler) Logout(c *gin.Context) {
	h.Sessions.Clear(c)
	c.Redirect(http.StatusFound, "/login")
}
