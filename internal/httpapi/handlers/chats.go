package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/suPer8Hu/chatrelay/internal/chat"
	"github.com/suPer8Hu/chatrelay/internal/common"
	"github.com/suPer8Hu/chatrelay/internal/httpapi/middleware"
	"github.com/suPer8Hu/chatrelay/internal/session"
)

// ownedChat loads the chat named by the :id param and checks that the
// session's user owns it. On failure the response is already written.
func (h *Handler) ownedChat(c *gin.Context, sc *session.Context) (*chat.Chat, bool) {
	return h.ownedChatByID(c, sc, c.Param("id"))
}

func (h *Handler) ownedChatByID(c *gin.Context, sc *session.Context, id string) (*chat.Chat, bool) {
	ch, err := h.Chats.GetByID(c.Request.Context(), id)
	if err != nil {
		common.Fail(c, http.StatusNotFound, 40402, "Chat not found.")
		return nil, false
	}
	if !ch.OwnedBy(sc.UserID) {
		common.Fail(c, http.StatusForbidden, 40300, "Unauthorized.")
		return nil, false
	}
	return ch, true
}

// bindOptionalJSON accepts an empty body as an empty request but rejects
// malformed JSON with 400.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		common.Fail(c, http.StatusBadRequest, 10010, common.ValidationMessage(err))
		return false
	}
	return true
}

func titleError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, chat.ErrEmptyTitle):
		common.Fail(c, http.StatusBadRequest, 10011, "Title cannot be empty.")
	case errors.Is(err, chat.ErrTitleTooLong):
		common.Fail(c, http.StatusBadRequest, 10012, "Title must be 100 characters or less.")
	default:
		return false
	}
	return true
}

func (h *Handler) ListChats(c *gin.Context) {
	sc := middleware.CurrentSession(c)
	chats := h.Chats.ListByUser(c.Request.Context(), sc.UserID)
	chat.SortByRecent(chats)
	c.JSON(http.StatusOK, gin.H{"chats": chats, "total": len(chats)})
}

type createChatReq struct {
	Title string `json:"title"`
}

func (h *Handler) CreateChat(c *gin.Context) {
	sc := middleware.CurrentSession(c)

	var req createChatReq
	if !bindOptionalJSON(c, &req) {
		return
	}

	title := ""
	if strings.TrimSpace(req.Title) != "" {
		t, err := chat.NormalizeTitle(req.Title)
		if titleError(c, err) {
			return
		}
		title = t
	}

	ch, err := h.Chats.Create(c.Request.Context(), sc.UserID, title)
	if err != nil {
		log.Printf("[CreateChat] user_id=%s err=%v", sc.UserID, err)
		common.Fail(c, http.StatusInternalServerError, 20010, "Failed to create chat.")
		return
	}

	sc.Bind(ch)
	if err := h.Sessions.Save(c, sc); err != nil {
		log.Printf("[CreateChat] save session user_id=%s err=%v", sc.UserID, err)
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Chat created successfully.", "chat": ch})
}

type updateChatReq struct {
	Action string  `json:"action"`
	Title  *string `json:"title"`
}

// UpdateChat either switches the active chat ({"action":"switch"}) or
// updates the chat, bumping its recency.
func (h *Handler) UpdateChat(c *gin.Context) {
	sc := middleware.CurrentSession(c)
	ch, ok := h.ownedChat(c, sc)
	if !ok {
		return
	}

	var req updateChatReq
	if !bindOptionalJSON(c, &req) {
		return
	}

	if req.Action == "switch" {
		sc.Bind(ch)
		if err := h.Sessions.Save(c, sc); err != nil {
			log.Printf("[UpdateChat] save session user_id=%s err=%v", sc.UserID, err)
			common.Fail(c, http.StatusInternalServerError, 20011, "Failed to switch chat.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Switched to chat successfully.", "chat": ch})
		return
	}

	var title *string
	if req.Title != nil {
		t, err := chat.NormalizeTitle(*req.Title)
		if titleError(c, err) {
			return
		}
		title = &t
	}
	updated, err := h.Chats.Update(c.Request.Context(), ch.ID, title)
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "Chat not found.")
			return
		}
		log.Printf("[UpdateChat] chat_id=%s err=%v", ch.ID, err)
		common.Fail(c, http.StatusInternalServerError, 20012, "Failed to update chat.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat updated successfully.", "chat": updated})
}

type renameChatReq struct {
	Title *string `json:"title" binding:"required"`
}

func (h *Handler) RenameChat(c *gin.Context) {
	sc := middleware.CurrentSession(c)
	ch, ok := h.ownedChat(c, sc)
	if !ok {
		return
	}

	var req renameChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10010, common.ValidationMessage(err))
		return
	}

	renamed, err := h.Chats.Rename(c.Request.Context(), ch.ID, *req.Title)
	if titleError(c, err) {
		return
	}
	if err != nil {
		if errors.Is(err, chat.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40402, "Chat not found.")
			return
		}
		log.Printf("[RenameChat] chat_id=%s err=%v", ch.ID, err)
		common.Fail(c, http.StatusInternalServerError, 20013, "Failed to rename chat.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat renamed successfully.", "chat": renamed})
}

func (h *Handler) DeleteChat(c *gin.Context) {
	sc := middleware.CurrentSession(c)
	ch, ok := h.ownedChat(c, sc)
	if !ok {
		return
	}

	removed, err := h.Chats.Delete(c.Request.Context(), ch.ID)
	if err != nil {
		log.Printf("[DeleteChat] chat_id=%s err=%v", ch.ID, err)
		common.Fail(c, http.StatusInternalServerError, 20014, "Failed to delete chat.")
		return
	}
	if !removed {
		common.Fail(c, http.StatusNotFound, 40402, "Chat not found.")
		return
	}

	if sc.ChatID == ch.ID {
		sc.Unbind()
		if err := h.Sessions.Save(c, sc); err != nil {
			log.Printf("[DeleteChat] save session user_id=%s err=%v", sc.UserID, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Chat deleted successfully."})
}
