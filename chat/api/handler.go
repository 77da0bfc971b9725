package api

import (
	"net/http"

	"supplygenie/backend/chat/models"
	"supplygenie/backend/chat/service"
	apperrors "supplygenie/backend/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ChatHandler exposes the four chat store operations over HTTP
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler creates a chat handler
func NewChatHandler(service *service.ChatService) *ChatHandler {
	return &ChatHandler{service: service}
}

type createChatRequest struct {
	UserID   string `json:"user_id"`
	ChatName string `json:"chat_name"`
}

type appendMessageRequest struct {
	UserID  string         `json:"user_id"`
	ChatID  string         `json:"chat_id"`
	Message models.Message `json:"message"`
}

type renameChatRequest struct {
	UserID      string `json:"user_id"`
	ChatID      string `json:"chat_id"`
	NewChatName string `json:"new_chat_name"`
}

// userID prefers the authenticated uid over the one a request claims
func userID(c *gin.Context, claimed string) string {
	if uid := c.GetString("userId"); uid != "" {
		return uid
	}
	return claimed
}

// ListChats handles GET /chats
func (h *ChatHandler) ListChats(c *gin.Context) {
	uid := userID(c, c.Query("user_id"))

	chats, err := h.service.List(c.Request.Context(), uid)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chats": chats})
}

// CreateChat handles POST /chats
func (h *ChatHandler) CreateChat(c *gin.Context) {
	var req createChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Missing required fields"))
		return
	}

	chat, err := h.service.CreateChat(c.Request.Context(), userID(c, req.UserID), req.ChatName)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

// AppendMessage handles PATCH /chats
func (h *ChatHandler) AppendMessage(c *gin.Context) {
	var req appendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Missing required fields"))
		return
	}

	chat, err := h.service.AppendMessage(c.Request.Context(), userID(c, req.UserID), req.ChatID, req.Message)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat})
}

// RenameChat handles PUT /chats
func (h *ChatHandler) RenameChat(c *gin.Context) {
	var req renameChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("Missing required fields"))
		return
	}

	chat, err := h.service.RenameChat(c.Request.Context(), userID(c, req.UserID), req.ChatID, req.NewChatName)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chat": chat})
}
