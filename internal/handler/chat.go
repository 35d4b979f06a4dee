package handler

import (
	"net/http"

	"core/internal/model"
	"core/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles text conversation HTTP requests
type ChatHandler struct {
	conversation *service.ConversationService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(conversation *service.ConversationService) *ChatHandler {
	return &ChatHandler{conversation: conversation}
}

// Chat handles POST /api/v1/chat
func (h *ChatHandler) Chat(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	response := h.conversation.Chat(c.Request.Context(), req)
	c.JSON(http.StatusOK, response)
}
