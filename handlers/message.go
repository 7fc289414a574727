package handlers

import (
	"net/http"

	"rentora/models"
	"rentora/services/message"
	"rentora/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MessageHandler receives contact inquiries from the marketing site and lets
// the back office work through them.
type MessageHandler struct {
	MessageService message.MessageService
}

// SubmitMessageHandler handles POST /api/messages (public contact form).
func (h *MessageHandler) SubmitMessageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	var msg models.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if msg.SenderEmail == "" || msg.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and message content are required"})
		return
	}
	created, err := h.MessageService.Submit(c.Request.Context(), &msg)
	if err != nil {
		logger.Error("Failed to submit message", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit message"})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMessagesHandler handles GET /api/admin/messages.
func (h *MessageHandler) ListMessagesHandler(c *gin.Context) {
	logger := utils.GetLogger()
	messages, err := h.MessageService.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list messages", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list messages"})
		return
	}
	c.JSON(http.StatusOK, messages)
}

// MarkMessageReadHandler handles POST /api/admin/messages/:id/read.
func (h *MessageHandler) MarkMessageReadHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.MessageService.MarkRead(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message marked as read"})
}

// DeleteMessageHandler handles DELETE /api/admin/messages/:id.
func (h *MessageHandler) DeleteMessageHandler(c *gin.Context) {
	logger := utils.GetLogger()
	id := c.Param("id")
	if err := h.MessageService.Delete(c.Request.Context(), id); err != nil {
		logger.Error("Failed to delete message", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
