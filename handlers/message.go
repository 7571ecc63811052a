package handlers

import (
	"net/http"

	"ehealth/middleware"
	"ehealth/models"
	"ehealth/services/message"

	"github.com/gin-gonic/gin"
)

type MessageHandler struct {
	Service message.MessageService
}

func NewMessageHandler(s message.MessageService) *MessageHandler {
	return &MessageHandler{Service: s}
}

func (h *MessageHandler) SendHandler(c *gin.Context) {
	var req models.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.Service.Send(c.Request.Context(), middleware.CurrentCaller(c), req)
	if err != nil {
		fail(c, "Failed to send message", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) ConversationHandler(c *gin.Context) {
	msgs, err := h.Service.Conversation(c.Request.Context(), middleware.CurrentCaller(c), c.Param("userId"))
	if err != nil {
		fail(c, "Failed to fetch conversation", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *MessageHandler) ConversationsHandler(c *gin.Context) {
	convs, err := h.Service.Conversations(c.Request.Context(), middleware.CurrentCaller(c))
	if err != nil {
		fail(c, "Failed to fetch conversations", err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

func (h *MessageHandler) MarkReadHandler(c *gin.Context) {
	if err := h.Service.MarkRead(c.Request.Context(), middleware.CurrentCaller(c), c.Param("senderId")); err != nil {
		fail(c, "Failed to mark messages as read", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Messages marked as read"})
}
