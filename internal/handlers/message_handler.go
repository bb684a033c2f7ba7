package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/services"
	"go.uber.org/zap"
)

// MessageHandler handles direct messages between friends
type MessageHandler struct {
	messages *services.MessageService
	log      *zap.Logger
}

func NewMessageHandler(messages *services.MessageService, log *zap.Logger) *MessageHandler {
	return &MessageHandler{messages: messages, log: log}
}

func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.POST("/messages", h.SendMessage)
	g.GET("/messages/:userId", h.GetMessages)
}

func (h *MessageHandler) SendMessage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	message, err := h.messages.SendMessage(c.Request().Context(), userID, req.ReceiverID, req.Text)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusCreated, message)
}

// GetMessages returns the conversation with :userId, oldest first
func (h *MessageHandler) GetMessages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	otherID, err := paramID(c, "userId")
	if err != nil {
		return err
	}

	messages, err := h.messages.GetMessages(c.Request().Context(), userID, otherID)
	if err != nil {
		return httpError(h.log, err)
	}
	return c.JSON(http.StatusOK, messages)
}
