package handlers

import (
	"net/http"
	"strconv"

	"github.com/K1motho/pfol/internal/models"
	"github.com/K1motho/pfol/internal/repositories"
	"github.com/K1motho/pfol/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MessageHandler handles direct-message HTTP requests. Conversations are
// friend-gated: only established friends may read or write.
type MessageHandler struct {
	messageRepository repositories.MessageRepository
	friendshipService services.FriendshipService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageRepo repositories.MessageRepository, friendshipService services.FriendshipService) *MessageHandler {
	return &MessageHandler{
		messageRepository: messageRepo,
		friendshipService: friendshipService,
	}
}

// RegisterMessageRoutes registers message-related routes
func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group) {
	g.GET("/messages/:friend_id", h.GetConversation)
	g.POST("/messages/:friend_id", h.SendMessage)
}

func (h *MessageHandler) friendFromParam(c echo.Context, currentUserID uint) (uint, error) {
	friendID, err := strconv.ParseUint(c.Param("friend_id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	areFriends, err := h.friendshipService.AreFriends(c.Request().Context(), currentUserID, uint(friendID))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if !areFriends {
		return 0, echo.NewHTTPError(http.StatusForbidden, "You can only message friends")
	}
	return uint(friendID), nil
}

// GetConversation returns the message history with a friend, oldest first,
// and marks the friend's messages as read
func (h *MessageHandler) GetConversation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friendID, err := h.friendFromParam(c, currentUserID)
	if err != nil {
		return err
	}

	messages, err := h.messageRepository.GetConversation(c.Request().Context(), currentUserID, friendID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if err := h.messageRepository.MarkConversationRead(c.Request().Context(), currentUserID, friendID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, messages)
}

// SendMessage stores a new message to a friend
func (h *MessageHandler) SendMessage(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friendID, err := h.friendFromParam(c, currentUserID)
	if err != nil {
		return err
	}

	var req models.CreateMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	message := &models.Message{
		SenderID:   currentUserID,
		ReceiverID: friendID,
		Content:    req.Content,
	}

	if err := h.messageRepository.CreateMessage(c.Request().Context(), message); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, message)
}
