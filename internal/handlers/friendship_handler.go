package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/K1motho/pfol/internal/models"
	"github.com/K1motho/pfol/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendshipService services.FriendshipService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendshipService services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendshipService: friendshipService}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friend-requests", h.SendFriendRequest)
	g.GET("/friend-requests", h.GetPendingFriendRequests)
	g.DELETE("/friend-requests/:receiver_id", h.CancelFriendRequest)
	g.POST("/friend-requests/accept", h.AcceptFriendRequest)
	g.POST("/friend-requests/reject", h.RejectFriendRequest)
	g.GET("/friends", h.GetFriends)
	g.GET("/friends/:id", h.GetFriendProfile)
	g.DELETE("/friends/:id", h.DeleteFriend) // Unfriend
	g.GET("/friend-events", h.GetFriendEvents)
}

// friendshipError maps service errors to HTTP errors
func friendshipError(err error) error {
	switch {
	case errors.Is(err, services.ErrSelfTarget):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrNotFriends):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrRequestExists),
		errors.Is(err, services.ErrAlreadyFriends):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.friendshipService.SendFriendRequest(c.Request().Context(), currentUserID, req.ReceiverID)
	if err != nil {
		return friendshipError(err)
	}

	return c.JSON(http.StatusCreated, request)
}

// GetPendingFriendRequests retrieves pending friend requests for the authenticated user
func (h *FriendshipHandler) GetPendingFriendRequests(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	requests, err := h.friendshipService.ListPendingRequests(c.Request().Context(), currentUserID)
	if err != nil {
		return friendshipError(err)
	}

	return c.JSON(http.StatusOK, requests)
}

// CancelFriendRequest withdraws a pending request the authenticated user sent
func (h *FriendshipHandler) CancelFriendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	receiverID, err := strconv.ParseUint(c.Param("receiver_id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid receiver ID")
	}

	if err := h.friendshipService.CancelFriendRequest(c.Request().Context(), currentUserID, uint(receiverID)); err != nil {
		return friendshipError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AcceptFriendRequest accepts a pending request sent to the authenticated user
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.RespondFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.friendshipService.AcceptFriendRequest(c.Request().Context(), currentUserID, req.SenderID); err != nil {
		return friendshipError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": "Friend request accepted"})
}

// RejectFriendRequest declines a pending request sent to the authenticated user
func (h *FriendshipHandler) RejectFriendRequest(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.RespondFriendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.friendshipService.RejectFriendRequest(c.Request().Context(), currentUserID, req.SenderID); err != nil {
		return friendshipError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"detail": "Friend request declined"})
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friends, err := h.friendshipService.ListFriends(c.Request().Context(), currentUserID)
	if err != nil {
		return friendshipError(err)
	}

	return c.JSON(http.StatusOK, friends)
}

// GetFriendProfile retrieves a friend's profile with mutual attended events
func (h *FriendshipHandler) GetFriendProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friendID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	profile, err := h.friendshipService.FriendProfile(c.Request().Context(), currentUserID, uint(friendID))
	if err != nil {
		if errors.Is(err, services.ErrNotFriends) {
			// Friend-only data; non-friends are refused, not told "no such user"
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		}
		return friendshipError(err)
	}

	return c.JSON(http.StatusOK, profile)
}

// DeleteFriend handles unfriending
func (h *FriendshipHandler) DeleteFriend(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	friendID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid friend user ID")
	}

	if err := h.friendshipService.Unfriend(c.Request().Context(), currentUserID, uint(friendID)); err != nil {
		return friendshipError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetFriendEvents retrieves attended events across all of the user's friends
func (h *FriendshipHandler) GetFriendEvents(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	events, err := h.friendshipService.FriendEvents(c.Request().Context(), currentUserID)
	if err != nil {
		return friendshipError(err)
	}

	return c.JSON(http.StatusOK, events)
}
