package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/K1motho/pfol/internal/models"
	"github.com/K1motho/pfol/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// EventHandler handles attended-event and wishlist HTTP requests
type EventHandler struct {
	eventRepository repositories.EventRepository
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventRepo repositories.EventRepository) *EventHandler {
	return &EventHandler{eventRepository: eventRepo}
}

// RegisterEventRoutes registers attended/wishlist event routes
func (h *EventHandler) RegisterEventRoutes(g *echo.Group) {
	g.POST("/attended-events", h.CreateAttendedEvent)
	g.GET("/attended-events", h.GetAttendedEvents)
	g.GET("/wishlist", h.GetWishlist)
	g.POST("/wishlist", h.AddToWishlist)
	g.DELETE("/wishlist/:id", h.RemoveFromWishlist)
}

// CreateAttendedEvent records an event the user attended
func (h *EventHandler) CreateAttendedEvent(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateEventEntry
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := &models.AttendedEvent{
		UserID:     currentUserID,
		EventID:    req.EventID,
		Title:      req.Title,
		Date:       req.Date,
		ImageURL:   req.ImageURL,
		AttendedAt: time.Now(),
	}

	if err := h.eventRepository.CreateAttended(event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, event)
}

// GetAttendedEvents lists the user's attended events
func (h *EventHandler) GetAttendedEvents(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	events, err := h.eventRepository.GetAttendedByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, events)
}

// GetWishlist lists the user's wishlist events
func (h *EventHandler) GetWishlist(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	events, err := h.eventRepository.GetWishlistByUser(currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, events)
}

// AddToWishlist saves an event to the user's wishlist
func (h *EventHandler) AddToWishlist(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateEventEntry
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event := &models.WishListEvent{
		UserID:   currentUserID,
		EventID:  req.EventID,
		Title:    req.Title,
		Date:     req.Date,
		ImageURL: req.ImageURL,
		AddedAt:  time.Now(),
	}

	if err := h.eventRepository.CreateWishlist(event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, event)
}

// RemoveFromWishlist deletes a wishlist entry owned by the user
func (h *EventHandler) RemoveFromWishlist(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	entryID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid wishlist entry ID")
	}

	deleted, err := h.eventRepository.DeleteWishlist(uint(entryID), currentUserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if deleted == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "Wishlist entry not found")
	}

	return c.NoContent(http.StatusNoContent)
}
