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

// InvitationHandler handles QR invitation HTTP requests
type InvitationHandler struct {
	invitationService services.InvitationService
}

// NewInvitationHandler creates a new InvitationHandler
func NewInvitationHandler(invitationService services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

// RegisterInvitationRoutes registers invitation-related routes
func (h *InvitationHandler) RegisterInvitationRoutes(g *echo.Group) {
	g.GET("/invitations", h.ListInvitations)
	g.POST("/invitations", h.CreateInvitation)
	g.PUT("/invitations/:id", h.RespondToInvitation)
}

func invitationError(err error) error {
	switch {
	case errors.Is(err, services.ErrSelfTarget):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrInvitationNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrAlreadyFriends),
		errors.Is(err, services.ErrRequestExists),
		errors.Is(err, services.ErrInvitationExists),
		errors.Is(err, services.ErrInvitationResolved):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// ListInvitations returns invitations sent or received by the authenticated user
func (h *InvitationHandler) ListInvitations(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	invitations, err := h.invitationService.ListInvitations(c.Request().Context(), currentUserID)
	if err != nil {
		return invitationError(err)
	}

	return c.JSON(http.StatusOK, invitations)
}

// CreateInvitation issues a new invitation from the authenticated user
func (h *InvitationHandler) CreateInvitation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateInvitation
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invitation, err := h.invitationService.CreateInvitation(c.Request().Context(), currentUserID, req.ReceiverID)
	if err != nil {
		return invitationError(err)
	}

	return c.JSON(http.StatusCreated, invitation)
}

// RespondToInvitation accepts or ignores an invitation addressed to the authenticated user
func (h *InvitationHandler) RespondToInvitation(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	invitationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid invitation ID")
	}

	var req models.UpdateInvitation
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	invitation, err := h.invitationService.RespondToInvitation(
		c.Request().Context(), currentUserID, uint(invitationID), services.InvitationAction(req.Action))
	if err != nil {
		return invitationError(err)
	}

	return c.JSON(http.StatusOK, invitation)
}
