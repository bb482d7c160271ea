package handlers

import (
	"net/http"

	"github.com/facegram/backend/internal/middleware"
	"github.com/facegram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/accept/unfollow HTTP requests
type FollowHandler struct {
	relationshipService services.RelationshipService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(relationshipService services.RelationshipService) *FollowHandler {
	return &FollowHandler{relationshipService: relationshipService}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/user/:username/follow", h.FollowUser)
	g.PUT("/user/:username/accept", h.AcceptFollow)
	g.DELETE("/user/:username/unfollow", h.UnfollowUser)
}

// FollowUser creates a follow edge towards the named account
func (h *FollowHandler) FollowUser(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	status, err := h.relationshipService.Follow(c.Request().Context(), account, c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Follow success", "status": status})
}

// AcceptFollow accepts a pending follow request towards the current account
func (h *FollowHandler) AcceptFollow(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.relationshipService.Accept(c.Request().Context(), account, c.Param("username")); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "Follow request accepted"})
}

// UnfollowUser deletes the current account's follow edge towards the named
// account
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	if err := h.relationshipService.Unfollow(c.Request().Context(), account, c.Param("username")); err != nil {
		return toHTTPError(err)
	}

	return c.NoContent(http.StatusNoContent)
}
