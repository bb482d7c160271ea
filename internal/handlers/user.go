package handlers

import (
	"net/http"

	"github.com/facegram/backend/internal/middleware"
	"github.com/facegram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to user profiles and suggestions
type UserHandler struct {
	visibilityService services.VisibilityService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(visibilityService services.VisibilityService) *UserHandler {
	return &UserHandler{visibilityService: visibilityService}
}

// RegisterUserRoutes registers user profile-related routes
func (h *UserHandler) RegisterUserRoutes(g *echo.Group) {
	g.GET("/user", h.GetSuggestions)
	g.GET("/user/:username", h.GetProfile)
}

// GetSuggestions lists accounts the viewer never followed or requested
func (h *UserHandler) GetSuggestions(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	users, err := h.visibilityService.Suggestions(c.Request().Context(), account)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// GetProfile resolves another account's profile as seen by the viewer
func (h *UserHandler) GetProfile(c echo.Context) error {
	account := middleware.GetAccount(c)
	if account == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	view, err := h.visibilityService.Profile(c.Request().Context(), account, c.Param("username"))
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, view)
}
