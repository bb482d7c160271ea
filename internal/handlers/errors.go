package handlers

import (
	"errors"
	"net/http"

	"github.com/facegram/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// toHTTPError maps service errors onto HTTP statuses
func toHTTPError(err error) error {
	var already *services.AlreadyFollowingError
	switch {
	case errors.As(err, &already):
		return echo.NewHTTPError(http.StatusConflict, echo.Map{
			"message": "You are already followed",
			"status":  already.Status,
		})
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNoSuggestions):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCannotFollowSelf),
		errors.Is(err, services.ErrNotRequested),
		errors.Is(err, services.ErrAlreadyAccepted),
		errors.Is(err, services.ErrNotFollowing):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
