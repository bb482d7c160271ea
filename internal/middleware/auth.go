package middleware

import (
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/facegram/backend/internal/models"
	"github.com/facegram/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const accountContextKey = "account"

// Auth verifies the bearer credential and resolves it to an account. A local
// access token is tried first; when that fails and a Firebase client is
// configured, the credential is verified as a Firebase ID token. The resolved
// account is stored in the request context for handlers to pass into
// services explicitly.
func Auth(jwtSecret string, firebaseAuth *auth.Client, userRepo repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			email, err := emailFromLocalToken(tokenString, jwtSecret)
			if err != nil && firebaseAuth != nil {
				email, err = emailFromFirebaseToken(c, firebaseAuth, tokenString)
			}
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			user, err := userRepo.GetUserByEmail(c.Request().Context(), email)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
			}

			c.Set(accountContextKey, user)
			return next(c)
		}
	}
}

// GetAccount returns the authenticated account stored by Auth, or nil when
// the request was not authenticated
func GetAccount(c echo.Context) *models.User {
	user, _ := c.Get(accountContextKey).(*models.User)
	return user
}

// emailFromLocalToken parses an HS256 access token issued at login
func emailFromLocalToken(tokenString, jwtSecret string) (string, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Email == "" {
		return "", errors.New("invalid token")
	}
	return claims.Email, nil
}

// emailFromFirebaseToken verifies a Firebase ID token and trusts its email
// claim as the acting identity
func emailFromFirebaseToken(c echo.Context, firebaseAuth *auth.Client, tokenString string) (string, error) {
	token, err := firebaseAuth.VerifyIDToken(c.Request().Context(), tokenString)
	if err != nil {
		return "", err
	}
	email, ok := token.Claims["email"].(string)
	if !ok || email == "" {
		return "", errors.New("token carries no email claim")
	}
	return email, nil
}
