package handlers

import (
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/facegram/backend/internal/models"
	"github.com/facegram/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.GET("/confirm", h.Confirm)
}

// Register creates the account with the identity provider and stores the
// profile row
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.CreateAccountRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Check if user with this username already exists
	_, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username)
	if err == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Username already registered")
	}

	if h.firebaseAuth != nil {
		params := (&auth.UserToCreate{}).
			Email(req.Email).
			Password(req.Password).
			DisplayName(req.Fullname)
		if _, err := h.firebaseAuth.CreateUser(c.Request().Context(), params); err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "Failed to create account with identity provider")
		}
	}

	// Keep a local hash so login can verify credentials
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		Fullname: req.Fullname,
		Email:    req.Email,
		Username: req.Username,
		Password: string(hashedPassword),
	}
	if err := h.userRepository.CreateUser(c.Request().Context(), user); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Email already registered")
	}

	return c.JSON(http.StatusCreated, echo.Map{"message": "Success"})
}

// Login verifies the credentials and issues an access token together with a
// profile summary
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginAccountRequest

	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(c.Request().Context(), req.Username)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}

	token, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate token")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"accessToken": token,
		"profile": models.LoginProfile{
			Fullname:   user.Fullname,
			Username:   user.Username,
			Email:      user.Email,
			IsVerified: user.IsVerified,
		},
	})
}

// Confirm verifies an email confirmation token with the identity provider
// and marks the account verified
func (h *AuthHandler) Confirm(c echo.Context) error {
	tokenHash := c.QueryParam("token_hash")
	otpType := c.QueryParam("type")
	if tokenHash == "" || otpType == "" {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Missing confirmation token")
	}
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Identity provider not configured")
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), tokenHash)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Invalid confirmation token")
	}

	params := (&auth.UserToUpdate{}).EmailVerified(true)
	if _, err := h.firebaseAuth.UpdateUser(c.Request().Context(), token.UID, params); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "Failed to confirm account")
	}

	if email, ok := token.Claims["email"].(string); ok {
		user, err := h.userRepository.GetUserByEmail(c.Request().Context(), email)
		if err == nil {
			user.IsVerified = true
			if err := h.userRepository.UpdateUser(c.Request().Context(), user); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
	}

	return c.NoContent(http.StatusOK)
}

// generateJWT generates a JWT token for a given user
func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)), // Token expires in 72 hours
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
