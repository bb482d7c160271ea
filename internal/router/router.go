package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/facegram/backend/internal/handlers"
	"github.com/facegram/backend/internal/middleware"
	"github.com/facegram/backend/internal/models"
	"github.com/facegram/backend/internal/repositories"
	"github.com/facegram/backend/internal/services"
	"github.com/facegram/backend/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, firebaseAuthClient *auth.Client, uploader storage.Uploader, jwtSecret string) {
	// AutoMigrate PostgreSQL models
	err := db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.PostAttachment{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)

	// --- Initialize Services ---
	relationshipService := services.NewRelationshipService(userRepo, followRepo)
	visibilityService := services.NewVisibilityService(userRepo, followRepo, postRepo)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, jwtSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require bearer authentication) ---
	api := e.Group("/api")
	api.Use(middleware.Auth(jwtSecret, firebaseAuthClient, userRepo))
	log.Println("Authentication middleware applied to /api group.")

	// User profile and suggestion routes
	userHandler := handlers.NewUserHandler(visibilityService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	// Follow routes
	followHandler := handlers.NewFollowHandler(relationshipService)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	// Post and feed routes
	postHandler := handlers.NewPostHandler(postRepo, visibilityService, uploader)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	log.Println("All routes configured.")
}
