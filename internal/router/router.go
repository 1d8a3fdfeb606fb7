package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/K1motho/pfol/internal/handlers"
	"github.com/K1motho/pfol/internal/middleware"
	"github.com/K1motho/pfol/internal/models"
	"github.com/K1motho/pfol/internal/repositories"
	"github.com/K1motho/pfol/internal/services"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.User{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Invitation{},
		&models.Notification{},
		&models.AttendedEvent{},
		&models.WishListEvent{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories and services ---
	repos := repositories.NewRepositories(pgdb)
	txManager := repositories.NewGormTxManager(pgdb)
	messageRepo := repositories.NewMongoMessageRepository(mgClient.Database("pfol"))

	friendshipService := services.NewFriendshipService(txManager, repos)
	invitationService := services.NewInvitationService(txManager, repos)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(repos.Users, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware())
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	// User profile routes
	userHandler := handlers.NewUserHandler(repos.Users)
	userHandler.RegisterProfileRoutes(api)
	log.Println("User profile routes configured.")

	// Friendship routes
	friendshipHandler := handlers.NewFriendshipHandler(friendshipService)
	friendshipHandler.RegisterFriendshipRoutes(api)
	log.Println("Friendship routes configured.")

	// Invitation routes
	invitationHandler := handlers.NewInvitationHandler(invitationService)
	invitationHandler.RegisterInvitationRoutes(api)
	log.Println("Invitation routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(repos.Notifications)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	// Event routes
	eventHandler := handlers.NewEventHandler(repos.Events)
	eventHandler.RegisterEventRoutes(api)
	log.Println("Event routes configured.")

	// Message routes
	messageHandler := handlers.NewMessageHandler(messageRepo, friendshipService)
	messageHandler.RegisterMessageRoutes(api)
	log.Println("Message routes configured.")

	log.Println("All routes configured.")
}
