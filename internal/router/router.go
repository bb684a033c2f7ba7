package router

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/nanomedia/social-backend/internal/handlers"
	"github.com/nanomedia/social-backend/internal/middleware"
	"github.com/nanomedia/social-backend/internal/models"
	"github.com/nanomedia/social-backend/internal/repositories"
	"github.com/nanomedia/social-backend/internal/services"
	"github.com/nanomedia/social-backend/internal/validators"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the collaborators the routes are built on
type Deps struct {
	Postgres *gorm.DB
	Posts    repositories.PostRepository
	Files    repositories.FileRepository
	Tokens   repositories.TokenStore
	Firebase services.FirebaseVerifier // nil disables Firebase login

	Auth services.AuthConfig
	Feed services.FeedConfig
	Log  *zap.Logger
}

// Migrate creates or updates the PostgreSQL tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.Relational()...)
}

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log *zap.Logger) {
	e.Validator = validators.NewValidator()
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.RequestIDWithConfig(eMiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request_id", v.RequestID),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	}))
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	log := deps.Log
	store := repositories.NewPostgresStore(deps.Postgres)
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)

	authService := services.NewAuthService(userRepo, deps.Tokens, deps.Firebase, deps.Auth, log)
	friendshipService := services.NewFriendshipService(store, log)
	postService := services.NewPostService(deps.Posts, deps.Files, deps.Feed.PublicURL, log)

	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "social backend"})
	})

	postHandler := handlers.NewPostHandler(postService, log)
	postHandler.RegisterFileRoutes(e)

	authHandler := handlers.NewAuthHandler(authService, log)
	authHandler.RegisterAuthRoutes(e.Group("/api/v1/auth"))

	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(authService))

	authHandler.RegisterSessionRoutes(api)
	handlers.NewUserHandler(services.NewUserService(store), authService, log).RegisterProfileRoutes(api)
	postHandler.RegisterPostRoutes(api)
	handlers.NewFeedHandler(services.NewFeedService(store, deps.Posts, deps.Feed, log), log).RegisterFeedRoutes(api)
	handlers.NewFriendshipHandler(friendshipService, log).RegisterFriendshipRoutes(api)
	handlers.NewFollowHandler(friendshipService, log).RegisterFollowRoutes(api)
	handlers.NewMessageHandler(services.NewMessageService(store, log), log).RegisterMessageRoutes(api)
	handlers.NewNotificationHandler(services.NewNotificationService(store), log).RegisterNotificationRoutes(api)

	log.Info("routes configured", zap.Int("count", len(e.Routes())))
}
