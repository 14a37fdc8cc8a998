package router

import (
	"log"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/socializenotion/backend/internal/handlers"
	"github.com/socializenotion/backend/internal/middleware"
	"github.com/socializenotion/backend/internal/models"
	"github.com/socializenotion/backend/internal/repositories"
	"github.com/socializenotion/backend/pkg/config"
	"gorm.io/gorm"
)

// SetupMiddleware attaches the global middleware chain
func SetupMiddleware(e *echo.Echo) {
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
}

// SetupRoutes migrates the schema, builds the repositories and
// registers every route group
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config) {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.Note{},
		&models.Collaboration{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Follow{},
		&models.Notification{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repositories.NewPostgresUserRepository(db)
	folderRepo := repositories.NewPostgresFolderRepository(db)
	noteRepo := repositories.NewPostgresNoteRepository(db)
	collabRepo := repositories.NewPostgresCollaborationRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	likeRepo := repositories.NewPostgresLikeRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	notifRepo := repositories.NewPostgresNotificationRepository(db)

	authHandler := handlers.NewAuthHandler(userRepo, followRepo, cfg.JWTSecret)
	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notifRepo)
	folderHandler := handlers.NewFolderHandler(folderRepo)
	noteHandler := handlers.NewNoteHandler(noteRepo, folderRepo, collabRepo, userRepo, followRepo, notifRepo)
	postHandler := handlers.NewPostHandler(postRepo, userRepo, followRepo, likeRepo)
	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, followRepo, likeRepo)
	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, notifRepo)
	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, followRepo, notifRepo)
	notifHandler := handlers.NewNotificationHandler(notifRepo)

	e.GET("/health", handlers.HealthCheck)

	public := e.Group("/api")
	authHandler.RegisterAuthRoutes(public)

	api := e.Group("/api")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, userRepo))

	authHandler.RegisterProfileRoutes(api)
	userHandler.RegisterUserRoutes(api)
	followHandler.RegisterFollowRoutes(api)
	folderHandler.RegisterFolderRoutes(api)
	noteHandler.RegisterNoteRoutes(api)
	feedHandler.RegisterFeedRoutes(api)
	postHandler.RegisterPostRoutes(api)
	likeHandler.RegisterLikeRoutes(api)
	commentHandler.RegisterCommentRoutes(api)
	notifHandler.RegisterNotificationRoutes(api)
}
