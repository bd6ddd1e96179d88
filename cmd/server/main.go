package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pagebook-app/pagebook-backend/internal/config"
	"github.com/pagebook-app/pagebook-backend/internal/database"
	"github.com/pagebook-app/pagebook-backend/internal/handlers"
	"github.com/pagebook-app/pagebook-backend/internal/middleware"
	"github.com/pagebook-app/pagebook-backend/internal/migrations"
	"github.com/pagebook-app/pagebook-backend/internal/models"
	"github.com/pagebook-app/pagebook-backend/internal/routes"
	"github.com/pagebook-app/pagebook-backend/internal/store"
	"github.com/pagebook-app/pagebook-backend/pkg/logger"
)

func main() {
	// 0. Load Config & Initialize Logger
	config.LoadConfig()

	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	logger.Info().Str("environment", env).Msg("Starting Pagebook Backend...")

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. Connect Database
	database.Connect()
	database.InitRedis()

	// --- Database Migration Stage ---
	logger.Info().Msg("Running database migrations...")

	tableModels := []interface{}{
		&models.User{},
		&models.Post{},
		&models.PostLike{},
		&models.Comment{},
		&models.ChatMessage{},
		&models.Thread{},
		&models.DirectMessage{},
		&models.LiveAnnouncement{},
		&models.Notification{},
	}

	if err := database.DB.AutoMigrate(tableModels...); err != nil {
		logger.Fatal().Err(err).Msg("Failed to migrate database tables")
	}

	if err := migrations.NewMigrator(database.DB).Run(); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply schema migrations")
	}
	logger.Info().Msg("Database migrations complete")

	// 2. Init Store & OAuth
	graph := store.New(database.DB)
	handlers.Init(graph)
	handlers.InitOAuthConfig()

	// 3. Setup Router
	r := gin.New()

	r.Use(middleware.LoggingMiddleware())
	r.Use(middleware.ErrorHandlerMiddleware())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.SecurityHeaders())

	// Exempt /socket.io from rate limiting
	r.Use(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/socket.io/") {
			c.Next()
			return
		}
		middleware.GeneralRateLimit()(c)
	})

	// 4. Register Routes
	api := r.Group("/api")
	{
		routes.RegisterAuthRoutes(api)
		routes.RegisterUserRoutes(api)
		routes.RegisterPostRoutes(api)
		routes.RegisterChatRoutes(api)
		routes.RegisterMessageRoutes(api)
		routes.RegisterLiveRoutes(api)
		routes.RegisterNotificationRoutes(api)
		routes.RegisterUploadRoutes(api)
	}

	// Health check with DB and Redis status
	r.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		redisStatus := "ok"

		sqlDB, err := database.DB.DB()
		if err != nil || sqlDB.Ping() != nil {
			dbStatus = "error"
		}

		if database.Redis != nil {
			if _, err := database.Redis.Ping(context.Background()).Result(); err != nil {
				redisStatus = "error"
			}
		} else {
			redisStatus = "not configured"
		}

		status := "ok"
		if dbStatus != "ok" || (redisStatus != "ok" && redisStatus != "not configured") {
			status = "degraded"
		}

		c.JSON(200, gin.H{
			"status": status,
			"checks": gin.H{
				"database": dbStatus,
				"redis":    redisStatus,
			},
		})
	})

	// Init Socket.io
	socketServer := handlers.InitSocketServer()
	defer socketServer.Close()

	r.GET("/socket.io/*any", handlers.SocketHandler(socketServer))
	r.POST("/socket.io/*any", handlers.SocketHandler(socketServer))

	// 5. Start Server with graceful shutdown
	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Str("port", port).Str("env", env).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Server exited gracefully")
}
