package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/knockknock1010/Back/config"
	"github.com/knockknock1010/Back/handler"
	"github.com/knockknock1010/Back/middleware"
	"github.com/knockknock1010/Back/pkg/logger"
	"github.com/knockknock1010/Back/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	slog.Info("configuration loaded successfully")

	// Initialize services
	minioSvc, err := service.NewMinioService(&cfg.Minio)
	if err != nil {
		slog.Error("failed to initialize MINIO service", "error", err)
		os.Exit(1)
	}

	// Ensure archive bucket exists
	if err := minioSvc.EnsureBucket(context.Background()); err != nil {
		slog.Error("failed to ensure MINIO bucket", "error", err)
		os.Exit(1)
	}

	engineSvc := service.NewEngineService(&cfg.Engine)
	registry := service.NewCategoryRegistry(&cfg.Engine)
	advisor := service.NewAnalysisService(engineSvc, registry, &cfg.Engine)

	documents := service.NewDocumentStore(&cfg.Store)
	contacts := service.NewContactStore()
	notifications := service.NewNotificationStore()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(cfg)
	analysisHandler := handler.NewAnalysisHandler(advisor, minioSvc, documents, notifications)
	documentHandler := handler.NewDocumentHandler(documents, minioSvc)
	contactHandler := handler.NewContactHandler(contacts)
	notificationHandler := handler.NewNotificationHandler(notifications)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New() // Use New() instead of Default() to avoid default middleware

	// Add custom middleware
	router.Use(middleware.RequestID())                 // Request ID for tracing
	router.Use(middleware.Recovery())                  // Panic recovery
	router.Use(middleware.RequestLogger())             // Access logging
	router.Use(corsMiddleware())                       // CORS
	router.Use(middleware.RateLimit(100, time.Minute)) // Rate limiting: 100 requests per minute

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	api := router.Group("/api")
	{
		api.POST("/auth/login", authHandler.Login)
	}

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		protected.GET("/auth/me", authHandler.GetCurrentUser)

		protected.POST("/analysis/real-estate", analysisHandler.AnalyzeRealEstate)
		protected.POST("/analysis/work", analysisHandler.AnalyzeWork)
		protected.POST("/analysis/consumer", analysisHandler.AnalyzeConsumer)
		protected.POST("/analysis/nda", analysisHandler.AnalyzeNDA)
		protected.POST("/analysis/other", analysisHandler.AnalyzeOther)

		protected.GET("/documents", documentHandler.List)
		protected.GET("/documents/:id", documentHandler.Get)
		protected.GET("/documents/:id/analysis", documentHandler.GetAnalysis)
		protected.DELETE("/documents/:id", documentHandler.Delete)

		protected.POST("/contact", contactHandler.Submit)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread", notificationHandler.ListUnread)
		protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
		protected.GET("/notifications/settings", notificationHandler.GetSettings)
		protected.PUT("/notifications/settings", notificationHandler.UpdateSettings)
	}

	// Admin routes
	admin := protected.Group("/")
	admin.Use(middleware.RequireAdmin())
	{
		admin.GET("/contact/admin", contactHandler.ListAdmin)
		admin.PATCH("/contact/admin/:id", contactHandler.UpdateStatus)
	}

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 600 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited gracefully")
}

// corsMiddleware handles CORS headers. The mobile client calls the API
// from arbitrary origins, so everything is allowed for now.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, PATCH, DELETE")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
