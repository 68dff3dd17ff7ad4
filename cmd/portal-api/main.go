package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"cpe-compass/portal-backend/internal/activities"
	"cpe-compass/portal-backend/internal/auth"
	"cpe-compass/portal-backend/internal/certifications"
	"cpe-compass/portal-backend/internal/config"
	"cpe-compass/portal-backend/internal/notifications"
	"cpe-compass/portal-backend/internal/recommendations"
	"cpe-compass/portal-backend/internal/reports"
	"cpe-compass/portal-backend/internal/storage"
	"cpe-compass/portal-backend/internal/verification"
)

// reminderSchedule is how often connected users get reminder pushes.
const reminderSchedule = "@hourly"

func main() {
	godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		panic(err)
	}

	// Initialize logger
	logger := newLogger(cfg.Logging.Level)
	defer logger.Sync()

	// Connect to database
	logger.Info("Connecting to database",
		zap.String("host", cfg.Database.Host),
		zap.String("dbname", cfg.Database.DBName))
	db, err := sqlx.Connect("postgres", cfg.Database.GetDatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if cfg.Database.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxConnections)
	}
	if cfg.Database.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	}

	// Proof document storage
	store, err := storage.NewLocalStore(cfg.Uploads.Dir)
	if err != nil {
		logger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	// Auth module
	authRepo := auth.NewPostgresRepository(db)
	authService := auth.NewService(authRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, logger)
	authHandler := auth.NewHandler(authService, logger)
	authMiddleware := auth.Middleware(authService)

	// Certifications module
	certsRepo := certifications.NewPostgresRepository(db)
	certsService := certifications.NewService(certsRepo, logger)
	certsHandler := certifications.NewHandler(certsService, logger)

	// Activities module, with the verification engine behind it
	engine := verification.NewEngine(logger)
	actsRepo := activities.NewPostgresRepository(db)
	actsService := activities.NewService(actsRepo, certsRepo, store, engine, logger)
	actsHandler := activities.NewHandler(actsService, logger)

	// Reports module
	reportsService := reports.NewService(certsService, actsService, logger)
	reportsHandler := reports.NewHandler(reportsService, logger)

	// Recommendations module
	fetcher := recommendations.NewHTTPFetcher(cfg.Recommendations.FetchTimeout, logger)
	recsEngine := recommendations.NewEngine(fetcher, logger)
	recsHandler := recommendations.NewHandler(recsEngine, logger)

	// Notifications module
	hub := notifications.NewHub(logger)
	notifsHandler := notifications.NewHandler(hub, logger)
	scheduler := notifications.NewScheduler(certsService, hub, logger)
	if err := scheduler.Start(reminderSchedule); err != nil {
		logger.Fatal("Failed to start reminder scheduler", zap.Error(err))
	}

	// Setup Router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.MaxMultipartMemory = cfg.Uploads.MaxSizeBytes

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(api)

		protected := api.Group("")
		protected.Use(authMiddleware)
		{
			authHandler.RegisterProtectedRoutes(protected)
			certsHandler.RegisterRoutes(protected)
			actsHandler.RegisterRoutes(protected)
			reportsHandler.RegisterRoutes(protected)
			recsHandler.RegisterRoutes(protected)
			notifsHandler.RegisterRoutes(protected)
		}
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    cfg.Server.GetServerAddr(),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started", zap.String("addr", cfg.Server.GetServerAddr()))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	scheduler.Stop()
	hub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}

func newLogger(level string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}
