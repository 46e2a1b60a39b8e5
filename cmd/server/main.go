package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/motorplaza/motorplaza-backend/internal/config"
	"github.com/motorplaza/motorplaza-backend/internal/database"
	"github.com/motorplaza/motorplaza-backend/internal/handlers"
	"github.com/motorplaza/motorplaza-backend/internal/logging"
	"github.com/motorplaza/motorplaza-backend/internal/middleware"
	"github.com/motorplaza/motorplaza-backend/internal/payment"
	"github.com/motorplaza/motorplaza-backend/internal/routes"
	"github.com/motorplaza/motorplaza-backend/internal/services"
	"github.com/motorplaza/motorplaza-backend/internal/storage"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}
	if !cfg.StripeConfigured() {
		slog.Warn("Stripe keys are not configured; checkout will return errors")
	}

	// Database
	if err := database.Connect(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := database.Migrate(database.DB); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// PostgreSQL log handler (ERROR+ async batch)
	pgLogHandler := logging.NewPGHandler(database.DB)
	slog.SetDefault(slog.New(logging.NewFanout(
		logging.NewStdoutHandler(),
		pgLogHandler,
	)))

	// Log cleanup (30-day retention)
	cleanupDone := make(chan struct{})
	logging.StartCleanup(database.DB, cleanupDone)

	// Media storage
	store, err := storage.NewLocalStorage(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		slog.Error("failed to set up upload storage", "error", err)
		os.Exit(1)
	}

	// Services
	gateway := payment.NewStripeClient(cfg.StripeAPIURL, cfg.StripeSecretKey)
	authService := services.NewAuthService(database.DB, cfg)
	listingService := services.NewListingService(database.DB)
	carService := services.NewCarService(database.DB, store)
	photoService := services.NewPhotoService(database.DB, store)
	checkoutService := services.NewCheckoutService(database.DB, cfg, gateway)

	// Handlers
	listingHandler := handlers.NewListingHandler(listingService)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, listingService, authService, cfg)
	adminHandler := handlers.NewAdminCarHandler(carService, photoService)
	healthHandler := handlers.NewHealthHandler()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    12 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Uploaded photos are served straight from disk
	app.Static(cfg.UploadBaseURL, cfg.UploadDir)

	routes.Setup(app, cfg, database.DB, listingHandler, authHandler, checkoutHandler, adminHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	close(cleanupDone)
	pgLogHandler.Stop()
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := database.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			slog.Error("database close error", "error", err)
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
