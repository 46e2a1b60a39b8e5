package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/motorplaza/motorplaza-backend/internal/config"
	"github.com/motorplaza/motorplaza-backend/internal/handlers"
	"github.com/motorplaza/motorplaza-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	listingHandler *handlers.ListingHandler,
	authHandler *handlers.AuthHandler,
	checkoutHandler *handlers.CheckoutHandler,
	adminHandler *handlers.AdminCarHandler,
	healthHandler *handlers.HealthHandler,
) {
	// General rate limiter: 60 req/min per IP
	app.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	app.Get("/api/health", healthHandler.Check)

	// Public listing pages
	app.Get("/", listingHandler.Search)
	app.Get("/listings/:id", listingHandler.Detail)

	// Registration and login — stricter rate limit: 10 req/min per IP
	authLimiter := limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	})
	app.Get("/signup", authHandler.SignUpForm)
	app.Post("/signup", authLimiter, authHandler.SignUp)
	app.Post("/login", authLimiter, authHandler.Login)
	app.Post("/api/auth/refresh", authHandler.Refresh)
	app.Post("/api/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Purchase flow — unauthenticated requests are redirected to login
	app.Get("/listings/:id/buy", middleware.LoginRequired(cfg), checkoutHandler.BuyPage)
	app.Post("/listings/:id/checkout-session", middleware.LoginRequired(cfg), checkoutHandler.CreateSession)

	// Admin store mutations (JWT + admin tier)
	admin := app.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Post("/cars", adminHandler.CreateCar)
	admin.Put("/cars/:id", adminHandler.UpdateCar)
	admin.Patch("/cars/:id/active", adminHandler.SetActive)
	admin.Delete("/cars/:id", adminHandler.DeleteCar)
	admin.Post("/cars/:id/photos", adminHandler.AttachPhoto)
	admin.Delete("/photos/:id", adminHandler.DeletePhoto)
}
