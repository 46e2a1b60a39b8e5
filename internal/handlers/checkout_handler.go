package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/config"
	"github.com/motorplaza/motorplaza-backend/internal/middleware"
	"github.com/motorplaza/motorplaza-backend/internal/models"
	"github.com/motorplaza/motorplaza-backend/internal/payment"
	"github.com/motorplaza/motorplaza-backend/internal/services"
	"gorm.io/gorm"
)

type CheckoutHandler struct {
	checkoutService *services.CheckoutService
	listingService  *services.ListingService
	authService     *services.AuthService
	cfg             *config.Config
}

func NewCheckoutHandler(
	checkoutService *services.CheckoutService,
	listingService *services.ListingService,
	authService *services.AuthService,
	cfg *config.Config,
) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		listingService:  listingService,
		authService:     authService,
		cfg:             cfg,
	}
}

// BuyPage handles GET /listings/:id/buy for authenticated users: the car
// plus the publishable key the client-side checkout needs.
func (h *CheckoutHandler) BuyPage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	car, err := h.listingService.Get(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Listing not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load listing"})
	}

	return c.JSON(fiber.Map{
		"car":                    car,
		"stripe_publishable_key": h.cfg.StripePublishableKey,
	})
}

// CreateSession handles POST /listings/:id/checkout-session.
func (h *CheckoutHandler) CreateSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing ID"})
	}

	user, err := h.currentUser(c)
	if err != nil {
		return c.Redirect(h.cfg.LoginPath, fiber.StatusFound)
	}

	sessionID, err := h.checkoutService.CreateSession(c.UserContext(), id, user)
	if err != nil {
		return h.mapCheckoutError(c, err)
	}

	return c.JSON(fiber.Map{"sessionId": sessionID})
}

func (h *CheckoutHandler) currentUser(c *fiber.Ctx) (*models.User, error) {
	userID, err := middleware.CurrentUserID(c)
	if err != nil {
		return nil, err
	}
	return h.authService.FindUser(userID)
}

func (h *CheckoutHandler) mapCheckoutError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrGatewayNotConfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Payment gateway is not configured. Contact the administrator.",
		})
	case errors.Is(err, services.ErrInvalidPrice):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "This listing does not have a valid price.",
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Listing not found",
		})
	}

	var gatewayErr *payment.GatewayError
	if errors.As(err, &gatewayErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to create payment session: " + gatewayErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Failed to create payment session",
	})
}
