package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/motorplaza/motorplaza-backend/internal/config"
	"github.com/motorplaza/motorplaza-backend/internal/dto"
	"github.com/motorplaza/motorplaza-backend/internal/services"
)

type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{authService: authService, cfg: cfg}
}

// SignUpForm handles GET /signup: the field descriptor the client renders.
func (h *AuthHandler) SignUpForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"fields": []fiber.Map{
			{"name": "email", "type": "email", "required": true},
			{"name": "password", "type": "password", "required": true, "min_length": 8},
			{"name": "first_name", "type": "text", "required": false},
			{"name": "last_name", "type": "text", "required": false},
		},
		"action": "/signup",
	})
}

// SignUp handles POST /signup. On success the client is pointed at the
// login screen with a confirmation notice.
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and a password of at least 8 characters are required",
		})
	}

	resp, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already registered",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create account",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Account created. Log in to continue with your purchase.",
		"redirect": h.cfg.LoginPath,
		"user":     resp.User,
	})
}

// Login handles POST /login. Besides the JSON token pair it sets the
// access_token cookie so the browser purchase flow stays authenticated.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Email and password are required",
		})
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid email or password",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    resp.AccessToken,
		Expires:  time.Now().Add(h.cfg.JWTAccessExpiry),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.JSON(resp)
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Refresh token is required",
		})
	}

	resp, err := h.authService.Refresh(&req)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid or expired refresh token",
		})
	}
	return c.JSON(resp)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req dto.RefreshRequest
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Refresh token is required",
		})
	}

	if err := h.authService.Logout(&req); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to log out",
		})
	}

	c.ClearCookie("access_token")
	return c.JSON(fiber.Map{"message": "Logged out"})
}
