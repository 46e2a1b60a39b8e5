package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/motorplaza/motorplaza-backend/internal/config"
	"github.com/motorplaza/motorplaza-backend/internal/dto"
)

// Tokens are accepted from the Authorization header or the access_token
// cookie, so both API clients and browser flows work.
const tokenLookup = "header:Authorization,cookie:access_token"

// JWTProtected rejects unauthenticated requests with a 401 JSON body.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: tokenLookup,
		// A custom TokenLookup disables the library's Bearer default, so
		// the scheme has to be spelled out or header tokens never parse.
		AuthScheme: "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// LoginRequired guards the purchase pages: unauthenticated requests are
// redirected to the login screen instead of getting a JSON error.
func LoginRequired(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: tokenLookup,
		AuthScheme:  "Bearer",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Redirect(cfg.LoginPath, fiber.StatusFound)
		},
	})
}

var errNoUser = errors.New("no authenticated user in context")

// CurrentUserID extracts the authenticated user's id from the verified JWT.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return uuid.Nil, errNoUser
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errNoUser
	}
	sub, _ := claims["sub"].(string)
	return uuid.Parse(sub)
}
