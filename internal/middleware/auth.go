package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/ayushwahile/cloth-store-backend/internal/config"
	"github.com/ayushwahile/cloth-store-backend/internal/utils"
)

const ownerContextKey = "currentOwnerPhone"

// OwnerAuth validates session JWTs issued after owner-login OTP
// verification and loads the owner phone into context.
func OwnerAuth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		phone, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(ownerContextKey, phone)
		return c.Next()
	}
}

// GetCurrentOwnerPhone extracts the authenticated owner phone from context.
func GetCurrentOwnerPhone(c *fiber.Ctx) (string, bool) {
	value := c.Locals(ownerContextKey)
	if value == nil {
		return "", false
	}

	if phone, ok := value.(string); ok {
		return phone, true
	}

	return "", false
}
