package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"fellowship/internal/auth"
)

// Locals keys set by the authentication gate.
const (
	LocalsClaims    = "claims"
	LocalsAccountID = "account_id"
)

// Protected validates the bearer token and exposes the claims to the
// handler. Missing or invalid tokens stop the request with 401.
func Protected(tokens *auth.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}

		claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}

		accountID, err := claims.AccountID()
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		}

		c.Locals(LocalsClaims, claims)
		c.Locals(LocalsAccountID, accountID)

		return c.Next()
	}
}
