package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fellowship/internal/auth"
)

// RequireRoles stops the request with 403 unless the token role is in the
// given policy set. Must run after Protected.
func RequireRoles(allowed auth.RoleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals(LocalsClaims).(*auth.Claims)

		if !allowed.Contains(claims.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
		}

		return c.Next()
	}
}

// RequireOwner enforces that the token subject matches the account id in
// the named path parameter. Roles in the admin allow-list bypass the
// ownership check.
func RequireOwner(param string, adminAllowList auth.RoleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := c.Locals(LocalsClaims).(*auth.Claims)
		accountID := c.Locals(LocalsAccountID).(uuid.UUID)

		ownerID, err := uuid.Parse(c.Params(param))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid account id"})
		}

		if accountID != ownerID && !adminAllowList.Contains(claims.Role) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Forbidden"})
		}

		return c.Next()
	}
}
