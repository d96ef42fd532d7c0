package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"fellowship/internal/auth"
	"fellowship/internal/config"
	"fellowship/internal/mail"
	"fellowship/internal/platform/account"
)

func lockPolicy(cfg *config.Config) auth.LockPolicy {
	return auth.LockPolicy{
		Threshold:    cfg.LockoutThreshold,
		LockDuration: cfg.LockoutDuration(),
	}
}

func authService(c *fiber.Ctx) *account.Service {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)
	tokens := c.Locals("tokens").(*auth.TokenIssuer)

	var google auth.GoogleVerifier
	if v := c.Locals("google"); v != nil {
		google = v.(auth.GoogleVerifier)
	}

	return account.NewService(db, tokens, lockPolicy(cfg), google)
}

func adminService(c *fiber.Ctx) *account.AdminService {
	cfg := c.Locals("config").(*config.Config)
	db := c.Locals("db").(*gorm.DB)
	tokens := c.Locals("tokens").(*auth.TokenIssuer)

	svc := account.NewAdminService(db, tokens, lockPolicy(cfg))
	if m := c.Locals("mailer"); m != nil {
		svc = svc.WithMailer(m.(mail.Mailer), cfg.MailFrom)
	}

	return svc
}

// respondError translates service errors into HTTP statuses with a plain
// {message} body. Unclassified errors are logged server-side and surfaced
// as a generic 500.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, account.ErrValidation),
		errors.Is(err, account.ErrInvalidAdminRole),
		errors.Is(err, account.ErrSelfDeletion):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, account.ErrInvalidCredentials),
		errors.Is(err, account.ErrInvalidGoogleToken):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, account.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, account.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, account.ErrEmailExists),
		errors.Is(err, account.ErrPasswordAccount):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, account.ErrAccountLocked):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"message": err.Error()})
	default:
		log.Errorf("unhandled error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}
}
