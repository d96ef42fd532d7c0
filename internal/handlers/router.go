package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"fellowship/internal/auth"
	"fellowship/internal/config"
	"fellowship/internal/mail"
	"fellowship/internal/middleware"
	"fellowship/internal/platform/storage"
)

// Deps carries the process-wide collaborators handlers resolve through
// fiber Locals. Google, Mailer and Avatars may be nil when the matching
// feature is not configured.
type Deps struct {
	Config  *config.Config
	DB      *gorm.DB
	Tokens  *auth.TokenIssuer
	Google  auth.GoogleVerifier
	Mailer  mail.Mailer
	Avatars storage.AvatarStore
}

// RegisterRoutes mounts the API surface on the app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("config", deps.Config)
		c.Locals("db", deps.DB)
		c.Locals("tokens", deps.Tokens)
		if deps.Google != nil {
			c.Locals("google", deps.Google)
		}
		if deps.Mailer != nil {
			c.Locals("mailer", deps.Mailer)
		}
		if deps.Avatars != nil {
			c.Locals("storage", deps.Avatars)
		}
		return c.Next()
	})

	cfg := deps.Config
	protected := middleware.Protected(deps.Tokens)
	registerLimit := middleware.RateLimit(cfg.RegisterRateLimit, cfg.RateWindow())
	loginLimit := middleware.RateLimit(cfg.LoginRateLimit, cfg.RateWindow())

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", registerLimit, Register)
	authGroup.Post("/google-register", registerLimit, GoogleRegister)
	authGroup.Post("/login", loginLimit, Login)
	authGroup.Post("/google-login", loginLimit, GoogleLogin)

	admin := api.Group("/admin")
	admin.Post("/login", loginLimit, AdminLogin)
	admin.Post("/register-admin", protected, middleware.RequireRoles(auth.SuperAdminOnly), RegisterAdmin)
	admin.Get("/", protected, middleware.RequireRoles(auth.AnyAdmin), ListAdmins)
	admin.Get("/:id", protected, middleware.RequireRoles(auth.AnyAdmin), GetAdmin)
	admin.Delete("/:id", protected, middleware.RequireRoles(auth.SuperAdminOnly), DeleteAdmin)

	user := api.Group("/user", protected)
	user.Get("/profile/:id", middleware.RequireOwner("id", auth.AnyAdmin), GetProfile)
	user.Put("/profile/:id", middleware.RequireOwner("id", auth.RoleSet{}), UpdateProfile)
	user.Put("/password", ChangePassword)
	user.Post("/avatar", UploadAvatar)

	app.Use(func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNotFound)
	})
}
