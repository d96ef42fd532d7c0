package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"fellowship/internal/auth"
	"fellowship/internal/config"
	"fellowship/internal/database"
	"fellowship/internal/handlers"
	"fellowship/internal/mail"
	"fellowship/internal/platform/account"
	"fellowship/internal/platform/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(&database.User{}, &database.AdminUser{}); err != nil {
		log.Fatal(err)
	}

	// A weak signing key is a fatal startup precondition.
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	if err != nil {
		log.Fatal(err)
	}

	if err := account.SeedSuperAdmin(db, cfg.SuperAdminEmail, cfg.SuperAdminPassword); err != nil {
		log.Fatal(err)
	}

	deps := handlers.Deps{
		Config: cfg,
		DB:     db,
		Tokens: tokens,
	}

	if cfg.GoogleClientID != "" {
		google, err := auth.NewGoogleVerifier(context.Background(), cfg.GoogleClientID)
		if err != nil {
			log.Fatal(err)
		}
		deps.Google = google
	} else {
		log.Println("no Google client ID configured, federated login disabled")
	}

	if cfg.MailgunDomain != "" {
		deps.Mailer = mail.NewMailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase)
	}

	if cfg.S3Bucket != "" {
		deps.Avatars = storage.NewAvatarStore(cfg.Storage())
	}

	app := fiber.New()

	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(healthcheck.New())

	handlers.RegisterRoutes(app, deps)

	log.Fatal(app.Listen(fmt.Sprintf(":%d", cfg.ServerPort)))
}
