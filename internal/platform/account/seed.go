package account

import (
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"fellowship/internal/auth"
	"fellowship/internal/database"
)

// SeedSuperAdmin creates the bootstrap super admin keyed on a well-known
// email. Idempotent: an existing account is left untouched. Without a
// bootstrap password seeding is skipped with a warning, not a crash.
func SeedSuperAdmin(db *gorm.DB, email, password string) error {
	email = normalizeEmail(email)

	var count int64
	if err := db.Model(&database.AdminUser{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Debug("super admin already exists")
		return nil
	}

	if password == "" {
		log.Warn("no super admin password configured, skipping seeding")
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := database.AdminUser{
		ID:           uuid.New(),
		FirstName:    "Super",
		LastName:     "Admin",
		Email:        email,
		PasswordHash: &hash,
		Role:         auth.RoleSuperAdmin.String(),
		IsActive:     true,
		CreatedAt:    now,
		LastLogin:    &now,
	}

	return db.Create(&admin).Error
}
