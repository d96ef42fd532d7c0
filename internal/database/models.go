package database

import (
	"time"

	"github.com/google/uuid"
)

// User is a self-registered member account. Members and admins live in
// separate tables; the same email may exist in both namespaces.
type User struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Email               string     `json:"email" gorm:"uniqueIndex"`
	PhoneNumber         *string    `json:"phone_number"`
	AvatarURL           *string    `json:"avatar_url"`
	PasswordHash        *string    `json:"-"`
	GoogleID            *string    `json:"-" gorm:"index"`
	Role                string     `json:"role" gorm:"index;default:'Member'"`
	IsActive            bool       `json:"is_active" gorm:"default:true"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	AccountLockedUntil  *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	LastLogin           *time.Time `json:"last_login"`
}

func (u *User) TableName() string {
	return "users"
}

// AdminUser starts inactive and is activated by its first successful login.
type AdminUser struct {
	ID                  uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	Email               string     `json:"email" gorm:"uniqueIndex"`
	PhoneNumber         *string    `json:"phone_number"`
	AvatarURL           *string    `json:"avatar_url"`
	Country             *string    `json:"country"`
	State               *string    `json:"state"`
	Address             *string    `json:"address"`
	PasswordHash        *string    `json:"-"`
	Role                string     `json:"role" gorm:"index"`
	IsActive            bool       `json:"is_active" gorm:"default:false"`
	FailedLoginAttempts int        `json:"-" gorm:"default:0"`
	AccountLockedUntil  *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	LastLogin           *time.Time `json:"last_login"`
}

func (a *AdminUser) TableName() string {
	return "admins"
}
