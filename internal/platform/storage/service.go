package storage

import (
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/storage/s3/v2"

	"fellowship/pkg/utils"
)

// AvatarStore saves uploaded profile pictures to object storage.
type AvatarStore interface {
	SaveAvatar(file *multipart.FileHeader, key string, c *fiber.Ctx) error
	IsAllowedImage(filename string) bool
	GenerateKeyName() string
}

type avatarStore struct {
	storage *s3.Storage
}

func NewAvatarStore(storage *s3.Storage) AvatarStore {
	return &avatarStore{storage: storage}
}

func (s *avatarStore) SaveAvatar(file *multipart.FileHeader, key string, c *fiber.Ctx) error {
	return c.SaveFileToStorage(file, key, s.storage)
}

func (s *avatarStore) IsAllowedImage(filename string) bool {
	allowedExtensions := []string{"jpg", "jpeg", "png", "webp"}
	for _, ext := range allowedExtensions {
		if strings.HasSuffix(strings.ToLower(filename), "."+ext) {
			return true
		}
	}
	return false
}

func (s *avatarStore) GenerateKeyName() string {
	return "avatars/" + strings.ToLower(utils.GenerateRandomString(16))
}
