package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fellowship/internal/config"
	"fellowship/internal/middleware"
	"fellowship/internal/platform/account"
	"fellowship/internal/platform/storage"
)

func GetProfile(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid account id"})
	}

	user, err := authService(c).GetUser(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

func UpdateProfile(c *fiber.Ctx) error {
	type UpdateInput struct {
		FirstName   *string `json:"first_name"`
		LastName    *string `json:"last_name"`
		PhoneNumber *string `json:"phone_number"`
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid account id"})
	}

	var input UpdateInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	user, err := authService(c).UpdateProfile(id, account.ProfileUpdateInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(user)
}

func ChangePassword(c *fiber.Ctx) error {
	type ChangePasswordInput struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}

	var input ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	accountID := c.Locals(middleware.LocalsAccountID).(uuid.UUID)

	if err := authService(c).ChangePassword(accountID, input.CurrentPassword, input.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func UploadAvatar(c *fiber.Ctx) error {
	cfg := c.Locals("config").(*config.Config)

	store, ok := c.Locals("storage").(storage.AvatarStore)
	if !ok {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Avatar storage is not configured"})
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Missing avatar file"})
	}

	if !store.IsAllowedImage(file.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unsupported file type"})
	}

	key := store.GenerateKeyName()
	if err := store.SaveAvatar(file, key, c); err != nil {
		return respondError(c, err)
	}

	url := fmt.Sprintf("%s/%s/%s", cfg.S3Endpoint, cfg.S3Bucket, key)

	accountID := c.Locals(middleware.LocalsAccountID).(uuid.UUID)
	if err := authService(c).SetAvatar(accountID, url); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"avatar_url": url})
}
