package handlers

import (
	"github.com/gofiber/fiber/v2"

	"fellowship/internal/config"
	"fellowship/internal/platform/account"
)

func Register(c *fiber.Ctx) error {
	type RegisterInput struct {
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=6"`
	}

	var input RegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	response, err := authService(c).Register(account.RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Password:  input.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}

func Login(c *fiber.Ctx) error {
	type LoginInput struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var input LoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	response, err := authService(c).Login(input.Email, input.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}

func GoogleRegister(c *fiber.Ctx) error {
	type GoogleRegisterInput struct {
		IDToken   string  `json:"id_token" validate:"required"`
		Email     string  `json:"email" validate:"required,email"`
		FirstName string  `json:"first_name" validate:"required"`
		LastName  string  `json:"last_name" validate:"required"`
		AvatarURL *string `json:"avatar_url"`
	}

	var input GoogleRegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if c.Locals("google") == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Google sign-in is not configured"})
	}

	response, err := authService(c).GoogleRegister(c.Context(), account.GoogleRegisterInput{
		IDToken:   input.IDToken,
		Email:     input.Email,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		AvatarURL: input.AvatarURL,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}

func GoogleLogin(c *fiber.Ctx) error {
	type GoogleLoginInput struct {
		IDToken  string `json:"id_token" validate:"required"`
		GoogleID string `json:"google_id" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
	}

	var input GoogleLoginInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	if c.Locals("google") == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"message": "Google sign-in is not configured"})
	}

	response, err := authService(c).GoogleLogin(c.Context(), input.IDToken, input.GoogleID, input.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}
