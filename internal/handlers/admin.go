package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"fellowship/internal/config"
	"fellowship/internal/middleware"
	"fellowship/internal/platform/account"
)

func AdminLogin(c *fiber.Ctx) error {
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

	response, err := adminService(c).AdminLogin(input.Email, input.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(response)
}

func RegisterAdmin(c *fiber.Ctx) error {
	type AdminRegisterInput struct {
		FirstName   string  `json:"first_name" validate:"required"`
		LastName    string  `json:"last_name" validate:"required"`
		Email       string  `json:"email" validate:"required,email"`
		Password    string  `json:"password" validate:"required,min=6"`
		Role        string  `json:"role" validate:"required"`
		PhoneNumber *string `json:"phone_number"`
		Country     *string `json:"country"`
		State       *string `json:"state"`
		Address     *string `json:"address"`
	}

	var input AdminRegisterInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid input"})
	}

	if err := config.Validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	callerID := c.Locals(middleware.LocalsAccountID).(uuid.UUID)

	admin, err := adminService(c).CreateAdmin(callerID, account.AdminRegisterInput{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		Password:    input.Password,
		Role:        input.Role,
		PhoneNumber: input.PhoneNumber,
		Country:     input.Country,
		State:       input.State,
		Address:     input.Address,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"id":           admin.ID,
		"first_name":   admin.FirstName,
		"last_name":    admin.LastName,
		"email":        admin.Email,
		"phone_number": admin.PhoneNumber,
		"role":         admin.Role,
		"created_at":   admin.CreatedAt,
		"message":      "Admin created successfully",
	})
}

func GetAdmin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid admin id"})
	}

	admin, err := adminService(c).GetAdmin(id)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(admin)
}

func ListAdmins(c *fiber.Ctx) error {
	var pagination account.Pagination
	if err := c.QueryParser(&pagination); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid query"})
	}

	filter := account.AdminFilter{
		FirstName: c.Query("first_name"),
		LastName:  c.Query("last_name"),
		Email:     c.Query("email"),
		State:     c.Query("state"),
	}

	page, err := adminService(c).ListAdmins(pagination, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(page)
}

func DeleteAdmin(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid admin id"})
	}

	callerID := c.Locals(middleware.LocalsAccountID).(uuid.UUID)

	if err := adminService(c).DeleteAdmin(callerID, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Admin deleted successfully", "id": id})
}
