package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"guestboard/middleware"
	"guestboard/services"
)

type UpdateProfileRequest struct {
	DisplayName      string `json:"display_name"`
	OrganizationName string `json:"organization_name"`
}

func GetProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	user, err := services.GetUserByID(c.Context(), userID)
	if err != nil {
		slog.Error("Failed to get profile", "error", err, "userID", userID)
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User not found",
		})
	}

	return c.JSON(fiber.Map{
		"profile": user,
	})
}

func UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.UserID(c)

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	user, err := services.UpdateProfile(c.Context(), userID, req.DisplayName, req.OrganizationName)
	if err != nil {
		slog.Error("Failed to update profile", "error", err, "userID", userID)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Profile updated",
		"profile": user,
	})
}
