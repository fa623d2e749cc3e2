package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/services"
)

// GetSettings returns the user's preferences, defaults if never saved.
func GetSettings(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		settings, err := svc.Settings.Get(c.Context(), user.UserID)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(settings)
	}
}

// UpdateSettings saves the user's preferences.
func UpdateSettings(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req models.UserSettings
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		req.UserID = user.UserID

		settings, err := svc.Settings.Update(c.Context(), &req)
		if err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(settings)
	}
}
