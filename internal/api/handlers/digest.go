package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/services"
)

// SendDigest emails the caller their recent summaries on demand. The
// scheduled nightly send runs outside this service, so this endpoint
// doubles as its delivery path and a manual trigger.
func SendDigest(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}
		if user.Email == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "No email address on token",
			})
		}

		settings, err := svc.Settings.Get(c.Context(), user.UserID)
		if err != nil {
			return errorResponse(c, err)
		}
		if !settings.DailyDigest {
			return c.JSON(fiber.Map{"sent": false, "reason": "digest disabled"})
		}

		summaries, err := svc.Summary.ListForUser(c.Context(), user.UserID, 10)
		if err != nil {
			return errorResponse(c, err)
		}

		if err := svc.Digest.SendDaily(c.Context(), user.Email, summaries); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"sent": true, "summaries": len(summaries)})
	}
}
