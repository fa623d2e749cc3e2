package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/services"
)

// GenerateSummary runs the summary pipeline for one channel.
func GenerateSummary(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req struct {
			ChannelID string `json:"channelId"`
			Hours     int    `json:"hours"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}
		if req.ChannelID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "channelId required",
			})
		}

		summary, err := svc.Summary.GenerateForChannel(c.Context(), user.UserID, req.ChannelID, req.Hours)
		if err != nil {
			return errorResponse(c, err)
		}
		if summary == nil {
			return c.JSON(fiber.Map{
				"summary": nil,
				"message": "No messages in the selected window",
			})
		}

		return c.JSON(fiber.Map{"summary": summary})
	}
}

// GetSummaries lists the newest summaries for the user's team.
func GetSummaries(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		limit := c.QueryInt("limit", 10)

		summaries, err := svc.Summary.ListForUser(c.Context(), user.UserID, limit)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(summaries)
	}
}
