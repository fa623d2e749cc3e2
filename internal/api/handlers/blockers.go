package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/services"
)

// ResolveBlocker marks one blocker of a summary as resolved.
func ResolveBlocker(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req struct {
			SummaryID  string `json:"summaryId"`
			BlockIndex *int   `json:"blockIndex"`
			ResolvedAt string `json:"resolvedAt"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		// The timestamp is caller-supplied on purpose: the client controls
		// the recorded resolution time.
		if req.SummaryID == "" || req.BlockIndex == nil || req.ResolvedAt == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   "Missing required fields: summaryId, blockIndex, resolvedAt",
			})
		}

		overlay, err := svc.Blockers.Resolve(c.Context(), req.SummaryID, *req.BlockIndex, user.UserID, req.ResolvedAt)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"success":        true,
			"message":        "Blocker resolved successfully",
			"blocker_status": overlay,
		})
	}
}

// GetBlockerStatus returns the stored resolution overlay for a summary.
// Indexes never resolved are absent; readers treat absence as active.
func GetBlockerStatus(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		summaryID := c.Params("summaryId")

		overlay, err := svc.Blockers.Status(c.Context(), summaryID)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"success":        true,
			"blocker_status": overlay,
		})
	}
}

// ListBlockers returns the team's summaries that detected blockers,
// newest first, with their overlays attached as stored.
func ListBlockers(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		integration, err := svc.Integration.Get(c.Context(), user.UserID, models.PlatformSlack)
		if err != nil {
			return errorResponse(c, err)
		}
		if integration == nil {
			return c.JSON(fiber.Map{"summaries": []models.Summary{}})
		}

		summaries, err := svc.Blockers.ListActiveByTeam(c.Context(), integration.TeamID.String)
		if err != nil {
			return errorResponse(c, err)
		}
		if summaries == nil {
			summaries = []models.Summary{}
		}

		return c.JSON(fiber.Map{"summaries": summaries})
	}
}
