package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/config"
	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/services"
	"github.com/teampulse/teampulse-backend/internal/slack"
)

// GetChannels lists the channels of the user's connected Slack workspace.
func GetChannels(svc *services.Services) fiber.Handler {
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
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":    "Slack not connected",
				"channels": []slack.Channel{},
			})
		}

		channels, err := svc.Slack.ListChannels(c.Context(), integration.AccessToken)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"channels": channels,
			"teamId":   integration.TeamID.String,
			"teamName": integration.TeamName.String,
		})
	}
}

// SlackWebhook handles Slack event callbacks: the URL verification
// challenge is echoed back, everything else must carry a valid signature.
func SlackWebhook(cfg *config.Config) fiber.Handler {
	log := logrus.WithField("component", "slack-webhook")

	return func(c *fiber.Ctx) error {
		var payload struct {
			Type      string `json:"type"`
			Challenge string `json:"challenge"`
		}
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid payload",
			})
		}

		if payload.Type == "url_verification" {
			log.Info("slack url verification challenge")
			c.Set("Content-Type", "text/plain")
			return c.SendString(payload.Challenge)
		}

		signature := c.Get("X-Slack-Signature")
		timestamp := c.Get("X-Slack-Request-Timestamp")
		if !slack.VerifySignature(cfg.Slack.SigningSecret, signature, timestamp, c.Body()) {
			log.Warn("invalid slack signature")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid signature",
			})
		}

		log.WithField("type", payload.Type).Info("slack event received")
		return c.JSON(fiber.Map{"ok": true})
	}
}
