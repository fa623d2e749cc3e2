package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teampulse/teampulse-backend/internal/api/handlers"
	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/auth"
	"github.com/teampulse/teampulse-backend/internal/config"
	"github.com/teampulse/teampulse-backend/internal/services"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, svc *services.Services, verifier *auth.Verifier, cfg *config.Config) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "teampulse-backend",
			"status":  "running",
		})
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "teampulse-backend",
		})
	})

	api := app.Group("/api")
	authRequired := middleware.AuthRequired(verifier)

	// Slack events arrive unauthenticated, signature-verified instead.
	api.Post("/slack/webhook", handlers.SlackWebhook(cfg))
	api.Get("/slack/channels", authRequired, handlers.GetChannels(svc))

	api.Post("/summaries/generate", authRequired, handlers.GenerateSummary(svc))
	api.Get("/summaries", authRequired, handlers.GetSummaries(svc))

	api.Post("/blockers/resolve", authRequired, handlers.ResolveBlocker(svc))
	api.Get("/blockers", authRequired, handlers.ListBlockers(svc))
	api.Get("/blockers/:summaryId", authRequired, handlers.GetBlockerStatus(svc))

	// OAuth connect/callback are browser redirects, no bearer token.
	authGroup := api.Group("/auth")
	authGroup.Get("/slack/connect", handlers.SlackConnect(svc, cfg))
	authGroup.Get("/slack/oauth/callback", handlers.SlackOAuthCallback(svc, cfg))
	authGroup.Get("/slack/status", authRequired, handlers.SlackStatus(svc))
	authGroup.Delete("/slack/disconnect", authRequired, handlers.SlackDisconnect(svc))

	authGroup.Get("/asana/connect", handlers.AsanaConnect(svc, cfg))
	authGroup.Get("/asana/oauth/callback", handlers.AsanaOAuthCallback(svc, cfg))
	authGroup.Get("/asana/status", authRequired, handlers.AsanaStatus(svc))
	authGroup.Delete("/asana/disconnect", authRequired, handlers.AsanaDisconnect(svc))

	authGroup.Get("/settings", authRequired, handlers.GetSettings(svc))
	authGroup.Post("/settings", authRequired, handlers.UpdateSettings(svc))

	api.Post("/digest/send", authRequired, handlers.SendDigest(svc))

	api.Get("/asana/projects", authRequired, handlers.GetProjects(svc))
	api.Get("/asana/projects/:projectId/health", authRequired, handlers.GetProjectHealth(svc))
	api.Get("/asana/workload", authRequired, handlers.GetWorkload(svc))
}
