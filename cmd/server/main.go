package main

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/teampulse/teampulse-backend/internal/api"
	"github.com/teampulse/teampulse-backend/internal/auth"
	"github.com/teampulse/teampulse-backend/internal/config"
	"github.com/teampulse/teampulse-backend/internal/database"
	"github.com/teampulse/teampulse-backend/internal/repository/postgres"
	"github.com/teampulse/teampulse-backend/internal/services"
	"github.com/teampulse/teampulse-backend/internal/summarizer"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	// Connect to database
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	// Initialize repositories
	summaryRepo := postgres.NewSummaryRepository(db.DB)
	integrationRepo := postgres.NewIntegrationRepository(db.DB)
	settingsRepo := postgres.NewSettingsRepository(db.DB)

	summarizerClient, err := newSummarizerClient(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize summarizer")
	}

	svc := services.NewServices(cfg, summaryRepo, integrationRepo, settingsRepo, summarizerClient)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "TeamPulse Backend",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.URLs.Frontend,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	api.SetupRoutes(app, svc, verifier, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logrus.WithField("addr", addr).Info("TeamPulse backend starting")
	if err := app.Listen(addr); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}

func newSummarizerClient(cfg *config.Config) (summarizer.Client, error) {
	switch cfg.Summarizer.Provider {
	case "groq":
		return summarizer.NewGroqClient(cfg.Summarizer.GroqAPIKey, cfg.Summarizer.Model, cfg.Summarizer.MaxTokens)
	default:
		return summarizer.NewAnthropicClient(cfg.Summarizer.AnthropicAPIKey, cfg.Summarizer.Model, cfg.Summarizer.MaxTokens)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
