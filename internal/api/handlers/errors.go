package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/teampulse/teampulse-backend/internal/asana"
	"github.com/teampulse/teampulse-backend/internal/blockers"
	"github.com/teampulse/teampulse-backend/internal/services"
	"github.com/teampulse/teampulse-backend/internal/slack"
	"github.com/teampulse/teampulse-backend/internal/summarizer"
)

// errorResponse maps a domain error to an HTTP status. Persistence and
// other unclassified failures stay 500.
func errorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, blockers.ErrInvalidArgument):
		status = fiber.StatusBadRequest
	case errors.Is(err, blockers.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrNotConnected):
		status = fiber.StatusUnauthorized
	case errors.Is(err, summarizer.ErrUpstream),
		errors.Is(err, summarizer.ErrMalformedResponse),
		errors.Is(err, slack.ErrUpstream),
		errors.Is(err, asana.ErrUpstream):
		status = fiber.StatusBadGateway
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
