package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/asana"
	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/services"
)

func asanaIntegration(c *fiber.Ctx, svc *services.Services) (*models.Integration, error) {
	user := middleware.GetUserContext(c)
	if user == nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Not authenticated",
		})
	}

	integration, err := svc.Integration.Get(c.Context(), user.UserID, models.PlatformAsana)
	if err != nil {
		return nil, errorResponse(c, err)
	}
	if integration == nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Asana not connected",
		})
	}
	return integration, nil
}

// GetProjects lists the unarchived projects of the user's workspace.
func GetProjects(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		integration, err := asanaIntegration(c, svc)
		if integration == nil {
			return err
		}

		projects, err := svc.Asana.Projects(c.Context(), integration.AccessToken, integration.WorkspaceID.String)
		if err != nil {
			return errorResponse(c, err)
		}

		active := make([]asana.Project, 0, len(projects))
		for _, p := range projects {
			if !p.Archived {
				active = append(active, p)
			}
		}

		return c.JSON(fiber.Map{"projects": active})
	}
}

// GetProjectHealth returns completion/overdue metrics for one project plus
// a sample of its tasks.
func GetProjectHealth(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		integration, err := asanaIntegration(c, svc)
		if integration == nil {
			return err
		}

		projectID := c.Params("projectId")
		tasks, err := svc.Asana.TasksForProject(c.Context(), integration.AccessToken, projectID)
		if err != nil {
			return errorResponse(c, err)
		}

		health := asana.CalculateProjectHealth(tasks, time.Now())

		sample := tasks
		if len(sample) > 10 {
			sample = sample[:10]
		}

		return c.JSON(fiber.Map{
			"health": health,
			"tasks":  sample,
		})
	}
}

// GetWorkload returns per-assignee task counts across the workspace.
func GetWorkload(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		integration, err := asanaIntegration(c, svc)
		if integration == nil {
			return err
		}

		tasks, err := svc.Asana.AllTasks(c.Context(), integration.AccessToken, integration.WorkspaceID.String)
		if err != nil {
			return errorResponse(c, err)
		}

		return c.JSON(fiber.Map{
			"workload": asana.CalculateWorkload(tasks, time.Now()),
		})
	}
}
