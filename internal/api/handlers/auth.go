package handlers

import (
	"encoding/base64"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/teampulse/teampulse-backend/internal/api/middleware"
	"github.com/teampulse/teampulse-backend/internal/asana"
	"github.com/teampulse/teampulse-backend/internal/config"
	"github.com/teampulse/teampulse-backend/internal/models"
	"github.com/teampulse/teampulse-backend/internal/services"
)

var authLog = logrus.WithField("component", "auth")

// oauthState rides through the provider consent screen as base64 JSON.
type oauthState struct {
	UserID string `json:"userId"`
}

func encodeState(userID string) string {
	raw, _ := json.Marshal(oauthState{UserID: userID})
	return base64.StdEncoding.EncodeToString(raw)
}

func decodeState(state string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(state)
	if err != nil {
		return "", err
	}
	var s oauthState
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", err
	}
	return s.UserID, nil
}

// SlackConnect starts the Slack OAuth flow with a redirect to the consent
// screen. Browser navigation, so the user rides in a query parameter
// rather than a bearer token.
func SlackConnect(svc *services.Services, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("userId")
		if userID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "userId required",
			})
		}

		redirectURI := cfg.URLs.APIBase + "/api/auth/slack/oauth/callback"
		return c.Redirect(svc.Slack.AuthorizeURL(cfg.Slack.ClientID, redirectURI, encodeState(userID)))
	}
}

// SlackOAuthCallback finishes the Slack OAuth flow and stores the
// integration. Failures redirect back to the frontend with an error code.
func SlackOAuthCallback(svc *services.Services, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		integrationsURL := cfg.URLs.Frontend + "/app/integrations"

		if errParam := c.Query("error"); errParam != "" {
			authLog.WithField("error", errParam).Error("slack oauth denied")
			return c.Redirect(integrationsURL + "?error=slack_auth_failed")
		}

		code := c.Query("code")
		state := c.Query("state")
		if code == "" || state == "" {
			return c.Redirect(integrationsURL + "?error=missing_params")
		}

		userID, err := decodeState(state)
		if err != nil || userID == "" {
			return c.Redirect(integrationsURL + "?error=invalid_state")
		}

		redirectURI := cfg.URLs.APIBase + "/api/auth/slack/oauth/callback"
		res, err := svc.Slack.ExchangeOAuthCode(c.Context(), cfg.Slack.ClientID, cfg.Slack.ClientSecret, redirectURI, code)
		if err != nil {
			authLog.WithError(err).Error("slack oauth exchange failed")
			return c.Redirect(integrationsURL + "?error=oauth_failed")
		}

		if err := svc.Integration.SaveSlack(c.Context(), userID, res); err != nil {
			authLog.WithError(err).Error("saving slack integration failed")
			return c.Redirect(integrationsURL + "?error=oauth_failed")
		}

		return c.Redirect(integrationsURL + "?success=slack_connected")
	}
}

// SlackStatus reports whether the user has Slack connected.
func SlackStatus(svc *services.Services) fiber.Handler {
	return integrationStatus(svc, models.PlatformSlack, func(i *models.Integration) fiber.Map {
		return fiber.Map{"connected": true, "team": i.TeamName.String}
	}, fiber.Map{"connected": false, "team": nil})
}

// SlackDisconnect removes the user's Slack integration.
func SlackDisconnect(svc *services.Services) fiber.Handler {
	return disconnect(svc, models.PlatformSlack)
}

// AsanaConnect starts the Asana OAuth flow.
func AsanaConnect(svc *services.Services, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("userId")
		if userID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "userId required",
			})
		}

		redirectURI := cfg.URLs.APIBase + "/api/auth/asana/oauth/callback"
		return c.Redirect(svc.Asana.AuthorizeURL(cfg.Asana.ClientID, redirectURI, encodeState(userID)))
	}
}

// AsanaOAuthCallback finishes the Asana OAuth flow, looks up the user's
// primary workspace and stores the integration.
func AsanaOAuthCallback(svc *services.Services, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		integrationsURL := cfg.URLs.Frontend + "/app/integrations"

		if errParam := c.Query("error"); errParam != "" {
			authLog.WithField("error", errParam).Error("asana oauth denied")
			return c.Redirect(integrationsURL + "?error=asana_auth_failed")
		}

		code := c.Query("code")
		state := c.Query("state")
		if code == "" || state == "" {
			return c.Redirect(integrationsURL + "?error=missing_params")
		}

		userID, err := decodeState(state)
		if err != nil || userID == "" {
			return c.Redirect(integrationsURL + "?error=invalid_state")
		}

		redirectURI := cfg.URLs.APIBase + "/api/auth/asana/oauth/callback"
		res, err := svc.Asana.ExchangeOAuthCode(c.Context(), cfg.Asana.ClientID, cfg.Asana.ClientSecret, redirectURI, code)
		if err != nil {
			authLog.WithError(err).Error("asana oauth exchange failed")
			return c.Redirect(integrationsURL + "?error=oauth_failed")
		}

		workspaces, err := svc.Asana.Workspaces(c.Context(), res.AccessToken)
		if err != nil {
			authLog.WithError(err).Error("asana workspace lookup failed")
			return c.Redirect(integrationsURL + "?error=oauth_failed")
		}

		var workspace *asana.Workspace
		if len(workspaces) > 0 {
			workspace = &workspaces[0]
		}
		if err := svc.Integration.SaveAsana(c.Context(), userID, res, workspace); err != nil {
			authLog.WithError(err).Error("saving asana integration failed")
			return c.Redirect(integrationsURL + "?error=oauth_failed")
		}

		return c.Redirect(integrationsURL + "?success=asana_connected")
	}
}

// AsanaStatus reports whether the user has Asana connected.
func AsanaStatus(svc *services.Services) fiber.Handler {
	return integrationStatus(svc, models.PlatformAsana, func(i *models.Integration) fiber.Map {
		return fiber.Map{"connected": true, "workspace": i.WorkspaceName.String}
	}, fiber.Map{"connected": false, "workspace": nil})
}

// AsanaDisconnect removes the user's Asana integration.
func AsanaDisconnect(svc *services.Services) fiber.Handler {
	return disconnect(svc, models.PlatformAsana)
}

func integrationStatus(svc *services.Services, platform string, connected func(*models.Integration) fiber.Map, notConnected fiber.Map) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		integration, err := svc.Integration.Get(c.Context(), user.UserID, platform)
		if err != nil {
			return errorResponse(c, err)
		}
		if integration == nil {
			return c.JSON(notConnected)
		}
		return c.JSON(connected(integration))
	}
}

func disconnect(svc *services.Services, platform string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := middleware.GetUserContext(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		if err := svc.Integration.Disconnect(c.Context(), user.UserID, platform); err != nil {
			return errorResponse(c, err)
		}
		return c.JSON(fiber.Map{"success": true})
	}
}
