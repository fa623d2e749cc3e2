package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/teampulse/teampulse-backend/internal/auth"
)

const userContextKey = "user_context"

// UserContext is the authenticated caller stored in the request Locals.
type UserContext struct {
	UserID string
	Email  string
}

// AuthRequired creates a middleware that requires a valid bearer token.
func AuthRequired(verifier *auth.Verifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := auth.ExtractBearer(c.Get("Authorization"))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No token provided",
			})
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		c.Locals(userContextKey, &UserContext{
			UserID: claims.UserID(),
			Email:  claims.Email,
		})
		return c.Next()
	}
}

// GetUserContext returns the authenticated user, nil when the request was
// not authenticated.
func GetUserContext(c *fiber.Ctx) *UserContext {
	user, _ := c.Locals(userContextKey).(*UserContext)
	return user
}
