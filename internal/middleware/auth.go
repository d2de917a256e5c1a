package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jobtrail/jobtrail-api/internal/dto"
	"github.com/jobtrail/jobtrail-api/internal/models"
	"github.com/jobtrail/jobtrail-api/internal/services"
)

// Protected requires a valid bearer token and stores the resolved user in
// the request locals. Tokens are opaque; resolution goes through the session
// manager so sign-out and rotation take effect immediately.
func Protected(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		if !ok || token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: missing bearer token",
			})
		}

		user, err := auth.Authenticate(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid or expired token",
			})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// CurrentUser extracts the authenticated user placed by Protected.
func CurrentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals("user").(*models.User)
	return user, ok
}
