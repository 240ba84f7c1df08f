package middleware

import (
	"strings"

	"storefront/internal/apperrors"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// AuthRequired is a Fiber middleware that admits requests carrying a valid
// access token and stores the caller in the context.
func AuthRequired(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return apperrors.Authorization("Authentication credentials were not provided.")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return apperrors.Authorization("Authorization header format must be 'Bearer <token>'")
		}

		user, err := authService.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			logrus.WithError(err).WithField("path", c.Path()).Debug("JWT validation failed")
			return err
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		return c.Next()
	}
}
