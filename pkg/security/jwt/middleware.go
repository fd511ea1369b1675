package jwt

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/daunku/daunku/pkg/auth"
)

// UserKey is the fiber.Ctx locals key holding the resolved auth.User.
const UserKey = "user"

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT
// (HS256) and resolves the token subject against the user store. On success
// the full user record is available via CurrentUser.
func NewAuthMiddleware(secret, expectedIssuer string, users auth.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "token not found"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token format"})
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token format"})
		}

		claims, err := Parse(tokenStr, secret, expectedIssuer)
		if err != nil {
			if errors.Is(err, ErrExpiredToken) {
				return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "expired token"})
			}
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token"})
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token"})
		}
		user, err := users.GetByID(c.Context(), userID)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "user not found for token"})
		}

		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user attached by the auth middleware. The second
// return is false on routes that did not pass through it.
func CurrentUser(c *fiber.Ctx) (auth.User, bool) {
	user, ok := c.Locals(UserKey).(auth.User)
	return user, ok
}
