package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/songvault/modules/auth"
)

const (
	// UserContextKey is the key used to store the resolved user in the
	// Fiber context.
	UserContextKey = "user"
	// TokenContextKey is the key used to store the raw bearer token in the
	// Fiber context; song handlers pass it on so the scoped accessor can
	// resolve the caller itself.
	TokenContextKey = "token"
)

// AuthMiddleware creates a middleware that resolves the bearer token to a
// user. A missing header, a malformed header, an invalid or expired token,
// and a token for a deleted user all produce the same 401.
func AuthMiddleware(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Authorization header is required",
			})
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Invalid authorization header format. Use: Bearer <token>",
			})
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Token is required",
			})
		}

		user, err := authPort.CurrentUser(c.UserContext(), token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "Could not validate credentials",
			})
		}

		c.Locals(UserContextKey, user)
		c.Locals(TokenContextKey, token)

		return c.Next()
	}
}
