package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/notehq/note-api/internal/types"
	"github.com/notehq/note-api/internal/utils"
)

// UserIDKey is the context local holding the authenticated user id.
const UserIDKey = "userID"

// RequireAuth validates the Bearer token on the request and stores the
// authenticated user id in the request context. Access rights are not
// decided here; every handler re-resolves them against the store.
func RequireAuth(secret []byte) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return types.NewCustomError(fiber.StatusUnauthorized,
				"No token provided", "auth.token.missing")
		}

		token := authHeader
		if strings.HasPrefix(authHeader, "Bearer ") {
			token = authHeader[len("Bearer "):]
		}

		claims, err := utils.ExtractClaims(secret, token)
		if err != nil {
			return types.NewCustomError(fiber.StatusUnauthorized,
				"Invalid token", "auth.token.invalid")
		}

		sub, ok := claims["sub"].(string)
		if !ok {
			return types.NewCustomError(fiber.StatusForbidden,
				"Invalid token format", "auth.token.format")
		}

		userID, err := strconv.ParseUint(sub, 10, 64)
		if err != nil || userID == 0 {
			return types.NewCustomError(fiber.StatusForbidden,
				"Invalid token format", "auth.token.format")
		}

		c.Locals(UserIDKey, userID)

		return c.Next()
	}
}
