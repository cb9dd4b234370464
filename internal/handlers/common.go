package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/notehq/note-api/internal/middleware"
	"github.com/notehq/note-api/internal/services"
	"github.com/notehq/note-api/internal/utils"
)

// getUserID extracts the authenticated user id from context (set by auth middleware)
func getUserID(c *fiber.Ctx) (uint64, error) {
	userID, ok := c.Locals(middleware.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, fmt.Errorf("user not found in context")
	}
	return userID, nil
}

// parseDocumentID parses the :id path parameter as a positive integer.
// Invalid shapes are rejected here and never reach the resolver.
func parseDocumentID(c *fiber.Ctx) (uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid document id")
	}
	return id, nil
}

// serviceErrorResponse maps service-layer errors to the uniform error
// envelope. Unrecognized errors are storage faults and surface as 500.
func serviceErrorResponse(c *fiber.Ctx, err error, errorType string) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, "Not found")
	case errors.Is(err, services.ErrDenied):
		return utils.ErrorResponse(c, "Forbidden", fiber.StatusForbidden, errorType)
	case errors.Is(err, services.ErrUserNotFound):
		return utils.ErrorResponse(c, "No account exists with that email", fiber.StatusNotFound, errorType)
	case errors.Is(err, services.ErrInvalidOperation):
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, errorType)
	case errors.Is(err, services.ErrEmailTaken):
		return utils.ErrorResponse(c, "User already exists with this email", fiber.StatusConflict, errorType)
	case errors.Is(err, services.ErrInvalidCredentials):
		return utils.ErrorResponse(c, "Invalid email or password", fiber.StatusUnauthorized, errorType)
	default:
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, errorType)
	}
}
