package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/notehq/note-api/internal/services"
	"github.com/notehq/note-api/internal/utils"
)

// AssistHandler relays editor prompts to the configured AI endpoint
type AssistHandler struct {
	Client *services.AssistClient
}

type assistBody struct {
	Prompt string `json:"prompt"`
}

// Assist handles POST /api/assist
// @Summary Generate text for the editor from a prompt
// @Tags Assist
// @Accept json
// @Produce json
// @Param body body assistBody true "Prompt"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /assist [post]
func (h *AssistHandler) Assist(c *fiber.Ctx) error {
	if _, err := getUserID(c); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "assist")
	}

	var body assistBody
	if err := c.BodyParser(&body); err != nil || body.Prompt == "" {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "assist.validation.input")
	}

	text, err := h.Client.Complete(c.Context(), body.Prompt)
	if err != nil {
		if errors.Is(err, services.ErrAssistDisabled) {
			return utils.ErrorResponse(c, "Assist is not configured",
				fiber.StatusServiceUnavailable, "assist")
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadGateway, "assist")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"response": text,
	})
}
