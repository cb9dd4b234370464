package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/notehq/note-api/internal/models"
	"github.com/notehq/note-api/internal/services"
	"github.com/notehq/note-api/internal/types"
	"github.com/notehq/note-api/internal/utils"
	"gorm.io/gorm"
)

// CollaboratorHandler handles collaborator management routes.
// All operations are owner-only; the service layer enforces that.
type CollaboratorHandler struct {
	DB *gorm.DB
}

type inviteBody struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type roleUpdateBody struct {
	UserID types.FlexUint64 `json:"userId"`
	Role   string           `json:"role"`
}

// ListCollaborators handles GET /api/documents/:id/collaborators
// @Summary List a document's collaborators
// @Tags Collaborators
// @Produce json
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id}/collaborators [get]
func (h *CollaboratorHandler) ListCollaborators(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "collaborators.list")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "collaborators.validation.input")
	}

	views, err := services.ListCollaborators(h.DB, userID, documentID)
	if err != nil {
		return serviceErrorResponse(c, err, "collaborators.list")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"collaborators": views,
	})
}

// InviteCollaborator handles POST /api/documents/:id/collaborators
// @Summary Invite a collaborator by email
// @Description Re-inviting an existing collaborator overwrites the role
// @Tags Collaborators
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param body body inviteBody true "Invitee email and role (view or edit)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id}/collaborators [post]
func (h *CollaboratorHandler) InviteCollaborator(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "collaborators.invite")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "collaborators.validation.input")
	}

	var body inviteBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "collaborators.validation.input")
	}

	if body.Email == "" || !models.ValidRole(body.Role) {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "collaborators.validation.input")
	}

	grantID, err := services.InviteCollaborator(h.DB, userID, documentID, body.Email, body.Role)
	if err != nil {
		return serviceErrorResponse(c, err, "collaborators.invite")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":   grantID,
		"role": body.Role,
	})
}

// UpdateCollaboratorRole handles PUT /api/documents/:id/collaborators
// @Summary Change a collaborator's role
// @Tags Collaborators
// @Accept json
// @Produce json
// @Param id path int true "Document ID"
// @Param body body roleUpdateBody true "Target user id and new role"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id}/collaborators [put]
func (h *CollaboratorHandler) UpdateCollaboratorRole(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "collaborators.update")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "collaborators.validation.input")
	}

	var body roleUpdateBody
	if err := c.BodyParser(&body); err != nil {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "collaborators.validation.input")
	}

	if body.UserID == 0 || !models.ValidRole(body.Role) {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "collaborators.validation.input")
	}

	err = services.UpdateCollaboratorRole(h.DB, userID, documentID, body.UserID.Uint64(), body.Role)
	if err != nil {
		return serviceErrorResponse(c, err, "collaborators.update")
	}

	return utils.MutationSuccessResponse(c, 1)
}

// RemoveCollaborator handles DELETE /api/documents/:id/collaborators?userId=N
// @Summary Remove a collaborator
// @Description Idempotent; removing an absent grant succeeds
// @Tags Collaborators
// @Produce json
// @Param id path int true "Document ID"
// @Param userId query int true "Target user ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /documents/{id}/collaborators [delete]
func (h *CollaboratorHandler) RemoveCollaborator(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusUnauthorized, "collaborators.remove")
	}

	documentID, err := parseDocumentID(c)
	if err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "collaborators.validation.input")
	}

	targetID, err := strconv.ParseUint(c.Query("userId"), 10, 64)
	if err != nil || targetID == 0 {
		return utils.ErrorResponse(c, "Incorrect inputs", fiber.StatusBadRequest, "collaborators.validation.input")
	}

	if err := services.RemoveCollaborator(h.DB, userID, documentID, targetID); err != nil {
		return serviceErrorResponse(c, err, "collaborators.remove")
	}

	return utils.MutationSuccessResponse(c, 1)
}
